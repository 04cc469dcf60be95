package lockpool

import (
	"fmt"
	"sync"

	"github.com/orizon-lang/lockmem/internal/seclog"
)

var (
	instanceOnce sync.Once
	instance     *Allocator
	instanceErr  error
)

// Instance returns the process-wide Allocator, constructing it on
// first call. A construction failure (mapping or pinning syscall
// error) is fatal and reported via panic: the process cannot use the
// locked allocator at all in that case. A resolved pool size of zero
// is not a construction failure — it yields a disabled Allocator whose
// Allocate/Deallocate calls always fail in-band.
func Instance() *Allocator {
	instanceOnce.Do(func() {
		p, err := newPool()
		if err != nil {
			instanceErr = fmt.Errorf("lockpool: constructing process-wide pool: %w", err)

			return
		}

		instance = newAllocator(p)
	})

	if instanceErr != nil {
		panic(instanceErr)
	}

	return instance
}

// Close tears down the process-wide instance: zeroes, unpins, and
// unmaps its backing region. Go has no destructor-attribute mechanism
// for automatic teardown, so Close must be called explicitly by the
// embedding process (e.g. a defer in main, or a signal handler) before
// it exits. Calling Close before Instance has ever been used is a
// no-op; calling it more than once is safe.
func Close() {
	if instance == nil {
		return
	}

	instance.mu.Lock()
	defer instance.mu.Unlock()

	instance.pool.destroy()
	instance.free = nil

	seclog.Event("pool-closed")
}
