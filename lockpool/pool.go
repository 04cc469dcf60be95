// Package lockpool implements a process-wide, page-locked memory pool
// and a best-fit free-list allocator over it, for storage of
// cryptographically sensitive material. This file implements the
// locked pool itself: construction and destruction of the backing
// region.
package lockpool

import (
	"fmt"

	"github.com/orizon-lang/lockmem/internal/memcall"
	"github.com/orizon-lang/lockmem/internal/memzero"
	"github.com/orizon-lang/lockmem/internal/seclog"
)

// mlockUpperBound caps the pool at 512 KiB regardless of how generous
// the OS's lockable-memory limit is. Sized to cover this library's own
// test suite's working set, and to keep many independent processes
// from exhausting a machine's locked-memory budget. Not externally
// configurable.
const mlockUpperBound = 512 * 1024

// pool is the single contiguous, page-locked region backing the
// allocator. A pool with disabled == true has no backing memory at
// all: every allocate call against it fails, every deallocate call
// against it returns false.
type pool struct {
	buf      []byte
	disabled bool
}

// newPool constructs the locked pool:
//  1. query the lockable-memory limit,
//  2. cap it at mlockUpperBound,
//  3. map, zero, and pin that many bytes,
//  4. or mark the pool disabled if the limit is zero.
func newPool() (*pool, error) {
	return newPoolWithCap(mlockUpperBound)
}

// newPoolWithCap is the general constructor; production code always
// goes through newPool. A non-positive cap or a zero resolved OS limit
// yields a disabled pool, matching the "pool-disabled" error kind:
// disabling is not itself a fatal construction error.
func newPoolWithCap(cap int) (*pool, error) {
	limit, err := memcall.Lockable()
	if err != nil {
		return nil, fmt.Errorf("lockpool: querying lockable memory limit: %w", err)
	}

	size := cap
	if limit == 0 {
		seclog.Event("pool-disabled", "reason", "mlock limit is zero")

		return &pool{disabled: true}, nil
	}

	if size > 0 && uint64(size) > limit {
		size = int(limit)
	}

	if size <= 0 {
		seclog.Event("pool-disabled", "reason", "resolved pool size is zero")

		return &pool{disabled: true}, nil
	}

	buf, err := memcall.Map(size)
	if err != nil {
		return nil, fmt.Errorf("lockpool: mapping %d bytes: %w", size, err)
	}

	// Best-effort: the no-core-dump flag is absent on some platforms;
	// a failure here is not fatal to construction.
	_ = memcall.DisableDump(buf)

	memzero.Wipe(buf)

	if err := memcall.Lock(buf); err != nil {
		_ = memcall.Unmap(buf)

		return nil, fmt.Errorf("lockpool: locking %d bytes: %w", size, err)
	}

	return &pool{buf: buf}, nil
}

// destroy zeroes, unpins, and unmaps the region. It is idempotent
// against an already-disabled pool.
func (p *pool) destroy() {
	if p.disabled || p.buf == nil {
		return
	}

	memzero.Wipe(p.buf)
	_ = memcall.Unlock(p.buf)
	_ = memcall.Unmap(p.buf)

	p.buf = nil
	p.disabled = true
}

// size returns the pool's total byte count. Zero for a disabled pool.
func (p *pool) size() int {
	return len(p.buf)
}
