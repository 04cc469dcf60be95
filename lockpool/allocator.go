package lockpool

import (
	"sort"
	"sync"
	"unsafe"

	"github.com/orizon-lang/lockmem/internal/memzero"
)

// extent is a disjoint free byte range, relative to the pool base.
// The free list is kept sorted strictly by offset and never contains
// two adjacent extents — adjacency is always merged at deallocate
// time.
type extent struct {
	offset uintptr
	length uintptr
}

// Allocator is a best-fit allocator over a single locked pool, guarded
// by one mutex. The zero value is not usable; construct with
// newAllocator.
type Allocator struct {
	mu   sync.Mutex
	pool *pool
	free []extent
}

func newAllocator(p *pool) *Allocator {
	a := &Allocator{pool: p}
	if !p.disabled && p.size() > 0 {
		a.free = []extent{{offset: 0, length: uintptr(p.size())}}
	}

	return a
}

// Allocate carves n = numElems*elemSize bytes out of the pool, aligned
// to elemSize (the requested alignment is defined to equal elemSize).
// It returns (nil, false) if the pool is disabled, numElems or
// elemSize is zero, the multiplication overflows, the request is
// greater-or-equal to the pool size, or no free extent is large enough
// once alignment padding is accounted for. On success the returned
// slice is zeroed and aliases the pool's backing storage; it remains
// valid until passed back to Deallocate.
func (a *Allocator) Allocate(numElems, elemSize uint) ([]byte, bool) {
	if a.pool.disabled || numElems == 0 || elemSize == 0 {
		return nil, false
	}

	n, ok := mulOverflows(numElems, elemSize)
	if !ok {
		return nil, false
	}

	align := uintptr(elemSize)

	a.mu.Lock()
	defer a.mu.Unlock()

	p := uintptr(a.pool.size())
	if n >= p {
		return nil, false
	}

	best := -1
	var bestOff, bestLen uintptr

	for i, e := range a.free {
		if e.length == n && e.offset%align == 0 {
			// Perfect fit fast path.
			base := a.base()
			region := unsafe.Slice((*byte)(unsafe.Pointer(base+e.offset)), n)
			a.free = append(a.free[:i], a.free[i+1:]...)
			memzero.Wipe(region)

			return region, true
		}

		pad := padding(e.offset, align)
		if e.length >= n+pad {
			if best == -1 || e.length < bestLen {
				best = i
				bestOff = e.offset
				bestLen = e.length
			}
		}
	}

	if best == -1 {
		return nil, false
	}

	pad := padding(bestOff, align)
	remainder := bestLen - n - pad

	if remainder == 0 {
		if pad > 0 {
			a.free[best] = extent{offset: bestOff, length: pad}
		} else {
			a.free = append(a.free[:best], a.free[best+1:]...)
		}
	} else {
		a.free[best] = extent{offset: bestOff + pad + n, length: remainder}
		if pad > 0 {
			a.free = append(a.free, extent{})
			copy(a.free[best+1:], a.free[best:])
			a.free[best] = extent{offset: bestOff, length: pad}
		}
	}

	base := a.base()
	region := unsafe.Slice((*byte)(unsafe.Pointer(base+bestOff+pad)), n)
	memzero.Wipe(region)

	return region, true
}

// Deallocate returns b, previously obtained from Allocate with the
// same numElems/elemSize, to the free list, merging with any
// adjacent free extents. It returns false — without mutating the free
// list — if b does not lie entirely within the pool; this is the
// membership test callers use to route foreign pointers to another
// allocator. Deallocate never zeroes b: callers must scrub sensitive
// contents themselves before calling it.
func (a *Allocator) Deallocate(b []byte, numElems, elemSize uint) bool {
	if a.pool.disabled || len(b) == 0 {
		return false
	}

	n, ok := mulOverflows(numElems, elemSize)
	if !ok || n != uintptr(len(b)) {
		return false
	}

	addr := uintptr(unsafe.Pointer(&b[0]))
	base := a.base()
	p := uintptr(a.pool.size())

	if addr < base || addr-base > p || addr-base+n > p {
		return false
	}

	start := addr - base

	a.mu.Lock()
	defer a.mu.Unlock()

	i := sort.Search(len(a.free), func(i int) bool { return a.free[i].offset >= start })

	mergedForward := false
	if i < len(a.free) && start+n == a.free[i].offset {
		a.free[i].offset = start
		a.free[i].length += n
		mergedForward = true
	}

	if i > 0 {
		prev := &a.free[i-1]
		if prev.offset+prev.length == start {
			if !mergedForward {
				prev.length += n
			} else {
				prev.length += a.free[i].length
				a.free = append(a.free[:i], a.free[i+1:]...)
			}

			return true
		}
	}

	if mergedForward {
		return true
	}

	a.free = append(a.free, extent{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = extent{offset: start, length: n}

	return true
}

func (a *Allocator) base() uintptr {
	if a.pool.disabled || len(a.pool.buf) == 0 {
		return 0
	}

	return uintptr(unsafe.Pointer(&a.pool.buf[0]))
}

// padding returns the number of bytes needed to advance offset o up
// to the next multiple of alignment a. a must be > 0.
func padding(o, a uintptr) uintptr {
	if o%a == 0 {
		return 0
	}

	return a - (o % a)
}

// mulOverflows computes numElems*elemSize as a uintptr and reports
// whether the product is representable without wraparound.
func mulOverflows(numElems, elemSize uint) (uintptr, bool) {
	if numElems == 0 || elemSize == 0 {
		return 0, true
	}

	ne, es := uintptr(numElems), uintptr(elemSize)
	n := ne * es

	if n/es != ne {
		return 0, false
	}

	return n, true
}
