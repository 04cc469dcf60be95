package lockpool

// Handle is a thin owning wrapper over a raw allocation. It is not
// required — Allocate/Deallocate remain usable directly — but it saves
// callers from having to remember the numElems/elemSize pair
// themselves.
type Handle struct {
	a         *Allocator
	b         []byte
	numElems  uint
	elemSize  uint
	destroyed bool
}

// Acquire allocates through a and wraps the result in a Handle. The
// second return value is false under exactly the conditions Allocate
// itself returns false.
func Acquire(a *Allocator, numElems, elemSize uint) (*Handle, bool) {
	b, ok := a.Allocate(numElems, elemSize)
	if !ok {
		return nil, false
	}

	return &Handle{a: a, b: b, numElems: numElems, elemSize: elemSize}, true
}

// Bytes returns the handle's backing storage. It panics if called
// after Destroy, since the memory is no longer owned by the caller.
func (h *Handle) Bytes() []byte {
	if h.destroyed {
		panic("lockpool: Bytes called on a destroyed Handle")
	}

	return h.b
}

// Destroy returns the handle's storage to its allocator. It is
// idempotent: a second call is a no-op. Destroy does not scrub the
// contents itself — the caller must zero any sensitive data before the
// last reference to Bytes() goes away.
func (h *Handle) Destroy() {
	if h.destroyed {
		return
	}

	h.a.Deallocate(h.b, h.numElems, h.elemSize)
	h.b = nil
	h.destroyed = true
}
