package lockpool

// Stats is a point-in-time snapshot of an Allocator's pool and free
// list. It has no allocation counters of its own: every field is
// derived from the pool size and the current free list.
type Stats struct {
	Disabled      bool
	PoolBytes     int
	FreeBytes     int
	ExtentLengths []int
}

// Stats reports the Allocator's current pool size and free-list
// shape. It acquires the same mutex as Allocate/Deallocate, so it is
// safe to call concurrently with either.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Stats{
		Disabled:  a.pool.disabled,
		PoolBytes: a.pool.size(),
	}

	for _, e := range a.free {
		s.FreeBytes += int(e.length)
		s.ExtentLengths = append(s.ExtentLengths, int(e.length))
	}

	return s
}
