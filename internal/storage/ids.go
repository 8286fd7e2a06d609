package storage

// idAllocator issues monotonically increasing 64-bit ids starting at 1.
// Id 0 is reserved as the "no parent / root" sentinel. Ids are never
// reused within a store's lifetime, even after deletion, so a stale
// reference resolves to "not found" instead of silently pointing at a
// different entity.
type idAllocator struct {
	next uint64
}

func newIDAllocator() idAllocator {
	return idAllocator{next: 1}
}

func (a *idAllocator) alloc() uint64 {
	id := a.next
	a.next++
	return id
}
