// set.go: lock-free, open-addressed, fixed-capacity concurrent set
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package arion

import "sync/atomic"

// Set is a lock-free, open-addressed, fixed-capacity concurrent set of
// uint32 keys. All mutation is via single-word atomic compare-and-swap,
// load and store; there are no locks, no hazard pointers, and no
// resizing. Capacity is fixed at construction and must stay strictly
// above the expected key count (the source recommends 50% fill) or
// Insert will spin indefinitely — see the Insert doc comment.
type Set struct {
	slots    []atomic.Uint32
	capacity uint32
}

// NewSet returns a Set of the requested capacity with all slots empty.
// capacity must be a power of two greater than zero; otherwise
// NewSet returns ErrCodeInvalidCapacity.
func NewSet(capacity uint32) (*Set, error) {
	if !isPowerOfTwo(capacity) {
		return nil, NewErrInvalidCapacity(capacity)
	}
	s := &Set{
		slots:    make([]atomic.Uint32, capacity),
		capacity: capacity,
	}
	for i := range s.slots {
		s.slots[i].Store(Empty)
	}
	return s, nil
}

// Capacity returns the fixed slot count of s.
func (s *Set) Capacity() uint32 { return s.capacity }

// Insert adds k to the set. If k is already present, Insert returns
// without changing the array. Insert never reports an error and never
// reports a bounded failure: under the pathological-fill condition
// (every slot on k's probe chain occupied by a different key) it spins
// indefinitely. Callers must keep the load factor below 1. k must not
// equal Empty.
func (s *Set) Insert(k uint32) {
	if k == Empty {
		return
	}
	slot := slotFor(k, s.capacity)
	for {
		cur := s.slots[slot].Load()
		if cur == Empty {
			if s.slots[slot].CompareAndSwap(Empty, k) {
				return
			}
			// CAS lost the race; re-examine the same slot, don't advance.
			continue
		}
		if cur == k {
			return
		}
		slot = nextSlot(slot, s.capacity)
	}
}

// TryInsert behaves like Insert but probes at most Capacity distinct
// slots before giving up, returning ErrCodeTableFull instead of
// spinning forever. This is an additive escape hatch for callers that
// would rather fail fast under misuse than hang a goroutine; Insert
// itself is unchanged and keeps spinning under the pathological-fill
// condition.
func (s *Set) TryInsert(k uint32) error {
	if k == Empty {
		return NewErrReservedKey("Set.TryInsert")
	}
	slot := slotFor(k, s.capacity)
	for i := uint32(0); i < s.capacity; {
		cur := s.slots[slot].Load()
		if cur == Empty {
			if s.slots[slot].CompareAndSwap(Empty, k) {
				return nil
			}
			continue
		}
		if cur == k {
			return nil
		}
		slot = nextSlot(slot, s.capacity)
		i++
	}
	return NewErrTableFull(s.capacity, k)
}

// Contains reports whether k is present in the set. It never writes
// and is wait-free in the absence of the pathological-fill condition,
// bounded by the length of k's probe chain.
func (s *Set) Contains(k uint32) bool {
	slot := slotFor(k, s.capacity)
	for {
		cur := s.slots[slot].Load()
		if cur == k {
			return true
		}
		if cur == Empty {
			return false
		}
		slot = nextSlot(slot, s.capacity)
	}
}

// insertProbed is Insert instrumented for the batch driver's metrics
// path: it reports how many slots were examined and how many CAS
// attempts were lost to a racing writer, without changing the
// algorithm or its spin-forever contract under pathological fill.
func (s *Set) insertProbed(k uint32) (probes, casRetries int) {
	if k == Empty {
		return 0, 0
	}
	slot := slotFor(k, s.capacity)
	for {
		probes++
		cur := s.slots[slot].Load()
		if cur == Empty {
			if s.slots[slot].CompareAndSwap(Empty, k) {
				return probes, casRetries
			}
			casRetries++
			continue
		}
		if cur == k {
			return probes, casRetries
		}
		slot = nextSlot(slot, s.capacity)
	}
}

// containsProbed is Contains instrumented with a probe count.
func (s *Set) containsProbed(k uint32) (found bool, probes int) {
	slot := slotFor(k, s.capacity)
	for {
		probes++
		cur := s.slots[slot].Load()
		if cur == k {
			return true, probes
		}
		if cur == Empty {
			return false, probes
		}
		slot = nextSlot(slot, s.capacity)
	}
}

// deleteProbed is Delete instrumented with a probe count.
func (s *Set) deleteProbed(k uint32) (probes int) {
	slot := slotFor(k, s.capacity)
	for {
		probes++
		cur := s.slots[slot].Load()
		if cur == k {
			s.slots[slot].Store(Empty)
			return probes
		}
		if cur == Empty {
			return probes
		}
		slot = nextSlot(slot, s.capacity)
	}
}

// Delete removes k from the set if present. Delete is tombstone-free:
// the slot is stored back to Empty directly, no deleted marker is
// used. Consequence: a later Contains for a different key k2 whose
// probe chain passes through the slot just vacated by this Delete may
// return a false negative if k2 was inserted further down the same
// chain, even though k2 is still present. This is a documented
// limitation of the tombstone-free design, not a bug; fixing it
// requires a distinct TOMBSTONE sentinel plus a backfill or rehash
// strategy, which changes observable behavior and is out of scope
// here.
func (s *Set) Delete(k uint32) {
	slot := slotFor(k, s.capacity)
	for {
		cur := s.slots[slot].Load()
		if cur == k {
			s.slots[slot].Store(Empty)
			return
		}
		if cur == Empty {
			return
		}
		slot = nextSlot(slot, s.capacity)
	}
}
