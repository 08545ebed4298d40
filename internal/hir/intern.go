package hir

import "fmt"

// internTable is a bijective map from definition locations to stable IDs:
// a value-keyed index plus an append-only reverse vector. There is no
// removal; within one epoch interning the same loc always yields the same
// ID and distinct locs always yield distinct IDs.
type internTable[L comparable, ID ~uint32] struct {
	index map[L]ID
	byID  []L // byID[0] unused: 0 is the invalid sentinel
}

func newInternTable[L comparable, ID ~uint32]() *internTable[L, ID] {
	var zero L
	return &internTable[L, ID]{
		index: make(map[L]ID, 16),
		byID:  []L{zero},
	}
}

// Intern returns the stable ID for the loc, allocating one on first sight.
func (t *internTable[L, ID]) Intern(loc L) ID {
	if id, ok := t.index[loc]; ok {
		return id
	}
	id := ID(len(t.byID))
	t.byID = append(t.byID, loc)
	t.index[loc] = id
	return id
}

// Lookup returns the loc that produced the ID. Looking up an ID this table
// never produced is a programming error, not a recoverable condition.
func (t *internTable[L, ID]) Lookup(id ID) L {
	if id == 0 || int(id) >= len(t.byID) {
		panic(fmt.Sprintf("hir: lookup of unknown interned ID %d", id))
	}
	return t.byID[id]
}

// Len returns the number of interned locations.
func (t *internTable[L, ID]) Len() int {
	return len(t.byID) - 1
}
