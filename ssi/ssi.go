// Package ssi implements the sample-set index: an ordered set of
// non-negative sample identifiers supporting sublinear membership tests.
// It is used only as a read-only filter during query and bulk removal,
// never mutated by those callers.
//
// The set is backed by github.com/biogo/store/llrb, the same
// left-leaning red-black tree grailbio/bio itself reaches for whenever it
// needs an ordered lookup structure (encoding/bampair/shard_info.go,
// cmd/bio-bam-sort/sorter/sort.go), rather than a hand-rolled AVL tree.
package ssi

import (
	"math"

	"github.com/biogo/store/llrb"

	"github.com/varda-db/varda/vrderr"
)

// sampleKey adapts a uint32 sample identifier to llrb.Comparable.
type sampleKey uint32

func (k sampleKey) Compare(c llrb.Comparable) int {
	o := c.(sampleKey)
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	default:
		return 0
	}
}

// Set is an ordered, capacity-bounded set of sample identifiers.
type Set struct {
	tree     llrb.Tree
	capacity uint32
}

// New creates a Set that can hold up to capacity distinct sample
// identifiers. It fails with a vrderr.Capacity error if capacity exceeds
// the 32-bit bound every identifier in this module is held to.
func New(capacity uint64) (*Set, error) {
	if capacity > math.MaxUint32 {
		return nil, vrderr.E(vrderr.Capacity, "ssi.New: capacity exceeds 32-bit bound")
	}
	return &Set{capacity: uint32(capacity)}, nil
}

// Insert adds id to the set. Re-inserting an id already present is a
// no-op. It fails with vrderr.Capacity if the set is full and id is not
// already a member.
func (s *Set) Insert(id uint32) error {
	if s.tree.Get(sampleKey(id)) != nil {
		return nil
	}
	if uint32(s.tree.Len()) >= s.capacity {
		return vrderr.E(vrderr.Capacity, "ssi.Insert: set is full")
	}
	s.tree.Insert(sampleKey(id))
	return nil
}

// Contains reports whether id is a member of the set.
func (s *Set) Contains(id uint32) bool {
	return s.tree.Get(sampleKey(id)) != nil
}

// Len returns the number of members currently in the set.
func (s *Set) Len() int {
	return s.tree.Len()
}

// Destroy releases the set's backing storage. The Set must not be used
// afterwards.
func (s *Set) Destroy() {
	s.tree = llrb.Tree{}
}
