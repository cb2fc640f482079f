// Package itree implements a height-balanced binary search tree of
// half-open intervals [start, end) annotated with (sample_id, count,
// payload).
//
// This is the one core data structure in this module that is hand-rolled
// rather than delegated to a library (see DESIGN.md): stabbing queries
// restricted to a dynamic sample subset, combined with bulk,
// subset-filtered removal and tuple-coalescing, are custom enough that
// the original C source (itv_tree.c) hand-rolls the same structure
// rather than using a library, and this port follows suit.
package itree

import (
	"github.com/varda-db/varda/ssi"
	"github.com/varda-db/varda/vrderr"
)

// Entry is one stored interval.
type Entry struct {
	Start, End PosType
	SampleID   uint32
	Payload    Payload
	Count      uint32
}

// PosType is the integer type used for interval boundaries within the
// tree. Positions are non-negative by construction; a plain uint32
// avoids a whole class of sign-confusion bugs the source's unchecked
// size_t arithmetic could hide.
type PosType = uint32

type node struct {
	entry       Entry
	maxEnd      PosType
	height      int8
	left, right *node
}

// Tree is a capacity-bounded interval index holding entries of a single
// Payload concrete type.
type Tree struct {
	root     *node
	size     int
	capacity uint32
}

// New creates an empty Tree able to hold up to capacity distinct entries
// (coalesced duplicates do not count against capacity). It fails with a
// vrderr.Capacity error if capacity exceeds the 32-bit bound (spec
// section 6).
func New(capacity uint64) (*Tree, error) {
	if capacity > 1<<32-1 {
		return nil, vrderr.E(vrderr.Capacity, "itree.New: capacity exceeds 32-bit bound")
	}
	return &Tree{capacity: uint32(capacity)}, nil
}

// Len returns the number of distinct entries (post-coalescing) currently
// stored.
func (t *Tree) Len() int { return t.size }

// overlaps reports whether an entry [es, ee) overlaps a query [qs, qe):
// es < qe && qs < ee. Zero-length stored intervals (es == ee) never
// overlap anything, since the formula alone would flag a query that
// encloses the empty interval (e.g. [0, 10) against [5, 5)).
func overlaps(es, ee, qs, qe PosType) bool {
	if es == ee {
		return false
	}
	return es < qe && qs < ee
}

// entryKey orders entries by (start, end, sample_id, payload) so that
// exact-tuple lookup (used for coalescing) is an ordinary BST search, and
// entries sharing a start position still have a well-defined place in the
// tree.
func entryKey(a, b Entry) int {
	switch {
	case a.Start != b.Start:
		if a.Start < b.Start {
			return -1
		}
		return 1
	case a.End != b.End:
		if a.End < b.End {
			return -1
		}
		return 1
	case a.SampleID != b.SampleID:
		if a.SampleID < b.SampleID {
			return -1
		}
		return 1
	case a.Payload.Equal(b.Payload):
		return 0
	case a.Payload.Less(b.Payload):
		return -1
	default:
		return 1
	}
}

// Insert records one (start, end, sample_id, payload) tuple, coalescing
// with an identical existing entry by incrementing its Count. It fails
// with vrderr.Capacity if a genuinely new entry would exceed the tree's
// capacity; the tree is left unchanged in that case.
func (t *Tree) Insert(start, end PosType, sampleID uint32, payload Payload) error {
	key := Entry{Start: start, End: end, SampleID: sampleID, Payload: payload}
	if n := search(t.root, key); n != nil {
		n.entry.Count++
		return nil
	}
	if t.size >= int(t.capacity) {
		return vrderr.E(vrderr.Capacity, "itree.Insert: tree is full")
	}
	key.Count = 1
	t.root = insert(t.root, key)
	t.size++
	return nil
}

func search(n *node, key Entry) *node {
	for n != nil {
		switch c := entryKey(key, n.entry); {
		case c == 0:
			return n
		case c < 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil
}

func height(n *node) int8 {
	if n == nil {
		return 0
	}
	return n.height
}

func maxEnd(n *node) PosType {
	if n == nil {
		return 0
	}
	return n.maxEnd
}

func maxPos(a, b PosType) PosType {
	if a > b {
		return a
	}
	return b
}

func update(n *node) {
	n.height = 1 + maxInt8(height(n.left), height(n.right))
	n.maxEnd = maxPos(n.entry.End, maxPos(maxEnd(n.left), maxEnd(n.right)))
}

func maxInt8(a, b int8) int8 {
	if a > b {
		return a
	}
	return b
}

func balanceFactor(n *node) int {
	return int(height(n.left)) - int(height(n.right))
}

func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	l.right = n
	update(n)
	update(l)
	return l
}

func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	r.left = n
	update(n)
	update(r)
	return r
}

func rebalance(n *node) *node {
	update(n)
	switch bf := balanceFactor(n); {
	case bf > 1:
		if balanceFactor(n.left) < 0 {
			n.left = rotateLeft(n.left)
		}
		return rotateRight(n)
	case bf < -1:
		if balanceFactor(n.right) > 0 {
			n.right = rotateRight(n.right)
		}
		return rotateLeft(n)
	default:
		return n
	}
}

func insert(n *node, key Entry) *node {
	if n == nil {
		return &node{entry: key, maxEnd: key.End, height: 1}
	}
	if entryKey(key, n.entry) < 0 {
		n.left = insert(n.left, key)
	} else {
		n.right = insert(n.right, key)
	}
	return rebalance(n)
}

// QueryStab returns the sum of Count over every stored entry that
// overlaps [qs, qe), belongs to a sample in subset (or every sample, when
// subset is nil), and satisfies match. match lets Coverage accept every
// overlapping entry while SNV and MNV additionally require exact
// coordinate and payload equality.
func (t *Tree) QueryStab(qs, qe PosType, subset *ssi.Set, match func(Entry) bool) uint64 {
	if qs >= qe {
		return 0
	}
	return queryStab(t.root, qs, qe, subset, match)
}

func queryStab(n *node, qs, qe PosType, subset *ssi.Set, match func(Entry) bool) uint64 {
	if n == nil {
		return 0
	}
	var total uint64
	if n.left != nil && n.left.maxEnd > qs {
		total += queryStab(n.left, qs, qe, subset, match)
	}
	if overlaps(n.entry.Start, n.entry.End, qs, qe) {
		if (subset == nil || subset.Contains(n.entry.SampleID)) && match(n.entry) {
			total += uint64(n.entry.Count)
		}
	}
	if n.entry.Start < qe {
		total += queryStab(n.right, qs, qe, subset, match)
	}
	return total
}

// Remove retracts every entry whose sample_id is in subset, returning the
// total Count retracted (repeated inserts of an identical tuple increment
// Count, and removal retracts the whole multiplicity). The tree is
// rebuilt from its in-order surviving entries afterwards, an amortised
// rebuild pass rather than a per-node deletion.
func (t *Tree) Remove(subset *ssi.Set) uint64 {
	survivors := make([]Entry, 0, t.size)
	var retracted uint64
	inorder(t.root, func(e Entry) {
		if subset.Contains(e.SampleID) {
			retracted += uint64(e.Count)
		} else {
			survivors = append(survivors, e)
		}
	})
	t.root = buildBalanced(survivors)
	t.size = len(survivors)
	return retracted
}

func inorder(n *node, fn func(Entry)) {
	if n == nil {
		return
	}
	inorder(n.left, fn)
	fn(n.entry)
	inorder(n.right, fn)
}

// buildBalanced assumes entries is already sorted by entryKey (guaranteed
// by an in-order traversal) and builds a minimal-height BST from it in
// O(n).
func buildBalanced(entries []Entry) *node {
	if len(entries) == 0 {
		return nil
	}
	mid := len(entries) / 2
	n := &node{entry: entries[mid]}
	n.left = buildBalanced(entries[:mid])
	n.right = buildBalanced(entries[mid+1:])
	update(n)
	return n
}

// Scan calls fn once per stored entry, in ascending (start, end,
// sample_id, payload) order. It is used only by maintenance tooling
// (package checksum); query paths use QueryStab instead.
func (t *Tree) Scan(fn func(Entry)) {
	inorder(t.root, fn)
}

// Destroy releases the tree's backing storage. The Tree must not be used
// afterwards.
func (t *Tree) Destroy() {
	t.root = nil
	t.size = 0
}
