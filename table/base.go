// Package table implements the reference-keyed table: the composition of
// a sequence dictionary over reference names with one interval index per
// reference. CoverageTable, SNVTable, and MNVTable are the three true
// reference-keyed specializations; SequenceTable is package seqdict's
// Dict exposed with the same lifecycle surface, so that callers working
// through this package see one consistent four-table vocabulary (see
// DESIGN.md for how this resolves against the data model's treatment of
// the sequence dictionary as a peer rather than a fourth composition).
//
// All three RKTs share the same skeleton -- a reference-name trie plus
// one itree.Tree per reference, allocated lazily on first insert -- the
// way the original C source's cov_table.c/snv_table.c/mnv_table.c share
// template_table.h. Rather than C-style textual templating, or Go
// generics (unavailable to this era's toolchain, and unused anywhere else
// in the teacher corpus), the shared skeleton lives in base and the three
// public types add only their payload-specific Insert/QueryStab
// signatures.
package table

import (
	"github.com/varda-db/varda/itree"
	"github.com/varda-db/varda/seqdict"
	"github.com/varda-db/varda/ssi"
	"github.com/varda-db/varda/vrderr"
)

type base struct {
	names        *seqdict.Dict
	trees        []*itree.Tree
	refCapacity  uint32
	treeCapacity uint64
}

func newBase(refCapacity, refCharCapacity, treeCapacity uint64) (*base, error) {
	if refCapacity > 1<<32-1 {
		return nil, vrderr.E(vrderr.Capacity, "table: ref_capacity exceeds 32-bit bound")
	}
	names, err := seqdict.New(refCharCapacity)
	if err != nil {
		return nil, err
	}
	return &base{
		names:        names,
		refCapacity:  uint32(refCapacity),
		treeCapacity: treeCapacity,
	}, nil
}

// treeFor returns the per-reference tree for reference, allocating one on
// first sight when create is true. The tree slot is reserved before the
// reference name is interned, in the original C source's order
// (cov_table.c allocates table->tree[next] before interning the name);
// if interning then fails (ref_char_capacity exhausted), the reserved
// slot is released again, so trees[h] stays the tree of name handle h and
// the failed insert leaves the table unchanged (see DESIGN.md).
func (b *base) treeFor(reference []byte, create bool) (*itree.Tree, error) {
	if h, ok := b.names.Find(reference); ok {
		return b.trees[h], nil
	}
	if !create {
		return nil, nil
	}
	if uint32(len(b.trees)) >= b.refCapacity {
		return nil, vrderr.E(vrderr.Capacity, "table: ref_capacity exceeded")
	}
	tr, err := itree.New(b.treeCapacity)
	if err != nil {
		return nil, err
	}
	b.trees = append(b.trees, tr)
	if _, err := b.names.Insert(reference); err != nil {
		b.trees = b.trees[:len(b.trees)-1]
		return nil, err
	}
	return tr, nil
}

// queryStab looks up reference's tree and, if present, runs the stabbing
// query against it; a reference that was never inserted contributes 0.
func (b *base) queryStab(reference []byte, qs, qe itree.PosType, subset *ssi.Set, match func(itree.Entry) bool) uint64 {
	tr, err := b.treeFor(reference, false)
	if err != nil || tr == nil {
		return 0
	}
	return tr.QueryStab(qs, qe, subset, match)
}

// entryCount returns the number of distinct entries stored for
// reference, or 0 if reference was never inserted. Used by the
// "<len>\t<reference>" diagnostic dump.
func (b *base) entryCount(reference []byte) int {
	tr, err := b.treeFor(reference, false)
	if err != nil || tr == nil {
		return 0
	}
	return tr.Len()
}

// scan walks every entry stored for reference, in the tree's in-order
// traversal order, calling fn once per entry. A reference that was
// never inserted yields no calls. Used by package checksum.
func (b *base) scan(reference []byte, fn func(itree.Entry)) {
	tr, err := b.treeFor(reference, false)
	if err != nil || tr == nil {
		return
	}
	tr.Scan(fn)
}

// remove retracts every entry whose sample_id is in subset across every
// per-reference tree, returning the total retracted.
func (b *base) remove(subset *ssi.Set) uint64 {
	var total uint64
	for _, tr := range b.trees {
		total += tr.Remove(subset)
	}
	return total
}

// References returns every reference name the table has ever allocated a
// tree for, in the order they were first inserted. Used by the coverage
// diagnostic dump and cmd/varda-checksum.
func (b *base) References() []string {
	return b.names.Keys()
}

// destroy releases the table's per-reference trees and the name
// dictionary. The table must not be used afterwards.
func (b *base) destroy() {
	for _, tr := range b.trees {
		tr.Destroy()
	}
	b.trees = nil
	b.names.Destroy()
}
