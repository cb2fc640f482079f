// Package seqdict implements a trie from arbitrary byte strings to
// dense, monotonically increasing integer handles. It dedupes
// inserted-allele strings for MNVs and, reused by package table, serves
// as a reference-keyed table's per-reference directory.
package seqdict

import (
	"github.com/varda-db/varda/vrderr"
)

// Handle identifies a byte string interned in a Dict. Handles are dense
// (0, 1, 2, ...) and assigned in insertion order; find/key_of/insert all
// agree on this numbering for the life of the Dict.
type Handle uint32

type trieNode struct {
	children map[byte]*trieNode
	handle   Handle
	terminal bool
}

// Dict is a byte-trie mapping distinct byte strings to dense handles,
// bounded by the total number of bytes it may intern.
type Dict struct {
	root        trieNode
	keys        []string // keys[h] is the byte string for Handle(h)
	charBudget  uint64
	charCapUsed uint64
}

// New creates an empty Dict that may intern at most charCapacity total
// bytes across every stored key. It fails with vrderr.Capacity if
// charCapacity exceeds the 32-bit bound.
func New(charCapacity uint64) (*Dict, error) {
	if charCapacity > 1<<32-1 {
		return nil, vrderr.E(vrderr.Capacity, "seqdict.New: char_capacity exceeds 32-bit bound")
	}
	return &Dict{
		root:       trieNode{children: map[byte]*trieNode{}},
		charBudget: charCapacity,
	}, nil
}

// Insert interns key, returning its Handle. Re-interning an identical key
// is idempotent and returns the same Handle every time -- distinct keys
// never share a Handle, and a given key always maps to the same one. It
// fails with vrderr.Capacity if key would push total interned bytes past
// char_capacity; the Dict is left unchanged in that case.
func (d *Dict) Insert(key []byte) (Handle, error) {
	if h, ok := d.Find(key); ok {
		return h, nil
	}
	if d.charCapUsed+uint64(len(key)) > d.charBudget {
		return 0, vrderr.E(vrderr.Capacity, "seqdict.Insert: char_capacity exceeded")
	}
	n := &d.root
	for _, b := range key {
		child, ok := n.children[b]
		if !ok {
			child = &trieNode{children: map[byte]*trieNode{}}
			n.children[b] = child
		}
		n = child
	}
	h := Handle(len(d.keys))
	n.terminal = true
	n.handle = h
	d.keys = append(d.keys, string(key))
	d.charCapUsed += uint64(len(key))
	return h, nil
}

// Find looks up key without interning it, reporting its Handle and true
// if key has been inserted before.
func (d *Dict) Find(key []byte) (Handle, bool) {
	n := &d.root
	for _, b := range key {
		child, ok := n.children[b]
		if !ok {
			return 0, false
		}
		n = child
	}
	if !n.terminal {
		return 0, false
	}
	return n.handle, true
}

// KeyOf returns the byte string a Handle was assigned to. No query or
// ingestion path in this module calls it; cmd/varda-checksum and the
// reference-name diagnostics in package driver list names through Keys.
func (d *Dict) KeyOf(h Handle) (string, bool) {
	if int(h) >= len(d.keys) {
		return "", false
	}
	return d.keys[h], true
}

// Len returns the number of distinct keys interned.
func (d *Dict) Len() int { return len(d.keys) }

// Keys returns every interned key, ordered by Handle. The caller must not
// mutate the returned slice.
func (d *Dict) Keys() []string { return d.keys }

// Destroy releases the dictionary's backing storage. The Dict must not be
// used afterwards.
func (d *Dict) Destroy() {
	d.root = trieNode{}
	d.keys = nil
	d.charCapUsed = 0
}
