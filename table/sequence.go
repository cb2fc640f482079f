package table

import "github.com/varda-db/varda/seqdict"

// SequenceTable is the fourth reference-keyed table specialization,
// alongside Coverage, SNV, and MNV. Unlike those three, it is a peer
// sequence dictionary rather than a trie-of-trees composition: it
// interns inserted-allele byte strings directly, with no per-reference
// interval index beneath it. SequenceTable is therefore a thin rename of
// seqdict.Dict's own lifecycle surface, so that callers working through
// package table see a uniform New*Table/Destroy naming convention
// across all four.
type SequenceTable struct {
	*seqdict.Dict
}

// NewSequenceTable creates an empty SequenceTable able to intern at most
// charCapacity total bytes across every stored allele string.
func NewSequenceTable(charCapacity uint64) (*SequenceTable, error) {
	d, err := seqdict.New(charCapacity)
	if err != nil {
		return nil, err
	}
	return &SequenceTable{Dict: d}, nil
}

// Destroy releases the table's backing storage. The table must not be
// used afterwards.
func (s *SequenceTable) Destroy() { s.Dict.Destroy() }
