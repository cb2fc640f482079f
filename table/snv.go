package table

import (
	"github.com/varda-db/varda/itree"
	"github.com/varda-db/varda/ssi"
)

// SNVTable is the reference-keyed table of single-nucleotide variants:
// entries are unit-length intervals [pos, pos+1) carrying an IUPAC
// allele code, and a query only counts entries whose coordinates and
// allele match exactly.
type SNVTable struct {
	*base
}

// NewSNVTable creates an empty SNVTable bounded by the given reference,
// reference-name-character, and per-reference-tree capacities.
func NewSNVTable(refCapacity, refCharCapacity, treeCapacity uint64) (*SNVTable, error) {
	b, err := newBase(refCapacity, refCharCapacity, treeCapacity)
	if err != nil {
		return nil, err
	}
	return &SNVTable{base: b}, nil
}

// Insert records one sample carrying allele at position pos on
// reference, allocating a tree for reference on first sight.
func (s *SNVTable) Insert(reference []byte, pos itree.PosType, sampleID uint32, allele itree.Allele) error {
	tr, err := s.treeFor(reference, true)
	if err != nil {
		return err
	}
	return tr.Insert(pos, pos+1, sampleID, allele)
}

// QueryStab returns the sum of Count over the entries on reference that
// carry exactly allele at position pos and belong to a sample in subset
// (or to any sample, when subset is nil).
func (s *SNVTable) QueryStab(reference []byte, pos itree.PosType, subset *ssi.Set, allele itree.Allele) uint64 {
	match := func(e itree.Entry) bool {
		return e.Start == pos && e.End == pos+1 && e.Payload.Equal(allele)
	}
	return s.queryStab(reference, pos, pos+1, subset, match)
}

// Remove retracts every SNV entry across every reference whose sample_id
// is in subset, returning the total retracted.
func (s *SNVTable) Remove(subset *ssi.Set) uint64 {
	return s.remove(subset)
}

// Scan walks every SNV entry stored for reference (checksum
// diagnostics).
func (s *SNVTable) Scan(reference []byte, fn func(itree.Entry)) {
	s.scan(reference, fn)
}

// Destroy releases the table's backing storage. The table must not be
// used afterwards.
func (s *SNVTable) Destroy() { s.destroy() }
