package table

import (
	"github.com/varda-db/varda/itree"
	"github.com/varda-db/varda/ssi"
)

// MNVTable is the reference-keyed table of multi-nucleotide variants:
// entries are arbitrary-length intervals [start, end) carrying a
// sequence-dictionary handle identifying the inserted allele string, and
// a query only counts entries whose coordinates and allele handle match
// exactly.
type MNVTable struct {
	*base
}

// NewMNVTable creates an empty MNVTable bounded by the given reference,
// reference-name-character, and per-reference-tree capacities.
func NewMNVTable(refCapacity, refCharCapacity, treeCapacity uint64) (*MNVTable, error) {
	b, err := newBase(refCapacity, refCharCapacity, treeCapacity)
	if err != nil {
		return nil, err
	}
	return &MNVTable{base: b}, nil
}

// Insert records one sample carrying the allele identified by handle
// over [start, end) on reference, allocating a tree for reference on
// first sight.
func (m *MNVTable) Insert(reference []byte, start, end itree.PosType, sampleID uint32, handle itree.SeqHandle) error {
	tr, err := m.treeFor(reference, true)
	if err != nil {
		return err
	}
	return tr.Insert(start, end, sampleID, handle)
}

// QueryStab returns the sum of Count over the entries on reference that
// carry exactly the allele identified by handle over [qs, qe) and belong
// to a sample in subset (or to any sample, when subset is nil).
func (m *MNVTable) QueryStab(reference []byte, qs, qe itree.PosType, subset *ssi.Set, handle itree.SeqHandle) uint64 {
	match := func(e itree.Entry) bool {
		return e.Start == qs && e.End == qe && e.Payload.Equal(handle)
	}
	return m.queryStab(reference, qs, qe, subset, match)
}

// Remove retracts every MNV entry across every reference whose
// sample_id is in subset, returning the total retracted.
func (m *MNVTable) Remove(subset *ssi.Set) uint64 {
	return m.remove(subset)
}

// Scan walks every MNV entry stored for reference (checksum
// diagnostics).
func (m *MNVTable) Scan(reference []byte, fn func(itree.Entry)) {
	m.scan(reference, fn)
}

// Destroy releases the table's backing storage. The table must not be
// used afterwards.
func (m *MNVTable) Destroy() { m.destroy() }
