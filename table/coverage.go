package table

import (
	"github.com/varda-db/varda/itree"
	"github.com/varda-db/varda/ssi"
)

// CoverageTable is the reference-keyed table of coverage intervals: one
// interval index per reference, keyed by sample_id, with no payload
// beyond the interval itself. A query counts every overlapping entry
// regardless of its exact bounds.
type CoverageTable struct {
	*base
}

// NewCoverageTable creates an empty CoverageTable bounded by the given
// reference, reference-name-character, and per-reference-tree
// capacities.
func NewCoverageTable(refCapacity, refCharCapacity, treeCapacity uint64) (*CoverageTable, error) {
	b, err := newBase(refCapacity, refCharCapacity, treeCapacity)
	if err != nil {
		return nil, err
	}
	return &CoverageTable{base: b}, nil
}

// Insert records one covered interval [start, end) for sampleID on
// reference, allocating a tree for reference on first sight. It returns
// a vrderr.Capacity error if ref_capacity or the reference's tree
// capacity would be exceeded.
func (c *CoverageTable) Insert(reference []byte, start, end itree.PosType, sampleID uint32) error {
	tr, err := c.treeFor(reference, true)
	if err != nil {
		return err
	}
	return tr.Insert(start, end, sampleID, itree.Unit{})
}

// QueryStab returns the sum of Count over the stored entries on
// reference that overlap [qs, qe) and belong to a sample in subset (or to
// any sample, when subset is nil). A reference that was never inserted
// contributes 0.
func (c *CoverageTable) QueryStab(reference []byte, qs, qe itree.PosType, subset *ssi.Set) uint64 {
	return c.queryStab(reference, qs, qe, subset, coverageMatch)
}

func coverageMatch(itree.Entry) bool { return true }

// Scan walks every coverage entry stored for reference (used by package
// checksum).
func (c *CoverageTable) Scan(reference []byte, fn func(itree.Entry)) {
	c.scan(reference, fn)
}

// Remove retracts every coverage entry across every reference whose
// sample_id is in subset, returning the total retracted.
func (c *CoverageTable) Remove(subset *ssi.Set) uint64 {
	return c.remove(subset)
}

// Destroy releases the table's backing storage. The table must not be
// used afterwards.
func (c *CoverageTable) Destroy() { c.destroy() }

// Dump writes "<len>\t<reference>\n" to fn for every reference the table
// holds, where len is the reference's distinct entry count. A purely
// diagnostic utility with no effect on query results.
func (c *CoverageTable) Dump(fn func(length int, reference string)) {
	for _, ref := range c.References() {
		fn(c.entryCount([]byte(ref)), ref)
	}
}
