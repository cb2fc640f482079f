package itree

// Payload is the per-entry annotation an interval index stores alongside
// (start, end, sample_id). It plays the same role in this tree that
// llrb.Comparable plays in github.com/biogo/store/llrb: a minimal
// interface concrete payload types implement so the tree can place and
// coalesce entries without knowing their shape.
//
// Equal decides coalescing: identical tuples increment Count rather than
// duplicating a node. Less only needs to provide a stable tie-break among
// entries that share (start, end, sample_id), so the tree has a
// well-defined place to put them; it does not need to be meaningful
// across different concrete Payload types.
type Payload interface {
	Equal(Payload) bool
	Less(Payload) bool
}

// Unit is the Coverage table's payload: coverage entries carry no
// annotation beyond the interval and sample.
type Unit struct{}

// Equal implements Payload.
func (Unit) Equal(Payload) bool { return true }

// Less implements Payload.
func (Unit) Less(Payload) bool { return false }

// Allele is the SNV table's payload: a 0-15 IUPAC nucleotide code.
type Allele uint8

// Equal implements Payload.
func (a Allele) Equal(p Payload) bool { o, ok := p.(Allele); return ok && a == o }

// Less implements Payload.
func (a Allele) Less(p Payload) bool { return a < p.(Allele) }

// SeqHandle is the MNV table's payload: a sequence dictionary handle
// identifying the inserted-allele byte string.
type SeqHandle uint32

// Equal implements Payload.
func (s SeqHandle) Equal(p Payload) bool { o, ok := p.(SeqHandle); return ok && s == o }

// Less implements Payload.
func (s SeqHandle) Less(p Payload) bool { return s < p.(SeqHandle) }
