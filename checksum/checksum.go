// Package checksum computes a per-reference, order-independent content
// checksum over a reference-keyed table's entries, for regression
// comparison between two loads of the same cohort. It supplements the
// verification path original_source/tests/test_snv_table.c exercises
// against an on-disk export -- this repository has no durable export,
// but a diagnostic checksum serves the same "did this load match a
// previous one" purpose.
//
// The accumulator shape (one hash per reference, commutatively summed
// across entries so record order never affects the result) is modeled
// directly on cmd/bio-pamtool/checksum.go's refChecksum: a Sum* field
// per field of interest, added into with a keyed hash over a per-record
// position. Two independent hash families are combined the way the
// teacher keeps several Sum* fields rather than trusting one hash.
package checksum

import (
	"encoding/binary"

	"blainsmith.com/go/seahash"
	"github.com/dgryski/go-farm"

	"github.com/varda-db/varda/itree"
	"github.com/varda-db/varda/table"
)

// RefChecksum is the commutative, order-independent checksum of one
// reference's entries.
type RefChecksum struct {
	Reference string
	NEntries  uint64
	SeaSum    uint64
	FarmSum   uint64
}

func (r *RefChecksum) add(e itree.Entry, payload []byte) {
	r.NEntries++
	buf := make([]byte, 16+len(payload))
	binary.LittleEndian.PutUint32(buf[0:4], e.Start)
	binary.LittleEndian.PutUint32(buf[4:8], e.End)
	binary.LittleEndian.PutUint32(buf[8:12], e.SampleID)
	binary.LittleEndian.PutUint32(buf[12:16], e.Count)
	copy(buf[16:], payload)

	h := seahash.New()
	_, _ = h.Write(buf)
	r.SeaSum += h.Sum64()
	r.FarmSum += farm.Hash64(buf)
}

// tableScanner is the narrow surface checksum needs from any reference-
// keyed table: every reference name it holds, and a way to walk that
// reference's entries. CoverageTable, SNVTable, and MNVTable each
// satisfy it via Scan.
type tableScanner interface {
	References() []string
	Scan(reference []byte, fn func(itree.Entry))
}

// Of computes one RefChecksum per reference held by t, in t.References()
// order, so the output is deterministic even though each RefChecksum's
// own fields are commutative over record order.
func Of(t tableScanner, payloadBytes func(itree.Entry) []byte) []RefChecksum {
	refs := t.References()
	out := make([]RefChecksum, 0, len(refs))
	for _, ref := range refs {
		rc := RefChecksum{Reference: ref}
		t.Scan([]byte(ref), func(e itree.Entry) {
			rc.add(e, payloadBytes(e))
		})
		out = append(out, rc)
	}
	return out
}

// CoveragePayload is the payload encoder for CoverageTable: coverage
// entries carry no payload beyond the interval.
func CoveragePayload(itree.Entry) []byte { return nil }

// SNVPayload is the payload encoder for SNVTable: the single allele
// byte.
func SNVPayload(e itree.Entry) []byte {
	a := e.Payload.(itree.Allele)
	return []byte{byte(a)}
}

// MNVPayload is the payload encoder for MNVTable: the little-endian
// sequence handle.
func MNVPayload(e itree.Entry) []byte {
	h := e.Payload.(itree.SeqHandle)
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(h))
	return buf
}

var (
	_ tableScanner = (*table.CoverageTable)(nil)
	_ tableScanner = (*table.SNVTable)(nil)
	_ tableScanner = (*table.MNVTable)(nil)
)
