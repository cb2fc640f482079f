package interval

import "math"

// PosType is the integer type used to represent genomic positions and
// interval boundaries. Positions fit in 32 bits per the data model; a
// signed representation leaves room for the occasional sentinel use (see
// ParseRegionString) without wrapping.
type PosType = int32

// PosTypeMax is the maximum value representable by PosType, used as an
// open-ended upper bound for "rest of the reference" regions.
const PosTypeMax PosType = math.MaxInt32

// Entry is a single half-open, 0-based interval on a named reference.
type Entry struct {
	RefName string
	Start   PosType
	End     PosType
}
