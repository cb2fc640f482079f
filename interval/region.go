package interval

import (
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

// ParseRegionString parses a region string of one of the forms
//   [reference]:[1-based first pos]-[last pos]
//   [reference]:[1-based pos]
//   [reference]
// returning a reference name and 0-based half-open interval boundaries.
// The interval [0, PosTypeMax-1) is returned if there is no positional
// restriction. This is used by cmd/varda-annotate's optional -region flag
// to restrict which records get the full RKT treatment.
func ParseRegionString(region string) (result Entry, err error) {
	if len(region) == 0 {
		return result, errors.E("interval.ParseRegionString: empty region string")
	}
	colonPos := strings.IndexByte(region, ':')
	if colonPos == -1 {
		result.RefName = region
		result.Start = 0
		result.End = PosTypeMax - 1
		return result, nil
	}
	if colonPos == 0 {
		return result, errors.E("interval.ParseRegionString: empty reference name", region)
	}
	result.RefName = region[:colonPos]
	rangeStr := region[colonPos+1:]
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		pos1, perr := strconv.ParseInt(rangeStr, 10, 32)
		if perr != nil {
			return result, errors.E(perr, "interval.ParseRegionString: bad position", rangeStr)
		}
		if pos1 <= 0 {
			return result, errors.E("interval.ParseRegionString: position out of range", rangeStr)
		}
		result.Start = PosType(pos1 - 1)
		result.End = PosType(pos1)
		return result, nil
	}
	start1Str := rangeStr[:dashPos]
	endStr := rangeStr[dashPos+1:]
	start1, serr := strconv.ParseInt(start1Str, 10, 32)
	if serr != nil {
		return result, errors.E(serr, "interval.ParseRegionString: bad start", start1Str)
	}
	if start1 <= 0 {
		return result, errors.E("interval.ParseRegionString: start out of range", start1Str)
	}
	end0, eerr := strconv.ParseInt(endStr, 10, 32)
	if eerr != nil {
		return result, errors.E(eerr, "interval.ParseRegionString: bad end", endStr)
	}
	if end0 <= start1 || end0 >= int64(PosTypeMax) {
		return result, errors.E("interval.ParseRegionString: invalid range", rangeStr)
	}
	result.Start = PosType(start1 - 1)
	result.End = PosType(end0)
	return result, nil
}
