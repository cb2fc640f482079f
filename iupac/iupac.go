// Package iupac encodes single-nucleotide alleles as 4-bit IUPAC
// ambiguity codes (0-15), the same 16-symbol alphabet BAM's SEQ field
// packs two bases per byte with (pileup.Seq8ToASCIITable in the teacher
// corpus). This package reuses that exact table rather than inventing a
// new encoding, so a SNV table's Allele payload lines up with the bit
// pattern genomics tooling already expects.
package iupac

import "github.com/varda-db/varda/vrderr"

// Code is a 0-15 IUPAC nucleotide code, matching itree.Allele's
// underlying width.
type Code uint8

// asciiTable is BAM's SEQ nibble -> ASCII mapping: '=' marks "same as
// reference" (nibble 0), which has no place in a single-character allele
// token and is rejected by Parse.
var asciiTable = [...]byte{'=', 'A', 'C', 'M', 'G', 'R', 'S', 'V', 'T', 'W', 'Y', 'H', 'K', 'D', 'B', 'N'}

var asciiToCode = func() map[byte]Code {
	m := make(map[byte]Code, len(asciiTable))
	for code, ch := range asciiTable {
		m[ch] = Code(code)
	}
	return m
}()

// Parse decodes a single-character allele token (as it appears in a
// variant or annotation record's inserted field) into a Code. It fails
// with vrderr.Parse if b is not one of the 15 meaningful IUPAC letters.
func Parse(b byte) (Code, error) {
	c, ok := asciiToCode[b]
	if !ok || c == 0 {
		return 0, vrderr.E(vrderr.Parse, "iupac.Parse: not an IUPAC base", string(b))
	}
	return c, nil
}

// Byte renders a Code back to its ASCII letter, the inverse of Parse.
func (c Code) Byte() byte {
	if int(c) >= len(asciiTable) {
		return 'N'
	}
	return asciiTable[c]
}

func (c Code) String() string { return string(c.Byte()) }
