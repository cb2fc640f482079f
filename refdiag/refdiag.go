// Package refdiag provides a nearest-known-reference-name diagnostic for
// the annotation driver's query-miss path. It has no analogue in the
// original C project (which has no fuzzy matching at all); it is a
// supplemental diagnostic built from ambient tooling already present in
// the teacher corpus (util/distance_test.go exercises the same
// github.com/antzucaro/matchr.Levenshtein function this package calls
// directly, rather than the teacher's own bespoke, primer-aware
// Levenshtein variant, which solves a different problem: matching reads
// against a fixed-length barcode plus downstream sequence context).
package refdiag

import "github.com/antzucaro/matchr"

// Nearest returns the entry in known with the smallest Levenshtein
// distance to name, and true if known is non-empty. Ties are broken by
// the earliest entry in known.
func Nearest(name string, known []string) (string, bool) {
	if len(known) == 0 {
		return "", false
	}
	best := known[0]
	bestDist := matchr.Levenshtein(name, best)
	for _, candidate := range known[1:] {
		if d := matchr.Levenshtein(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, true
}
