// Package driver implements the text-file ingestion and annotation
// operations layered on top of the core store: coverage and variant
// loading, and annotation-with-frequency emission. File I/O goes through
// github.com/grailbio/base/file so that paths transparently support
// every backend that package registers, and gzip-compressed inputs are
// detected the same way interval.NewBEDUnionFromPath does.
package driver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"

	"github.com/varda-db/varda/interval"
	"github.com/varda-db/varda/itree"
	"github.com/varda-db/varda/iupac"
	"github.com/varda-db/varda/refdiag"
	"github.com/varda-db/varda/ssi"
	"github.com/varda-db/varda/table"
	"github.com/varda-db/varda/vrderr"
)

// HOMOZYGOUS is the phase tag substituted for the wire value -1 on
// ingestion.
const HOMOZYGOUS = -1

// maxInsertedLen is the ingestion limit on the inserted-sequence field;
// records declaring a longer length are dropped.
const maxInsertedLen = 1023

// openReader opens path through file.Open and transparently wraps it
// with a gzip reader when fileio.DetermineType reports one, exactly the
// pattern interval.NewBEDUnionFromPath uses in the teacher corpus.
func openReader(ctx context.Context, path string) (io.Reader, func() error, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, vrderr.E(vrderr.IO, errors.E(err, "driver: open", path))
	}
	closeFn := func() error { return f.Close(ctx) }
	var r io.Reader = f.Reader(ctx)
	if fileio.DetermineType(path) == fileio.Gzip {
		gz, err := gzip.NewReader(r)
		if err != nil {
			_ = closeFn()
			return nil, nil, vrderr.E(vrderr.IO, errors.E(err, "driver: gzip", path))
		}
		r = gz
	}
	return r, closeFn, nil
}

// CoverageFromFile reads a coverage input file (lines of "reference
// start end") and inserts each line into cov under sampleID.
// On a mid-file insert failure (Capacity), every entry cov holds for
// sampleID (including any from earlier loads) is retracted via bulk-remove, and
// the adjusted count is returned alongside the triggering error. On
// Parse failure, reading stops and the count accumulated so far is
// returned without error.
func CoverageFromFile(ctx context.Context, path string, sampleID uint32, cov *table.CoverageTable) (int, error) {
	r, closeFn, err := openReader(ctx, path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil {
			log.Printf("driver.CoverageFromFile: close %s: %v", path, cerr)
		}
	}()

	n := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) != 3 {
			break
		}
		reference := fields[0]
		start, err1 := parseUint32(fields[1])
		end, err2 := parseUint32(fields[2])
		if len(reference) == 0 || len(reference) > 127 || err1 != nil || err2 != nil {
			break
		}
		if err := cov.Insert([]byte(reference), start, end, sampleID); err != nil {
			if vrderr.Is(vrderr.Capacity, err) {
				retracted := cov.Remove(subsetOf(sampleID))
				log.Printf("driver.CoverageFromFile: capacity exceeded loading %s for sample %d, retracted %d entries", path, sampleID, retracted)
				return n - int(retracted), err
			}
			return n, err
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, vrderr.E(vrderr.IO, errors.E(err, "driver: scan", path))
	}
	return n, nil
}

// variantRecord is one parsed line of a variant or annotation input
// file.
type variantRecord struct {
	reference string
	start, end uint32
	phase      int32
	length     int
	inserted   string
}

// parseVariantLine parses one whitespace-separated "reference start end
// phase len inserted" line. A phase of -1 is normalised to HOMOZYGOUS; a
// declared length over maxInsertedLen, or any malformed field, reports
// vrderr.Parse.
func parseVariantLine(line string) (variantRecord, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return variantRecord{}, vrderr.E(vrderr.Parse, "driver: expected 6 fields, got", len(fields))
	}
	reference := fields[0]
	if len(reference) == 0 || len(reference) > 127 {
		return variantRecord{}, vrderr.E(vrderr.Parse, "driver: invalid reference name", reference)
	}
	start, err := parseUint32(fields[1])
	if err != nil {
		return variantRecord{}, vrderr.E(vrderr.Parse, "driver: invalid start", fields[1])
	}
	end, err := parseUint32(fields[2])
	if err != nil {
		return variantRecord{}, vrderr.E(vrderr.Parse, "driver: invalid end", fields[2])
	}
	phaseVal, err := strconv.ParseInt(fields[3], 10, 32)
	if err != nil {
		return variantRecord{}, vrderr.E(vrderr.Parse, "driver: invalid phase", fields[3])
	}
	phase := int32(phaseVal)
	if phase == -1 {
		phase = HOMOZYGOUS
	}
	length, err := strconv.Atoi(fields[4])
	if err != nil || length < 0 {
		return variantRecord{}, vrderr.E(vrderr.Parse, "driver: invalid len", fields[4])
	}
	if length > maxInsertedLen {
		return variantRecord{}, vrderr.E(vrderr.Parse, "driver: len exceeds limit", length)
	}
	inserted := normalizeInserted(fields[5])
	if len(inserted) > maxInsertedLen {
		return variantRecord{}, vrderr.E(vrderr.Parse, "driver: inserted exceeds limit", len(inserted))
	}
	return variantRecord{
		reference: reference,
		start:     start,
		end:       end,
		phase:     phase,
		length:    length,
		inserted:  inserted,
	}, nil
}

// normalizeInserted canonicalises the "." sentinel for "no inserted
// sequence" to the empty string, so len == 0 is the sole in-memory form
// regardless of which wire representation a record arrived with.
func normalizeInserted(s string) string {
	if s == "." {
		return ""
	}
	return s
}

// isSNV reports whether rec belongs on the SNV path: a single
// substituted base over a unit-length interval.
func isSNV(rec variantRecord) bool {
	return rec.length == 1 && rec.inserted != "" && rec.end-rec.start == 1
}

// VariantsFromFile reads a variant input file and routes each record to
// snv or mnv, interning MNV alleles via seq. Same mid-file
// capacity-retraction policy as CoverageFromFile, applied to both snv and
// mnv; alleles already interned in seq stay interned.
func VariantsFromFile(ctx context.Context, path string, sampleID uint32, snv *table.SNVTable, mnv *table.MNVTable, seq *table.SequenceTable) (int, error) {
	r, closeFn, err := openReader(ctx, path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil {
			log.Printf("driver.VariantsFromFile: close %s: %v", path, cerr)
		}
	}()

	n := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rec, perr := parseVariantLine(sc.Text())
		if perr != nil {
			break
		}
		if err := insertVariant(rec, sampleID, snv, mnv, seq); err != nil {
			if vrderr.Is(vrderr.Capacity, err) {
				subset := subsetOf(sampleID)
				retracted := snv.Remove(subset) + mnv.Remove(subset)
				log.Printf("driver.VariantsFromFile: capacity exceeded loading %s for sample %d, retracted %d entries", path, sampleID, retracted)
				return n - int(retracted), err
			}
			return n, err
		}
		n++
	}
	if err := sc.Err(); err != nil {
		return n, vrderr.E(vrderr.IO, errors.E(err, "driver: scan", path))
	}
	return n, nil
}

func insertVariant(rec variantRecord, sampleID uint32, snv *table.SNVTable, mnv *table.MNVTable, seq *table.SequenceTable) error {
	if isSNV(rec) {
		allele, err := iupac.Parse(rec.inserted[0])
		if err != nil {
			return err
		}
		return snv.Insert([]byte(rec.reference), rec.start, sampleID, itree.Allele(allele))
	}
	h, err := seq.Insert([]byte(rec.inserted))
	if err != nil {
		return err
	}
	return mnv.Insert([]byte(rec.reference), rec.start, rec.end, sampleID, itree.SeqHandle(h))
}

// AnnotateFromFile reads an annotation input file (same schema as
// variant input) and writes, for each record, its six fields rejoined
// with literal tabs followed by a trailing "num:den" column. subset
// restricts both num and den to the given samples; a nil subset queries
// every sample. region, if non-nil, restricts annotation to records
// overlapping it; records outside region are dropped from the output
// rather than emitted with a zero frequency, matching cmd/varda-annotate's
// -region flag.
func AnnotateFromFile(ctx context.Context, outPath, inPath string, cov *table.CoverageTable, snv *table.SNVTable, mnv *table.MNVTable, seq *table.SequenceTable, subset *ssi.Set, region *interval.Entry) (int, error) {
	r, closeIn, err := openReader(ctx, inPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := closeIn(); cerr != nil {
			log.Printf("driver.AnnotateFromFile: close %s: %v", inPath, cerr)
		}
	}()

	out, err := file.Create(ctx, outPath)
	if err != nil {
		return 0, vrderr.E(vrderr.IO, errors.E(err, "driver: create", outPath))
	}
	w := bufio.NewWriter(out.Writer(ctx))

	n := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rec, perr := parseVariantLine(sc.Text())
		if perr != nil {
			break
		}
		if region != nil && !recordInRegion(rec, region) {
			continue
		}
		num := annotateNum(rec, snv, mnv, seq, subset)
		den := 2 * cov.QueryStab([]byte(rec.reference), rec.start, rec.end, subset)
		if num == 0 && den == 0 {
			logReferenceMiss(rec.reference, cov.References())
		}
		inserted := rec.inserted
		if inserted == "" {
			inserted = "."
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%d:%d\n",
			rec.reference, rec.start, rec.end, rec.phase, rec.length, inserted, num, den); err != nil {
			_ = out.Close(ctx)
			return n, vrderr.E(vrderr.IO, errors.E(err, "driver: write", outPath))
		}
		n++
	}
	if err := sc.Err(); err != nil {
		_ = out.Close(ctx)
		return n, vrderr.E(vrderr.IO, errors.E(err, "driver: scan", inPath))
	}
	if err := w.Flush(); err != nil {
		_ = out.Close(ctx)
		return n, vrderr.E(vrderr.IO, errors.E(err, "driver: flush", outPath))
	}
	if err := out.Close(ctx); err != nil {
		return n, vrderr.E(vrderr.IO, errors.E(err, "driver: close", outPath))
	}
	return n, nil
}

// recordInRegion reports whether rec's reference matches region and its
// interval overlaps region's bounds.
func recordInRegion(rec variantRecord, region *interval.Entry) bool {
	if rec.reference != region.RefName {
		return false
	}
	return interval.PosType(rec.start) < region.End && interval.PosType(rec.end) > region.Start
}

func annotateNum(rec variantRecord, snv *table.SNVTable, mnv *table.MNVTable, seq *table.SequenceTable, subset *ssi.Set) uint64 {
	if isSNV(rec) {
		allele, err := iupac.Parse(rec.inserted[0])
		if err != nil {
			return 0
		}
		return snv.QueryStab([]byte(rec.reference), rec.start, subset, itree.Allele(allele))
	}
	h, ok := seq.Find([]byte(rec.inserted))
	if !ok {
		return 0
	}
	return mnv.QueryStab([]byte(rec.reference), rec.start, rec.end, subset, itree.SeqHandle(h))
}

// logReferenceMiss logs a nearest-reference-name diagnostic at Debug
// level when an annotation record's reference contributed nothing to
// either num or den and is not among the known reference names, the
// likely symptom of a typo'd or absent reference name. It never
// influences num/den itself.
func logReferenceMiss(reference string, known []string) {
	if !log.At(log.Debug) {
		return
	}
	for _, k := range known {
		if k == reference {
			return
		}
	}
	if name, ok := refdiag.Nearest(reference, known); ok {
		log.Debug.Printf("driver: reference %q not found, nearest known reference is %q", reference, name)
	}
}

func subsetOf(sampleID uint32) *ssi.Set {
	s, _ := ssi.New(1)
	_ = s.Insert(sampleID)
	return s
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
