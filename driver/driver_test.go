package driver

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varda-db/varda/interval"
	"github.com/varda-db/varda/itree"
	"github.com/varda-db/varda/iupac"
	"github.com/varda-db/varda/ssi"
	"github.com/varda-db/varda/table"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	ctx := vcontext.Background()
	path := filepath.Join(dir, name)
	out, err := file.Create(ctx, path)
	require.NoError(t, err)
	_, err = out.Writer(ctx).Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, out.Close(ctx))
	return path
}

func newTables(t *testing.T) (*table.CoverageTable, *table.SNVTable, *table.MNVTable, *table.SequenceTable) {
	cov, err := table.NewCoverageTable(16, 1024, 1024)
	require.NoError(t, err)
	snv, err := table.NewSNVTable(16, 1024, 1024)
	require.NoError(t, err)
	mnv, err := table.NewMNVTable(16, 1024, 1024)
	require.NoError(t, err)
	seq, err := table.NewSequenceTable(1024)
	require.NoError(t, err)
	return cov, snv, mnv, seq
}

func subsetOfIDs(t *testing.T, ids ...uint32) *ssi.Set {
	s, err := ssi.New(uint64(len(ids)))
	require.NoError(t, err)
	for _, id := range ids {
		require.NoError(t, s.Insert(id))
	}
	return s
}

// Scenario A: basic annotation.
func TestScenarioA(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	cov, snv, mnv, seq := newTables(t)
	covPath := writeFile(t, tmpdir, "cov.txt", "chr1 10 20\n")
	n, err := CoverageFromFile(ctx, covPath, 1, cov)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = CoverageFromFile(ctx, covPath, 2, cov)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	varPath := writeFile(t, tmpdir, "var.txt", "chr1 15 16 0 1 A\n")
	n, err = VariantsFromFile(ctx, varPath, 1, snv, mnv, seq)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	annIn := writeFile(t, tmpdir, "ann_in.txt", "chr1 15 16 0 1 A\n")
	annOut := filepath.Join(tmpdir, "ann_out.txt")
	n, err = AnnotateFromFile(ctx, annOut, annIn, cov, snv, mnv, seq, subsetOfIDs(t, 1, 2), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out, err := ioutil.ReadFile(annOut)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t15\t16\t0\t1\tA\t1:4\n", string(out))
}

// Scenario B: MNV via SD, with -1 phase normalisation.
func TestScenarioB(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	cov, snv, mnv, seq := newTables(t)
	covPath := writeFile(t, tmpdir, "cov.txt", "chr1 0 1000\n")
	_, err := CoverageFromFile(ctx, covPath, 7, cov)
	require.NoError(t, err)

	varPath := writeFile(t, tmpdir, "var.txt", "chr1 100 103 -1 3 GTA\n")
	_, err = VariantsFromFile(ctx, varPath, 7, snv, mnv, seq)
	require.NoError(t, err)

	annIn := writeFile(t, tmpdir, "ann_in.txt", "chr1 100 103 0 3 GTA\n")
	annOut := filepath.Join(tmpdir, "ann_out.txt")
	_, err = AnnotateFromFile(ctx, annOut, annIn, cov, snv, mnv, seq, subsetOfIDs(t, 7), nil)
	require.NoError(t, err)

	out, err := ioutil.ReadFile(annOut)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t100\t103\t0\t3\tGTA\t1:2\n", string(out))
}

// Scenario C: MNV miss by sequence.
func TestScenarioC(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	cov, snv, mnv, seq := newTables(t)
	covPath := writeFile(t, tmpdir, "cov.txt", "chr1 0 1000\n")
	_, err := CoverageFromFile(ctx, covPath, 7, cov)
	require.NoError(t, err)
	varPath := writeFile(t, tmpdir, "var.txt", "chr1 100 103 0 3 GTA\n")
	_, err = VariantsFromFile(ctx, varPath, 7, snv, mnv, seq)
	require.NoError(t, err)

	annIn := writeFile(t, tmpdir, "ann_in.txt", "chr1 100 103 0 3 GTC\n")
	annOut := filepath.Join(tmpdir, "ann_out.txt")
	_, err = AnnotateFromFile(ctx, annOut, annIn, cov, snv, mnv, seq, subsetOfIDs(t, 7), nil)
	require.NoError(t, err)

	out, err := ioutil.ReadFile(annOut)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t100\t103\t0\t3\tGTC\t0:2\n", string(out))
}

// Scenario D: sample filter.
func TestScenarioD(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	cov, snv, mnv, seq := newTables(t)
	covPath := writeFile(t, tmpdir, "cov.txt", "chr1 0 100\n")
	_, err := CoverageFromFile(ctx, covPath, 1, cov)
	require.NoError(t, err)
	_, err = CoverageFromFile(ctx, covPath, 2, cov)
	require.NoError(t, err)
	varPath := writeFile(t, tmpdir, "var.txt", "chr1 50 51 0 1 A\n")
	_, err = VariantsFromFile(ctx, varPath, 1, snv, mnv, seq)
	require.NoError(t, err)

	annIn := writeFile(t, tmpdir, "ann_in.txt", "chr1 50 51 0 1 A\n")
	annOut := filepath.Join(tmpdir, "ann_out.txt")
	_, err = AnnotateFromFile(ctx, annOut, annIn, cov, snv, mnv, seq, subsetOfIDs(t, 2), nil)
	require.NoError(t, err)

	out, err := ioutil.ReadFile(annOut)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t50\t51\t0\t1\tA\t0:2\n", string(out))
}

// Region restriction drops out-of-region records entirely rather than
// annotating them with a zero frequency.
func TestAnnotateRegionFilter(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	cov, snv, mnv, seq := newTables(t)
	covPath := writeFile(t, tmpdir, "cov.txt", "chr1 0 1000\nchr2 0 1000\n")
	_, err := CoverageFromFile(ctx, covPath, 1, cov)
	require.NoError(t, err)
	varPath := writeFile(t, tmpdir, "var.txt", "chr1 15 16 0 1 A\nchr2 15 16 0 1 A\n")
	_, err = VariantsFromFile(ctx, varPath, 1, snv, mnv, seq)
	require.NoError(t, err)

	annIn := writeFile(t, tmpdir, "ann_in.txt", "chr1 15 16 0 1 A\nchr2 15 16 0 1 A\n")
	annOut := filepath.Join(tmpdir, "ann_out.txt")
	region, rerr := interval.ParseRegionString("chr1:1-1000")
	require.NoError(t, rerr)
	n, err := AnnotateFromFile(ctx, annOut, annIn, cov, snv, mnv, seq, nil, &region)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out, err := ioutil.ReadFile(annOut)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t15\t16\t0\t1\tA\t1:2\n", string(out))
}

// Scenario E: capacity retraction.
func TestScenarioE(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	cov, err := table.NewCoverageTable(1, 1024, 1024)
	require.NoError(t, err)
	covPath := writeFile(t, tmpdir, "cov.txt", "chr1 0 10\nchr1 10 20\nchr2 0 10\n")
	n, err := CoverageFromFile(ctx, covPath, 5, cov)
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, uint64(0), cov.QueryStab([]byte("chr1"), 0, 10, nil))
}

// Scenario F: idempotent coalescing.
func TestScenarioF(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	_, snv, mnv, seq := newTables(t)
	varPath := writeFile(t, tmpdir, "var.txt", "chr1 10 11 0 1 A\nchr1 10 11 0 1 A\nchr1 10 11 0 1 A\n")
	n, err := VariantsFromFile(ctx, varPath, 1, snv, mnv, seq)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	allele, err := iupac.Parse('A')
	require.NoError(t, err)
	assert.Equal(t, uint64(3), snv.QueryStab([]byte("chr1"), 10, nil, itree.Allele(allele)))

	assert.Equal(t, uint64(3), snv.Remove(subsetOfIDs(t, 1)))
}
