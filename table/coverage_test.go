package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varda-db/varda/ssi"
	"github.com/varda-db/varda/vrderr"
)

func TestCoverageInsertAndQuery(t *testing.T) {
	c, err := NewCoverageTable(10, 1024, 100)
	require.NoError(t, err)

	require.NoError(t, c.Insert([]byte("chr1"), 10, 20, 1))
	require.NoError(t, c.Insert([]byte("chr1"), 15, 25, 2))
	require.NoError(t, c.Insert([]byte("chr2"), 10, 20, 1))

	assert.Equal(t, uint64(2), c.QueryStab([]byte("chr1"), 18, 19, nil))
	assert.Equal(t, uint64(1), c.QueryStab([]byte("chr2"), 18, 19, nil))
	assert.Equal(t, uint64(0), c.QueryStab([]byte("chr3"), 18, 19, nil))
}

func TestCoverageQuerySubset(t *testing.T) {
	c, err := NewCoverageTable(10, 1024, 100)
	require.NoError(t, err)
	require.NoError(t, c.Insert([]byte("chr1"), 10, 20, 1))
	require.NoError(t, c.Insert([]byte("chr1"), 10, 20, 2))

	subset, err := ssi.New(10)
	require.NoError(t, err)
	require.NoError(t, subset.Insert(2))
	assert.Equal(t, uint64(1), c.QueryStab([]byte("chr1"), 12, 13, subset))
}

func TestCoverageRemove(t *testing.T) {
	c, err := NewCoverageTable(10, 1024, 100)
	require.NoError(t, err)
	require.NoError(t, c.Insert([]byte("chr1"), 10, 20, 1))
	require.NoError(t, c.Insert([]byte("chr2"), 10, 20, 1))

	subset, err := ssi.New(10)
	require.NoError(t, err)
	require.NoError(t, subset.Insert(1))
	assert.Equal(t, uint64(2), c.Remove(subset))
	assert.Equal(t, uint64(0), c.QueryStab([]byte("chr1"), 12, 13, nil))
	assert.Equal(t, uint64(0), c.QueryStab([]byte("chr2"), 12, 13, nil))
}

func TestCoverageRefCapacity(t *testing.T) {
	c, err := NewCoverageTable(1, 1024, 100)
	require.NoError(t, err)
	require.NoError(t, c.Insert([]byte("chr1"), 10, 20, 1))

	err = c.Insert([]byte("chr2"), 10, 20, 1)
	assert.True(t, vrderr.Is(vrderr.Capacity, err))

	// The existing reference keeps working.
	require.NoError(t, c.Insert([]byte("chr1"), 30, 40, 2))
}
