package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varda-db/varda/itree"
	"github.com/varda-db/varda/ssi"
)

func TestMNVInsertAndQuery(t *testing.T) {
	m, err := NewMNVTable(10, 1024, 100)
	require.NoError(t, err)

	require.NoError(t, m.Insert([]byte("chr1"), 100, 103, 1, itree.SeqHandle(0)))
	require.NoError(t, m.Insert([]byte("chr1"), 100, 103, 2, itree.SeqHandle(1)))

	assert.Equal(t, uint64(1), m.QueryStab([]byte("chr1"), 100, 103, nil, itree.SeqHandle(0)))
	assert.Equal(t, uint64(1), m.QueryStab([]byte("chr1"), 100, 103, nil, itree.SeqHandle(1)))
	assert.Equal(t, uint64(0), m.QueryStab([]byte("chr1"), 100, 103, nil, itree.SeqHandle(2)))
	// Overlapping but non-identical bounds never match an MNV query.
	assert.Equal(t, uint64(0), m.QueryStab([]byte("chr1"), 100, 102, nil, itree.SeqHandle(0)))
}

func TestMNVQuerySubset(t *testing.T) {
	m, err := NewMNVTable(10, 1024, 100)
	require.NoError(t, err)
	require.NoError(t, m.Insert([]byte("chr1"), 100, 103, 1, itree.SeqHandle(0)))
	require.NoError(t, m.Insert([]byte("chr1"), 100, 103, 2, itree.SeqHandle(0)))

	subset, err := ssi.New(10)
	require.NoError(t, err)
	require.NoError(t, subset.Insert(2))
	assert.Equal(t, uint64(1), m.QueryStab([]byte("chr1"), 100, 103, subset, itree.SeqHandle(0)))
}

func TestMNVRemove(t *testing.T) {
	m, err := NewMNVTable(10, 1024, 100)
	require.NoError(t, err)
	require.NoError(t, m.Insert([]byte("chr1"), 100, 103, 1, itree.SeqHandle(0)))

	subset, err := ssi.New(10)
	require.NoError(t, err)
	require.NoError(t, subset.Insert(1))
	assert.Equal(t, uint64(1), m.Remove(subset))
	assert.Equal(t, uint64(0), m.QueryStab([]byte("chr1"), 100, 103, nil, itree.SeqHandle(0)))
}
