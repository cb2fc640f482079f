package seqdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varda-db/varda/vrderr"
)

func TestInsertIdempotent(t *testing.T) {
	d, err := New(1024)
	require.NoError(t, err)

	h1, err := d.Insert([]byte("GTA"))
	require.NoError(t, err)
	h2, err := d.Insert([]byte("GTA"))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, d.Len())
}

func TestFindMiss(t *testing.T) {
	d, err := New(1024)
	require.NoError(t, err)
	_, err = d.Insert([]byte("GTA"))
	require.NoError(t, err)

	_, ok := d.Find([]byte("GTC"))
	assert.False(t, ok)
	h, ok := d.Find([]byte("GTA"))
	assert.True(t, ok)
	key, ok := d.KeyOf(h)
	assert.True(t, ok)
	assert.Equal(t, "GTA", key)
}

func TestDenseHandles(t *testing.T) {
	d, err := New(1024)
	require.NoError(t, err)
	h0, _ := d.Insert([]byte("A"))
	h1, _ := d.Insert([]byte("C"))
	h2, _ := d.Insert([]byte("A")) // repeat
	h3, _ := d.Insert([]byte("G"))
	assert.Equal(t, Handle(0), h0)
	assert.Equal(t, Handle(1), h1)
	assert.Equal(t, h0, h2)
	assert.Equal(t, Handle(2), h3)
}

func TestCharCapacity(t *testing.T) {
	d, err := New(5)
	require.NoError(t, err)
	_, err = d.Insert([]byte("ABC"))
	require.NoError(t, err)
	_, err = d.Insert([]byte("DE"))
	require.NoError(t, err)
	_, err = d.Insert([]byte("F"))
	assert.True(t, vrderr.Is(vrderr.Capacity, err))
	assert.Equal(t, 2, d.Len())
}

func TestLosslessRoundTrip(t *testing.T) {
	d, err := New(1024)
	require.NoError(t, err)
	for _, s := range []string{"GTA", "", "A", "ACGTACGT"} {
		h, err := d.Insert([]byte(s))
		require.NoError(t, err)
		key, ok := d.KeyOf(h)
		require.True(t, ok)
		assert.Equal(t, s, key)
	}
}
