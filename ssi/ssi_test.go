package ssi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varda-db/varda/vrderr"
)

func TestInsertContains(t *testing.T) {
	s, err := New(10)
	require.NoError(t, err)

	assert.False(t, s.Contains(1))
	require.NoError(t, s.Insert(1))
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(2))

	// Duplicate insert is a no-op.
	require.NoError(t, s.Insert(1))
	assert.Equal(t, 1, s.Len())
}

func TestCapacity(t *testing.T) {
	s, err := New(1)
	require.NoError(t, err)

	require.NoError(t, s.Insert(1))
	err = s.Insert(2)
	assert.True(t, vrderr.Is(vrderr.Capacity, err))

	// Re-inserting the existing member never fails, even when full.
	assert.NoError(t, s.Insert(1))
}

func TestNewCapacityBound(t *testing.T) {
	_, err := New(math.MaxUint32 + 1)
	assert.True(t, vrderr.Is(vrderr.Capacity, err))
}
