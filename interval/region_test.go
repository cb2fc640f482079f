package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegionString(t *testing.T) {
	tests := []struct {
		region string
		want   Entry
	}{
		{"chr1", Entry{"chr1", 0, PosTypeMax - 1}},
		{"chr1:100", Entry{"chr1", 99, 100}},
		{"chr1:100-200", Entry{"chr1", 99, 200}},
	}
	for _, test := range tests {
		got, err := ParseRegionString(test.region)
		require.NoError(t, err, test.region)
		assert.Equal(t, test.want, got, test.region)
	}
}

func TestParseRegionStringErrors(t *testing.T) {
	for _, region := range []string{"", ":100", "chr1:0", "chr1:100-50", "chr1:abc"} {
		_, err := ParseRegionString(region)
		assert.Error(t, err, region)
	}
}
