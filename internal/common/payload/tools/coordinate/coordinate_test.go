package coordinate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"48.1370", "48.137"},
		{"11.580", "11.58"},
		{"11.0", "11"},
		{"10.", "10"},
		{"100", "100"},
		{"-90", "-90"},
		{"0.000", "0"},
		{".0", "0"},
		{"-.0", "0"},
		{"-0.50", "-0.5"},
		{"1.50e10", "1.50e10"},
		{"48.137154", "48.137154"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestParse(t *testing.T) {
	v, err := Parse("48.1370")
	require.NoError(t, err)
	assert.Equal(t, 48.137, v)

	v, err = Parse("-11.5")
	require.NoError(t, err)
	assert.Equal(t, -11.5, v)

	_, err = Parse("abc")
	require.Error(t, err)
}
