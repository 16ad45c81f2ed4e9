package colorutil

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"ff0000", color.RGBA{R: 255, A: 255}},
		{"#00ff00", color.RGBA{G: 255, A: 255}},
		{"aabbcc", color.RGBA{R: 0xaa, G: 0xbb, B: 0xcc, A: 255}},
		{"000000", color.RGBA{A: 255}},
		{"11223344", color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "xyzxyz", "fff", "ff00", "ff0000ff00"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseHex(in)
			assert.Error(t, err)
		})
	}
}

func TestParseHexBlackIsNotZeroValue(t *testing.T) {
	// Parsed black must be distinguishable from "no color": it carries full alpha.
	got, err := ParseHex("000000")
	require.NoError(t, err)
	assert.NotEqual(t, color.RGBA{}, got)
}
