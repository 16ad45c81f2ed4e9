// Package colorutil provides shared color utilities for the floorplan viewer.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Common colors used throughout the application.
var (
	Background = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	Outline    = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	DeskDot    = color.RGBA{R: 30, G: 110, B: 210, A: 255}
)

// ParseHex parses a hexadecimal color string into an RGBA value.
// Accepted forms are "rrggbb" (alpha 255 implied) and "rrggbbaa",
// with an optional leading '#'. Anything else is an error.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")

	var hasAlpha bool
	switch len(hex) {
	case 6:
		hasAlpha = false
	case 8:
		hasAlpha = true
	default:
		return color.RGBA{}, fmt.Errorf("hex color %q: want 6 or 8 digits, got %d", s, len(hex))
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("hex color %q: %w", s, err)
	}

	if hasAlpha {
		return color.RGBA{
			R: uint8(v >> 24),
			G: uint8(v >> 16),
			B: uint8(v >> 8),
			A: uint8(v),
		}, nil
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}
