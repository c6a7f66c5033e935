package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorName(t *testing.T) {
	tests := []struct {
		hex      string
		expected string
	}{
		{"#FFFFFF", "White"},
		{"#ffd700", "Yellow"},
		{"#006400", "Green"},
		{"#ABCDEF", "Unknown"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColorName(tt.hex))
		})
	}
}

func TestIsNewColor(t *testing.T) {
	seen := []Sighting{{Color: "#FF0000"}, {Color: "#000000"}}

	assert.False(t, IsNewColor(seen, "#ff0000"))
	assert.True(t, IsNewColor(seen, "#FFA500"))
	assert.True(t, IsNewColor(nil, "#FFA500"))
}

func TestFallbackColorIsFirstPaletteEntry(t *testing.T) {
	assert.Equal(t, "#FFFFFF", FallbackColor)
}
