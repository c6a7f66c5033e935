package models

import "strings"

type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

var Palette = []ColorOption{
	{Name: "White", Hex: "#FFFFFF"},
	{Name: "Silver", Hex: "#C0C0C0"},
	{Name: "Gray", Hex: "#808080"},
	{Name: "Black", Hex: "#000000"},
	{Name: "Blue", Hex: "#0000FF"},
	{Name: "Green", Hex: "#006400"},
	{Name: "Yellow", Hex: "#FFD700"},
	{Name: "Red", Hex: "#FF0000"},
	{Name: "Orange", Hex: "#FFA500"},
}

// FallbackColor is reported as most frequent when nothing was counted.
var FallbackColor = Palette[0].Hex

const UnknownColor = "Unknown"

func ColorName(hex string) string {
	if hex == "" {
		return UnknownColor
	}
	for _, c := range Palette {
		if strings.EqualFold(c.Hex, hex) {
			return c.Name
		}
	}
	return UnknownColor
}

// IsNewColor reports whether none of the sightings has the given color.
func IsNewColor(sightings []Sighting, color string) bool {
	return !NewColorSet(sightings).Has(color)
}
