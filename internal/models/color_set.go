package models

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

const nonHexColorBit = 1 << 31

// ColorSet is the set of colors a user has logged. "#RRGGBB" values map to
// their 24-bit RGB value; any other string is hashed above bit 31 so it can
// never collide with a hex color.
type ColorSet struct {
	bm *roaring.Bitmap
}

func NewColorSet(sightings []Sighting) *ColorSet {
	cs := &ColorSet{bm: roaring.New()}
	for _, s := range sightings {
		cs.Add(s.Color)
	}
	return cs
}

func (cs *ColorSet) Add(color string) {
	if color == "" {
		return
	}
	cs.bm.Add(colorKey(color))
}

func (cs *ColorSet) Has(color string) bool {
	if color == "" {
		return false
	}
	return cs.bm.Contains(colorKey(color))
}

func (cs *ColorSet) Len() int {
	return int(cs.bm.GetCardinality())
}

func colorKey(color string) uint32 {
	if len(color) == 7 && color[0] == '#' {
		if rgb, err := strconv.ParseUint(color[1:], 16, 32); err == nil {
			return uint32(rgb)
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(color)))
	return h.Sum32() | nonHexColorBit
}
