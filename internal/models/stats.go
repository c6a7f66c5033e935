package models

type ColorCount struct {
	Color string `json:"color"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ModelCounts struct {
	ThreeDoor int `json:"three-door"`
	FiveDoor  int `json:"five-door"`
}

type SightingStats struct {
	TotalSightings    int         `json:"totalSightings"`
	MostFrequentColor ColorCount  `json:"mostFrequentColor"`
	ByModel           ModelCounts `json:"byModel"`
	DistinctColors    int         `json:"distinctColors"`
}

// CalculateStats aggregates sightings in order. Ties for the most frequent
// color go to the color encountered first; empty colors are not counted.
func CalculateStats(sightings []Sighting) SightingStats {
	stats := SightingStats{TotalSightings: len(sightings)}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, s := range sightings {
		switch s.Model {
		case ThreeDoor:
			stats.ByModel.ThreeDoor++
		case FiveDoor:
			stats.ByModel.FiveDoor++
		}

		if s.Color == "" {
			continue
		}
		if _, seen := counts[s.Color]; !seen {
			order = append(order, s.Color)
		}
		counts[s.Color]++
	}

	best := ColorCount{Color: FallbackColor}
	for _, color := range order {
		if counts[color] > best.Count {
			best = ColorCount{Color: color, Count: counts[color]}
		}
	}
	best.Name = ColorName(best.Color)
	stats.MostFrequentColor = best
	stats.DistinctColors = NewColorSet(sightings).Len()

	return stats
}
