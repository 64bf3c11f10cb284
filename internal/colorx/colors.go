// Package colorx holds the color-domain helpers: the serialized palette
// format, autocomplete/frequency calculations and the extraction stub.
package colorx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Serialize encodes an ordered color list into the stored TEXT form.
// The stored form must always parse back to the same ordered list.
func Serialize(colors []string) (string, error) {
	raw, err := json.Marshal(colors)
	if err != nil {
		return "", fmt.Errorf("serialize colors: %w", err)
	}
	return string(raw), nil
}

// Deserialize parses the stored form back into the ordered color list.
func Deserialize(raw string) ([]string, error) {
	var colors []string
	if err := json.Unmarshal([]byte(raw), &colors); err != nil {
		return nil, fmt.Errorf("deserialize colors: %w", err)
	}
	return colors, nil
}

// Suggestions returns up to limit distinct colors containing the query
// substring. Matching and deduplication are case-insensitive; order follows
// first encounter across the input palettes.
func Suggestions(serialized []string, query string, limit int) []string {
	query = strings.ToLower(query)

	var all []string
	for _, raw := range serialized {
		colors, err := Deserialize(raw)
		if err != nil {
			continue
		}
		for _, c := range colors {
			all = append(all, strings.ToLower(c))
		}
	}

	matches := lo.Filter(lo.Uniq(all), func(c string, _ int) bool {
		return strings.Contains(c, query)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// ColorCount is one entry of the popular-colors ranking.
type ColorCount struct {
	Color string `json:"color"`
	Count int    `json:"count"`
}

// Popular counts lowercased color occurrences across the given palettes and
// returns the top `limit` by descending frequency. Ties keep first-seen
// order; no total order is promised for equal counts.
func Popular(serialized []string, limit int) []ColorCount {
	counts := make(map[string]int)
	var order []string

	for _, raw := range serialized {
		colors, err := Deserialize(raw)
		if err != nil {
			continue
		}
		for _, c := range colors {
			lower := strings.ToLower(c)
			if _, seen := counts[lower]; !seen {
				order = append(order, lower)
			}
			counts[lower]++
		}
	}

	ranked := lo.Map(order, func(c string, _ int) ColorCount {
		return ColorCount{Color: c, Count: counts[c]}
	})

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
