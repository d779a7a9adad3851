package ls

import (
	"fmt"
	"strings"
)

// Neighborhood определяет тип окрестности.
type Neighborhood string

const (
	NeighborhoodShift Neighborhood = "shift"
	NeighborhoodMerge Neighborhood = "merge"
	NeighborhoodSplit Neighborhood = "split"
	NeighborhoodClose Neighborhood = "close"
)

type Config struct {
	// 0 — без ограничения
	MaxMoves int

	// При T <= FullScanLimit просматривается вся окрестность,
	// иначе только SampleSize случайных исходных периодов.
	FullScanLimit int
	SampleSize    int

	// Максимальное расстояние переноса для shift (0 — без ограничения)
	MaxShiftDistance int

	Neighborhoods []Neighborhood
}

func DefaultConfig() Config {
	return Config{
		MaxMoves: 0,

		FullScanLimit: 200,
		SampleSize:    64,

		MaxShiftDistance: 0,

		Neighborhoods: []Neighborhood{
			NeighborhoodShift,
			NeighborhoodMerge,
			NeighborhoodSplit,
			NeighborhoodClose,
		},
	}
}

func (c Config) Validate() error {
	if c.MaxMoves < 0 {
		return fmt.Errorf(
			"MaxMoves должно быть >= 0 (получено %d)",
			c.MaxMoves,
		)
	}
	if c.FullScanLimit < 0 {
		return fmt.Errorf(
			"FullScanLimit должно быть >= 0 (получено %d)",
			c.FullScanLimit,
		)
	}
	if c.SampleSize <= 0 {
		return fmt.Errorf(
			"SampleSize должно быть > 0 (получено %d)",
			c.SampleSize,
		)
	}
	if c.MaxShiftDistance < 0 {
		return fmt.Errorf(
			"MaxShiftDistance должно быть >= 0 (получено %d)",
			c.MaxShiftDistance,
		)
	}
	if len(c.Neighborhoods) == 0 {
		return fmt.Errorf("не задано ни одной окрестности")
	}
	seen := make(map[Neighborhood]bool, len(c.Neighborhoods))
	for _, nb := range c.Neighborhoods {
		switch nb {
		case NeighborhoodShift, NeighborhoodMerge, NeighborhoodSplit, NeighborhoodClose:
			// ok
		default:
			return fmt.Errorf(
				"неизвестный тип окрестности %q",
				nb,
			)
		}
		if seen[nb] {
			return fmt.Errorf("окрестность %q указана дважды", nb)
		}
		seen[nb] = true
	}
	return nil
}

// ParseNeighborhoods разбирает список окрестностей через запятую.
func ParseNeighborhoods(s string) ([]Neighborhood, error) {
	var out []Neighborhood
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, Neighborhood(p))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("пустой список окрестностей %q", s)
	}
	return out, nil
}

// FormatNeighborhoods — обратное к ParseNeighborhoods.
func FormatNeighborhoods(nbs []Neighborhood) string {
	parts := make([]string, len(nbs))
	for i, nb := range nbs {
		parts[i] = string(nb)
	}
	return strings.Join(parts, ",")
}
