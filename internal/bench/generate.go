package bench

import (
	"fmt"
	"os"
	"path/filepath"

	"lotSizing/internal/lotsizing"
)

// Grid is the parameter grid of a generated instance set.
type Grid struct {
	Periods    []int
	Tightness  []float64
	Variations []float64
	PerClass   int
	BaseSeed   int64
}

func DefaultGrid() Grid {
	return Grid{
		Periods:    []int{50, 100, 200, 500},
		Tightness:  []float64{1.5, 2.0, 5.0},
		Variations: []float64{0.2, 0.8},
		PerClass:   10,
		BaseSeed:   20251112,
	}
}

// Generate writes root/<class>/inst_NN.txt for every grid point.
// Instance k in generation order uses seed BaseSeed+k.
func Generate(root string, g Grid) ([]string, error) {
	if g.PerClass <= 0 {
		return nil, fmt.Errorf("PerClass must be > 0 (got %d)", g.PerClass)
	}
	var files []string
	seed := g.BaseSeed
	for _, t := range g.Periods {
		for _, tau := range g.Tightness {
			for _, v := range g.Variations {
				p := lotsizing.GenParams{Periods: t, Tightness: tau, Variation: v}
				if t <= 0 || tau <= 0 || v < 0 {
					return nil, fmt.Errorf("invalid grid point T=%d tau=%g var=%g", t, tau, v)
				}
				dir := filepath.Join(root, ClassName(t, tau, v))
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, err
				}
				for i := 1; i <= g.PerClass; i++ {
					inst := lotsizing.RandomInstance(p, RandForSeed(seed))
					seed++

					path := filepath.Join(dir, fmt.Sprintf("inst_%02d.txt", i))
					if err := writeInstance(path, inst); err != nil {
						return nil, err
					}
					files = append(files, path)
				}
			}
		}
	}
	return files, nil
}

func writeInstance(path string, inst *lotsizing.Instance) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := lotsizing.Write(f, inst); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
