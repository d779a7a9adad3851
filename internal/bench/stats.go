package bench

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type IntStats struct {
	N    int
	Best int
	Mean float64
	Std  float64
}

func CalcIntStats(values []int) IntStats {
	s := IntStats{N: len(values)}
	if s.N == 0 {
		return s
	}
	xs := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(v)
	}
	f := CalcFloatStats(xs)
	s.Best = int(f.Best)
	s.Mean = f.Mean
	s.Std = f.Std
	return s
}

type FloatStats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// CalcFloatStats uses the sample standard deviation; Std is 0 for fewer than two values.
func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}
	s.Best = floats.Min(values)
	s.Mean = stat.Mean(values, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}

// Summary aggregates the records of one instance class.
type Summary struct {
	Class      Class
	Runs       int
	Solved     int
	Infeasible int
	LoadErrors int
	Cost       IntStats   // over solved instances
	Time       FloatStats // seconds, over solved and infeasible runs
}

func Summarize(records []Record) []Summary {
	byClass := make(map[string]*Summary)
	costs := make(map[string][]int)
	times := make(map[string][]float64)

	for _, r := range records {
		s, ok := byClass[r.Class.Name]
		if !ok {
			s = &Summary{Class: r.Class}
			byClass[r.Class.Name] = s
		}
		s.Runs++
		switch r.Status {
		case StatusOK:
			s.Solved++
			costs[r.Class.Name] = append(costs[r.Class.Name], r.Cost)
		case StatusInfeasible:
			s.Infeasible++
		case StatusLoadError:
			s.LoadErrors++
			continue
		}
		times[r.Class.Name] = append(times[r.Class.Name], r.Elapsed.Seconds())
	}

	out := make([]Summary, 0, len(byClass))
	for name, s := range byClass {
		s.Cost = CalcIntStats(costs[name])
		s.Time = CalcFloatStats(times[name])
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class.Name < out[j].Class.Name })
	return out
}

func WriteSummaryCSV(path string, sums []Summary) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeSummary(f, sums); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

func writeSummary(out io.Writer, sums []Summary) error {
	w := csv.NewWriter(out)

	header := []string{
		"class", "runs", "solved", "infeasible", "load_errors",
		"cost_best", "cost_mean", "cost_std",
		"time_best_s", "time_mean_s", "time_std_s",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range sums {
		row := []string{
			s.Class.Name,
			itoa(s.Runs),
			itoa(s.Solved),
			itoa(s.Infeasible),
			itoa(s.LoadErrors),

			itoa(s.Cost.Best),
			ftoa(s.Cost.Mean),
			ftoa(s.Cost.Std),

			ftoa(s.Time.Best),
			ftoa(s.Time.Mean),
			ftoa(s.Time.Std),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
