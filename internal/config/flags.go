package config

import (
	"flag"
	"fmt"

	"lotSizing/internal/grasp"
	"lotSizing/internal/ls"
)

// BindGrasp registers the solver flags on fs with environment-backed defaults.
// The returned function builds and validates the config after fs.Parse.
func BindGrasp(fs *flag.FlagSet) func() (grasp.Config, error) {
	def := grasp.DefaultConfig()

	var (
		alpha         = fs.Float64("alpha", Float("GRASP_ALPHA", def.Alpha), "жадность RCL: 0 — жадный выбор, 1 — случайный")
		maxLot        = fs.Int("max_lot", Int("GRASP_MAX_LOT", def.MaxLot), "максимальное число периодов, покрываемых одним лотом")
		iterations    = fs.Int("iterations", Int("GRASP_ITERATIONS", def.Iterations), "количество итераций GRASP (0 — без ограничения)")
		timeLimit     = fs.Duration("time_limit", Duration("GRASP_TIME_LIMIT", def.TimeLimit), "бюджет времени на экземпляр (0 — time_per_period × T)")
		timePerPeriod = fs.Duration("time_per_period", Duration("GRASP_TIME_PER_PERIOD", def.TimePerPeriod), "бюджет времени на один период, если time_limit == 0")

		lsMaxMoves  = fs.Int("ls_max_moves", Int("LS_MAX_MOVES", def.LocalSearch.MaxMoves), "ограничение числа ходов локального поиска (0 — без ограничения)")
		lsFullScan  = fs.Int("ls_full_scan", Int("LS_FULL_SCAN_LIMIT", def.LocalSearch.FullScanLimit), "полный просмотр окрестности при T <= ls_full_scan")
		lsSample    = fs.Int("ls_sample", Int("LS_SAMPLE_SIZE", def.LocalSearch.SampleSize), "число исходных периодов в выборке для больших T")
		lsMaxShift  = fs.Int("ls_max_shift", Int("LS_MAX_SHIFT", def.LocalSearch.MaxShiftDistance), "максимальное расстояние переноса shift (0 — без ограничения)")
		neighs      = fs.String("ls_neigh", Get("LS_NEIGHBORHOODS", ls.FormatNeighborhoods(def.LocalSearch.Neighborhoods)), "окрестности локального поиска (через запятую)")
	)

	return func() (grasp.Config, error) {
		nbs, err := ls.ParseNeighborhoods(*neighs)
		if err != nil {
			return grasp.Config{}, err
		}
		cfg := grasp.Config{
			Iterations:    *iterations,
			TimeLimit:     *timeLimit,
			TimePerPeriod: *timePerPeriod,
			Alpha:         *alpha,
			MaxLot:        *maxLot,
			LocalSearch: ls.Config{
				MaxMoves:         *lsMaxMoves,
				FullScanLimit:    *lsFullScan,
				SampleSize:       *lsSample,
				MaxShiftDistance: *lsMaxShift,
				Neighborhoods:    nbs,
			},
		}
		if err := cfg.Validate(); err != nil {
			return grasp.Config{}, fmt.Errorf("конфигурация GRASP: %w", err)
		}
		return cfg, nil
	}
}
