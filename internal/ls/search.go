package ls

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"lotSizing/internal/lotsizing"
)

// Stats — итог одного вызова локального поиска.
type Stats struct {
	Moves       int
	Evaluations int
	// Trace — стоимость исходного решения и стоимость после каждого принятого хода.
	Trace        []int
	Accepted     map[Neighborhood]int
	LocalOptimum bool
	Stopped      string
}

// Search — локальный спуск (best improvement) по окрестностям shift/merge/split/close.
type Search struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает локальный поиск с валидацией конфигурации.
// Генератор случайных чисел нужен только для выборки исходных периодов на больших горизонтах.
func New(cfg Config, rng *rand.Rand) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Search{Cfg: cfg, Rng: rng}, nil
}

// Improve улучшает допустимое решение sol на месте до локального оптимума,
// исчерпания MaxMoves или отмены ctx. Решение меняется только после того,
// как план после хода пересчитан и признан допустимым и более дешёвым.
func (s *Search) Improve(ctx context.Context, inst *lotsizing.Instance, sol *lotsizing.Solution) (Stats, error) {
	if err := s.Cfg.Validate(); err != nil {
		return Stats{}, err
	}
	if s.Rng == nil {
		return Stats{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	eval, err := lotsizing.NewEvaluator(inst)
	if err != nil {
		return Stats{}, err
	}

	cost, ok := eval.Evaluate(sol.Produce)
	if !ok {
		return Stats{}, fmt.Errorf("исходное решение недопустимо")
	}
	sol.Sync(inst)

	stats := Stats{
		Trace:    []int{cost},
		Accepted: make(map[Neighborhood]int, len(s.Cfg.Neighborhoods)),
	}
	st := newScan(inst, sol, eval, cost, s.Cfg.MaxShiftDistance)
	all := allPeriods(inst.Periods)
	sampled := inst.Periods > s.Cfg.FullScanLimit && s.Cfg.SampleSize < inst.Periods

	for {
		// Для поддержки отмены через context
		if ctx.Err() != nil {
			stats.Stopped = "context"
			break
		}
		if s.Cfg.MaxMoves > 0 && stats.Moves >= s.Cfg.MaxMoves {
			stats.Stopped = "max_moves"
			break
		}

		origins := all
		if sampled {
			origins = sampleOrigins(inst.Periods, s.Cfg.SampleSize, s.Rng)
		}
		best, found := bestOf(st, s.Cfg.Neighborhoods, origins)
		if !found && sampled {
			// В выборке улучшений нет, полный проход перед остановкой.
			best, found = bestOf(st, s.Cfg.Neighborhoods, all)
		}
		if !found {
			stats.LocalOptimum = true
			stats.Stopped = "local_optimum"
			break
		}

		plan := best.Plan(sol.Produce)
		newCost, ok := eval.Evaluate(plan)
		if !ok || newCost != best.Cost {
			return stats, fmt.Errorf(
				"ход %s(%d→%d, %d): пересчёт не совпал с оценкой (допустим=%v, %d != %d)",
				best.Kind, best.From, best.To, best.Qty, ok, newCost, best.Cost,
			)
		}

		copy(sol.Produce, plan)
		sol.Sync(inst)
		st.cost = newCost

		stats.Moves++
		stats.Accepted[best.Kind]++
		stats.Trace = append(stats.Trace, newCost)
	}

	stats.Evaluations = st.evals + eval.Evaluations()
	return stats, nil
}

// BestMove — лучший улучшающий ход по всем периодам (без выборки).
// found == false означает, что sol — локальный оптимум для окрестностей cfg.
func BestMove(inst *lotsizing.Instance, sol *lotsizing.Solution, cfg Config) (Candidate, bool, error) {
	if err := cfg.Validate(); err != nil {
		return Candidate{}, false, err
	}
	eval, err := lotsizing.NewEvaluator(inst)
	if err != nil {
		return Candidate{}, false, err
	}
	cost, ok := eval.Evaluate(sol.Produce)
	if !ok {
		return Candidate{}, false, fmt.Errorf("исходное решение недопустимо")
	}
	work := sol.Clone()
	work.Sync(inst)

	st := newScan(inst, work, eval, cost, cfg.MaxShiftDistance)
	best, found := bestOf(st, cfg.Neighborhoods, allPeriods(inst.Periods))
	return best, found, nil
}

func bestOf(st *scan, nbs []Neighborhood, origins []int) (Candidate, bool) {
	var best Candidate
	found := false
	for _, nb := range nbs {
		c, ok := neighborhoodFor(nb)(st, origins)
		if !ok {
			continue
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

func allPeriods(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// sampleOrigins выбирает k различных периодов и возвращает их по возрастанию.
func sampleOrigins(n, k int, rng *rand.Rand) []int {
	p := rng.Perm(n)[:k]
	sort.Ints(p)
	return p
}
