package grasp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"lotSizing/internal/lotsizing"
	"lotSizing/internal/ls"
	"lotSizing/internal/opt"
)

// State — состояние управляющего цикла GRASP.
type State int

const (
	StateInit State = iota
	StateIterating
	StateTimeExpired
	StateIterationCap
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateIterating:
		return "iterating"
	case StateTimeExpired:
		return "time_expired"
	case StateIterationCap:
		return "iteration_cap"
	case StateDone:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Solver — реализация GRASP: жадно-случайное построение + локальный спуск,
// повторяемые до исчерпания бюджета времени или числа итераций.
type Solver struct {
	Cfg Config
	Rng *rand.Rand

	// OnImprove вызывается при каждом новом рекорде (необязательно).
	OnImprove func(opt.Point)

	state State
}

// New возвращает новый GRASP-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// State возвращает текущее состояние цикла.
func (s *Solver) State() State { return s.state }

// Solve — основной цикл алгоритма.
func (s *Solver) Solve(ctx context.Context, inst *lotsizing.Instance) (opt.Result, error) {
	start := time.Now()
	s.state = StateInit

	// Валидация входных данных
	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}

	search, err := ls.New(s.Cfg.LocalSearch, s.Rng)
	if err != nil {
		return opt.Result{}, err
	}

	// Бюджет времени ограничивает и локальный поиск внутри итерации
	budget := s.Cfg.Budget(inst.Periods)
	runCtx := ctx
	if budget > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithDeadline(ctx, start.Add(budget))
		defer cancel()
	}

	// Рекорд
	var best *lotsizing.Solution
	bestCost := math.MaxInt
	var convergence []opt.Point

	evals := 0
	failures := 0
	iter := 0
	stopped := ""

	result := func() opt.Result {
		res := opt.Result{
			Solution:    best,
			Feasible:    best != nil,
			Evaluations: evals,
			Iterations:  iter,
			Failures:    failures,
			Duration:    time.Since(start),
			Convergence: convergence,
			Meta: map[string]any{
				"stopped": stopped,
				"alpha":   s.Cfg.Alpha,
				"max_lot": s.Cfg.MaxLot,
				"budget":  budget,
			},
		}
		if best != nil {
			res.Cost = bestCost
		}
		return res
	}

	s.state = StateIterating
	for {
		// Отмена проверяется первой: прерванный запуск не должен выглядеть завершённым.
		if err := ctx.Err(); err != nil {
			s.state = StateDone
			stopped = "context"
			return result(), err
		}
		// Условия выхода проверяются в начале каждой итерации
		if budget > 0 && time.Since(start) >= budget {
			s.state = StateTimeExpired
			stopped = s.state.String()
			break
		}
		if s.Cfg.Iterations > 0 && iter >= s.Cfg.Iterations {
			s.state = StateIterationCap
			stopped = s.state.String()
			break
		}

		iter++
		sol, err := Construct(inst, s.Cfg.Alpha, s.Cfg.MaxLot, s.Rng)
		if err != nil {
			if errors.Is(err, lotsizing.ErrInfeasible) {
				// Нехватка суммарной мощности: свойство экземпляра, а не розыгрыша.
				failures++
				stopped = "infeasible"
				break
			}
			return result(), err
		}
		evals++

		stats, err := search.Improve(runCtx, inst, sol)
		if err != nil {
			return result(), err
		}
		evals += stats.Evaluations

		cost, ok := lotsizing.Evaluate(inst, sol)
		if !ok || cost >= bestCost {
			continue
		}

		// Новый рекорд
		best = sol.Clone()
		bestCost = cost
		p := opt.Point{Elapsed: time.Since(start), Cost: cost, Iteration: iter}
		convergence = append(convergence, p)
		if s.OnImprove != nil {
			s.OnImprove(p)
		}
	}

	s.state = StateDone
	return result(), nil
}
