package grasp_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"lotSizing/internal/grasp"
	"lotSizing/internal/lotsizing"
	"lotSizing/internal/opt"
)

type SolverSuite struct {
	suite.Suite
	ctx context.Context
}

func TestSolverSuite(t *testing.T) {
	suite.Run(t, new(SolverSuite))
}

func (s *SolverSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *SolverSuite) solver(cfg grasp.Config, seed int64) *grasp.Solver {
	solver, err := grasp.New(cfg, rand.New(rand.NewSource(seed)))
	s.Require().NoError(err)
	return solver
}

func iterationsOnly(n int) grasp.Config {
	cfg := grasp.DefaultConfig()
	cfg.Iterations = n
	cfg.TimeLimit = 0
	return cfg
}

func (s *SolverSuite) TestScenarioFindsConsolidatedPlan() {
	inst, err := lotsizing.NewInstance(
		[]int{10, 10, 10},
		[]int{50, 50, 50},
		[]int{1, 1, 1},
		[]int{1, 1, 1},
		[]int{30, 30, 30},
	)
	s.Require().NoError(err)

	solver := s.solver(iterationsOnly(20), 2025)
	res, err := solver.Solve(s.ctx, inst)
	s.Require().NoError(err)

	s.True(res.Feasible)
	s.LessOrEqual(res.Cost, 180, "must beat one lot per period")
	s.Equal(110, res.Cost)
	s.Equal([]int{30, 0, 0}, res.Solution.Produce)
	s.Equal(20, res.Iterations)
	s.Equal("iteration_cap", res.Meta["stopped"])
	s.Equal(grasp.StateDone, solver.State())
}

func (s *SolverSuite) TestInfeasibleInstanceIsUnsolved() {
	inst, err := lotsizing.NewInstance([]int{100}, []int{1}, []int{1}, []int{1}, []int{50})
	s.Require().NoError(err)

	res, err := s.solver(iterationsOnly(10), 1).Solve(s.ctx, inst)
	s.Require().NoError(err)
	s.False(res.Feasible)
	s.Nil(res.Solution)
	s.Equal(1, res.Failures)
	s.Empty(res.Convergence)
	s.Equal("infeasible", res.Meta["stopped"])
}

func (s *SolverSuite) TestIncumbentIsMonotone() {
	inst := lotsizing.RandomInstance(lotsizing.GenParams{Periods: 50, Tightness: 2, Variation: 0.2}, rand.New(rand.NewSource(4)))
	s.Require().NoError(lotsizing.CheckCapacity(inst))

	solver := s.solver(iterationsOnly(30), 7)
	var hooked []opt.Point
	solver.OnImprove = func(p opt.Point) { hooked = append(hooked, p) }

	res, err := solver.Solve(s.ctx, inst)
	s.Require().NoError(err)
	s.Require().True(res.Feasible)
	s.Require().NotEmpty(res.Convergence)
	s.Equal(res.Convergence, hooked)

	for k := 1; k < len(res.Convergence); k++ {
		s.Less(res.Convergence[k].Cost, res.Convergence[k-1].Cost)
		s.GreaterOrEqual(res.Convergence[k].Elapsed, res.Convergence[k-1].Elapsed)
		s.Greater(res.Convergence[k].Iteration, res.Convergence[k-1].Iteration)
	}
	last := res.Convergence[len(res.Convergence)-1]
	s.Equal(res.Cost, last.Cost)

	cost, ok := lotsizing.Evaluate(inst, res.Solution)
	s.True(ok)
	s.Equal(res.Cost, cost)
}

func (s *SolverSuite) TestSameSeedSameRun() {
	inst := lotsizing.RandomInstance(lotsizing.GenParams{Periods: 60, Tightness: 2.5, Variation: 0.2}, rand.New(rand.NewSource(8)))
	s.Require().NoError(lotsizing.CheckCapacity(inst))

	a, err := s.solver(iterationsOnly(15), 99).Solve(s.ctx, inst)
	s.Require().NoError(err)
	b, err := s.solver(iterationsOnly(15), 99).Solve(s.ctx, inst)
	s.Require().NoError(err)

	s.Equal(a.Cost, b.Cost)
	s.Equal(a.Solution, b.Solution)
	s.Equal(a.Evaluations, b.Evaluations)
	s.Require().Len(b.Convergence, len(a.Convergence))
	for k := range a.Convergence {
		s.Equal(a.Convergence[k].Cost, b.Convergence[k].Cost)
		s.Equal(a.Convergence[k].Iteration, b.Convergence[k].Iteration)
	}
}

func (s *SolverSuite) TestTimeBudget() {
	inst := lotsizing.RandomInstance(lotsizing.GenParams{Periods: 100, Tightness: 2, Variation: 0.2}, rand.New(rand.NewSource(5)))
	s.Require().NoError(lotsizing.CheckCapacity(inst))

	cfg := grasp.DefaultConfig()
	cfg.Iterations = 0
	cfg.TimeLimit = 0
	cfg.TimePerPeriod = time.Millisecond

	res, err := s.solver(cfg, 3).Solve(s.ctx, inst)
	s.Require().NoError(err)
	s.Equal("time_expired", res.Meta["stopped"])
	s.Equal(100*time.Millisecond, res.Meta["budget"])
	s.GreaterOrEqual(res.Duration, 100*time.Millisecond)
	s.Less(res.Duration, 5*time.Second)
	s.Positive(res.Iterations)
}

func (s *SolverSuite) TestCancelledContext() {
	inst := lotsizing.RandomInstance(lotsizing.GenParams{Periods: 20, Tightness: 2, Variation: 0.2}, rand.New(rand.NewSource(5)))
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	res, err := s.solver(iterationsOnly(10), 1).Solve(ctx, inst)
	s.True(errors.Is(err, context.Canceled))
	s.Equal("context", res.Meta["stopped"])
	s.Zero(res.Iterations)
}

// Cancellation during the last allowed iteration must not be reported as iteration_cap.
func (s *SolverSuite) TestCancelledDuringLastIteration() {
	inst, err := lotsizing.NewInstance(
		[]int{10, 10, 10},
		[]int{50, 50, 50},
		[]int{1, 1, 1},
		[]int{1, 1, 1},
		[]int{30, 30, 30},
	)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	solver := s.solver(iterationsOnly(1), 3)
	solver.OnImprove = func(opt.Point) { cancel() }

	res, err := solver.Solve(ctx, inst)
	s.True(errors.Is(err, context.Canceled))
	s.Equal("context", res.Meta["stopped"])
	s.Equal(1, res.Iterations)
	s.True(res.Feasible, "best so far is still returned")
	s.Equal(grasp.StateDone, solver.State())
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, grasp.DefaultConfig().Validate())

	cfg := grasp.DefaultConfig()
	cfg.Alpha = 1.5
	require.Error(t, cfg.Validate())

	cfg = grasp.DefaultConfig()
	cfg.MaxLot = 0
	require.Error(t, cfg.Validate())

	cfg = grasp.DefaultConfig()
	cfg.Iterations = 0
	cfg.TimeLimit = 0
	require.Error(t, cfg.Validate(), "no stopping rule")

	cfg = grasp.DefaultConfig()
	cfg.LocalSearch.SampleSize = -1
	require.ErrorContains(t, cfg.Validate(), "локальный поиск")

	_, err := grasp.New(grasp.DefaultConfig(), nil)
	require.Error(t, err)
}
