package opt

import (
	"context"
	"time"

	"lotSizing/internal/lotsizing"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *lotsizing.Instance) (Result, error)
}

// Point is one incumbent improvement on the convergence log.
type Point struct {
	Elapsed   time.Duration
	Cost      int
	Iteration int
}

type Result struct {
	// Solution is nil when no feasible plan was found.
	Solution    *lotsizing.Solution
	Cost        int
	Feasible    bool
	Evaluations int
	Iterations  int
	Failures    int
	Duration    time.Duration
	Convergence []Point
	Meta        map[string]any
}
