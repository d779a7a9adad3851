package bench

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"lotSizing/internal/lotsizing"
	"lotSizing/internal/opt"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) (opt.Optimizer, error)
}

// Runner solves single instance files and turns the outcome into a Record.
type Runner struct {
	Algo Algorithm
	// BaseDir is the root used to name instance classes.
	BaseDir string
	// LogDir receives convergence logs; empty disables them.
	LogDir string
	Log    logrus.FieldLogger
}

func (r Runner) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

// RunFile loads and solves the instance at path. A file that cannot be loaded
// yields a load_error record and no error. The error is non-nil only when the
// solver itself fails or ctx is cancelled; no record must be written then.
func (r Runner) RunFile(ctx context.Context, path string, seed int64) (Record, []opt.Point, error) {
	class := ParseClass(path, r.BaseDir)
	rec := Record{
		Class: class,
		File:  filepath.Base(path),
		Seed:  seed,
	}
	log := r.logger().WithFields(logrus.Fields{
		"algo":  r.Algo.Name,
		"class": class.Name,
		"file":  rec.File,
		"seed":  seed,
	})

	start := time.Now()
	inst, err := lotsizing.Load(path)
	if err != nil {
		rec.Status = StatusLoadError
		rec.Err = err.Error()
		rec.Elapsed = time.Since(start)
		log.WithError(err).Warn("instance load failed")
		return rec, nil, nil
	}
	rec.Periods = inst.Periods

	op, err := r.Algo.Factory(seed)
	if err != nil {
		return Record{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	res, err := op.Solve(ctx, inst)
	rec.Elapsed = time.Since(start)
	if err != nil && ctx.Err() != nil {
		return Record{}, nil, fmt.Errorf("%s: cancelled: %w", path, err)
	}
	if err != nil {
		return Record{}, nil, fmt.Errorf("%s: solve error: %w", path, err)
	}

	// incumbents are logged once the solve is over, outside the measured time
	for _, p := range res.Convergence {
		log.WithFields(logrus.Fields{
			"cost":      p.Cost,
			"iteration": p.Iteration,
			"elapsed":   p.Elapsed,
		}).Debug("new incumbent")
	}

	rec.Iterations = res.Iterations
	if res.Feasible {
		if got, ok := lotsizing.Evaluate(inst, res.Solution); !ok || got != res.Cost {
			return Record{}, nil, fmt.Errorf("%s: reported cost %d, plan costs %d (feasible=%v)", path, res.Cost, got, ok)
		}
		rec.Feasible = true
		rec.Cost = res.Cost
		rec.Status = StatusOK
	} else {
		rec.Status = StatusInfeasible
	}

	if r.LogDir != "" {
		lp := LogPath(r.LogDir, class, path)
		if err := WriteConvergence(lp, res.Convergence); err != nil {
			return Record{}, nil, fmt.Errorf("%s: convergence log: %w", path, err)
		}
	}

	log.WithFields(logrus.Fields{
		"status":     rec.Status,
		"feasible":   rec.Feasible,
		"cost":       rec.Cost,
		"iterations": res.Iterations,
		"stopped":    res.Meta["stopped"],
		"elapsed":    rec.Elapsed,
	}).Info("instance solved")
	return rec, res.Convergence, nil
}
