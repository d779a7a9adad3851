package lotsizing

import (
	"errors"
	"fmt"
)

var (
	ErrLoad       = errors.New("instance load failed")
	ErrInfeasible = errors.New("instance is infeasible")
)

// LoadError is fatal for the instance it describes and for nothing else.
type LoadError struct {
	Path string
	Line int // 1-based, 0 when the error is not tied to a line
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("load: %v", e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }

// InfeasibleError marks the first period whose demand cannot be met whatever is produced
// before it.
type InfeasibleError struct {
	Period   int
	Shortage int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("period %d: capacity short by %d units", e.Period, e.Shortage)
}

func (e *InfeasibleError) Unwrap() error { return ErrInfeasible }
