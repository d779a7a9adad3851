package lotsizing

import "fmt"

// Evaluate is the reference cost and feasibility check; it reads only sol.Produce.
func Evaluate(inst *Instance, sol *Solution) (int, bool) {
	return evaluate(inst, sol.Produce, nil)
}

func evaluate(inst *Instance, x []int, inventory []int) (int, bool) {
	if len(x) != inst.Periods {
		return 0, false
	}
	feasible := true
	cost, inv := 0, 0
	for t := 0; t < inst.Periods; t++ {
		q := x[t]
		if q < 0 || q > inst.Capacity[t] {
			feasible = false
		}
		inv += q - inst.Demand[t]
		if inv < 0 {
			feasible = false
		}
		if inventory != nil {
			inventory[t] = inv
		}
		if q > 0 {
			cost += inst.Setup[t]
		}
		cost += inst.Unit[t]*q + inst.Holding[t]*inv
	}
	return cost, feasible
}

// Evaluator is Evaluate over bare production vectors with a reusable inventory buffer.
type Evaluator struct {
	inst      *Instance
	inventory []int
	evals     int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst, inventory: make([]int, inst.Periods)}, nil
}

func (e *Evaluator) Evaluate(x []int) (int, bool) {
	e.evals++
	return evaluate(e.inst, x, e.inventory)
}

// Inventory is the trajectory of the last evaluated vector. Overwritten on every call.
func (e *Evaluator) Inventory() []int { return e.inventory }

func (e *Evaluator) Evaluations() int { return e.evals }

func (e *Evaluator) MustCost(sol *Solution) int {
	if e == nil || e.inst == nil {
		panic(fmt.Errorf("nil evaluator"))
	}
	cost, ok := e.Evaluate(sol.Produce)
	if !ok {
		panic(fmt.Errorf("solution is infeasible (cost %d)", cost))
	}
	return cost
}
