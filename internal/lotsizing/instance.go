package lotsizing

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

type Instance struct {
	Periods int
	// All series have length Periods.
	Demand   []int
	Setup    []int
	Unit     []int
	Holding  []int
	Capacity []int
}

func NewInstance(demand, setup, unit, holding, capacity []int) (*Instance, error) {
	inst := &Instance{
		Periods:  len(demand),
		Demand:   demand,
		Setup:    setup,
		Unit:     unit,
		Holding:  holding,
		Capacity: capacity,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Periods <= 0 {
		return fmt.Errorf("periods must be > 0 (got %d)", inst.Periods)
	}
	for _, s := range inst.series() {
		if len(s.values) != inst.Periods {
			return fmt.Errorf("%s length must be %d (got %d)", s.name, inst.Periods, len(s.values))
		}
		for t, v := range s.values {
			if v < 0 {
				return fmt.Errorf("%s[%d] must be >= 0 (got %d)", s.name, t, v)
			}
		}
	}
	return nil
}

type series struct {
	name   string
	values []int
}

func (inst *Instance) series() []series {
	return []series{
		{"demand", inst.Demand},
		{"setup", inst.Setup},
		{"unit", inst.Unit},
		{"holding", inst.Holding},
		{"capacity", inst.Capacity},
	}
}

// RequiredStock returns R where R[t] is the smallest end-of-period stock that still lets
// periods t+1..T-1 be served when they all produce at full capacity.
func RequiredStock(inst *Instance) []int {
	n := inst.Periods
	r := make([]int, n)
	for t := n - 2; t >= 0; t-- {
		v := r[t+1] + inst.Demand[t+1] - inst.Capacity[t+1]
		if v > 0 {
			r[t] = v
		}
	}
	return r
}

// CheckCapacity reports the first period whose cumulative capacity is below its
// cumulative demand.
func CheckCapacity(inst *Instance) error {
	cumD, cumC := 0, 0
	for t := 0; t < inst.Periods; t++ {
		cumD += inst.Demand[t]
		cumC += inst.Capacity[t]
		if cumC < cumD {
			return &InfeasibleError{Period: t, Shortage: cumD - cumC}
		}
	}
	return nil
}

// GenParams describes one instance class of the benchmark grid.
type GenParams struct {
	Periods   int
	Tightness float64 // mean capacity / mean demand
	Variation float64 // demand coefficient of variation
}

const (
	genDemandMean = 100
	genUnitMin    = 10
	genUnitMax    = 20
	genHoldMin    = 1
	genHoldMax    = 5
	genRatioMin   = 50
	genRatioMax   = 150
)

func RandomInstance(p GenParams, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if p.Periods <= 0 || p.Tightness <= 0 || p.Variation < 0 {
		panic("invalid generator params")
	}
	n := p.Periods
	between := func(lo, hi int) int { return lo + rng.Intn(hi-lo+1) }

	unit := make([]int, n)
	hold := make([]int, n)
	setup := make([]int, n)
	for t := 0; t < n; t++ {
		unit[t] = between(genUnitMin, genUnitMax)
		hold[t] = between(genHoldMin, genHoldMax)
		setup[t] = hold[t] * between(genRatioMin, genRatioMax)
	}

	demand := make([]int, n)
	sumD := 0
	for t := range demand {
		v := rng.NormFloat64()*genDemandMean*p.Variation + genDemandMean
		demand[t] = int(math.Max(v, genDemandMean*0.1))
		sumD += demand[t]
	}

	capMean := float64(sumD) / float64(n) * p.Tightness
	capacity := make([]int, n)
	sumC := 0
	for t := range capacity {
		v := rng.NormFloat64()*capMean*0.2 + capMean
		capacity[t] = int(math.Max(v, 0))
		sumC += capacity[t]
	}
	if sumC < sumD {
		scale := float64(sumD) / math.Max(float64(sumC), 1) * 1.10
		floor := int(capMean * 0.1)
		if floor < 1 {
			floor = 1
		}
		for t := range capacity {
			capacity[t] = int(float64(capacity[t]) * scale)
			if capacity[t] == 0 {
				capacity[t] = floor
			}
		}
	}

	inst, err := NewInstance(demand, setup, unit, hold, capacity)
	if err != nil {
		panic(err)
	}
	return inst
}
