package lotsizing

type Solution struct {
	Produce   []int
	Setup     []bool
	Inventory []int
}

func NewSolution(periods int) *Solution {
	return &Solution{
		Produce:   make([]int, periods),
		Setup:     make([]bool, periods),
		Inventory: make([]int, periods),
	}
}

// Sync derives Setup and Inventory from Produce.
func (s *Solution) Sync(inst *Instance) {
	inv := 0
	for t, x := range s.Produce {
		s.Setup[t] = x > 0
		inv += x - inst.Demand[t]
		s.Inventory[t] = inv
	}
}

func (s *Solution) Clone() *Solution {
	if s == nil {
		return nil
	}
	c := NewSolution(len(s.Produce))
	copy(c.Produce, s.Produce)
	copy(c.Setup, s.Setup)
	copy(c.Inventory, s.Inventory)
	return c
}

// Lots returns the periods with positive production in increasing order.
func (s *Solution) Lots() []int {
	var lots []int
	for t, x := range s.Produce {
		if x > 0 {
			lots = append(lots, t)
		}
	}
	return lots
}
