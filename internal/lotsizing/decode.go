package lotsizing

// Decode turns a setup plan into production: walking backwards, every open period
// produces as much of the not yet covered demand as its capacity allows. The result is
// false when some demand stays uncovered.
func Decode(inst *Instance, setups []bool) ([]int, bool) {
	x := make([]int, inst.Periods)
	remaining := 0
	for t := inst.Periods - 1; t >= 0; t-- {
		remaining += inst.Demand[t]
		if !setups[t] {
			continue
		}
		q := min(inst.Capacity[t], remaining)
		x[t] = q
		remaining -= q
	}
	return x, remaining == 0
}
