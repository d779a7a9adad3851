package ls

import "lotSizing/internal/lotsizing"

// Candidate — лучший улучшающий ход окрестности.
// Cost — стоимость решения после применения хода.
type Candidate struct {
	Kind     Neighborhood
	From, To int
	Qty      int
	Cost     int

	rank int
	plan []int // полный план производства (split и close)
}

// Plan возвращает вектор производства после применения хода к base.
func (c Candidate) Plan(base []int) []int {
	out := make([]int, len(base))
	if c.plan != nil {
		copy(out, c.plan)
		return out
	}
	copy(out, base)
	out[c.From] -= c.Qty
	out[c.To] += c.Qty
	return out
}

// better задаёт порядок ходов: стоимость, затем более ранний период.
func better(a, b Candidate) bool {
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	if a.From != b.From {
		return a.From < b.From
	}
	if a.To != b.To {
		return a.To < b.To
	}
	return a.rank < b.rank
}

// scan — состояние одного прохода по окрестностям.
type scan struct {
	inst *lotsizing.Instance
	sol  *lotsizing.Solution
	eval *lotsizing.Evaluator
	cost int

	maxDist int
	hold    []int // hold[k] = h[0] + ... + h[k-1]
	setups  []bool
	evals   int
}

func newScan(inst *lotsizing.Instance, sol *lotsizing.Solution, eval *lotsizing.Evaluator, cost, maxDist int) *scan {
	hold := make([]int, inst.Periods+1)
	for t, h := range inst.Holding {
		hold[t+1] = hold[t] + h
	}
	return &scan{
		inst:    inst,
		sol:     sol,
		eval:    eval,
		cost:    cost,
		maxDist: maxDist,
		hold:    hold,
		setups:  make([]bool, inst.Periods),
	}
}

// shiftDelta — изменение стоимости при переносе q единиц из периода i в период j.
// Допустимость переноса проверяет вызывающий код.
func (st *scan) shiftDelta(i, j, q int) int {
	inst := st.inst
	x := st.sol.Produce

	d := q * (inst.Unit[j] - inst.Unit[i])
	if j < i {
		// запас в периодах [j, i) растёт на q
		d += q * (st.hold[i] - st.hold[j])
	} else {
		// запас в периодах [i, j) уменьшается на q
		d -= q * (st.hold[j] - st.hold[i])
	}
	if x[j] == 0 {
		d += inst.Setup[j]
	}
	if q == x[i] {
		d -= inst.Setup[i]
	}
	return d
}

type neighborhoodFunc func(st *scan, origins []int) (Candidate, bool)

func neighborhoodFor(nb Neighborhood) neighborhoodFunc {
	switch nb {
	case NeighborhoodShift:
		return shiftMoves
	case NeighborhoodMerge:
		return mergeMoves
	case NeighborhoodSplit:
		return splitMoves
	case NeighborhoodClose:
		return closeMoves
	}
	return nil
}

// shiftMoves — перенос производства из периода i в период j.
// Для каждой пары (i, j) достаточно максимального допустимого объёма:
// стоимость линейна по объёму, а экономия на наладке возможна только при переносе всего лота.
func shiftMoves(st *scan, origins []int) (Candidate, bool) {
	inst := st.inst
	x := st.sol.Produce
	inv := st.sol.Inventory
	n := inst.Periods

	var best Candidate
	found := false
	consider := func(i, j, q int) {
		st.evals++
		c := Candidate{
			Kind: NeighborhoodShift,
			From: i,
			To:   j,
			Qty:  q,
			Cost: st.cost + st.shiftDelta(i, j, q),
		}
		if c.Cost >= st.cost {
			return
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}

	for _, i := range origins {
		if x[i] == 0 {
			continue
		}
		lo, hi := 0, n-1
		if st.maxDist > 0 {
			lo = max(0, i-st.maxDist)
			hi = min(n-1, i+st.maxDist)
		}

		// Произвести раньше: ограничивает только мощность периода j.
		for j := i - 1; j >= lo; j-- {
			room := inst.Capacity[j] - x[j]
			if room <= 0 {
				continue
			}
			consider(i, j, min(x[i], room))
		}

		// Произвести позже: запас в периодах [i, j) не должен уйти в минус.
		minInv := inv[i]
		for j := i + 1; j <= hi; j++ {
			minInv = min(minInv, inv[j-1])
			if minInv <= 0 {
				break
			}
			room := inst.Capacity[j] - x[j]
			if room <= 0 {
				continue
			}
			consider(i, j, min(x[i], room, minInv))
		}
	}
	return best, found
}

// mergeMoves — объединение двух соседних лотов (без производства между ними) в один.
func mergeMoves(st *scan, origins []int) (Candidate, bool) {
	inst := st.inst
	x := st.sol.Produce
	inv := st.sol.Inventory
	n := inst.Periods

	inScope := make([]bool, n)
	for _, t := range origins {
		inScope[t] = true
	}

	var best Candidate
	found := false
	consider := func(from, to int) {
		st.evals++
		q := x[from]
		c := Candidate{
			Kind: NeighborhoodMerge,
			From: from,
			To:   to,
			Qty:  q,
			Cost: st.cost + st.shiftDelta(from, to, q),
			rank: 1,
		}
		if c.Cost >= st.cost {
			return
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}

	prev := -1
	for t := 0; t < n; t++ {
		if x[t] == 0 {
			continue
		}
		a, b := prev, t
		prev = t
		if a < 0 || !inScope[a] {
			continue
		}

		// Весь лот b переносится в a.
		if x[a]+x[b] <= inst.Capacity[a] {
			consider(b, a)
		}

		// Весь лот a переносится в b.
		if x[a]+x[b] <= inst.Capacity[b] {
			ok := true
			for k := a; k < b; k++ {
				if inv[k] < x[a] {
					ok = false
					break
				}
			}
			if ok {
				consider(a, b)
			}
		}
	}
	return best, found
}

// splitMoves — открыть наладку в простаивающем периоде k и перепланировать производство
// обратным заполнением. Лот, покрывавший спрос периода k, делится между своим периодом и k.
func splitMoves(st *scan, origins []int) (Candidate, bool) {
	x := st.sol.Produce

	var best Candidate
	found := false
	for _, k := range origins {
		if x[k] != 0 || st.inst.Capacity[k] == 0 {
			continue
		}
		for t, q := range x {
			st.setups[t] = q > 0
		}
		st.setups[k] = true

		plan, ok := lotsizing.Decode(st.inst, st.setups)
		if !ok {
			continue
		}
		cost, ok := st.eval.Evaluate(plan)
		st.evals++
		if !ok || cost >= st.cost {
			continue
		}
		c := Candidate{
			Kind: NeighborhoodSplit,
			From: k,
			To:   k,
			Cost: cost,
			rank: 2,
			plan: plan,
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

// closeMoves — закрыть наладку в производящем периоде k и перераспределить её лот
// обратным заполнением по оставшимся открытым периодам.
func closeMoves(st *scan, origins []int) (Candidate, bool) {
	x := st.sol.Produce

	var best Candidate
	found := false
	for _, k := range origins {
		if x[k] == 0 {
			continue
		}
		for t, q := range x {
			st.setups[t] = q > 0
		}
		st.setups[k] = false

		plan, ok := lotsizing.Decode(st.inst, st.setups)
		if !ok {
			continue
		}
		cost, ok := st.eval.Evaluate(plan)
		st.evals++
		if !ok || cost >= st.cost {
			continue
		}
		c := Candidate{
			Kind: NeighborhoodClose,
			From: k,
			To:   k,
			Qty:  x[k],
			Cost: cost,
			rank: 3,
			plan: plan,
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}
