package grasp

import (
	"fmt"
	"math/rand"

	"lotSizing/internal/lotsizing"
)

// Construct строит одно допустимое решение жадно-случайным проходом по периодам.
//
// В периоде t с текущим запасом inv нужно произвести хотя бы
// need = d[t] + R[t] − inv, где R[t] — запас, без которого дальнейший горизонт
// не обеспечить даже на полной мощности. Если need <= 0, период пропускается.
// Иначе кандидаты — лоты, покрывающие 1..maxLot периодов вперёд; они ранжируются
// по удельной стоимости (наладка + производство + прогноз хранения) / объём,
// и один выбирается из RCL с параметром alpha.
//
// Если need > C[t], продолжить нельзя: возвращается *lotsizing.InfeasibleError.
func Construct(inst *lotsizing.Instance, alpha float64, maxLot int, rng *rand.Rand) (*lotsizing.Solution, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if maxLot <= 0 {
		return nil, fmt.Errorf("MaxLot должно быть > 0 (получено %d)", maxLot)
	}

	n := inst.Periods
	req := lotsizing.RequiredStock(inst)
	sol := lotsizing.NewSolution(n)
	cands := make([]candidate, 0, maxLot)

	inv := 0
	for t := 0; t < n; t++ {
		need := inst.Demand[t] + req[t] - inv
		if need > inst.Capacity[t] {
			return nil, &lotsizing.InfeasibleError{Period: t, Shortage: need - inst.Capacity[t]}
		}
		if need > 0 {
			cands = lotCandidates(inst, req, t, inv, need, maxLot, cands[:0])
			rankCandidates(cands)
			sol.Produce[t] = selectRCL(cands, alpha, rng).qty
		}
		inv += sol.Produce[t] - inst.Demand[t]
	}

	sol.Sync(inst)
	return sol, nil
}

// lotCandidates — различные размеры лота в периоде t, покрывающего периоды t..t+L-1.
func lotCandidates(inst *lotsizing.Instance, req []int, t, inv, need, maxLot int, out []candidate) []candidate {
	cum := 0
	for l := 1; l <= maxLot; l++ {
		end := t + l - 1
		if end >= inst.Periods {
			break
		}
		cum += inst.Demand[end]
		q := min(inst.Capacity[t], max(need, cum+req[end]-inv))

		dup := false
		for _, c := range out {
			if c.qty == q {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		out = append(out, candidate{qty: q, score: lotScore(inst, t, inv, q)})
	}
	return out
}

// lotScore — удельная стоимость лота q в периоде t.
// Хранение прогнозируется без дальнейшего производства; старый запас расходуется первым.
func lotScore(inst *lotsizing.Instance, t, inv, q int) float64 {
	cost := inst.Setup[t] + inst.Unit[t]*q
	stock := inv + q
	for k := t; k < inst.Periods; k++ {
		stock -= inst.Demand[k]
		if stock <= 0 {
			break
		}
		cost += inst.Holding[k] * min(q, stock)
	}
	return float64(cost) / float64(q)
}
