package grasp

import (
	"math/rand"
	"sort"
)

// candidate — вариант размера лота и его удельная стоимость (меньше — лучше).
type candidate struct {
	qty   int
	score float64
}

// rankCandidates сортирует кандидатов по оценке, при равенстве — по объёму.
func rankCandidates(c []candidate) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].score != c[j].score {
			return c[i].score < c[j].score
		}
		return c[i].qty < c[j].qty
	})
}

// selectRCL выбирает равновероятно одного кандидата из ограниченного списка (RCL):
// кандидаты с оценкой не хуже min + alpha·(max − min). Список должен быть отсортирован.
func selectRCL(sorted []candidate, alpha float64, rng *rand.Rand) candidate {
	lo := sorted[0].score
	hi := sorted[len(sorted)-1].score
	k := len(sorted)
	if alpha < 1 {
		threshold := lo + alpha*(hi-lo)
		k = sort.Search(len(sorted), func(i int) bool {
			return sorted[i].score > threshold
		})
	}
	return sorted[rng.Intn(k)]
}
