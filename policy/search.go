package policy

import (
	"battleship/env"
	"battleship/experiments/metrics"
	"battleship/searcher"
	"battleship/utils"

	"golang.org/x/exp/rand"
)

// Search fires at the cell the placement-sampling searcher considers
// most likely occupied. Ties break toward the lowest action index, so
// choices are deterministic for a fixed searcher seed.
type Search struct {
	hunter     *searcher.Hunter
	rng        *rand.Rand
	lastMetric metrics.SearchMetric
}

func NewSearch(seed uint64, hunter *searcher.Hunter) *Search {
	return &Search{
		hunter: hunter,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (p *Search) Choose(obs env.Observation, mask env.ActionMask) int {
	fireMask := mask
	if len(fireMask) > env.NumCells {
		fireMask = mask[:env.NumCells]
	}
	legal := utils.LegalIndices(fireMask)
	if len(legal) == 0 {
		// Not a firing mask; fall back to uniform.
		legal = utils.LegalIndices(mask)
		if len(legal) == 0 {
			return -1
		}
		return legal[p.rng.Intn(len(legal))]
	}

	view := env.TargetViewFromObservation(obs)
	weights, metric := p.hunter.Search(view)
	p.lastMetric = metric

	scores := make([]float64, len(legal))
	for i, action := range legal {
		coord, _ := env.ActionToCoordinate(action)
		scores[i] = weights[coord]
	}
	return legal[utils.ArgMax(scores)]
}

// LastSearchMetric reports the statistics of the most recent search.
func (p *Search) LastSearchMetric() metrics.SearchMetric {
	return p.lastMetric
}
