// Package policy provides move-selection strategies that implement
// env.Policy: a uniform-random baseline, a heuristic hunt/target
// player, and a placement-sampling search player. Checkpoint-driven
// policies from the training layer plug into the same interface.
package policy

import (
	"battleship/env"
	"battleship/utils"

	"golang.org/x/exp/rand"
)

// Random picks uniformly among the legal actions. It works for both
// firing and placement masks.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (p *Random) Choose(obs env.Observation, mask env.ActionMask) int {
	legal := utils.LegalIndices(mask)
	if len(legal) == 0 {
		return -1
	}
	return legal[p.rng.Intn(len(legal))]
}
