package policy

import (
	"battleship/env"
	"battleship/game"
	"battleship/utils"

	"golang.org/x/exp/rand"
)

// HuntTarget fires randomly until it scores a hit, then probes the
// orthogonal neighbours of known hits until the trail goes cold. Sunk
// ships are not distinguished from live ones; their neighbours simply
// stop yielding legal targets.
type HuntTarget struct {
	rng *rand.Rand
}

func NewHuntTarget(seed uint64) *HuntTarget {
	return &HuntTarget{rng: rand.New(rand.NewSource(seed))}
}

func (p *HuntTarget) Choose(obs env.Observation, mask env.ActionMask) int {
	targets := p.targetCandidates(obs, mask)
	if len(targets) > 0 {
		return targets[p.rng.Intn(len(targets))]
	}

	// Hunt mode: any legal fire action.
	fireMask := mask
	if len(fireMask) > env.NumCells {
		fireMask = mask[:env.NumCells]
	}
	legal := utils.LegalIndices(fireMask)
	if len(legal) > 0 {
		return legal[p.rng.Intn(len(legal))]
	}

	// Not a firing mask (e.g. placement); fall back to uniform.
	legal = utils.LegalIndices(mask)
	if len(legal) == 0 {
		return -1
	}
	return legal[p.rng.Intn(len(legal))]
}

// targetCandidates returns the legal fire actions orthogonally adjacent
// to a scored hit.
func (p *HuntTarget) targetCandidates(obs env.Observation, mask env.ActionMask) []int {
	var candidates []int
	seen := make(map[int]struct{})

	for row := 0; row < env.BoardSize; row++ {
		for col := 0; col < env.BoardSize; col++ {
			if obs.At(env.ChannelHitsScored, row, col) == 0 {
				continue
			}
			for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				n := game.Coordinate{Row: row + d[0], Col: col + d[1]}
				if n.Row < 0 || n.Row >= env.BoardSize || n.Col < 0 || n.Col >= env.BoardSize {
					continue
				}
				action := env.CoordinateToAction(n)
				if action >= len(mask) || mask[action] == 0 {
					continue
				}
				if _, ok := seen[action]; ok {
					continue
				}
				seen[action] = struct{}{}
				candidates = append(candidates, action)
			}
		}
	}
	return candidates
}
