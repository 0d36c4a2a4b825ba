package searcher

import (
	"battleship/game"

	"golang.org/x/exp/rand"
)

// Attempts per ship before a sample is abandoned. Late-game views leave
// little room, so a sample occasionally fails to fit the whole fleet.
const maxSampleAttempts = 100

// sampleFleet draws one random full-fleet placement that stays in
// bounds, avoids every observed miss, and never overlaps itself.
// Returns the occupied cell set, or ok=false when the fleet could not
// be fitted within the attempt budget.
func sampleFleet(view game.TargetView, rng *rand.Rand) (map[game.Coordinate]struct{}, bool) {
	occupied := make(map[game.Coordinate]struct{})

	for _, t := range game.FleetShipTypes {
		placed := false
		for attempt := 0; attempt < maxSampleAttempts; attempt++ {
			orientation := game.Horizontal
			if rng.Intn(2) == 1 {
				orientation = game.Vertical
			}
			start := game.Coordinate{Row: rng.Intn(view.Size), Col: rng.Intn(view.Size)}
			cells := game.NewShip(t, start, orientation).Coordinates()

			if fits(view, occupied, cells) {
				for _, c := range cells {
					occupied[c] = struct{}{}
				}
				placed = true
				break
			}
		}
		if !placed {
			return nil, false
		}
	}
	return occupied, true
}

func fits(view game.TargetView, occupied map[game.Coordinate]struct{}, cells []game.Coordinate) bool {
	for _, c := range cells {
		if c.Row < 0 || c.Row >= view.Size || c.Col < 0 || c.Col >= view.Size {
			return false
		}
		if view.Shots[c] == game.CellMiss {
			return false
		}
		if _, taken := occupied[c]; taken {
			return false
		}
	}
	return true
}

// coversAllHits reports whether every observed hit lies on a sampled
// ship.
func coversAllHits(view game.TargetView, occupied map[game.Coordinate]struct{}) bool {
	for c, state := range view.Shots {
		if state != game.CellHit {
			continue
		}
		if _, ok := occupied[c]; !ok {
			return false
		}
	}
	return true
}
