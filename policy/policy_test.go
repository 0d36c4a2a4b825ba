package policy

import (
	"testing"

	"battleship/env"
	"battleship/game"
	"battleship/searcher"

	"github.com/stretchr/testify/require"
)

func emptyObservation() env.Observation {
	return make(env.Observation, env.BaseNumChannels*env.NumCells)
}

func fullFireMask() env.ActionMask {
	mask := make(env.ActionMask, env.NumCells)
	for i := range mask {
		mask[i] = 1
	}
	return mask
}

func TestRandomOnlyPicksLegalActions(t *testing.T) {
	p := NewRandom(1)
	mask := make(env.ActionMask, env.NumCells)
	legal := map[int]struct{}{3: {}, 47: {}, 99: {}}
	for a := range legal {
		mask[a] = 1
	}

	obs := emptyObservation()
	for i := 0; i < 50; i++ {
		action := p.Choose(obs, mask)
		_, ok := legal[action]
		require.True(t, ok, "action %d is not legal", action)
	}
}

func TestRandomNoLegalActions(t *testing.T) {
	p := NewRandom(1)
	require.Equal(t, -1, p.Choose(emptyObservation(), make(env.ActionMask, env.NumCells)))
}

func TestHuntTargetProbesNeighboursOfHit(t *testing.T) {
	p := NewHuntTarget(5)
	obs := emptyObservation()
	mask := fullFireMask()

	// A scored hit at (4,4); its cell is already shot and illegal.
	hit := game.Coordinate{Row: 4, Col: 4}
	obs[(env.ChannelShotsTaken*env.BoardSize+hit.Row)*env.BoardSize+hit.Col] = 1
	obs[(env.ChannelHitsScored*env.BoardSize+hit.Row)*env.BoardSize+hit.Col] = 1
	mask[env.CoordinateToAction(hit)] = 0

	neighbours := map[int]struct{}{
		env.CoordinateToAction(game.Coordinate{Row: 3, Col: 4}): {},
		env.CoordinateToAction(game.Coordinate{Row: 5, Col: 4}): {},
		env.CoordinateToAction(game.Coordinate{Row: 4, Col: 3}): {},
		env.CoordinateToAction(game.Coordinate{Row: 4, Col: 5}): {},
	}
	for i := 0; i < 20; i++ {
		action := p.Choose(obs, mask)
		_, ok := neighbours[action]
		require.True(t, ok, "expected an orthogonal neighbour of the hit, got %d", action)
	}
}

func TestHuntTargetSkipsIllegalNeighbours(t *testing.T) {
	p := NewHuntTarget(5)
	obs := emptyObservation()
	mask := fullFireMask()

	// Corner hit: only two neighbours exist, and one is already shot.
	hit := game.Coordinate{Row: 0, Col: 0}
	obs[(env.ChannelHitsScored*env.BoardSize+hit.Row)*env.BoardSize+hit.Col] = 1
	mask[env.CoordinateToAction(hit)] = 0
	mask[env.CoordinateToAction(game.Coordinate{Row: 0, Col: 1})] = 0

	want := env.CoordinateToAction(game.Coordinate{Row: 1, Col: 0})
	for i := 0; i < 10; i++ {
		require.Equal(t, want, p.Choose(obs, mask))
	}
}

func TestHuntTargetFallsBackToRandomFire(t *testing.T) {
	p := NewHuntTarget(5)
	obs := emptyObservation()
	mask := fullFireMask()

	for i := 0; i < 20; i++ {
		action := p.Choose(obs, mask)
		require.GreaterOrEqual(t, action, 0)
		require.Less(t, action, env.NumCells)
	}
}

func TestSearchPicksLegalAndDeterministic(t *testing.T) {
	obs := emptyObservation()
	mask := fullFireMask()

	// Rule out a row of cells so legality filtering is exercised.
	for col := 0; col < env.BoardSize; col++ {
		c := game.Coordinate{Row: 0, Col: col}
		obs[(env.ChannelShotsTaken*env.BoardSize+c.Row)*env.BoardSize+c.Col] = 1
		mask[env.CoordinateToAction(c)] = 0
	}

	pick := func() int {
		hunter := searcher.NewHunter(1,
			searcher.WithEpisodes(200),
			searcher.WithSeed(7),
		)
		return NewSearch(11, hunter).Choose(obs, mask)
	}

	first := pick()
	require.GreaterOrEqual(t, first, env.NumCells/env.BoardSize,
		"Row zero is fully shot, so no action there is legal")
	require.Equal(t, first, pick(), "Fixed seeds, fixed choice")
}

func TestSearchRecordsMetric(t *testing.T) {
	hunter := searcher.NewHunter(1,
		searcher.WithEpisodes(100),
		searcher.WithSeed(3),
		searcher.WithMetrics(),
	)
	p := NewSearch(1, hunter)
	p.Choose(emptyObservation(), fullFireMask())

	metric := p.LastSearchMetric()
	require.Equal(t, 1, metric.Goroutines)
	require.EqualValues(t, 100, metric.Episodes)
}
