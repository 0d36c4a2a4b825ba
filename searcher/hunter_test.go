package searcher

import (
	"testing"
	"time"

	"battleship/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func emptyView() game.TargetView {
	return game.TargetView{
		Size:  game.DefaultBoardSize,
		Shots: make(map[game.Coordinate]game.CellState),
	}
}

func TestSearchEmptyBoard(t *testing.T) {
	h := NewHunter(1, WithEpisodes(500), WithSeed(1))
	weights, _ := h.Search(emptyView())

	require.Len(t, weights, 100, "Every cell is unknown on a fresh board")
	sum := 0.0
	for _, w := range weights {
		require.GreaterOrEqual(t, w, 0.0)
		sum += w
	}
	require.InDelta(t, 1.0, sum, 1e-9, "Weights are a probability distribution")
}

func TestSearchSkipsShotCells(t *testing.T) {
	view := emptyView()
	shot := []game.Coordinate{{Row: 0, Col: 0}, {Row: 5, Col: 5}, {Row: 9, Col: 9}}
	view.Shots[shot[0]] = game.CellMiss
	view.Shots[shot[1]] = game.CellHit
	view.Shots[shot[2]] = game.CellMiss

	h := NewHunter(1, WithEpisodes(500), WithSeed(1))
	weights, _ := h.Search(view)

	require.Len(t, weights, 97)
	for _, c := range shot {
		_, ok := weights[c]
		require.False(t, ok, "cell %v has already been resolved", c)
	}
}

func TestSearchConcentratesAroundHits(t *testing.T) {
	view := emptyView()
	hit := game.Coordinate{Row: 5, Col: 5}
	view.Shots[hit] = game.CellHit

	h := NewHunter(1, WithEpisodes(2000), WithSeed(42))
	weights, _ := h.Search(view)

	adjacent := weights[game.Coordinate{Row: 5, Col: 4}]
	corner := weights[game.Coordinate{Row: 0, Col: 0}]
	require.Greater(t, adjacent, corner,
		"Cells next to a hit carry more of the consistent-sample weight")
}

func TestSearchIsSeedDeterministic(t *testing.T) {
	view := emptyView()
	view.Shots[game.Coordinate{Row: 3, Col: 3}] = game.CellHit
	view.Shots[game.Coordinate{Row: 0, Col: 7}] = game.CellMiss

	run := func() map[game.Coordinate]float64 {
		h := NewHunter(1, WithEpisodes(300), WithSeed(9))
		weights, _ := h.Search(view)
		return weights
	}
	require.Equal(t, run(), run())
}

func TestSearchByDuration(t *testing.T) {
	h := NewHunter(2, WithDuration(10*time.Millisecond), WithSeed(1), WithMetrics())
	weights, metric := h.Search(emptyView())

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	require.InDelta(t, 1.0, sum, 1e-9)
	require.Equal(t, 2, metric.Goroutines)
	require.Greater(t, metric.Episodes, 0)
	require.GreaterOrEqual(t, metric.Duration, 10*time.Millisecond)
}

func TestSearchMetricCountsEpisodes(t *testing.T) {
	h := NewHunter(4, WithEpisodes(400), WithSeed(1), WithMetrics())
	_, metric := h.Search(emptyView())

	require.Equal(t, 4, metric.Goroutines)
	require.Equal(t, 400, metric.Episodes)
	require.GreaterOrEqual(t, metric.ConsistentSamples, 0)
	require.LessOrEqual(t, metric.ConsistentSamples, 400)
}

func TestSampleFleetAvoidsMisses(t *testing.T) {
	view := emptyView()
	misses := []game.Coordinate{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 7, Col: 1}}
	for _, c := range misses {
		view.Shots[c] = game.CellMiss
	}

	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 50; i++ {
		occupied, ok := sampleFleet(view, rng)
		require.True(t, ok, "An almost empty board always fits the fleet")
		require.Len(t, occupied, 17, "Full fleet occupies 5+4+3+3+2 cells")
		for _, c := range misses {
			_, hit := occupied[c]
			require.False(t, hit, "sample covered the known miss %v", c)
		}
	}
}

func TestCoversAllHits(t *testing.T) {
	view := emptyView()
	view.Shots[game.Coordinate{Row: 1, Col: 1}] = game.CellHit
	view.Shots[game.Coordinate{Row: 1, Col: 2}] = game.CellHit
	view.Shots[game.Coordinate{Row: 8, Col: 8}] = game.CellMiss

	covering := map[game.Coordinate]struct{}{
		{Row: 1, Col: 1}: {},
		{Row: 1, Col: 2}: {},
		{Row: 1, Col: 3}: {},
	}
	require.True(t, coversAllHits(view, covering))

	partial := map[game.Coordinate]struct{}{
		{Row: 1, Col: 1}: {},
	}
	require.False(t, coversAllHits(view, partial))
}
