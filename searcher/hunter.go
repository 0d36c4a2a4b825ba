// Package searcher estimates where the opponent's fleet hides by
// determinized sampling: each episode draws a full fleet placement
// consistent with the observed shot history and accumulates per-cell
// occupancy counts. The normalized count surface over unknown cells is
// the move policy.
package searcher

import (
	"sync"
	"time"

	"battleship/experiments/metrics"
	"battleship/game"

	"golang.org/x/exp/rand"
)

// DefaultEpisodes is used when neither an episode budget nor a duration
// is configured.
const DefaultEpisodes = 2000

// A sample that covers every observed hit outweighs one that merely
// avoids the misses.
const (
	consistentWeight   = 10.0
	inconsistentWeight = 1.0
)

type Option func(h *Hunter)

func WithEpisodes(episodes int) Option {
	return func(h *Hunter) {
		if episodes > 0 {
			h.episodes = episodes
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(h *Hunter) {
		if duration > 0 {
			h.duration = duration
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(h *Hunter) {
		h.seed = seed
	}
}

func WithMetrics() Option {
	return func(h *Hunter) {
		h.metrics = metrics.NewCollector()
	}
}

// Hunter runs placement-sampling searches. Safe to reuse across moves;
// each Search call is self-contained.
type Hunter struct {
	goroutines int
	episodes   int
	duration   time.Duration
	seed       uint64
	metrics    metrics.Collector
}

func NewHunter(goroutines int, options ...Option) *Hunter {
	h := &Hunter{
		goroutines: goroutines,
		seed:       1,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(h)
	}
	if h.goroutines <= 0 {
		h.goroutines = 1
	}
	if h.episodes <= 0 && h.duration <= 0 {
		h.episodes = DefaultEpisodes
	}
	return h
}

// Search returns normalized occupancy weights over the unknown cells of
// view. Cells already shot get no weight. Results are deterministic for
// a fixed seed and episode budget when run with one goroutine.
func (h *Hunter) Search(view game.TargetView) (map[game.Coordinate]float64, metrics.SearchMetric) {
	h.metrics.Start(h.goroutines)

	var counts []float64
	if h.episodes > 0 {
		counts = h.iterate(view)
	} else {
		counts = h.countdown(view)
	}
	metric := h.metrics.Complete()

	total := 0.0
	unknown := view.UnknownCells()
	for _, c := range unknown {
		total += counts[c.Row*view.Size+c.Col]
	}

	policy := make(map[game.Coordinate]float64, len(unknown))
	for _, c := range unknown {
		if total > 0 {
			policy[c] = counts[c.Row*view.Size+c.Col] / total
		} else {
			policy[c] = 1.0 / float64(len(unknown))
		}
	}
	return policy, metric
}

func (h *Hunter) iterate(view game.TargetView) []float64 {
	task := make(chan any, h.episodes)
	for i := 0; i < h.episodes; i++ {
		task <- nil
	}
	close(task)

	total := make([]float64, view.Size*view.Size)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < h.goroutines; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(h.seed + uint64(worker)))
			local := make([]float64, len(total))
			for range task {
				h.sample(view, rng, local)
				h.metrics.AddEpisode()
			}

			mu.Lock()
			for j, v := range local {
				total[j] += v
			}
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	return total
}

func (h *Hunter) countdown(view game.TargetView) []float64 {
	done := make(chan any)

	total := make([]float64, view.Size*view.Size)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < h.goroutines; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(h.seed + uint64(worker)))
			local := make([]float64, len(total))
			for {
				select {
				case <-done:
					mu.Lock()
					for j, v := range local {
						total[j] += v
					}
					mu.Unlock()
					return
				default:
					h.sample(view, rng, local)
					h.metrics.AddEpisode()
				}
			}
		}(i)
	}

	<-time.After(h.duration)
	close(done)
	wg.Wait()

	return total
}

// sample draws one fleet placement and adds its weight to the occupancy
// counts of the unknown cells it covers.
func (h *Hunter) sample(view game.TargetView, rng *rand.Rand, counts []float64) {
	occupied, ok := sampleFleet(view, rng)
	if !ok {
		return
	}

	weight := inconsistentWeight
	if coversAllHits(view, occupied) {
		weight = consistentWeight
		h.metrics.AddConsistentSample()
	}

	for c := range occupied {
		if _, shot := view.Shots[c]; shot {
			continue
		}
		counts[c.Row*view.Size+c.Col] += weight
	}
}
