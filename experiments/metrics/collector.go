package metrics

import (
	"sync/atomic"
	"time"
)

// SearchMetric describes one placement-sampling search: how many fleet
// samples were drawn and how many were consistent with every observed
// hit.
type SearchMetric struct {
	Goroutines        int
	Duration          time.Duration
	Episodes          int
	ConsistentSamples int
}

// MoveMetric describes one shot of a match.
type MoveMetric struct {
	Step    int
	Player  string
	Row     int
	Col     int
	Outcome string
	SearchMetric
}

// GameMetric describes one completed match.
type GameMetric struct {
	Seed           uint64
	StartingPlayer string
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

// Collector accumulates search statistics from concurrent workers.
type Collector interface {
	Start(goroutines int)
	AddEpisode()
	AddConsistentSample()
	Complete() SearchMetric
}

type collector struct {
	goroutines int
	startTime  time.Time
	episodes   atomic.Int32
	consistent atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(goroutines int) {
	c.startTime = time.Now()
	c.goroutines = goroutines
	c.episodes.Store(0)
	c.consistent.Store(0)
}

func (c *collector) AddEpisode() {
	c.episodes.Add(1)
}

func (c *collector) AddConsistentSample() {
	c.consistent.Add(1)
}

func (c *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:        c.goroutines,
		Duration:          time.Since(c.startTime),
		Episodes:          int(c.episodes.Load()),
		ConsistentSamples: int(c.consistent.Load()),
	}
}

type dummyCollector struct{}

// NewDummyCollector returns a no-op collector for searches that do not
// report metrics.
func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (d *dummyCollector) Start(goroutines int)   {}
func (d *dummyCollector) AddEpisode()            {}
func (d *dummyCollector) AddConsistentSample()   {}
func (d *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
