// Package experiments pits configured policies against each other over
// many games and persists the results as CSV files and in a SQLite
// results database.
package experiments

import (
	"fmt"
	"path/filepath"
	"time"

	"battleship/engine"
	"battleship/env"
	"battleship/experiments/metrics"
	"battleship/policy"
	"battleship/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NumGames is played per matchup.
const NumGames = 30

var strengthConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: "random", Seed: 101},
	{ID: 2, Kind: "hunt", Seed: 202},
	{ID: 3, Kind: "search", Goroutines: 1, Episodes: 2000, Seed: 303},
	{ID: 4, Kind: "search", Goroutines: 8, Episodes: 2000, Seed: 404},
}

// RunPolicyStrengthExperiment pairs the uniform-random baseline against
// each configured policy.
func RunPolicyStrengthExperiment() error {
	baseline := metrics.AgentConfig{ID: 0, Kind: "random", Seed: 7}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range strengthConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return runExperiment("policy_strength", append(strengthConfigs, baseline), matchUps, NumGames)
}

// RunSearchParallelismExperiment plays the search policy against itself
// at increasing goroutine counts for throughput comparison.
func RunSearchParallelismExperiment() error {
	configs := []metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8, 16} {
		configs = append(configs, metrics.AgentConfig{
			ID:         i + 1,
			Kind:       "search",
			Goroutines: goroutines,
			Duration:   10 * time.Millisecond,
			Seed:       uint64(1000 + i),
		})
	}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return runExperiment("search_parallelism", configs, matchUps, 5)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, numGames int) error {
	writer, err := metrics.NewWriter(name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}

	store, err := metrics.NewStore(filepath.Join("experiments", "results", "results.db"))
	if err != nil {
		return fmt.Errorf("failed to open results store: %w", err)
	}
	defer store.Close()

	runID := uuid.NewString()
	if err := store.InsertRun(runID, name, time.Now()); err != nil {
		return err
	}
	if err := store.InsertAgentConfigs(runID, configs); err != nil {
		return err
	}

	log.Info().Str("experiment", name).Str("run_id", runID).
		Int("matchups", len(matchUps)).Int("games_per_matchup", numGames).
		Msg("starting experiment")

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	for _, matchup := range matchUps {
		config1, config2 := matchup[0], matchup[1]
		log.Info().Interface("agent1", config1).Interface("agent2", config2).
			Msg("starting matchup")

		for i := 0; i < numGames; i++ {
			count++
			seed := uint64(count)*7919 + 1 // Distinct, reproducible game seeds

			match := engine.NewMatch(seed,
				buildPolicy(config1, seed),
				buildPolicy(config2, seed))
			winner, gameMetric, moveMetrics, err := match.Run()
			if err != nil {
				return fmt.Errorf("game %d failed: %w", count, err)
			}

			record := metrics.GameRecord{
				ID:         uuid.NewString(),
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			}
			gameRecords = append(gameRecords, record)
			if err := store.InsertGameRecord(runID, record); err != nil {
				return err
			}

			gameMoves := make([]metrics.MoveRecord, len(moveMetrics))
			for j, moveMetric := range moveMetrics {
				gameMoves[j] = metrics.MoveRecord{Game: record.ID, MoveMetric: moveMetric}
			}
			moveRecords = append(moveRecords, gameMoves...)
			if err := store.InsertMoveRecords(gameMoves); err != nil {
				return err
			}

			log.Info().Int("game", count).Str("winner", winner.String()).
				Int("moves", gameMetric.TotalMoves).Msg("game over")
		}
	}

	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}

	log.Info().Str("experiment", name).Str("results", writer.BaseDir()).
		Int("games", len(gameRecords)).Msg("finished experiment")
	return nil
}

// buildPolicy instantiates the policy named by config, mixing the game
// seed into the policy seed so repeated games differ while the whole
// run stays reproducible.
func buildPolicy(config metrics.AgentConfig, gameSeed uint64) env.Policy {
	seed := config.Seed ^ gameSeed
	switch config.Kind {
	case "hunt":
		return policy.NewHuntTarget(seed)
	case "search":
		options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}
		if config.Episodes > 0 {
			options = append(options, searcher.WithEpisodes(config.Episodes))
		}
		if config.Duration > 0 {
			options = append(options, searcher.WithDuration(config.Duration))
		}
		return policy.NewSearch(seed, searcher.NewHunter(config.Goroutines, options...))
	default:
		return policy.NewRandom(seed)
	}
}
