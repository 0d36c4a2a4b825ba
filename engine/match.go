// Package engine runs complete matches between two policies on a
// single game instance.
package engine

import (
	"fmt"
	"time"

	"battleship/env"
	"battleship/experiments/metrics"
	"battleship/game"

	"github.com/rs/zerolog/log"
)

// MaxMoves guards against a runaway match; a 10x10 game ends within 200
// shots regardless of play.
const MaxMoves = 10000

// Policies that expose their search statistics get them recorded per
// move.
type searchMetricSource interface {
	LastSearchMetric() metrics.SearchMetric
}

// Match pits two policies against each other over one randomly set up
// game. The seed drives both fleet placements; policy seeds are the
// policies' own concern.
type Match struct {
	Seed uint64
	Game *game.Game

	policies [2]env.Policy
}

func NewMatch(seed uint64, player1, player2 env.Policy) *Match {
	g := game.NewGame(seed)
	g.SetupRandom()
	return &Match{
		Seed:     seed,
		Game:     g,
		policies: [2]env.Policy{player1, player2},
	}
}

// Run plays the match to completion and returns the winner with the
// collected metrics.
func (m *Match) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		Seed:           m.Seed,
		StartingPlayer: m.Game.CurrentPlayer.String(),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	var lastShots [2]*game.Coordinate

	log.Info().
		Uint64("seed", m.Seed).
		Str("starting_player", m.Game.CurrentPlayer.String()).
		Msg("match started")

	step := 1
	for m.Game.Phase == game.PhaseInProgress && step <= MaxMoves {
		player := m.Game.CurrentPlayer
		obs := env.ObservationFor(m.Game, player, lastShots[int(player)], float32((step-1)%2))
		mask := env.ShotMaskFor(m.Game, player)

		action := m.policies[int(player)].Choose(obs, mask)
		var coord game.Coordinate
		if c, ok := env.ActionToCoordinate(action); ok && mask[action] == 1 {
			coord = c
		} else {
			// Policy misbehaved; fall back to the first valid move.
			valid := m.Game.ValidMoves(player)
			if len(valid) == 0 {
				return game.NoPlayer, gameMetric, moveMetrics,
					fmt.Errorf("no valid moves left for %s", player)
			}
			log.Warn().Str("player", player.String()).Int("action", action).
				Msg("illegal policy action, falling back to first valid move")
			coord = valid[0]
		}

		state, _, err := m.Game.MakeMove(player, coord)
		if err != nil {
			return game.NoPlayer, gameMetric, moveMetrics,
				fmt.Errorf("move rejected at step %d: %w", step, err)
		}

		shot := coord
		lastShots[int(player.Opponent())] = &shot

		moveMetric := metrics.MoveMetric{
			Step:    step,
			Player:  player.String(),
			Row:     coord.Row,
			Col:     coord.Col,
			Outcome: state.String(),
		}
		if source, ok := m.policies[int(player)].(searchMetricSource); ok {
			moveMetric.SearchMetric = source.LastSearchMetric()
		}
		moveMetrics = append(moveMetrics, moveMetric)
		step++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step - 1
	gameMetric.Winner = m.Game.Winner.String()

	log.Info().
		Str("winner", gameMetric.Winner).
		Int("moves", gameMetric.TotalMoves).
		Dur("duration", gameMetric.Duration).
		Msg("match finished")

	return m.Game.Winner, gameMetric, moveMetrics, nil
}
