// Package env adapts the battleship engine into a single-agent RL
// environment: observation tensors, integer actions with legality
// masks, and shaped rewards. The agent is always Player1; the opponent
// is driven by a pluggable Policy.
package env

import (
	"errors"

	"battleship/game"
	"battleship/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Reward shaping and episode limits.
const (
	InvalidActionPenalty      = -0.1
	HitReward                 = 0.1
	MissPenalty               = -0.01
	WinReward                 = 1.0
	LosePenalty               = -1.0
	PlacementSuccessReward    = 0.01
	PlacementCompletionReward = 0.05
	MaxSteps                  = 400
)

const (
	phasePlacement = "placement"
	phaseFiring    = "firing"
)

var (
	ErrNotReset    = errors.New("environment must be reset before stepping")
	ErrEpisodeOver = errors.New("episode has terminated")
)

// Policy selects an action index given an observation and the legality
// mask for the acting side. Implementations live above the engine:
// uniform random, heuristic hunters, placement-sampling search, or a
// frozen checkpoint supplied by the training layer.
type Policy interface {
	Choose(obs Observation, mask ActionMask) int
}

// StepOutcome records what a single step did, for reward calculation
// and telemetry.
type StepOutcome struct {
	AgentHit          bool
	AgentMiss         bool
	InvalidAction     bool
	PlacementSuccess  bool
	PlacementComplete bool
	Winner            game.Player
}

// Info carries the side-band data returned with every observation.
type Info struct {
	EpisodeID     string
	Phase         string
	InvalidAction bool
	ActionMask    ActionMask
	State         game.GameSnapshot
}

// StepResult bundles the outputs of one environment step.
type StepResult struct {
	Observation Observation
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        Info
}

type Option func(*Env)

// WithAgentPlacement makes the agent place its own fleet through
// placement actions before firing begins.
func WithAgentPlacement() Option {
	return func(e *Env) {
		e.allowAgentPlacement = true
	}
}

// WithOpponentPlacement lets the opponent placement policy lay out the
// opposing fleet instead of random placement.
func WithOpponentPlacement() Option {
	return func(e *Env) {
		e.allowOpponentPlacement = true
	}
}

func WithOpponentPolicy(p Policy) Option {
	return func(e *Env) {
		if p != nil {
			e.opponentPolicy = p
		}
	}
}

func WithOpponentPlacementPolicy(p Policy) Option {
	return func(e *Env) {
		if p != nil {
			e.opponentPlacementPolicy = p
		}
	}
}

// Env is a single-agent battleship environment. Not safe for concurrent
// use; run one Env per parallel episode.
type Env struct {
	allowAgentPlacement     bool
	allowOpponentPlacement  bool
	opponentPolicy          Policy
	opponentPlacementPolicy Policy

	rng              *rand.Rand
	game             *game.Game
	phase            string
	done             bool
	stepCount        int
	episodes         int
	episodeID        string
	pendingShips     map[game.ShipType]struct{}
	lastOpponentShot *game.Coordinate
	lastPlayerShot   *game.Coordinate
}

// NewEnv creates an environment whose randomness (per-episode game
// seeds, opponent fallbacks) derives entirely from seed.
func NewEnv(seed uint64, options ...Option) *Env {
	e := &Env{
		rng: rand.New(rand.NewSource(seed)),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// NumChannels is the observation channel count for this configuration.
func (e *Env) NumChannels() int {
	if e.allowAgentPlacement {
		return BaseNumChannels + NumShipTypes + 1
	}
	return BaseNumChannels
}

// NumActions is the action space size for this configuration.
func (e *Env) NumActions() int {
	if e.allowAgentPlacement || e.allowOpponentPlacement {
		return NumCells + NumShipTypes*PlacementPerShip
	}
	return NumCells
}

// Game exposes the live match for renderers and tests. Mutating it
// mid-episode is the caller's own risk.
func (e *Env) Game() *game.Game {
	return e.game
}

func (e *Env) EpisodeID() string {
	return e.episodeID
}

// Reset starts a new episode and returns the initial observation.
func (e *Env) Reset() (Observation, Info) {
	e.episodes++
	e.episodeID = uuid.NewString()
	e.game = game.NewGame(e.rng.Uint64())
	e.done = false
	e.stepCount = 0
	e.lastOpponentShot = nil
	e.lastPlayerShot = nil
	e.pendingShips = make(map[game.ShipType]struct{})

	if e.allowAgentPlacement {
		e.phase = phasePlacement
		for _, t := range game.FleetShipTypes {
			e.pendingShips[t] = struct{}{}
		}
	} else {
		e.phase = phaseFiring
		e.game.Board(game.Player1).RandomPlacement(e.rng)
	}

	if e.allowOpponentPlacement {
		e.placeOpponentFleet()
	} else {
		e.game.Board(game.Player2).RandomPlacement(e.rng)
	}

	if !e.allowAgentPlacement {
		e.startMatch()
	}

	log.Debug().
		Str("episode_id", e.episodeID).
		Int("episode", e.episodes).
		Str("phase", e.phase).
		Bool("agent_placement", e.allowAgentPlacement).
		Bool("opponent_placement", e.allowOpponentPlacement).
		Msg("environment reset")

	return e.observation(), e.info(false)
}

// Step applies one agent action. Invalid actions are penalized without
// consuming a game turn.
func (e *Env) Step(action int) (StepResult, error) {
	if e.game == nil {
		return StepResult{}, ErrNotReset
	}
	if e.done {
		return StepResult{}, ErrEpisodeOver
	}

	if e.allowAgentPlacement && e.phase == phasePlacement {
		return e.stepPlacement(action), nil
	}
	return e.stepFiring(action), nil
}

func (e *Env) stepFiring(action int) StepResult {
	coord, ok := ActionToCoordinate(action)
	if !ok {
		return e.invalidResult("placement_during_firing")
	}
	if ShotMaskFor(e.game, game.Player1)[action] == 0 {
		return e.invalidResult("illegal_target")
	}

	outcome := StepOutcome{Winner: game.NoPlayer}
	state, _, err := e.game.MakeMove(game.Player1, coord)
	if err != nil {
		// Unreachable once the mask was consulted.
		return e.invalidResult("rejected_move")
	}
	shot := coord
	e.lastPlayerShot = &shot
	if state == game.CellHit {
		outcome.AgentHit = true
	} else {
		outcome.AgentMiss = true
	}

	if e.game.Phase != game.PhaseFinished {
		e.opponentTurn()
	}
	if e.game.Phase == game.PhaseFinished {
		outcome.Winner = e.game.Winner
		e.done = true
	}

	e.stepCount++
	terminated := e.done
	truncated := false
	if !terminated && e.stepCount >= MaxSteps {
		truncated = true
		e.done = true
	}

	return StepResult{
		Observation: e.observation(),
		Reward:      rewardFor(outcome),
		Terminated:  terminated,
		Truncated:   truncated,
		Info:        e.info(false),
	}
}

func (e *Env) stepPlacement(action int) StepResult {
	pa, ok := ActionToPlacement(action)
	if !ok {
		return e.invalidResult("fire_during_placement")
	}
	if _, pending := e.pendingShips[pa.Type]; !pending {
		return e.invalidResult("ship_not_pending")
	}

	board := e.game.Board(game.Player1)
	if !board.PlaceShip(game.NewShip(pa.Type, pa.Start, pa.Orientation)) {
		return e.invalidResult("illegal_placement")
	}
	delete(e.pendingShips, pa.Type)

	outcome := StepOutcome{Winner: game.NoPlayer, PlacementSuccess: true}
	if len(e.pendingShips) == 0 {
		outcome.PlacementComplete = true
		e.startMatch()
		log.Debug().Str("episode_id", e.episodeID).Msg("agent placement complete")
	}

	return StepResult{
		Observation: e.observation(),
		Reward:      rewardFor(outcome),
		Info:        e.info(false),
	}
}

// opponentTurn plays Player2's answering shot, falling back to a
// uniform-random legal cell when the policy misbehaves.
func (e *Env) opponentTurn() {
	mask := ShotMaskFor(e.game, game.Player2)
	legal := utils.LegalIndices(mask)
	if len(legal) == 0 {
		return
	}

	action := -1
	if e.opponentPolicy != nil {
		obs := ObservationFor(e.game, game.Player2, e.lastPlayerShot, float32(e.stepCount%2))
		if a := e.opponentPolicy.Choose(obs, mask); a >= 0 && a < len(mask) && mask[a] == 1 {
			action = a
		}
	}
	if action < 0 {
		action = legal[e.rng.Intn(len(legal))]
	}

	coord, _ := ActionToCoordinate(action)
	if _, _, err := e.game.MakeMove(game.Player2, coord); err != nil {
		log.Error().Err(err).Msg("opponent shot rejected")
		return
	}
	shot := coord
	e.lastOpponentShot = &shot
}

// placeOpponentFleet lays out Player2's ships through the placement
// policy, one pending ship at a time.
func (e *Env) placeOpponentFleet() {
	pending := make(map[game.ShipType]struct{}, NumShipTypes)
	for _, t := range game.FleetShipTypes {
		pending[t] = struct{}{}
	}

	board := e.game.Board(game.Player2)
	for len(pending) > 0 {
		mask := e.placementMask(game.Player2, pending)
		legal := utils.LegalIndices(mask)
		if len(legal) == 0 {
			// No legal placement left; start over.
			board.RandomPlacement(e.rng)
			return
		}

		action := -1
		if e.opponentPlacementPolicy != nil {
			obs := ObservationFor(e.game, game.Player2, nil, 0)
			if a := e.opponentPlacementPolicy.Choose(obs, mask); a >= 0 && a < len(mask) && mask[a] == 1 {
				action = a
			}
		}
		if action < 0 {
			action = legal[e.rng.Intn(len(legal))]
		}

		pa, _ := ActionToPlacement(action)
		board.PlaceShip(game.NewShip(pa.Type, pa.Start, pa.Orientation))
		delete(pending, pa.Type)
	}
}

// startMatch is the manual setup transition: fleets are in place, the
// caller advances the phase.
func (e *Env) startMatch() {
	e.phase = phaseFiring
	e.game.Phase = game.PhaseInProgress
	e.game.CurrentPlayer = game.Player1
	e.game.Winner = game.NoPlayer
}

func (e *Env) invalidResult(reason string) StepResult {
	log.Warn().
		Str("episode_id", e.episodeID).
		Str("phase", e.phase).
		Str("reason", reason).
		Msg("invalid action")
	return StepResult{
		Observation: e.observation(),
		Reward:      rewardFor(StepOutcome{InvalidAction: true, Winner: game.NoPlayer}),
		Info:        e.info(true),
	}
}

func (e *Env) observation() Observation {
	obs := make(Observation, e.NumChannels()*NumCells)
	if e.game == nil {
		return obs
	}
	fillBaseChannels(obs, e.game, game.Player1, e.lastOpponentShot, float32(e.stepCount%2))

	if e.allowAgentPlacement {
		for i, t := range game.FleetShipTypes {
			if _, ok := e.pendingShips[t]; ok {
				obs.fillChannel(BaseNumChannels+i, 1)
			}
		}
		if e.phase == phasePlacement {
			obs.fillChannel(BaseNumChannels+NumShipTypes, 1)
		}
	}
	return obs
}

func (e *Env) info(invalid bool) Info {
	return Info{
		EpisodeID:     e.episodeID,
		Phase:         e.phase,
		InvalidAction: invalid,
		ActionMask:    e.legalMask(),
		State:         e.game.Snapshot(),
	}
}

func (e *Env) legalMask() ActionMask {
	if e.allowAgentPlacement && e.phase == phasePlacement {
		return e.placementMask(game.Player1, e.pendingShips)
	}
	mask := make(ActionMask, e.NumActions())
	copy(mask, ShotMaskFor(e.game, game.Player1))
	return mask
}

func (e *Env) placementMask(p game.Player, pending map[game.ShipType]struct{}) ActionMask {
	mask := make(ActionMask, e.NumActions())
	board := e.game.Board(p)
	for _, t := range game.FleetShipTypes {
		if _, ok := pending[t]; !ok {
			continue
		}
		for row := 0; row < BoardSize; row++ {
			for col := 0; col < BoardSize; col++ {
				for _, o := range []game.Orientation{game.Horizontal, game.Vertical} {
					pa := PlacementAction{
						Type:        t,
						Start:       game.Coordinate{Row: row, Col: col},
						Orientation: o,
					}
					if board.CanPlaceShip(game.NewShip(pa.Type, pa.Start, pa.Orientation)) {
						mask[PlacementToAction(pa)] = 1
					}
				}
			}
		}
	}
	return mask
}

func rewardFor(o StepOutcome) float64 {
	if o.InvalidAction {
		return InvalidActionPenalty
	}
	reward := 0.0
	if o.AgentHit {
		reward += HitReward
	}
	if o.AgentMiss {
		reward += MissPenalty
	}
	if o.PlacementSuccess {
		reward += PlacementSuccessReward
	}
	if o.PlacementComplete {
		reward += PlacementCompletionReward
	}
	switch o.Winner {
	case game.Player1:
		reward += WinReward
	case game.Player2:
		reward += LosePenalty
	}
	return reward
}
