package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

var (
	ErrNotInProgress = errors.New("game is not in progress")
	ErrWrongTurn     = errors.New("not this player's turn")
)

type Player int

const (
	Player1 Player = iota
	Player2
)

// NoPlayer marks the absence of a winner while a match is unresolved.
const NoPlayer Player = -1

// Opponent maps each player to the other.
func (p Player) Opponent() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return "NoPlayer"
	}
}

func (p Player) index() int {
	return int(p)
}

// Phase is the linear match lifecycle. No transition returns to an
// earlier phase.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseInProgress
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseInProgress:
		return "in_progress"
	default:
		return "finished"
	}
}

// Game owns two boards, turn order, and match lifecycle. It is the sole
// entry point for mutating gameplay state once a match is running.
//
// Phase, CurrentPlayer, and Winner are exported to support the manual
// setup path: callers that place fleets directly on the boards advance
// the phase themselves and are trusted to leave complete fleets behind.
// A Game is not safe for concurrent use; run one per episode.
type Game struct {
	Phase         Phase
	CurrentPlayer Player
	Winner        Player

	boards [2]*Board
	rng    *rand.Rand
}

// NewGame creates a fresh match in the setup phase. All randomness is
// driven by the supplied seed so that identically seeded games produce
// identical placements.
func NewGame(seed uint64) *Game {
	return &Game{
		Phase:         PhaseSetup,
		CurrentPlayer: Player1,
		Winner:        NoPlayer,
		boards:        [2]*Board{NewBoard(), NewBoard()},
		rng:           rand.New(rand.NewSource(seed)),
	}
}

// Board returns the live board owned by p.
func (g *Game) Board(p Player) *Board {
	return g.boards[p.index()]
}

// SetupRandom places both fleets at random and starts the match with
// Player1 to move.
func (g *Game) SetupRandom() {
	for _, b := range g.boards {
		b.RandomPlacement(g.rng)
	}
	g.Phase = PhaseInProgress
	g.CurrentPlayer = Player1
	g.Winner = NoPlayer
}

// MakeMove applies one shot by p against the opponent's board, enforcing
// phase and turn order. When the shot sinks the last ship the match
// finishes with p as winner and CurrentPlayer frozen; otherwise the turn
// passes to the opponent. The shot outcome is returned so callers can
// react (reward assignment, rendering).
func (g *Game) MakeMove(p Player, c Coordinate) (CellState, *Ship, error) {
	if g.Phase != PhaseInProgress {
		return CellUnknown, nil, fmt.Errorf("%w: phase is %s", ErrNotInProgress, g.Phase)
	}
	if p != g.CurrentPlayer {
		return CellUnknown, nil, fmt.Errorf("%w: %s moved on %s's turn", ErrWrongTurn, p, g.CurrentPlayer)
	}

	defender := g.boards[p.Opponent().index()]
	state, ship, err := defender.ReceiveShot(c)
	if err != nil {
		return state, ship, err
	}

	if defender.AllShipsSunk() {
		g.Winner = p
		g.Phase = PhaseFinished
	} else {
		g.CurrentPlayer = p.Opponent()
	}
	return state, ship, nil
}

// ValidMoves returns, in row-major order, every cell on the opponent's
// board that p has not yet targeted. Empty unless the match is in
// progress. The slice is recomputed on each call.
func (g *Game) ValidMoves(p Player) []Coordinate {
	if g.Phase != PhaseInProgress {
		return nil
	}
	target := g.boards[p.Opponent().index()]
	moves := make([]Coordinate, 0, target.Size*target.Size)
	for row := 0; row < target.Size; row++ {
		for col := 0; col < target.Size; col++ {
			c := Coordinate{Row: row, Col: col}
			if target.CellStateAt(c) == CellUnknown {
				moves = append(moves, c)
			}
		}
	}
	return moves
}
