package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGameSnapshot(t *testing.T) {
	g := NewGame(1)
	snapshot := g.Snapshot()

	require.Equal(t, PhaseSetup, snapshot.Phase)
	require.Equal(t, Player1, snapshot.CurrentPlayer)
	require.Equal(t, NoPlayer, snapshot.Winner)
	for _, p := range []Player{Player1, Player2} {
		require.Empty(t, snapshot.Board(p).Ships, "No ships before setup")
		require.Empty(t, snapshot.Board(p).Shots, "No shots before setup")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := NewGame(11)
	g.SetupRandom()

	before := g.Snapshot()
	move := g.ValidMoves(g.CurrentPlayer)[0]
	_, _, err := g.MakeMove(g.CurrentPlayer, move)
	require.NoError(t, err)

	require.Empty(t, before.Board(Player2).Shots,
		"A move after the snapshot must not leak into it")

	// And vice versa: mutating the snapshot must not reach the live game.
	after := g.Snapshot()
	after.Board(Player2).Shots[Coordinate{9, 9}] = CellHit
	require.Equal(t, CellUnknown, g.Board(Player2).CellStateAt(Coordinate{9, 9}))
}

func TestSetupRandom(t *testing.T) {
	g := NewGame(42)
	g.SetupRandom()

	require.Equal(t, PhaseInProgress, g.Phase)
	require.Equal(t, Player1, g.CurrentPlayer)
	require.Equal(t, NoPlayer, g.Winner)
	require.Len(t, g.Board(Player1).Ships(), len(FleetShipTypes))
	require.Len(t, g.Board(Player2).Ships(), len(FleetShipTypes))
}

func TestSetupRandomDeterministic(t *testing.T) {
	g1 := NewGame(42)
	g2 := NewGame(42)
	g1.SetupRandom()
	g2.SetupRandom()

	for _, p := range []Player{Player1, Player2} {
		ships1 := g1.Board(p).Ships()
		ships2 := g2.Board(p).Ships()
		require.Len(t, ships2, len(ships1))
		for i := range ships1 {
			require.Equal(t, ships1[i].Coordinates(), ships2[i].Coordinates(),
				"Identically seeded games should place identically")
		}
	}
}

func TestMakeMoveProtocolViolations(t *testing.T) {
	t.Run("before setup", func(t *testing.T) {
		g := NewGame(1)

		_, _, err := g.MakeMove(Player1, Coordinate{0, 0})
		require.ErrorIs(t, err, ErrNotInProgress)
	})

	t.Run("out of turn leaves state unchanged", func(t *testing.T) {
		g := NewGame(1)
		g.SetupRandom()
		before := g.Snapshot()

		_, _, err := g.MakeMove(Player2, Coordinate{0, 0})
		require.ErrorIs(t, err, ErrWrongTurn)
		require.Equal(t, before, g.Snapshot(), "A rejected move must not mutate anything")
	})

	t.Run("shot errors propagate unchanged", func(t *testing.T) {
		g := NewGame(1)
		g.SetupRandom()

		_, _, err := g.MakeMove(Player1, Coordinate{0, -1})
		require.ErrorIs(t, err, ErrOutOfBounds)
		require.Equal(t, Player1, g.CurrentPlayer, "A failed shot must not consume the turn")

		_, _, err = g.MakeMove(Player1, Coordinate{3, 3})
		require.NoError(t, err)
		_, _, err = g.MakeMove(Player2, Coordinate{3, 3})
		require.NoError(t, err)
		_, _, err = g.MakeMove(Player1, Coordinate{3, 3})
		require.ErrorIs(t, err, ErrDuplicateShot)
		require.Equal(t, Player1, g.CurrentPlayer)
	})
}

func TestMakeMoveAlternatesTurns(t *testing.T) {
	g := NewGame(5)
	g.SetupRandom()

	_, _, err := g.MakeMove(Player1, g.ValidMoves(Player1)[0])
	require.NoError(t, err)
	require.Equal(t, Player2, g.CurrentPlayer)

	_, _, err = g.MakeMove(Player2, g.ValidMoves(Player2)[0])
	require.NoError(t, err)
	require.Equal(t, Player1, g.CurrentPlayer)
}

func TestValidMoves(t *testing.T) {
	t.Run("empty during setup", func(t *testing.T) {
		g := NewGame(1)
		require.Empty(t, g.ValidMoves(Player1))
	})

	t.Run("shrinks by one per shot", func(t *testing.T) {
		g := NewGame(1)
		g.SetupRandom()

		require.Len(t, g.ValidMoves(Player1), DefaultBoardSize*DefaultBoardSize)
		_, _, err := g.MakeMove(Player1, Coordinate{4, 7})
		require.NoError(t, err)

		moves := g.ValidMoves(Player1)
		require.Len(t, moves, DefaultBoardSize*DefaultBoardSize-1)
		require.NotContains(t, moves, Coordinate{4, 7})
	})
}

// Drives a full match by always taking the first valid move, then checks
// the terminal state and that no cell was ever targeted twice.
func TestFullMatchFirstValidMove(t *testing.T) {
	g := NewGame(42)
	g.SetupRandom()

	targeted := map[Player]map[Coordinate]int{
		Player1: {},
		Player2: {},
	}
	moves := 0
	for g.Phase == PhaseInProgress {
		require.Less(t, moves, 2*DefaultBoardSize*DefaultBoardSize,
			"Match should finish before both boards are exhausted")
		player := g.CurrentPlayer
		move := g.ValidMoves(player)[0]
		targeted[player][move]++

		_, _, err := g.MakeMove(player, move)
		require.NoError(t, err)
		moves++
	}

	require.Equal(t, PhaseFinished, g.Phase)
	require.Contains(t, []Player{Player1, Player2}, g.Winner)
	require.True(t, g.Board(g.Winner.Opponent()).AllShipsSunk(),
		"The loser's fleet should be fully sunk")

	for player, cells := range targeted {
		for c, count := range cells {
			require.Equal(t, 1, count, "%s targeted %v more than once", player, c)
		}
	}
}

// The manual setup path: fleets placed directly on the boards, phase
// advanced by the caller.
func TestManualSetupPath(t *testing.T) {
	g := NewGame(9)
	require.True(t, g.Board(Player1).PlaceShip(NewShip(Destroyer, Coordinate{0, 0}, Horizontal)))
	require.True(t, g.Board(Player2).PlaceShip(NewShip(Destroyer, Coordinate{5, 5}, Vertical)))
	g.Phase = PhaseInProgress
	g.CurrentPlayer = Player1
	g.Winner = NoPlayer

	_, _, err := g.MakeMove(Player1, Coordinate{5, 5})
	require.NoError(t, err)
	_, _, err = g.MakeMove(Player2, Coordinate{0, 0})
	require.NoError(t, err)
	state, ship, err := g.MakeMove(Player1, Coordinate{6, 5})
	require.NoError(t, err)

	require.Equal(t, CellHit, state)
	require.True(t, ship.IsSunk())
	require.Equal(t, PhaseFinished, g.Phase)
	require.Equal(t, Player1, g.Winner)
	require.Equal(t, Player1, g.CurrentPlayer, "Turn alternation stops once the match is over")
}

func TestPlayerOpponent(t *testing.T) {
	require.Equal(t, Player2, Player1.Opponent())
	require.Equal(t, Player1, Player2.Opponent())
	require.Equal(t, Player1, Player1.Opponent().Opponent())
}
