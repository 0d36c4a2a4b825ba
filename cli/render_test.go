package cli

import (
	"strings"
	"testing"

	"battleship/game"

	"github.com/stretchr/testify/require"
)

func TestFormatBoardSymbols(t *testing.T) {
	b := game.NewBoard()
	require.True(t, b.PlaceShip(game.NewShip(game.Destroyer, game.Coordinate{Row: 0, Col: 0}, game.Horizontal)))

	_, _, err := b.ReceiveShot(game.Coordinate{Row: 0, Col: 0}) // hit
	require.NoError(t, err)
	_, _, err = b.ReceiveShot(game.Coordinate{Row: 5, Col: 5}) // miss
	require.NoError(t, err)

	hidden := FormatBoard(b, false)
	require.Contains(t, hidden, "X", "Hits always render")
	require.Contains(t, hidden, "o", "Misses always render")
	require.NotContains(t, hidden, "S", "Ships stay hidden")

	shown := FormatBoard(b, true)
	require.Contains(t, shown, "S", "The unhit destroyer cell renders as a ship")

	// One row per board row plus a column header line.
	require.Len(t, strings.Split(shown, "\n"), b.Size+1)
	require.Contains(t, shown, "A |")
	require.Contains(t, shown, "J |")
}

func TestFormatCoordinate(t *testing.T) {
	require.Equal(t, "A1", FormatCoordinate(game.Coordinate{Row: 0, Col: 0}))
	require.Equal(t, "C5", FormatCoordinate(game.Coordinate{Row: 2, Col: 4}))
	require.Equal(t, "J10", FormatCoordinate(game.Coordinate{Row: 9, Col: 9}))
}

func TestDescribeShot(t *testing.T) {
	c := game.Coordinate{Row: 0, Col: 0}

	require.Equal(t, "Player1 fired at A1: miss", DescribeShot(game.Player1, c, nil))

	destroyer := game.NewShip(game.Destroyer, c, game.Horizontal)
	destroyer.Hit(c)
	require.Equal(t, "Player1 fired at A1: hit", DescribeShot(game.Player1, c, destroyer))

	destroyer.Hit(game.Coordinate{Row: 0, Col: 1})
	require.Equal(t, "Player2 fired at A1: sank the destroyer!",
		DescribeShot(game.Player2, c, destroyer))
}
