// Package cli renders boards as text and parses player input for the
// interactive driver.
package cli

import (
	"fmt"
	"strings"

	"battleship/game"
)

const rowLabels = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// FormatBoard draws a board grid: X for hits, o for misses, S for ship
// cells (when revealed), and . for open water.
func FormatBoard(b *game.Board, showShips bool) string {
	shipCells := make(map[game.Coordinate]struct{})
	if showShips {
		for _, ship := range b.Ships() {
			for _, c := range ship.Coordinates() {
				shipCells[c] = struct{}{}
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("    ")
	for col := 0; col < b.Size; col++ {
		fmt.Fprintf(&sb, "%2d ", col+1)
	}
	for row := 0; row < b.Size; row++ {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%c |", rowLabels[row])
		for col := 0; col < b.Size; col++ {
			c := game.Coordinate{Row: row, Col: col}
			symbol := "."
			switch b.CellStateAt(c) {
			case game.CellHit:
				symbol = "X"
			case game.CellMiss:
				symbol = "o"
			default:
				if _, ok := shipCells[c]; ok {
					symbol = "S"
				}
			}
			fmt.Fprintf(&sb, "%2s ", symbol)
		}
	}
	return sb.String()
}

// FormatCoordinate renders a cell in letter-number form, e.g. A5.
func FormatCoordinate(c game.Coordinate) string {
	return fmt.Sprintf("%c%d", rowLabels[c.Row], c.Col+1)
}

// DescribeShot returns a one-line summary of a resolved shot.
func DescribeShot(player game.Player, c game.Coordinate, ship *game.Ship) string {
	outcome := "miss"
	if ship != nil {
		outcome = "hit"
		if ship.IsSunk() {
			outcome = fmt.Sprintf("sank the %s!", ship.Type)
		}
	}
	return fmt.Sprintf("%s fired at %s: %s", player, FormatCoordinate(c), outcome)
}
