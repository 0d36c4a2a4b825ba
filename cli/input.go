package cli

import (
	"fmt"
	"strconv"
	"strings"

	"battleship/game"
)

// ParseCoordinate accepts letter-number form (A5) or two numbers
// ("3 7", zero-based) and validates against the board size.
func ParseCoordinate(text string, size int) (game.Coordinate, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(text))
	if cleaned == "" {
		return game.Coordinate{}, fmt.Errorf("empty coordinate")
	}

	var row, col int
	first := cleaned[0]
	if first >= 'A' && first <= 'Z' {
		row = int(first - 'A')
		n, err := strconv.Atoi(cleaned[1:])
		if err != nil {
			return game.Coordinate{}, fmt.Errorf("column must be a number between 1 and %d", size)
		}
		col = n - 1
	} else {
		parts := strings.Fields(cleaned)
		if len(parts) != 2 {
			return game.Coordinate{}, fmt.Errorf("use formats like A5 or '3 7'")
		}
		var err error
		if row, err = strconv.Atoi(parts[0]); err != nil {
			return game.Coordinate{}, fmt.Errorf("row must be a number")
		}
		if col, err = strconv.Atoi(parts[1]); err != nil {
			return game.Coordinate{}, fmt.Errorf("column must be a number")
		}
	}

	if row < 0 || row >= size || col < 0 || col >= size {
		return game.Coordinate{}, fmt.Errorf("coordinates must be within the %dx%d board", size, size)
	}
	return game.Coordinate{Row: row, Col: col}, nil
}

// ParseOrientation maps H/V style input to an orientation.
func ParseOrientation(text string) (game.Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "H", "HOR", "HORIZONTAL":
		return game.Horizontal, nil
	case "V", "VER", "VERTICAL":
		return game.Vertical, nil
	default:
		return game.Horizontal, fmt.Errorf("enter H for horizontal or V for vertical")
	}
}
