package env

import "battleship/game"

const (
	BoardSize = game.DefaultBoardSize
	NumCells  = BoardSize * BoardSize

	numOrientations = 2
	// Placement actions per ship type: one per (cell, orientation) pair.
	PlacementPerShip = NumCells * numOrientations
)

// NumShipTypes is the fleet size; placement actions are grouped per type.
var NumShipTypes = len(game.FleetShipTypes)

// ActionMask flags which action indices are currently legal (1) for the
// acting side.
type ActionMask []int8

// PlacementAction is a decoded placement command.
type PlacementAction struct {
	Type        game.ShipType
	Start       game.Coordinate
	Orientation game.Orientation
}

// CoordinateToAction maps a cell to its fire-action index (row major).
func CoordinateToAction(c game.Coordinate) int {
	return c.Row*BoardSize + c.Col
}

// ActionToCoordinate decodes a fire action. ok is false when the index
// falls outside the fire-action range.
func ActionToCoordinate(action int) (game.Coordinate, bool) {
	if action < 0 || action >= NumCells {
		return game.Coordinate{}, false
	}
	return game.Coordinate{Row: action / BoardSize, Col: action % BoardSize}, true
}

// PlacementToAction maps a placement command to its action index.
// Placement actions sit after the fire actions, grouped by ship type.
func PlacementToAction(pa PlacementAction) int {
	orientation := 0
	if pa.Orientation == game.Vertical {
		orientation = 1
	}
	return NumCells + int(pa.Type)*PlacementPerShip + CoordinateToAction(pa.Start)*numOrientations + orientation
}

// ActionToPlacement decodes a placement action. ok is false for fire
// actions and out-of-range indices.
func ActionToPlacement(action int) (PlacementAction, bool) {
	offset := action - NumCells
	if offset < 0 || offset >= NumShipTypes*PlacementPerShip {
		return PlacementAction{}, false
	}

	shipIdx := offset / PlacementPerShip
	rest := offset % PlacementPerShip
	cell := rest / numOrientations
	orientation := game.Horizontal
	if rest%numOrientations == 1 {
		orientation = game.Vertical
	}
	return PlacementAction{
		Type:        game.FleetShipTypes[shipIdx],
		Start:       game.Coordinate{Row: cell / BoardSize, Col: cell % BoardSize},
		Orientation: orientation,
	}, true
}
