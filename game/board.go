package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
)

// DefaultBoardSize is the only configuration the engine is exercised
// with, though nothing below hard-codes it.
const DefaultBoardSize = 10

// Attempts per ship before RandomPlacement gives up on the current
// layout and restarts the whole fleet.
const maxPlacementAttempts = 1000

var (
	ErrOutOfBounds   = errors.New("shot out of bounds")
	ErrDuplicateShot = errors.New("cell already targeted")
)

// CellState is the per-cell view derived from a board's shot history.
// Cells without an entry in the history are unknown.
type CellState int

const (
	CellUnknown CellState = iota
	CellMiss
	CellHit
)

func (s CellState) String() string {
	switch s {
	case CellMiss:
		return "miss"
	case CellHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Board holds one player's fleet and the shots it has received. It
// arbitrates placement legality and shot resolution; turn order and win
// detection live in Game.
type Board struct {
	Size int
	// AllowAdjacent permits ships to touch. When false, every cell in
	// the 8-neighbourhood of a placed ship is off limits to others.
	AllowAdjacent bool

	ships []*Ship
	shots map[Coordinate]CellState
}

func NewBoard() *Board {
	return &Board{
		Size:          DefaultBoardSize,
		AllowAdjacent: true,
		shots:         make(map[Coordinate]CellState),
	}
}

// IsValidCoordinate reports whether c lies inside the board.
func (b *Board) IsValidCoordinate(c Coordinate) bool {
	return c.Row >= 0 && c.Row < b.Size && c.Col >= 0 && c.Col < b.Size
}

// Ships returns the placed fleet in placement order. The slice is a
// copy; the ships themselves are live.
func (b *Board) Ships() []*Ship {
	out := make([]*Ship, len(b.ships))
	copy(out, b.ships)
	return out
}

// ShotsTaken returns a copy of the shot history.
func (b *Board) ShotsTaken() map[Coordinate]CellState {
	out := make(map[Coordinate]CellState, len(b.shots))
	for c, s := range b.shots {
		out[c] = s
	}
	return out
}

// CanPlaceShip reports whether ship fits: all cells in bounds, no
// overlap with the placed fleet, and outside the padded neighbourhood
// of every placed ship unless AllowAdjacent is set. Pure predicate.
func (b *Board) CanPlaceShip(ship *Ship) bool {
	coords := ship.Coordinates()
	for _, c := range coords {
		if !b.IsValidCoordinate(c) {
			return false
		}
	}

	for _, placed := range b.ships {
		if ship.Overlaps(placed) {
			return false
		}
	}

	if !b.AllowAdjacent {
		forbidden := b.paddedNeighbourhood(b.occupiedCoordinates())
		for _, c := range coords {
			if _, ok := forbidden[c]; ok {
				return false
			}
		}
	}

	return true
}

// PlaceShip adds ship to the fleet if placement is legal. Rejection is
// an expected outcome, not an error: callers retry with a different
// candidate.
func (b *Board) PlaceShip(ship *Ship) bool {
	if !b.CanPlaceShip(ship) {
		return false
	}
	b.ships = append(b.ships, ship)
	return true
}

// ReceiveShot resolves a shot at c. It is the single point of mutation
// for the shot history. At most one ship can occupy a cell, so at most
// one ship reports the hit.
func (b *Board) ReceiveShot(c Coordinate) (CellState, *Ship, error) {
	if !b.IsValidCoordinate(c) {
		return CellUnknown, nil, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, c.Row, c.Col)
	}
	if _, ok := b.shots[c]; ok {
		return CellUnknown, nil, fmt.Errorf("%w: (%d,%d)", ErrDuplicateShot, c.Row, c.Col)
	}

	for _, ship := range b.ships {
		if ship.Hit(c) {
			b.shots[c] = CellHit
			return CellHit, ship, nil
		}
	}

	b.shots[c] = CellMiss
	return CellMiss, nil, nil
}

// CellStateAt returns the recorded outcome at c, or CellUnknown.
func (b *Board) CellStateAt(c Coordinate) CellState {
	return b.shots[c]
}

// AllShipsSunk reports whether every placed ship is sunk. Vacuously true
// for an empty fleet; callers must ensure the fleet is complete before
// relying on this for win detection.
func (b *Board) AllShipsSunk() bool {
	for _, ship := range b.ships {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}

// RandomPlacement clears the board and places one ship of each type,
// resampling orientation and start uniformly until each candidate fits.
// If a ship exhausts its attempt budget the whole fleet is replaced
// from scratch.
func (b *Board) RandomPlacement(rng *rand.Rand) {
	for {
		b.ships = nil
		b.shots = make(map[Coordinate]CellState)
		if b.tryPlaceFleet(rng) {
			return
		}
	}
}

func (b *Board) tryPlaceFleet(rng *rand.Rand) bool {
	for _, t := range FleetShipTypes {
		placed := false
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			orientation := Horizontal
			if rng.Intn(2) == 1 {
				orientation = Vertical
			}
			start := Coordinate{Row: rng.Intn(b.Size), Col: rng.Intn(b.Size)}
			if b.PlaceShip(NewShip(t, start, orientation)) {
				placed = true
				break
			}
		}
		if !placed {
			return false
		}
	}
	return true
}

func (b *Board) occupiedCoordinates() map[Coordinate]struct{} {
	occupied := make(map[Coordinate]struct{})
	for _, ship := range b.ships {
		for _, c := range ship.Coordinates() {
			occupied[c] = struct{}{}
		}
	}
	return occupied
}

// paddedNeighbourhood returns the given cells plus their in-bounds
// 8-neighbours.
func (b *Board) paddedNeighbourhood(coords map[Coordinate]struct{}) map[Coordinate]struct{} {
	padded := make(map[Coordinate]struct{}, len(coords))
	for c := range coords {
		padded[c] = struct{}{}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				n := Coordinate{Row: c.Row + dr, Col: c.Col + dc}
				if b.IsValidCoordinate(n) {
					padded[n] = struct{}{}
				}
			}
		}
	}
	return padded
}
