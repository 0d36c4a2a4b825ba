package game

import "fmt"

// Coordinate identifies a single board cell. Value type, usable as a map key.
type Coordinate struct {
	Row int
	Col int
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ShipType enumerates the vessel classes making up a fleet.
type ShipType int

const (
	Carrier ShipType = iota
	Battleship
	Cruiser
	Submarine
	Destroyer
)

// FleetShipTypes is the fixed placement order for a complete fleet:
// exactly one ship of each type per board.
var FleetShipTypes = [...]ShipType{Carrier, Battleship, Cruiser, Submarine, Destroyer}

// Length returns the number of contiguous cells the ship type occupies.
func (t ShipType) Length() int {
	switch t {
	case Carrier:
		return 5
	case Battleship:
		return 4
	case Cruiser, Submarine:
		return 3
	case Destroyer:
		return 2
	default:
		panic(fmt.Sprintf("unknown ship type %d", t))
	}
}

func (t ShipType) String() string {
	switch t {
	case Carrier:
		return "carrier"
	case Battleship:
		return "battleship"
	case Cruiser:
		return "cruiser"
	case Submarine:
		return "submarine"
	case Destroyer:
		return "destroyer"
	default:
		return fmt.Sprintf("ShipType(%d)", t)
	}
}

// Ship is a single vessel: immutable shape, mutable damage. The occupied
// cells are derived once at construction and never change afterwards.
type Ship struct {
	Type        ShipType
	Start       Coordinate
	Orientation Orientation

	coords   []Coordinate
	occupied map[Coordinate]struct{}
	hits     map[Coordinate]struct{}
}

// NewShip builds a ship extending from start along +col (horizontal) or
// +row (vertical). Bounds are not checked here; that is the board's job.
func NewShip(t ShipType, start Coordinate, o Orientation) *Ship {
	length := t.Length()
	coords := make([]Coordinate, 0, length)
	occupied := make(map[Coordinate]struct{}, length)
	for offset := 0; offset < length; offset++ {
		c := Coordinate{Row: start.Row, Col: start.Col + offset}
		if o == Vertical {
			c = Coordinate{Row: start.Row + offset, Col: start.Col}
		}
		coords = append(coords, c)
		occupied[c] = struct{}{}
	}
	return &Ship{
		Type:        t,
		Start:       start,
		Orientation: o,
		coords:      coords,
		occupied:    occupied,
		hits:        make(map[Coordinate]struct{}, length),
	}
}

// Coordinates returns the ordered cells the ship occupies, starting from
// Start. The returned slice is a copy.
func (s *Ship) Coordinates() []Coordinate {
	out := make([]Coordinate, len(s.coords))
	copy(out, s.coords)
	return out
}

// Occupies reports whether the ship covers the given cell.
func (s *Ship) Occupies(c Coordinate) bool {
	_, ok := s.occupied[c]
	return ok
}

// IsSunk reports whether every occupied cell has been hit.
func (s *Ship) IsSunk() bool {
	return len(s.hits) == len(s.occupied)
}

// Hit records damage at c. It returns true only when c belongs to the
// ship and was not already hit; otherwise it returns false without
// mutating anything.
func (s *Ship) Hit(c Coordinate) bool {
	if _, ok := s.occupied[c]; !ok {
		return false
	}
	if _, ok := s.hits[c]; ok {
		return false
	}
	s.hits[c] = struct{}{}
	return true
}

// Overlaps reports whether the two ships share any cell.
func (s *Ship) Overlaps(other *Ship) bool {
	for c := range s.occupied {
		if _, ok := other.occupied[c]; ok {
			return true
		}
	}
	return false
}
