package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShipCoordinates(t *testing.T) {
	cases := []struct {
		name        string
		shipType    ShipType
		start       Coordinate
		orientation Orientation
	}{
		{"carrier horizontal", Carrier, Coordinate{0, 0}, Horizontal},
		{"battleship vertical", Battleship, Coordinate{2, 7}, Vertical},
		{"cruiser horizontal", Cruiser, Coordinate{9, 3}, Horizontal},
		{"submarine vertical", Submarine, Coordinate{4, 4}, Vertical},
		{"destroyer horizontal", Destroyer, Coordinate{5, 8}, Horizontal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ship := NewShip(tc.shipType, tc.start, tc.orientation)
			coords := ship.Coordinates()

			require.Len(t, coords, tc.shipType.Length(),
				"Ship should occupy exactly its type's length")
			require.Equal(t, tc.start, coords[0], "Occupied cells should start from Start")

			seen := map[Coordinate]struct{}{}
			for i, c := range coords {
				seen[c] = struct{}{}
				if i == 0 {
					continue
				}
				prev := coords[i-1]
				if tc.orientation == Horizontal {
					require.Equal(t, Coordinate{prev.Row, prev.Col + 1}, c,
						"Horizontal ships should extend along +col")
				} else {
					require.Equal(t, Coordinate{prev.Row + 1, prev.Col}, c,
						"Vertical ships should extend along +row")
				}
			}
			require.Len(t, seen, tc.shipType.Length(), "Occupied cells should be distinct")
		})
	}
}

func TestShipCoordinatesIsACopy(t *testing.T) {
	ship := NewShip(Destroyer, Coordinate{0, 0}, Horizontal)
	coords := ship.Coordinates()
	coords[0] = Coordinate{9, 9}

	require.Equal(t, Coordinate{0, 0}, ship.Coordinates()[0],
		"Mutating the returned slice should not affect the ship")
}

func TestShipHit(t *testing.T) {
	t.Run("miss outside occupied cells", func(t *testing.T) {
		ship := NewShip(Destroyer, Coordinate{0, 0}, Horizontal)

		require.False(t, ship.Hit(Coordinate{5, 5}), "Hit outside the ship should return false")
		require.False(t, ship.IsSunk(), "A missed ship should take no damage")
	})

	t.Run("repeat hit is idempotent", func(t *testing.T) {
		ship := NewShip(Destroyer, Coordinate{0, 0}, Horizontal)

		require.True(t, ship.Hit(Coordinate{0, 0}), "First hit on an occupied cell should count")
		require.False(t, ship.Hit(Coordinate{0, 0}), "Second hit on the same cell should not count")
		require.False(t, ship.IsSunk(), "One damaged cell of two should not sink the ship")
	})

	t.Run("sunk only after the last cell", func(t *testing.T) {
		ship := NewShip(Cruiser, Coordinate{3, 3}, Vertical)
		coords := ship.Coordinates()
		// Hit out of placement order on purpose
		order := []Coordinate{coords[2], coords[0], coords[1]}

		for i, c := range order {
			require.False(t, ship.IsSunk(), "Ship should not be sunk before all cells are hit")
			require.True(t, ship.Hit(c), "Hit %d should land", i)
		}
		require.True(t, ship.IsSunk(), "Ship should be sunk after its last cell is hit")
	})
}

func TestShipOverlaps(t *testing.T) {
	base := NewShip(Cruiser, Coordinate{3, 3}, Horizontal) // (3,3)(3,4)(3,5)

	crossing := NewShip(Battleship, Coordinate{1, 4}, Vertical) // covers (3,4)
	require.True(t, base.Overlaps(crossing), "Crossing ships should overlap")
	require.True(t, crossing.Overlaps(base), "Overlap should be symmetric")

	clear := NewShip(Destroyer, Coordinate{5, 5}, Horizontal)
	require.False(t, base.Overlaps(clear), "Disjoint ships should not overlap")
}
