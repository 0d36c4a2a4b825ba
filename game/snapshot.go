package game

// BoardSnapshot is a plain-value view of one board: the fleet as
// coordinate sequences in placement order plus a copy of the shot
// history.
type BoardSnapshot struct {
	Ships [][]Coordinate
	Shots map[Coordinate]CellState
}

// GameSnapshot is a deep, independent copy of a match. Mutating the live
// game afterwards does not alter a previously taken snapshot, and
// nothing reachable from a snapshot aliases engine internals.
type GameSnapshot struct {
	Phase         Phase
	CurrentPlayer Player
	Winner        Player
	Boards        [2]BoardSnapshot
}

// Board returns the snapshot of p's board.
func (s GameSnapshot) Board(p Player) BoardSnapshot {
	return s.Boards[p.index()]
}

// Snapshot rebuilds plain value records from the live boards rather than
// exposing internal references.
func (g *Game) Snapshot() GameSnapshot {
	snapshot := GameSnapshot{
		Phase:         g.Phase,
		CurrentPlayer: g.CurrentPlayer,
		Winner:        g.Winner,
	}
	for i, b := range g.boards {
		ships := make([][]Coordinate, len(b.ships))
		for j, ship := range b.ships {
			ships[j] = ship.Coordinates()
		}
		snapshot.Boards[i] = BoardSnapshot{
			Ships: ships,
			Shots: b.ShotsTaken(),
		}
	}
	return snapshot
}

// TargetView is what the attacking side knows about a board: its size
// and the outcomes of the shots taken so far. Views are detached copies.
type TargetView struct {
	Size  int
	Shots map[Coordinate]CellState
}

// TargetView returns the attacker-visible view of the board.
func (b *Board) TargetView() TargetView {
	return TargetView{Size: b.Size, Shots: b.ShotsTaken()}
}

// UnknownCells returns the untargeted cells in row-major order.
func (v TargetView) UnknownCells() []Coordinate {
	cells := make([]Coordinate, 0, v.Size*v.Size-len(v.Shots))
	for row := 0; row < v.Size; row++ {
		for col := 0; col < v.Size; col++ {
			c := Coordinate{Row: row, Col: col}
			if _, ok := v.Shots[c]; !ok {
				cells = append(cells, c)
			}
		}
	}
	return cells
}
