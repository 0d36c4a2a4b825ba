package env

import "battleship/game"

// Observation channel layout. The base channels describe the match from
// the observing player's side; placement channels are appended only when
// agent-driven placement is enabled.
const (
	ChannelOwnShips = iota // own ship cells
	ChannelOwnHits         // own ship cells that have been hit
	ChannelShotsTaken      // cells this side has fired at
	ChannelHitsScored      // fired cells that were hits
	ChannelLastEnemyShot   // most recent incoming shot
	ChannelParity          // turn parity plane
	BaseNumChannels
)

// Observation is a dense channels x rows x cols tensor in row-major
// order, values in [0,1].
type Observation []float32

// At reads the value at (channel, row, col).
func (o Observation) At(channel, row, col int) float32 {
	return o[(channel*BoardSize+row)*BoardSize+col]
}

func (o Observation) set(channel, row, col int, v float32) {
	o[(channel*BoardSize+row)*BoardSize+col] = v
}

func (o Observation) fillChannel(channel int, v float32) {
	start := channel * NumCells
	for i := start; i < start+NumCells; i++ {
		o[i] = v
	}
}

// ObservationFor encodes the base channels of g as seen by p.
// lastEnemyShot is the most recent shot received by p's board, nil if
// none; parity is the turn-count parity plane value.
func ObservationFor(g *game.Game, p game.Player, lastEnemyShot *game.Coordinate, parity float32) Observation {
	obs := make(Observation, BaseNumChannels*NumCells)
	fillBaseChannels(obs, g, p, lastEnemyShot, parity)
	return obs
}

func fillBaseChannels(obs Observation, g *game.Game, p game.Player, lastEnemyShot *game.Coordinate, parity float32) {
	own := g.Board(p)
	opponent := g.Board(p.Opponent())

	for _, ship := range own.Ships() {
		for _, c := range ship.Coordinates() {
			obs.set(ChannelOwnShips, c.Row, c.Col, 1)
			if own.CellStateAt(c) == game.CellHit {
				obs.set(ChannelOwnHits, c.Row, c.Col, 1)
			}
		}
	}

	// Shots this side has fired live in the opponent board's history.
	for c, state := range opponent.ShotsTaken() {
		obs.set(ChannelShotsTaken, c.Row, c.Col, 1)
		if state == game.CellHit {
			obs.set(ChannelHitsScored, c.Row, c.Col, 1)
		}
	}

	if lastEnemyShot != nil {
		obs.set(ChannelLastEnemyShot, lastEnemyShot.Row, lastEnemyShot.Col, 1)
	}

	obs.fillChannel(ChannelParity, parity)
}

// ShotMaskFor returns the legality mask over fire actions for p: a cell
// is legal while its state on the opponent's board is unknown.
func ShotMaskFor(g *game.Game, p game.Player) ActionMask {
	mask := make(ActionMask, NumCells)
	target := g.Board(p.Opponent())
	for row := 0; row < target.Size; row++ {
		for col := 0; col < target.Size; col++ {
			if target.CellStateAt(game.Coordinate{Row: row, Col: col}) == game.CellUnknown {
				mask[row*BoardSize+col] = 1
			}
		}
	}
	return mask
}

// TargetViewFromObservation rebuilds the attacker's knowledge of the
// opponent board from the shot channels of an observation.
func TargetViewFromObservation(obs Observation) game.TargetView {
	shots := make(map[game.Coordinate]game.CellState)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if obs.At(ChannelShotsTaken, row, col) == 0 {
				continue
			}
			state := game.CellMiss
			if obs.At(ChannelHitsScored, row, col) > 0 {
				state = game.CellHit
			}
			shots[game.Coordinate{Row: row, Col: col}] = state
		}
	}
	return game.TargetView{Size: BoardSize, Shots: shots}
}
