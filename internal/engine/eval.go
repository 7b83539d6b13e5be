package engine

import "oska/internal/oska"

const (
	// WinScore / LossScore bound every heuristic value the evaluator returns.
	WinScore  = 20
	LossScore = -20
)

// tally is a side's piece count and the summed row distance of its pieces to the far edge.
type tally struct {
	count int
	steps int
}

func tallies(b oska.Board) (white, black tally) {
	last := b.Size() - 1
	for _, sq := range b.Pieces(oska.White) {
		white.count++
		white.steps += last - sq.Row
	}
	for _, sq := range b.Pieces(oska.Black) {
		black.count++
		black.steps += sq.Row
	}
	return white, black
}

func perspective(b oska.Board, side oska.Side) (player, opponent tally) {
	white, black := tallies(b)
	if side == oska.Black {
		return black, white
	}
	return white, black
}

// Evaluate scores b from side's point of view.
//
// Both sides home with pieces left: more pieces wins, equal counts score 0.
// Side wiped out: LossScore. Opponent wiped out or side home: WinScore. Opponent home:
// LossScore. Otherwise the opponent's remaining steps minus side's.
func Evaluate(b oska.Board, side oska.Side) int {
	player, opponent := perspective(b, side)

	if player.steps == 0 && opponent.steps == 0 && player.count != 0 && opponent.count != 0 {
		switch {
		case player.count > opponent.count:
			return WinScore
		case player.count < opponent.count:
			return LossScore
		default:
			return 0
		}
	}
	// A side with no pieces also has zero steps; it must not read as being home.
	if player.count == 0 {
		return LossScore
	}
	if opponent.count == 0 || player.steps == 0 {
		return WinScore
	}
	if opponent.steps == 0 {
		return LossScore
	}
	return opponent.steps - player.steps
}

// Outcome reports whether b is a finished game and who won it. A decided game with
// winner NoSide is a draw.
func Outcome(b oska.Board) (winner oska.Side, decided bool) {
	white, black := tallies(b)
	switch {
	case white.count == 0 && black.count == 0:
		return oska.NoSide, true
	case black.count == 0:
		return oska.White, true
	case white.count == 0:
		return oska.Black, true
	}
	if white.steps != 0 && black.steps != 0 {
		return oska.NoSide, false
	}
	// At least one side has every remaining piece on its far edge.
	switch score := Evaluate(b, oska.White); {
	case score > 0:
		return oska.White, true
	case score < 0:
		return oska.Black, true
	}
	return oska.NoSide, true
}
