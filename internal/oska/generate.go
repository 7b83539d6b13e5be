package oska

// genCandidate is one candidate of a piece: a step or a capture along diagonal k
// (0 = left, 1 = right).
type genCandidate struct {
	capture bool
	k       int
}

var (
	leftThenRight    = [4]genCandidate{{false, 0}, {true, 0}, {false, 1}, {true, 1}}
	stepsLeftFirst   = [4]genCandidate{{false, 0}, {false, 1}, {true, 0}, {true, 1}}
	stepsCapsSwapped = [4]genCandidate{{false, 0}, {false, 1}, {true, 1}, {true, 0}}
	rightFirst       = [4]genCandidate{{false, 1}, {false, 0}, {true, 1}, {true, 0}}
)

// pieceOrder is the candidate order for the piece at (row, col). Interior pieces, and edge
// pieces heading for the shorter row (which only have one diagonal), go diagonal by
// diagonal. Edge pieces heading away from the midline list both steps before both
// captures, in an order that depends on side and edge.
func pieceOrder(b Board, side Side, row, col int) [4]genCandidate {
	next := row + side.Forward()
	interior := col > 0 && col < len(b.rows[row])-1
	if interior || next < 0 || next >= len(b.rows) || abs(next-b.Mid()) <= abs(row-b.Mid()) {
		return leftThenRight
	}
	switch {
	case side == Black:
		return rightFirst
	case col == 0:
		return stepsLeftFirst
	default:
		return stepsCapsSwapped
	}
}

// LegalMoves lists every move of side. Pieces are visited in scan order; pieceOrder fixes
// the order of each piece's steps and captures.
func (b Board) LegalMoves(side Side) []Move {
	if side != White && side != Black {
		return nil
	}
	var moves []Move
	own := side.Cell()
	for r, row := range b.rows {
		for c, cell := range row {
			if cell != own {
				continue
			}
			for _, g := range pieceOrder(b, side, r, c) {
				if g.capture {
					genCapture(b, side, r, c, g.k, &moves)
				} else {
					genStep(b, side, r, c, g.k, &moves)
				}
			}
		}
	}
	return moves
}

func genStep(b Board, side Side, row, col, k int, moves *[]Move) {
	to, ok := b.neighbor(row, col, side.Forward(), k)
	if !ok || b.rows[to.Row][to.Col] != Empty {
		return
	}
	*moves = append(*moves, Move{From: Square{Row: row, Col: col}, To: to})
}

// The jumped square and the landing square lie on the same diagonal.
func genCapture(b Board, side Side, row, col, k int, moves *[]Move) {
	over, ok := b.neighbor(row, col, side.Forward(), k)
	if !ok || b.rows[over.Row][over.Col] != side.Opponent().Cell() {
		return
	}
	to, ok := b.neighbor(over.Row, over.Col, side.Forward(), k)
	if !ok || b.rows[to.Row][to.Col] != Empty {
		return
	}
	*moves = append(*moves, Move{From: Square{Row: row, Col: col}, To: to, Over: over, Capture: true})
}

// Apply returns the board after m. The receiver is left untouched; m is assumed to come
// from LegalMoves of the same board.
func (b Board) Apply(m Move) Board {
	nb := b.clone()
	mover := nb.rows[m.From.Row][m.From.Col]
	nb.rows[m.From.Row][m.From.Col] = Empty
	if m.Capture {
		nb.rows[m.Over.Row][m.Over.Col] = Empty
	}
	nb.rows[m.To.Row][m.To.Col] = mover
	return nb
}

// GenerateMoves returns one successor board per legal move of side, in LegalMoves order.
func (b Board) GenerateMoves(side Side) []Board {
	moves := b.LegalMoves(side)
	if len(moves) == 0 {
		return nil
	}
	out := make([]Board, len(moves))
	for i, m := range moves {
		out[i] = b.Apply(m)
	}
	return out
}

// HasMoves reports whether side has at least one legal move.
func (b Board) HasMoves(side Side) bool {
	return len(b.LegalMoves(side)) > 0
}
