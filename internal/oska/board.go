package oska

import "strings"

// Board is an immutable position. Rows get shorter by one cell per row towards the
// midline and longer again past it.
type Board struct {
	rows [][]Cell
}

// DefaultPieces is the piece count per side of the standard game.
const DefaultPieces = 4

// NewBoard returns the start position for n pieces per side: rows n, n-1, .., 2, .., n
// with white on the first row and black on the last.
func NewBoard(n int) Board {
	if n < 2 {
		n = 2
	}
	size := 2*n - 3
	if size < 1 {
		size = 1
	}
	mid := (size - 1) / 2
	rows := make([][]Cell, size)
	for r := range rows {
		rows[r] = make([]Cell, 2+abs(r-mid))
	}
	if size > 1 {
		for c := range rows[0] {
			rows[0][c] = WhitePiece
		}
		for c := range rows[size-1] {
			rows[size-1][c] = BlackPiece
		}
	}
	return Board{rows: rows}
}

func NewInitialBoard() Board { return NewBoard(DefaultPieces) }

func (b Board) Size() int { return len(b.rows) }

func (b Board) Mid() int { return (len(b.rows) - 1) / 2 }

func (b Board) RowLen(row int) int {
	if row < 0 || row >= len(b.rows) {
		return 0
	}
	return len(b.rows[row])
}

func (b Board) inBounds(row, col int) bool {
	return row >= 0 && row < len(b.rows) && col >= 0 && col < len(b.rows[row])
}

// At returns Empty for squares off the board.
func (b Board) At(row, col int) Cell {
	if !b.inBounds(row, col) {
		return Empty
	}
	return b.rows[row][col]
}

func (b Board) Count(side Side) int {
	want := side.Cell()
	n := 0
	for _, row := range b.rows {
		for _, c := range row {
			if c == want && c != Empty {
				n++
			}
		}
	}
	return n
}

// Pieces lists the squares held by side in scan order.
func (b Board) Pieces(side Side) []Square {
	want := side.Cell()
	var out []Square
	for r, row := range b.rows {
		for c, cell := range row {
			if cell == want && cell != Empty {
				out = append(out, Square{Row: r, Col: c})
			}
		}
	}
	return out
}

func (b Board) Equal(o Board) bool {
	if len(b.rows) != len(o.rows) {
		return false
	}
	for r := range b.rows {
		if len(b.rows[r]) != len(o.rows[r]) {
			return false
		}
		for c := range b.rows[r] {
			if b.rows[r][c] != o.rows[r][c] {
				return false
			}
		}
	}
	return true
}

func (b Board) clone() Board {
	rows := make([][]Cell, len(b.rows))
	for r, row := range b.rows {
		rows[r] = append([]Cell(nil), row...)
	}
	return Board{rows: rows}
}

// String renders the board as a centred diamond, one row per line.
func (b Board) String() string {
	width := 0
	for _, row := range b.rows {
		if len(row) > width {
			width = len(row)
		}
	}
	var sb strings.Builder
	for r, row := range b.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Repeat(" ", width-len(row)))
		for c, cell := range row {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(cellToRune(cell))
		}
	}
	return sb.String()
}

// neighbor returns the square reached from (row, col) by one step in direction dir
// along diagonal k (0 = left, 1 = right). Towards the midline the next row is one cell
// shorter and the diagonals are c-1 and c; away from it they are c and c+1.
func (b Board) neighbor(row, col, dir, k int) (Square, bool) {
	next := row + dir
	if next < 0 || next >= len(b.rows) {
		return Square{}, false
	}
	mid := b.Mid()
	c := col + k
	if abs(next-mid) < abs(row-mid) {
		c--
	}
	if !b.inBounds(next, c) {
		return Square{}, false
	}
	return Square{Row: next, Col: c}, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
