package oska

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidBoard = errors.New("invalid board")
	ErrInvalidSide  = errors.New("invalid side")
)

const rowSeparator = "/"

func cellToRune(c Cell) rune {
	switch c {
	case WhitePiece:
		return 'w'
	case BlackPiece:
		return 'b'
	}
	return '-'
}

func runeToCell(ch rune) (Cell, bool) {
	switch ch {
	case '-':
		return Empty, true
	case 'w':
		return WhitePiece, true
	case 'b':
		return BlackPiece, true
	}
	return Empty, false
}

// ParseSide accepts "w" / "b" and the spelled-out names.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "w", "white":
		return White, nil
	case "b", "black":
		return Black, nil
	}
	return NoSide, fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

// ParseBoard converts external rows into a Board. Row lengths must grow by exactly one
// cell per row away from the midline.
func ParseBoard(rows []string) (Board, error) {
	n := len(rows)
	if n < 3 || n%2 == 0 {
		return Board{}, fmt.Errorf("%w: need an odd number of rows >= 3, got %d", ErrInvalidBoard, n)
	}
	mid := (n - 1) / 2
	base := len(rows[mid])
	if base == 0 {
		return Board{}, fmt.Errorf("%w: middle row is empty", ErrInvalidBoard)
	}
	b := Board{rows: make([][]Cell, n)}
	for r, line := range rows {
		want := base + abs(r-mid)
		if len(line) != want {
			return Board{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, r, len(line), want)
		}
		row := make([]Cell, 0, want)
		for _, ch := range line {
			c, ok := runeToCell(ch)
			if !ok {
				return Board{}, fmt.Errorf("%w: row %d has unknown cell %q", ErrInvalidBoard, r, ch)
			}
			row = append(row, c)
		}
		b.rows[r] = row
	}
	return b, nil
}

// MustParseBoard is ParseBoard for literals known to be well formed.
func MustParseBoard(rows ...string) Board {
	b, err := ParseBoard(rows)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Board) Rows() []string {
	out := make([]string, len(b.rows))
	for r, row := range b.rows {
		var sb strings.Builder
		sb.Grow(len(row))
		for _, c := range row {
			sb.WriteRune(cellToRune(c))
		}
		out[r] = sb.String()
	}
	return out
}

// Encode joins the rows with "/", e.g. "wwww/---/--/---/bbbb".
func (b Board) Encode() string {
	return strings.Join(b.Rows(), rowSeparator)
}

func Decode(s string) (Board, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Board{}, fmt.Errorf("%w: empty encoding", ErrInvalidBoard)
	}
	return ParseBoard(strings.Split(s, rowSeparator))
}

// MarshalJSON writes the board as its external rows.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Rows())
}

// UnmarshalJSON accepts either a row array or a "/"-joined string.
func (b *Board) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var rows []string
	if err := json.Unmarshal(data, &rows); err != nil {
		var enc string
		if json.Unmarshal(data, &enc) != nil {
			return fmt.Errorf("%w: want a row array or an encoded string", ErrInvalidBoard)
		}
		v, err := Decode(enc)
		if err != nil {
			return err
		}
		*b = v
		return nil
	}
	v, err := ParseBoard(rows)
	if err != nil {
		return err
	}
	*b = v
	return nil
}
