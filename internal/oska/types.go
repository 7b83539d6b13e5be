package oska

import "fmt"

type Side int8

const (
	NoSide Side = -1
	White  Side = 0
	Black  Side = 1
)

// Opponent returns the other side; NoSide stays NoSide.
func (s Side) Opponent() Side {
	switch s {
	case White:
		return Black
	case Black:
		return White
	}
	return NoSide
}

// Forward is the row delta of a step: white heads for higher rows, black for lower.
func (s Side) Forward() int {
	switch s {
	case White:
		return +1
	case Black:
		return -1
	}
	return 0
}

func (s Side) Cell() Cell {
	switch s {
	case White:
		return WhitePiece
	case Black:
		return BlackPiece
	}
	return Empty
}

func (s Side) String() string {
	switch s {
	case White:
		return "w"
	case Black:
		return "b"
	}
	return "-"
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts what MarshalText writes, including "-" for NoSide.
func (s *Side) UnmarshalText(text []byte) error {
	if string(text) == "-" {
		*s = NoSide
		return nil
	}
	v, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type Cell int8

const (
	Empty      Cell = 0
	WhitePiece Cell = 1
	BlackPiece Cell = 2
)

func (c Cell) Side() Side {
	switch c {
	case WhitePiece:
		return White
	case BlackPiece:
		return Black
	}
	return NoSide
}

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) String() string { return fmt.Sprintf("(%d,%d)", s.Row, s.Col) }

// Move is one transition of a single piece. Over is only meaningful when Capture is set.
type Move struct {
	From    Square `json:"from"`
	To      Square `json:"to"`
	Over    Square `json:"over"`
	Capture bool   `json:"capture"`
}

func (m Move) String() string {
	if m.Capture {
		return m.From.String() + "x" + m.Over.String() + "-" + m.To.String()
	}
	return m.From.String() + "-" + m.To.String()
}
