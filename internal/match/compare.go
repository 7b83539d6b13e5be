package match

import "oska/internal/oska"

// Generator produces successor boards; a reference implementation only needs this.
type Generator interface {
	GenerateMoves(b oska.Board, side oska.Side) []oska.Board
}

type GeneratorFunc func(b oska.Board, side oska.Side) []oska.Board

func (f GeneratorFunc) GenerateMoves(b oska.Board, side oska.Side) []oska.Board {
	return f(b, side)
}

// Builtin is the move generator of package oska.
var Builtin Generator = GeneratorFunc(func(b oska.Board, side oska.Side) []oska.Board {
	return b.GenerateMoves(side)
})

type Diff struct {
	Ours      int          `json:"ours"`
	Reference int          `json:"reference"`
	Missing   []oska.Board `json:"missing,omitempty"` // reference boards we do not produce
	Extra     []oska.Board `json:"extra,omitempty"`   // our boards the reference lacks
	SameOrder bool         `json:"same_order"`
}

func (d Diff) Equal() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0 && d.Ours == d.Reference
}

// Compare runs both generators on b and reports the differences as multisets of boards.
func Compare(b oska.Board, side oska.Side, ours, reference Generator) Diff {
	a := ours.GenerateMoves(b, side)
	r := reference.GenerateMoves(b, side)
	d := Diff{Ours: len(a), Reference: len(r), SameOrder: len(a) == len(r)}

	for i := range a {
		if d.SameOrder && !a[i].Equal(r[i]) {
			d.SameOrder = false
		}
	}
	d.Extra = subtract(a, r)
	d.Missing = subtract(r, a)
	return d
}

// subtract returns the boards of xs left after removing one match per board of ys.
func subtract(xs, ys []oska.Board) []oska.Board {
	byKey := make(map[string]int, len(ys))
	for _, y := range ys {
		byKey[y.Encode()]++
	}
	var out []oska.Board
	for _, x := range xs {
		k := x.Encode()
		if byKey[k] > 0 {
			byKey[k]--
			continue
		}
		out = append(out, x)
	}
	return out
}
