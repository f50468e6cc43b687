package permute

import "math/rand/v2"

// Layout is the display shuffle of one matrix render.
type Layout struct {
	Rows Perm
	Cols Perm
}

// NewLayout draws independent row and column permutations.
func NewLayout(rng *rand.Rand, rows, cols int) Layout {
	return Layout{Rows: Generate(rng, rows), Cols: Generate(rng, cols)}
}

// IdentityLayout keeps canonical order.
func IdentityLayout(rows, cols int) Layout {
	return Layout{Rows: Identity(rows), Cols: Identity(cols)}
}

// Validate checks both permutations.
func (l Layout) Validate() error {
	if err := l.Rows.Validate(); err != nil {
		return err
	}
	return l.Cols.Validate()
}

// ToCanonical maps a display cell to its canonical cell.
func (l Layout) ToCanonical(i, j int) (int, int) {
	return l.Rows[i], l.Cols[j]
}

// ToDisplay maps a canonical cell to the display cell showing it.
func (l Layout) ToDisplay(r, c int) (int, int) {
	return indexOf(l.Rows, r), indexOf(l.Cols, c)
}

// Clone returns an independent copy.
func (l Layout) Clone() Layout {
	return Layout{Rows: append(Perm(nil), l.Rows...), Cols: append(Perm(nil), l.Cols...)}
}

func indexOf(p Perm, v int) int {
	for i, x := range p {
		if x == v {
			return i
		}
	}
	return -1
}
