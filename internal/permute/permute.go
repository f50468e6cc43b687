// Package permute shuffles the rows and columns of matrix questions and translates
// indices between display order and canonical (answer key) order.
package permute

import (
	"fmt"
	"math/rand/v2"
)

// Perm maps a display position to a canonical index: display i shows canonical p[i].
type Perm []int

// InvalidPermutationError reports a Perm that is not a bijection on [0,len) or whose
// length does not match the data it is applied to.
type InvalidPermutationError struct {
	Perm   Perm
	Reason string
}

// Error returns a readable message.
func (err *InvalidPermutationError) Error() string {
	return fmt.Sprintf("invalid permutation %v: %s", []int(err.Perm), err.Reason)
}

// Identity returns the permutation that leaves n items in place.
func Identity(n int) Perm {
	p := make(Perm, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Generate returns a uniformly random permutation of [0,n) using a Fisher-Yates shuffle.
// A nil rng uses the global source.
func Generate(rng *rand.Rand, n int) Perm {
	p := Identity(n)
	swap := func(i, j int) { p[i], p[j] = p[j], p[i] }
	if rng == nil {
		rand.Shuffle(n, swap)
	} else {
		rng.Shuffle(n, swap)
	}
	return p
}

// Validate checks that p is a bijection on [0,len(p)).
func (p Perm) Validate() error {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) {
			return &InvalidPermutationError{Perm: p, Reason: fmt.Sprintf("value %d out of range [0,%d)", v, len(p))}
		}
		if seen[v] {
			return &InvalidPermutationError{Perm: p, Reason: fmt.Sprintf("value %d repeated", v)}
		}
		seen[v] = true
	}
	return nil
}

// Inverse returns q with q[p[i]] = i. p must be valid.
func (p Perm) Inverse() Perm {
	q := make(Perm, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

func (p Perm) checkLen(n int, what string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(p) != n {
		return &InvalidPermutationError{Perm: p, Reason: fmt.Sprintf("length %d does not match %s length %d", len(p), what, n)}
	}
	return nil
}

// ApplyToSequence returns the display-ordered view out[i] = seq[p[i]].
func ApplyToSequence[T any](p Perm, seq []T) ([]T, error) {
	if err := p.checkLen(len(seq), "sequence"); err != nil {
		return nil, err
	}
	out := make([]T, len(seq))
	for i, src := range p {
		out[i] = seq[src]
	}
	return out, nil
}

// ApplyToMatrix returns the display-ordered grid out[i][j] = m[rows[i]][cols[j]].
func ApplyToMatrix[T any](rows, cols Perm, m [][]T) ([][]T, error) {
	if err := checkMatrix(rows, cols, m); err != nil {
		return nil, err
	}
	out := make([][]T, len(m))
	for i, r := range rows {
		out[i] = make([]T, len(cols))
		for j, c := range cols {
			out[i][j] = m[r][c]
		}
	}
	return out, nil
}

// ToCanonical is the inverse of ApplyToMatrix: out[rows[i]][cols[j]] = d[i][j].
func ToCanonical[T any](rows, cols Perm, d [][]T) ([][]T, error) {
	if err := checkMatrix(rows, cols, d); err != nil {
		return nil, err
	}
	out := make([][]T, len(d))
	for r := range out {
		out[r] = make([]T, len(cols))
	}
	for i, r := range rows {
		for j, c := range cols {
			out[r][c] = d[i][j]
		}
	}
	return out, nil
}

func checkMatrix[T any](rows, cols Perm, m [][]T) error {
	if err := rows.checkLen(len(m), "matrix row"); err != nil {
		return err
	}
	for i, row := range m {
		if err := cols.checkLen(len(row), fmt.Sprintf("matrix row %d", i)); err != nil {
			return err
		}
	}
	if len(m) == 0 {
		return cols.Validate()
	}
	return nil
}
