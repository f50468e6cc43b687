package permute

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsBijection(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for n := 0; n <= 40; n++ {
		for trial := 0; trial < 25; trial++ {
			p := Generate(rng, n)
			require.Len(t, p, n)
			require.NoError(t, p.Validate(), "n=%d", n)
			counts := make([]int, n)
			for _, v := range p {
				counts[v]++
			}
			for v, c := range counts {
				require.Equal(t, 1, c, "value %d in %v", v, p)
			}
		}
	}
}

func TestGenerateCoversAllOrders(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	seen := map[[3]int]int{}
	for i := 0; i < 3000; i++ {
		p := Generate(rng, 3)
		seen[[3]int{p[0], p[1], p[2]}]++
	}
	assert.Len(t, seen, 6)
	for order, count := range seen {
		assert.Greater(t, count, 300, "order %v drawn too rarely", order)
	}
}

func TestValidateRejectsNonBijections(t *testing.T) {
	cases := map[string]Perm{
		"repeat":       {0, 0, 1},
		"out of range": {0, 3, 1},
		"negative":     {-1, 0},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			var invalid *InvalidPermutationError
			require.ErrorAs(t, p.Validate(), &invalid)
		})
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	seq := []string{"a", "b", "c", "d", "e", "f"}
	for trial := 0; trial < 50; trial++ {
		p := Generate(rng, len(seq))
		shown, err := ApplyToSequence(p, seq)
		require.NoError(t, err)
		for i := range shown {
			assert.Equal(t, seq[p[i]], shown[i])
		}
		back, err := ApplyToSequence(p.Inverse(), shown)
		require.NoError(t, err)
		assert.Equal(t, seq, back)
	}
}

func TestMatrixRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for trial := 0; trial < 50; trial++ {
		rows, cols := 1+rng.IntN(5), 1+rng.IntN(5)
		m := make([][]bool, rows)
		for r := range m {
			m[r] = make([]bool, cols)
			for c := range m[r] {
				m[r][c] = rng.IntN(2) == 1
			}
		}
		layout := NewLayout(rng, rows, cols)
		display, err := ApplyToMatrix(layout.Rows, layout.Cols, m)
		require.NoError(t, err)
		for i := range display {
			for j := range display[i] {
				r, c := layout.ToCanonical(i, j)
				assert.Equal(t, m[r][c], display[i][j])
				di, dj := layout.ToDisplay(r, c)
				assert.Equal(t, [2]int{i, j}, [2]int{di, dj})
			}
		}
		canonical, err := ToCanonical(layout.Rows, layout.Cols, display)
		require.NoError(t, err)
		assert.Equal(t, m, canonical)
	}
}

func TestApplyRejectsMismatchedSizes(t *testing.T) {
	_, err := ApplyToSequence(Identity(2), []int{1, 2, 3})
	var invalid *InvalidPermutationError
	require.True(t, errors.As(err, &invalid))

	_, err = ApplyToMatrix(Identity(1), Perm{0, 0}, [][]int{{1, 2}})
	require.ErrorAs(t, err, &invalid)

	_, err = ToCanonical(Identity(2), Identity(1), [][]int{{1}, {2, 3}})
	require.ErrorAs(t, err, &invalid)
}

func TestEmptyInputs(t *testing.T) {
	out, err := ApplyToSequence(Identity(0), []string{})
	require.NoError(t, err)
	assert.Empty(t, out)

	grid, err := ApplyToMatrix(Identity(0), Identity(0), [][]bool{})
	require.NoError(t, err)
	assert.Empty(t, grid)
}
