package datasets

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSeparable(t *testing.T) {
	X, y := MakeSeparable(200, 1.5, rand.NewPCG(1, 2))

	r, c := X.Dims()
	require.Equal(t, 200, r)
	require.Equal(t, 2, c)
	require.Equal(t, 200, y.Len())

	ones := 0
	for i := 0; i < r; i++ {
		sum := X.At(i, 0) + X.At(i, 1)
		if y.AtVec(i) == 1 {
			ones++
			assert.GreaterOrEqual(t, sum, 1.5, "row %d", i)
		} else {
			assert.LessOrEqual(t, sum, -1.5, "row %d", i)
		}
	}
	assert.Equal(t, 100, ones)
}

func TestMakeSeparable_Reproducible(t *testing.T) {
	X1, _ := MakeSeparable(20, 2, rand.NewPCG(7, 7))
	X2, _ := MakeSeparable(20, 2, rand.NewPCG(7, 7))
	assert.Equal(t, X1.RawMatrix().Data, X2.RawMatrix().Data)
}

func TestMakeXOR(t *testing.T) {
	X, y := MakeXOR()
	for i := 0; i < 4; i++ {
		a, b := X.At(i, 0), X.At(i, 1)
		want := 0.0
		if a != b {
			want = 1
		}
		assert.Equal(t, want, y.AtVec(i))
	}
}
