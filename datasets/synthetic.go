package datasets

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MakeSeparable draws n two-dimensional points from two unit Gaussian blobs
// centred at (-gap, -gap) and (gap, gap), labelled 0 and 1 alternately.
// Points with |x1 + x2| < gap, or on the wrong side of x1 + x2 = 0, are
// redrawn, so the classes are linearly separable with a margin of gap/√2.
//
// gap must be positive. src may be nil, in which case the global source is
// used.
func MakeSeparable(n int, gap float64, src rand.Source) (*mat.Dense, *mat.VecDense) {
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	X := mat.NewDense(n, 2, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		centre, label := -gap, 0.0
		if i%2 == 1 {
			centre, label = gap, 1
		}

		for {
			x0 := centre + noise.Rand()
			x1 := centre + noise.Rand()
			if (x0+x1)*centre/gap >= gap {
				X.Set(i, 0, x0)
				X.Set(i, 1, x1)
				break
			}
		}
		y.SetVec(i, label)
	}
	return X, y
}

// MakeXOR returns the four corners of the unit square labelled by XOR.
// No line separates the two classes.
func MakeXOR() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	return X, mat.NewVecDense(4, []float64{0, 1, 1, 0})
}
