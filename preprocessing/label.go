package preprocessing

import (
	"github.com/YuminosukeSato/perceptron/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Sign maps a score to the bipolar label space: -1 if a < 0, otherwise +1.
// Sign(0) is +1 and Sign never returns 0.
func Sign(a float64) float64 {
	if a < 0 {
		return -1
	}
	return 1
}

// ToBinary maps a value to the binary label space: 1 if s > 0, otherwise 0.
// ToBinary(0) is 0, unlike Sign(0). Keep the two separate.
func ToBinary(s float64) float64 {
	if s > 0 {
		return 1
	}
	return 0
}

// SignVec applies Sign elementwise into a new vector.
func SignVec(v mat.Vector) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	for i := 0; i < v.Len(); i++ {
		out.SetVec(i, Sign(v.AtVec(i)))
	}
	return out
}

// ToBinaryVec applies ToBinary elementwise into a new vector.
func ToBinaryVec(v mat.Vector) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	for i := 0; i < v.Len(); i++ {
		out.SetVec(i, ToBinary(v.AtVec(i)))
	}
	return out
}

// LabelConvention selects how raw label values map to bipolar form.
type LabelConvention int

const (
	// LabelAuto picks LabelBinary when every label is 0 or 1, LabelSigned otherwise.
	LabelAuto LabelConvention = iota
	// LabelBinary maps 1 → +1 and 0 → -1. Other values are rejected.
	LabelBinary
	// LabelSigned applies Sign, so {-1, +1} pass through and 0 becomes +1.
	LabelSigned
)

// String returns the convention name.
func (c LabelConvention) String() string {
	switch c {
	case LabelBinary:
		return "binary"
	case LabelSigned:
		return "signed"
	default:
		return "auto"
	}
}

// NormalizeLabels converts an N×1 label column into canonical bipolar form.
//
// If every label is 0 or 1 the binary convention applies (1 → +1, 0 → -1).
// Anything else goes through Sign, which covers {-1, +1} labels and raw
// real-valued scores; under Sign a 0 label becomes +1.
//
// The choice is made per call. Use NormalizeLabelsAs to pin it.
func NormalizeLabels(y mat.Matrix) (*mat.VecDense, error) {
	out, _, err := NormalizeLabelsAs(y, LabelAuto)
	return out, err
}

// NormalizeLabelsAs is NormalizeLabels under an explicit convention. It also
// returns the convention actually applied, which is never LabelAuto.
func NormalizeLabelsAs(y mat.Matrix, conv LabelConvention) (*mat.VecDense, LabelConvention, error) {
	n, c := y.Dims()
	if n == 0 {
		return nil, conv, errors.NewModelError("NormalizeLabels", "empty labels", errors.ErrEmptyData)
	}
	if c != 1 {
		return nil, conv, errors.NewDimensionError("NormalizeLabels", 1, c, 1)
	}

	binary := true
	for i := 0; i < n; i++ {
		v := y.At(i, 0)
		if !errors.IsFinite(v) {
			return nil, conv, errors.NewValidationError("y", "labels must be finite", v)
		}
		if v != 0 && v != 1 {
			binary = false
		}
	}

	switch conv {
	case LabelAuto:
		conv = LabelSigned
		if binary {
			conv = LabelBinary
		}
	case LabelBinary:
		if !binary {
			return nil, conv, errors.NewValidationError("y", "binary labels must be 0 or 1", "non-binary values")
		}
	case LabelSigned:
	default:
		return nil, conv, errors.NewValidationError("label_convention", "unknown convention", int(conv))
	}

	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v := y.At(i, 0)
		if conv == LabelBinary {
			out.SetVec(i, 2*v-1)
			continue
		}
		out.SetVec(i, Sign(v))
	}
	return out, conv, nil
}

// BoolLabels converts boolean labels to bipolar form (true → +1, false → -1).
func BoolLabels(labels []bool) *mat.VecDense {
	out := mat.NewVecDense(len(labels), nil)
	for i, l := range labels {
		if l {
			out.SetVec(i, 1)
		} else {
			out.SetVec(i, -1)
		}
	}
	return out
}

// IntLabels converts integer labels with the same rules as NormalizeLabels.
func IntLabels(labels []int) (*mat.VecDense, error) {
	if len(labels) == 0 {
		return nil, errors.NewModelError("IntLabels", "empty labels", errors.ErrEmptyData)
	}
	data := make([]float64, len(labels))
	for i, l := range labels {
		data[i] = float64(l)
	}
	return NormalizeLabels(mat.NewVecDense(len(data), data))
}

// BinaryLabels returns ToBinary(Sign(y)) elementwise: the {0, 1} form that
// predictions are compared against.
func BinaryLabels(y mat.Vector) *mat.VecDense {
	out := mat.NewVecDense(y.Len(), nil)
	for i := 0; i < y.Len(); i++ {
		out.SetVec(i, ToBinary(Sign(y.AtVec(i))))
	}
	return out
}
