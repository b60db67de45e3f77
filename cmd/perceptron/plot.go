package main

import (
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/YuminosukeSato/perceptron/pkg/errors"
	"github.com/YuminosukeSato/perceptron/preprocessing"
	"github.com/YuminosukeSato/perceptron/sklearn/linear_model"
)

// savePlot draws both classes and the learned decision line. The output
// format follows the file extension.
func savePlot(path string, X *mat.Dense, y *mat.VecDense, p *linear_model.Perceptron) error {
	_, c := X.Dims()
	if c != 2 {
		return errors.NewValueError("plot", "only 2-feature data can be plotted")
	}

	yBipolar, err := preprocessing.NormalizeLabels(y)
	if err != nil {
		return err
	}

	pl := plot.New()
	pl.Title.Text = "Perceptron decision boundary"
	pl.X.Label.Text = "x1"
	pl.Y.Label.Text = "x2"

	var neg, pos plotter.XYs
	for i := 0; i < yBipolar.Len(); i++ {
		pt := plotter.XY{X: X.At(i, 0), Y: X.At(i, 1)}
		if yBipolar.AtVec(i) > 0 {
			pos = append(pos, pt)
		} else {
			neg = append(neg, pt)
		}
	}

	for _, class := range []struct {
		name  string
		pts   plotter.XYs
		color color.Color
		shape draw.GlyphDrawer
	}{
		{"class 0", neg, color.RGBA{B: 255, A: 255}, draw.CircleGlyph{}},
		{"class 1", pos, color.RGBA{R: 255, A: 255}, draw.CrossGlyph{}},
	} {
		if len(class.pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(class.pts)
		if err != nil {
			return errors.Wrap(err, "plot")
		}
		s.GlyphStyle.Color = class.color
		s.GlyphStyle.Shape = class.shape
		pl.Add(s)
		pl.Legend.Add(class.name, s)
	}

	xs, ys := mat.Col(nil, 0, X), mat.Col(nil, 1, X)
	line, ok := boundary(p, floats.Min(xs), floats.Max(xs), floats.Min(ys), floats.Max(ys))
	if ok {
		l, err := plotter.NewLine(line)
		if err != nil {
			return errors.Wrap(err, "plot")
		}
		l.LineStyle.Width = vg.Points(2)
		l.LineStyle.Color = color.Black
		pl.Add(l)
		pl.Legend.Add("decision line", l)
	}

	if err := pl.Save(5*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrap(err, "save plot")
	}
	return nil
}

// boundary returns the end points of w0*x1 + w1*x2 + k = 0 in the original
// feature space, clipped to the data range. ok is false when the weights do
// not define a line.
func boundary(p *linear_model.Perceptron, xmin, xmax, ymin, ymax float64) (plotter.XYs, bool) {
	coef := p.Coef()
	w0, w1, k := coef[0], coef[1], p.Intercept()

	// Undo standardization: β·((x-m)/s) = Σ (β_j/s_j) x_j - Σ β_j m_j/s_j
	if mean, scale, ok := p.ScalingParams(); ok {
		w0, w1 = w0/scale[0], w1/scale[1]
		k -= w0*mean[0] + w1*mean[1]
	}

	switch {
	case w1 != 0 && errors.IsFinite(w1):
		return plotter.XYs{
			{X: xmin, Y: -(w0*xmin + k) / w1},
			{X: xmax, Y: -(w0*xmax + k) / w1},
		}, true
	case w0 != 0 && errors.IsFinite(w0):
		x := -k / w0
		return plotter.XYs{{X: x, Y: ymin}, {X: x, Y: ymax}}, true
	default:
		return nil, false
	}
}
