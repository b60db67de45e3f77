package main

import (
	"math/rand/v2"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/perceptron/datasets"
	"github.com/YuminosukeSato/perceptron/pkg/errors"
)

type demoOptions struct {
	dataset string
	samples int
	gap     float64
	plot    string
}

func newDemoCmd(a *app) *cobra.Command {
	opts := &demoOptions{}
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Train on a synthetic dataset",
		Long:  "Train on two separable Gaussian blobs (converges) or the XOR corners (never converges).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.demo(cmd, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.dataset, "dataset", "separable", "separable or xor")
	fs.IntVar(&opts.samples, "samples", 200, "number of points for the separable dataset")
	fs.Float64Var(&opts.gap, "gap", 2, "distance of each blob centre from the origin along both axes")
	fs.StringVar(&opts.plot, "plot", "", "write a plot of the data and decision line (.png or .svg)")
	return cmd
}

func (a *app) demo(cmd *cobra.Command, opts *demoOptions) error {
	var (
		X *mat.Dense
		y *mat.VecDense
	)
	switch opts.dataset {
	case "separable":
		if opts.samples < 2 {
			return errors.NewValidationError("samples", "need at least 2", opts.samples)
		}
		if opts.gap <= 0 {
			return errors.NewValidationError("gap", "must be positive", opts.gap)
		}
		var src rand.Source
		if seed := a.cfg.RandomState; seed >= 0 {
			src = rand.NewPCG(uint64(seed), uint64(seed))
		}
		X, y = datasets.MakeSeparable(opts.samples, opts.gap, src)
	case "xor":
		X, y = datasets.MakeXOR()
	default:
		return errors.NewValidationError("dataset", "must be separable or xor", opts.dataset)
	}
	return a.fitAndReport(cmd, X, y, opts.plot)
}
