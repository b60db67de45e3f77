package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/perceptron/datasets"
	"github.com/YuminosukeSato/perceptron/pkg/errors"
	"github.com/YuminosukeSato/perceptron/pkg/log"
	"github.com/YuminosukeSato/perceptron/sklearn/linear_model"
)

type trainOptions struct {
	data        string
	labelColumn int
	header      bool
	plot        string
}

func newTrainCmd(a *app) *cobra.Command {
	opts := &trainOptions{}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train on a CSV file",
		Long:  "Train a perceptron on numeric CSV data. One column holds the labels ({0,1}, {-1,+1} or real scores), every other column is a feature.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.train(cmd, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.data, "data", "d", "", "CSV file to train on")
	fs.IntVar(&opts.labelColumn, "label-column", -1, "index of the label column, negative counts from the end")
	fs.BoolVar(&opts.header, "header", false, "skip the first record")
	fs.StringVar(&opts.plot, "plot", "", "write a plot of the data and decision line (.png or .svg, 2 features only)")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func (a *app) train(cmd *cobra.Command, opts *trainOptions) error {
	f, err := os.Open(opts.data)
	if err != nil {
		return errors.Wrap(err, "open data")
	}
	defer f.Close()

	X, y, err := datasets.LoadCSV(f, datasets.CSVOptions{LabelColumn: opts.labelColumn, Header: opts.header})
	if err != nil {
		return err
	}
	return a.fitAndReport(cmd, X, y, opts.plot)
}

// fitAndReport trains with the loaded configuration, prints a summary to
// stdout and optionally renders the plot.
func (a *app) fitAndReport(cmd *cobra.Command, X *mat.Dense, y *mat.VecDense, plotPath string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := linear_model.NewPerceptron(
		linear_model.WithPerceptronConfig(a.cfg.PerceptronConfig),
		linear_model.WithPerceptronLogger(log.GetLogger().With(log.ModelNameKey, "Perceptron")),
	)
	if err := p.FitContext(ctx, X, y); err != nil {
		a.logger.Error("training failed", log.ErrAttrKey, err)
		return err
	}

	accuracy, err := p.Score(X, y)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "weights:     %v\n", p.Coef())
	fmt.Fprintf(out, "converged:   %t\n", p.Converged())
	if n, ok := p.IterationsUntilConvergence(); ok {
		fmt.Fprintf(out, "iterations:  %d\n", n)
	} else {
		fmt.Fprintf(out, "iterations:  %d (limit reached)\n", p.NIterations())
	}
	fmt.Fprintf(out, "accuracy:    %.4f\n", accuracy)

	if plotPath == "" {
		return nil
	}
	if err := savePlot(plotPath, X, y, p); err != nil {
		return err
	}
	fmt.Fprintf(out, "plot:        %s\n", plotPath)
	return nil
}
