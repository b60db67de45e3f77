package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/perceptron/datasets"
	"github.com/YuminosukeSato/perceptron/pkg/errors"
	"github.com/YuminosukeSato/perceptron/sklearn/linear_model"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { errors.SetZerologWarnFunc(nil) })

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), err
}

func TestDemo_Separable(t *testing.T) {
	out, err := runCLI(t, "demo", "--dataset", "separable", "--samples", "60", "--seed", "1", "--n-iter", "200", "--lr", "0.1")
	require.NoError(t, err)

	assert.Contains(t, out, "converged:   true")
	assert.Contains(t, out, "accuracy:    1.0000")
}

func TestDemo_XOR(t *testing.T) {
	out, err := runCLI(t, "demo", "--dataset", "xor", "--seed", "1", "--n-iter", "5")
	require.NoError(t, err)

	assert.Contains(t, out, "converged:   false")
	assert.Contains(t, out, "iterations:  5 (limit reached)")
}

func TestDemo_UnknownDataset(t *testing.T) {
	_, err := runCLI(t, "demo", "--dataset", "moons")

	var valErr *errors.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestTrain_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	data := "x1,x2,label\n0,0,0\n1,0.5,0\n0.5,1.5,0\n-1,0,0\n4,4,1\n5,4.5,1\n4.5,5.5,1\n6,5,1\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	out, err := runCLI(t, "train", "--data", path, "--header", "--seed", "3", "--n-iter", "100", "--lr", "0.1")
	require.NoError(t, err)

	assert.Contains(t, out, "converged:   true")
	assert.Contains(t, out, "accuracy:    1.0000")
}

func TestTrain_Errors(t *testing.T) {
	t.Run("missing data flag", func(t *testing.T) {
		_, err := runCLI(t, "train")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCLI(t, "train", "--data", filepath.Join(t.TempDir(), "nope.csv"))
		assert.Error(t, err)
	})

	t.Run("plot needs two features", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wide.csv")
		require.NoError(t, os.WriteFile(path, []byte("0,1,2,0\n3,4,5,1\n1,1,3,0\n"), 0o600))

		_, err := runCLI(t, "train", "--data", path, "--seed", "1",
			"--plot", filepath.Join(t.TempDir(), "out.png"))
		var valueErr *errors.ValueError
		assert.True(t, errors.As(err, &valueErr))
	})
}

func TestConfigPrecedence(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "perceptron.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("n_iter: 3\nseed: 4\nlog_level: warn\n"), 0o600))

	t.Run("config file", func(t *testing.T) {
		out, err := runCLI(t, "demo", "--dataset", "xor", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "iterations:  3 (limit reached)")
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("PERCEPTRON_N_ITER", "2")
		out, err := runCLI(t, "demo", "--dataset", "xor", "--config", cfgPath)
		require.NoError(t, err)
		assert.Contains(t, out, "iterations:  2 (limit reached)")
	})

	t.Run("flag overrides environment", func(t *testing.T) {
		t.Setenv("PERCEPTRON_N_ITER", "2")
		out, err := runCLI(t, "demo", "--dataset", "xor", "--config", cfgPath, "--n-iter", "4")
		require.NoError(t, err)
		assert.Contains(t, out, "iterations:  4 (limit reached)")
	})

	t.Run("explicit config file must exist", func(t *testing.T) {
		_, err := runCLI(t, "demo", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := runCLI(t, "demo", "--dataset", "xor", "--log-level", "loud")
		assert.Error(t, err)
	})
}

func TestPlotOutput(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"separable.png", "separable.svg"} {
		path := filepath.Join(dir, name)
		out, err := runCLI(t, "demo", "--samples", "40", "--seed", "2", "--n-iter", "100", "--lr", "0.1", "--plot", path)
		require.NoError(t, err)
		assert.Contains(t, out, "plot:")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestBoundaryLiesOnDecisionSurface(t *testing.T) {
	X, y := datasets.MakeXOR()
	for _, standardize := range []bool{true, false} {
		p := linear_model.NewPerceptron(
			linear_model.WithPerceptronRandomState(5),
			linear_model.WithPerceptronNIter(3),
			linear_model.WithPerceptronStandardize(standardize),
		)
		errors.SetWarningHandler(func(error) {})
		require.NoError(t, p.Fit(X, y))

		line, ok := boundary(p, 0, 1, 0, 1)
		require.True(t, ok)

		pts := mat.NewDense(2, 2, []float64{line[0].X, line[0].Y, line[1].X, line[1].Y})
		scores, err := p.DecisionFunction(pts)
		require.NoError(t, err)
		assert.InDelta(t, 0, scores.At(0, 0), 1e-9, "standardize=%t", standardize)
		assert.InDelta(t, 0, scores.At(1, 0), 1e-9, "standardize=%t", standardize)
	}
}
