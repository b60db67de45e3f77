// Package perceptron is a binary linear classifier library for Go built on
// gonum matrices.
//
// The classifier is the classic mistake-driven perceptron: features are
// optionally standardized, a constant-1 intercept column is optionally
// appended, and the weights are updated one observation at a time until every
// training row is classified correctly or the pass budget is spent.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/perceptron/sklearn/linear_model"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 2, []float64{0, 0, 1, 0, 4, 4, 5, 4})
//	    y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})
//
//	    p := linear_model.NewPerceptron(
//	        linear_model.WithPerceptronNIter(100),
//	        linear_model.WithPerceptronLearningRate(0.1),
//	        linear_model.WithPerceptronRandomState(42),
//	    )
//	    if err := p.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pred, _ := p.Predict(X)
//	    fmt.Println(p.Converged(), mat.Formatted(pred))
//	}
//
// # Packages
//
//   - sklearn/linear_model: the Perceptron trainer
//   - preprocessing: StandardScaler, Standardize and the Sign / ToBinary label codec
//   - metrics: Accuracy, ClassificationError and a binary confusion matrix
//   - datasets: CSV loading and synthetic separable / XOR data
//   - core/model: estimator interfaces and the fitted-state manager
//   - core/parallel: row-chunked parallel helpers for fixed-weight scoring
//   - pkg/errors: structured errors and the warning hook
//   - pkg/log: slog and zerolog backed structured logging
//   - cmd/perceptron: command line trainer
//
// # Labels
//
// Labels may be {0, 1}, {-1, +1} or real-valued scores. A column made only of
// 0s and 1s is read as binary; anything else is mapped through Sign, so a 0
// inside a real-valued column counts as positive. Predictions are always
// {0, 1}.
//
// # Convergence
//
// Not converging is a normal outcome, reported by Converged and a
// ConvergenceWarning through errors.Warn. A constant feature column under
// standardization is an error (DegenerateFeatureError).
package perceptron
