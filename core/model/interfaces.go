package model

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Scorer computes a goodness-of-fit score, accuracy for classifiers.
type Scorer interface {
	Score(X, y mat.Matrix) (float64, error)
}

// ContextFitter is a Fitter whose training loop can be cancelled between
// iterations.
type ContextFitter interface {
	FitContext(ctx context.Context, X, y mat.Matrix) error
}

// LinearClassifier is a fitted binary linear decision rule.
type LinearClassifier interface {
	Fitter
	ContextFitter
	Predictor
	Scorer

	// DecisionFunction returns the signed distance-like score X·β per row.
	DecisionFunction(X mat.Matrix) (mat.Matrix, error)

	// Coef returns a copy of the learned weights.
	Coef() []float64
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}

// ParameterSetter is the interface for models that allow parameter modification.
type ParameterSetter interface {
	SetParams(params map[string]interface{}) error
}
