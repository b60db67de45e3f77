// Package log defines standard attribute keys for perceptron training and
// inference logs. Keys are hierarchical ("model.name", "data.samples") so logs
// from many fits can be filtered and aggregated.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "Perceptron", "StandardScaler".
	ModelNameKey = "model.name"

	// OperationKey is one of the Operation* values below.
	OperationKey = "ml.operation"

	// ComponentKey names the package doing the work, e.g. "linear_model".
	ComponentKey = "ml.component"

	// PhaseKey is one of the Phase* values below.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"

	// DesignColumnsKey is the column count actually seen by the update rule,
	// features plus the intercept column when one is appended.
	DesignColumnsKey = "data.design_columns"
)

// Training progress and results.
const (
	DurationMsKey = "perf.duration_ms"
	AccuracyKey   = "metrics.accuracy"
	IterationKey  = "training.iteration"

	// MistakesKey counts misclassified observations in one online pass.
	MistakesKey = "training.mistakes"

	// ConvergedKey reports whether every training row is classified correctly.
	ConvergedKey = "training.converged"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and configuration.
const (
	LearningRateKey = "hyperparams.learning_rate"
	NIterKey        = "hyperparams.n_iter"
	InterceptKey    = "hyperparams.fit_intercept"
	StandardizeKey  = "hyperparams.standardize"
	RandomSeedKey   = "config.random_seed"
)

const (
	OperationFit       = "fit"
	OperationPredict   = "predict"
	OperationTransform = "transform"
	OperationScore     = "score"

	PhaseTraining      = "training"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorDegenerateFeature = "DEGENERATE_FEATURE"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
)
