package linear_model

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/YuminosukeSato/perceptron/core/model"
	"github.com/YuminosukeSato/perceptron/core/parallel"
	"github.com/YuminosukeSato/perceptron/metrics"
	"github.com/YuminosukeSato/perceptron/pkg/errors"
	"github.com/YuminosukeSato/perceptron/pkg/log"
	"github.com/YuminosukeSato/perceptron/preprocessing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Perceptron is a binary linear classifier trained with the classic
// mistake-driven perceptron rule.
//
// Each Fit standardizes X (optional), appends a constant-1 intercept column
// (optional), draws fresh weights from N(0, 1)/5 and then repeats online
// passes over the rows in index order until every row is classified correctly
// or the iteration budget runs out. A misclassified row n moves the weights by
// lr * sign(y_n) * x_n immediately, so later rows in the same pass see the
// update.
type Perceptron struct {
	state *model.StateManager
	mu    sync.RWMutex

	// Hyperparameters
	nIter        int     // outer pass budget
	learningRate float64 // step size
	fitIntercept bool    // append a constant-1 column
	standardize  bool    // standardize columns before training
	randomState  int64   // seed, < 0 means time based
	rng          *rand.Rand
	logger       log.Logger

	// Fitted state, replaced as a whole at the end of each successful Fit
	coef_           []float64                     // weights, intercept weight last when fitIntercept
	mean_           []float64                     // column means used for standardization
	scale_          []float64                     // column standard deviations
	converged_      bool                          // every training row classified correctly
	nIterConverged_ int                           // pass index at which convergence was detected
	nIter_          int                           // update passes actually performed
	yhat_           *mat.VecDense                 // {0,1} predictions on the training design matrix
	labels_         preprocessing.LabelConvention // label convention y was read with
}

// PerceptronOption is a functional option for Perceptron
type PerceptronOption func(*Perceptron)

// PerceptronConfig mirrors the hyperparameters for configuration files and
// flags.
type PerceptronConfig struct {
	NIter        int     `mapstructure:"n_iter"`
	LearningRate float64 `mapstructure:"lr"`
	FitIntercept bool    `mapstructure:"intercept"`
	Standardize  bool    `mapstructure:"standardize"`
	RandomState  int64   `mapstructure:"seed"`
}

// DefaultPerceptronConfig returns n_iter=1000, lr=0.001, intercept and
// standardization enabled, and a time-based seed.
func DefaultPerceptronConfig() PerceptronConfig {
	return PerceptronConfig{
		NIter:        1000,
		LearningRate: 0.001,
		FitIntercept: true,
		Standardize:  true,
		RandomState:  -1,
	}
}

// NewPerceptron creates a new Perceptron with the defaults of
// DefaultPerceptronConfig.
func NewPerceptron(opts ...PerceptronOption) *Perceptron {
	p := &Perceptron{state: model.NewStateManager()}
	WithPerceptronConfig(DefaultPerceptronConfig())(p)

	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithPerceptronConfig applies every field of cfg.
func WithPerceptronConfig(cfg PerceptronConfig) PerceptronOption {
	return func(p *Perceptron) {
		p.nIter = cfg.NIter
		p.learningRate = cfg.LearningRate
		p.fitIntercept = cfg.FitIntercept
		p.standardize = cfg.Standardize
		p.randomState = cfg.RandomState
	}
}

// WithPerceptronNIter sets the maximum number of outer passes
func WithPerceptronNIter(nIter int) PerceptronOption {
	return func(p *Perceptron) {
		p.nIter = nIter
	}
}

// WithPerceptronLearningRate sets the update step size
func WithPerceptronLearningRate(lr float64) PerceptronOption {
	return func(p *Perceptron) {
		p.learningRate = lr
	}
}

// WithPerceptronFitIntercept sets whether a constant-1 column is appended
func WithPerceptronFitIntercept(fit bool) PerceptronOption {
	return func(p *Perceptron) {
		p.fitIntercept = fit
	}
}

// WithPerceptronStandardize sets whether columns are standardized before training
func WithPerceptronStandardize(standardize bool) PerceptronOption {
	return func(p *Perceptron) {
		p.standardize = standardize
	}
}

// WithPerceptronRandomState seeds weight initialization. Every Fit starts a
// fresh generator from the seed, so repeated fits are identical.
func WithPerceptronRandomState(seed int64) PerceptronOption {
	return func(p *Perceptron) {
		p.randomState = seed
	}
}

// WithPerceptronRand uses rng for weight initialization. The generator is
// consumed across fits, not re-seeded; it takes precedence over the seed.
func WithPerceptronRand(rng *rand.Rand) PerceptronOption {
	return func(p *Perceptron) {
		p.rng = rng
	}
}

// WithPerceptronLogger sets the logger. Defaults to log.GetLogger() at fit time.
func WithPerceptronLogger(logger log.Logger) PerceptronOption {
	return func(p *Perceptron) {
		p.logger = logger
	}
}

// Fit trains the perceptron on X (N×D) and y (N×1). See FitContext.
func (p *Perceptron) Fit(X, y mat.Matrix) error {
	return p.FitContext(context.Background(), X, y)
}

// FitContext trains the perceptron. y may be binary {0,1}, bipolar {-1,+1}
// or real-valued scores (see preprocessing.NormalizeLabels).
//
// Not converging within the pass budget is not an error: Converged reports
// false and a ConvergenceWarning goes through errors.Warn. ctx is checked
// between outer passes; on cancellation the previous fitted state is kept.
func (p *Perceptron) FitContext(ctx context.Context, X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "Perceptron.Fit")

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.validateParams(); err != nil {
		return err
	}

	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("Perceptron.Fit", "empty data", errors.ErrEmptyData)
	}
	if yRows, _ := y.Dims(); yRows != nSamples {
		return errors.NewDimensionError("Perceptron.Fit", nSamples, yRows, 0)
	}
	if err := errors.CheckMatrix("Perceptron.Fit", X, nSamples, nFeatures, 0); err != nil {
		return errors.Wrap(err, "X contains non-finite values")
	}

	yBipolar, labels, err := preprocessing.NormalizeLabelsAs(y, preprocessing.LabelAuto)
	if err != nil {
		return err
	}

	logger := p.getLogger().With(log.OperationKey, log.OperationFit, log.PhaseKey, log.PhaseTraining)
	start := time.Now()

	source := X
	var mean, scale []float64
	if p.standardize {
		std, m, s, err := preprocessing.Standardize(X)
		if err != nil {
			var degErr *errors.DegenerateFeatureError
			if errors.As(err, &degErr) {
				errors.Warn(errors.NewDegenerateFeatureWarning("Perceptron.Fit", degErr.Columns))
				logger.Error("standardization produced non-finite values",
					log.ErrAttrKey, err,
					log.ErrorCodeKey, log.ErrorDegenerateFeature,
					log.SuggestionKey, "drop constant columns or disable standardization",
				)
			}
			return errors.Wrap(err, "Perceptron.Fit")
		}
		source, mean, scale = std, m, s
	}

	design := p.designMatrix(source)
	_, nCols := design.Dims()

	rng := p.newRand()
	coef := make([]float64, nCols)
	for j := range coef {
		coef[j] = rng.NormFloat64() / 5
	}

	logger.Debug("fit started",
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.DesignColumnsKey, nCols,
		log.NIterKey, p.nIter,
		log.LearningRateKey, p.learningRate,
		log.InterceptKey, p.fitIntercept,
		log.StandardizeKey, p.standardize,
		log.RandomSeedKey, p.randomState,
	)

	target := preprocessing.BinaryLabels(yBipolar)
	yhat := mat.NewVecDense(nSamples, nil)
	debug := logger.Enabled(ctx, log.LevelDebug)

	converged := false
	nIterConverged := 0
	passes := 0
	for i := 0; i < p.nIter; i++ {
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "Perceptron.Fit cancelled after %d passes", passes)
		default:
		}

		predictBinary(design, coef, yhat)
		if mat.Equal(yhat, target) {
			converged = true
			nIterConverged = i
			break
		}

		mistakes := onlinePass(design, yBipolar, coef, p.learningRate)
		passes++

		if debug {
			logger.Debug("pass finished", log.IterationKey, i, log.MistakesKey, mistakes)
		}
	}

	if err := errors.CheckNumericalStability("Perceptron.Fit", coef, passes); err != nil {
		return err
	}

	predictBinary(design, coef, yhat)

	p.coef_ = coef
	p.mean_ = mean
	p.scale_ = scale
	p.converged_ = converged
	p.nIterConverged_ = nIterConverged
	p.nIter_ = passes
	p.yhat_ = yhat
	p.labels_ = labels
	p.state.SetFitted(nFeatures, nSamples)

	accuracy, _ := metrics.Accuracy(target, yhat)
	fields := []any{
		log.ConvergedKey, converged,
		log.IterationKey, passes,
		log.AccuracyKey, accuracy,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	}
	if converged {
		logger.Info("fit converged", fields...)
		return nil
	}

	logger.Info("fit did not converge", append(fields, log.ErrorCodeKey, log.ErrorConvergence)...)
	misclassified := 0
	for n := 0; n < nSamples; n++ {
		if yhat.AtVec(n) != target.AtVec(n) {
			misclassified++
		}
	}
	errors.Warn(errors.NewConvergenceWarning("Perceptron", passes,
		fmt.Sprintf("%d of %d training samples still misclassified", misclassified, nSamples)))
	return nil
}

// onlinePass runs one sequential sweep over the rows, updating coef in place
// after every mistake, and returns the number of mistakes.
func onlinePass(design *mat.Dense, yBipolar *mat.VecDense, coef []float64, lr float64) int {
	nSamples, _ := design.Dims()
	mistakes := 0
	for n := 0; n < nSamples; n++ {
		row := design.RawRowView(n)
		yn := preprocessing.Sign(yBipolar.AtVec(n))
		if yn*preprocessing.Sign(floats.Dot(coef, row)) == -1 {
			floats.AddScaled(coef, lr*yn, row)
			mistakes++
		}
	}
	return mistakes
}

// predictBinary writes ToBinary(Sign(x_n · coef)) for every row into out.
// coef is read-only here, so rows are scored in parallel for large inputs.
func predictBinary(design *mat.Dense, coef []float64, out *mat.VecDense) {
	nSamples, _ := design.Dims()
	parallel.ParallelizeWithThreshold(nSamples, parallel.DefaultThreshold, func(start, end int) {
		for n := start; n < end; n++ {
			score := floats.Dot(coef, design.RawRowView(n))
			out.SetVec(n, preprocessing.ToBinary(preprocessing.Sign(score)))
		}
	})
}

// designMatrix copies X into a new dense matrix, with a trailing constant-1
// column when fitIntercept is set.
func (p *Perceptron) designMatrix(X mat.Matrix) *mat.Dense {
	r, c := X.Dims()
	cols := c
	if p.fitIntercept {
		cols++
	}
	design := mat.NewDense(r, cols, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				design.Set(i, j, X.At(i, j))
			}
			if p.fitIntercept {
				design.Set(i, c, 1)
			}
		}
	})
	return design
}

// prepare applies the training-time scaling and intercept column to new data.
func (p *Perceptron) prepare(op string, X mat.Matrix) (*mat.Dense, error) {
	if err := p.state.RequireFitted("Perceptron", op); err != nil {
		return nil, err
	}
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 {
		return nil, errors.NewModelError("Perceptron."+op, "empty data", errors.ErrEmptyData)
	}
	if err := p.state.RequireFeatures("Perceptron."+op, nFeatures); err != nil {
		return nil, err
	}

	source := X
	if p.mean_ != nil {
		scaled, err := preprocessing.ApplyScaling(X, p.mean_, p.scale_)
		if err != nil {
			return nil, err
		}
		source = scaled
	}
	return p.designMatrix(source), nil
}

// DecisionFunction returns the raw scores x_n · β as an N×1 matrix.
func (p *Perceptron) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	design, err := p.prepare("DecisionFunction", X)
	if err != nil {
		return nil, err
	}

	nSamples, _ := design.Dims()
	scores := mat.NewDense(nSamples, 1, nil)
	parallel.ParallelizeWithThreshold(nSamples, parallel.DefaultThreshold, func(start, end int) {
		for n := start; n < end; n++ {
			scores.Set(n, 0, floats.Dot(p.coef_, design.RawRowView(n)))
		}
	})
	return scores, nil
}

// Predict returns {0,1} predictions as an N×1 matrix. The mean and standard
// deviation from Fit are reapplied to X; they are not recomputed from X.
func (p *Perceptron) Predict(X mat.Matrix) (mat.Matrix, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	design, err := p.prepare("Predict", X)
	if err != nil {
		return nil, err
	}

	nSamples, _ := design.Dims()
	out := mat.NewVecDense(nSamples, nil)
	predictBinary(design, p.coef_, out)

	p.getLogger().Debug("predict finished",
		log.ModelNameKey, "Perceptron",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, nSamples,
	)
	return mat.NewDense(nSamples, 1, out.RawVector().Data), nil
}

// Score returns the accuracy of Predict(X) against y.
//
// y is read with the label convention detected at Fit, not re-detected per
// call: after training on {0,1} labels y must be 0/1, and after training on
// bipolar labels or scores a 0 label counts as +1.
func (p *Perceptron) Score(X, y mat.Matrix) (float64, error) {
	pred, err := p.Predict(X)
	if err != nil {
		return 0, err
	}
	p.mu.RLock()
	labels := p.labels_
	p.mu.RUnlock()
	yBipolar, _, err := preprocessing.NormalizeLabelsAs(y, labels)
	if err != nil {
		return 0, err
	}
	nPred, _ := pred.Dims()
	if nPred != yBipolar.Len() {
		return 0, errors.NewDimensionError("Perceptron.Score", nPred, yBipolar.Len(), 0)
	}
	return metrics.Accuracy(preprocessing.BinaryLabels(yBipolar), mat.NewVecDense(nPred, mat.Col(nil, 0, pred)))
}

// LabelConvention reports how Fit read y. It is LabelAuto before Fit.
func (p *Perceptron) LabelConvention() preprocessing.LabelConvention {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.labels_
}

// Coef returns a copy of β. With an intercept the last entry is the
// intercept weight.
func (p *Perceptron) Coef() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.coef_ == nil {
		return nil
	}
	out := make([]float64, len(p.coef_))
	copy(out, p.coef_)
	return out
}

// Intercept returns the weight of the constant-1 column, or 0 when the model
// was fitted without one.
func (p *Perceptron) Intercept() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.fitIntercept || len(p.coef_) == 0 {
		return 0
	}
	return p.coef_[len(p.coef_)-1]
}

// Converged reports whether the last Fit classified every training row
// correctly within the pass budget.
func (p *Perceptron) Converged() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.converged_
}

// IterationsUntilConvergence returns the pass index at which convergence was
// detected. ok is false when the last Fit did not converge.
func (p *Perceptron) IterationsUntilConvergence() (n int, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.converged_ {
		return 0, false
	}
	return p.nIterConverged_, true
}

// NIterations returns the number of update passes the last Fit performed.
func (p *Perceptron) NIterations() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.nIter_
}

// TrainingPredictions returns a copy of the {0,1} predictions computed on the
// training data with the final weights.
func (p *Perceptron) TrainingPredictions() *mat.VecDense {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.yhat_ == nil {
		return nil
	}
	return mat.VecDenseCopyOf(p.yhat_)
}

// ScalingParams returns copies of the standardization parameters from the
// last Fit. ok is false when standardization was disabled.
func (p *Perceptron) ScalingParams() (mean, scale []float64, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.mean_ == nil {
		return nil, nil, false
	}
	mean = append([]float64(nil), p.mean_...)
	scale = append([]float64(nil), p.scale_...)
	return mean, scale, true
}

// IsFitted returns whether the model has been fitted.
func (p *Perceptron) IsFitted() bool {
	return p.state.IsFitted()
}

// GetParams returns the hyperparameters
func (p *Perceptron) GetParams() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return map[string]interface{}{
		"n_iter":        p.nIter,
		"learning_rate": p.learningRate,
		"fit_intercept": p.fitIntercept,
		"standardize":   p.standardize,
		"random_state":  p.randomState,
	}
}

// SetParams sets hyperparameters by name. The fitted state is left untouched
// until the next Fit. If any key is unknown or has the wrong type nothing is
// applied.
func (p *Perceptron) SetParams(params map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	// 全キーを検証してから適用する
	next := struct {
		nIter        int
		learningRate float64
		fitIntercept bool
		standardize  bool
		randomState  int64
	}{p.nIter, p.learningRate, p.fitIntercept, p.standardize, p.randomState}

	for key, value := range params {
		var ok bool
		switch key {
		case "n_iter":
			next.nIter, ok = value.(int)
		case "learning_rate":
			next.learningRate, ok = value.(float64)
		case "fit_intercept":
			next.fitIntercept, ok = value.(bool)
		case "standardize":
			next.standardize, ok = value.(bool)
		case "random_state":
			next.randomState, ok = value.(int64)
		default:
			return errors.NewValidationError(key, "unknown parameter", value)
		}
		if !ok {
			return errors.NewValidationError(key, "wrong type", value)
		}
	}

	p.nIter = next.nIter
	p.learningRate = next.learningRate
	p.fitIntercept = next.fitIntercept
	p.standardize = next.standardize
	p.randomState = next.randomState
	return nil
}

// String returns a short description of the model.
func (p *Perceptron) String() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s := fmt.Sprintf("Perceptron(n_iter=%d, learning_rate=%g, fit_intercept=%t, standardize=%t",
		p.nIter, p.learningRate, p.fitIntercept, p.standardize)
	if p.state.IsFitted() {
		s += fmt.Sprintf(", converged=%t, n_iter_=%d", p.converged_, p.nIter_)
	}
	return s + ")"
}

func (p *Perceptron) validateParams() error {
	if p.nIter <= 0 {
		return errors.NewValidationError("n_iter", "must be positive", p.nIter)
	}
	if p.learningRate <= 0 || !errors.IsFinite(p.learningRate) {
		return errors.NewValidationError("learning_rate", "must be positive and finite", p.learningRate)
	}
	return nil
}

// newRand returns the generator for weight initialization.
func (p *Perceptron) newRand() *rand.Rand {
	if p.rng != nil {
		return p.rng
	}
	if p.randomState >= 0 {
		return rand.New(rand.NewSource(p.randomState))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (p *Perceptron) getLogger() log.Logger {
	if p.logger != nil {
		return p.logger
	}
	return log.GetLogger().With(log.ModelNameKey, "Perceptron")
}
