package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/perceptron/core/model"
	"github.com/YuminosukeSato/perceptron/core/parallel"
	"github.com/YuminosukeSato/perceptron/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// columnParallelThreshold 以下の列数では列統計を逐次計算する
const columnParallelThreshold = 64

// StandardScaler は列ごとに平均0・標準偏差1へ変換するスケーラー
//
// 分散0の列はガードしない。平均を引いた値(0)を標準偏差(0)で割るため、その列は
// NaN になる。Fit はそのような列を DegenerateColumns に記録し、Transform は
// 変換結果と共に DegenerateFeatureError を返す。
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差（母標準偏差、N で割る）
	Scale []float64

	// DegenerateColumns は全サンプルが同じ値を持つ列のインデックス
	DegenerateColumns []int

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

// NewStandardScaler は新しいStandardScalerを作成する
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	XScaled, err := scaler.FitTransform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから列ごとの平均と標準偏差を計算する
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	mean := make([]float64, c)
	scale := make([]float64, c)
	degenerate := make([]bool, c)

	parallel.ParallelizeWithThreshold(c, columnParallelThreshold, func(start, end int) {
		for j := start; j < end; j++ {
			mean[j], scale[j], degenerate[j] = columnStats(X, j, r)
		}
	})

	s.DegenerateColumns = s.DegenerateColumns[:0]
	for j := 0; j < c; j++ {
		if !s.WithMean {
			mean[j] = 0
		}
		if !s.WithStd {
			scale[j] = 1
			continue
		}
		if degenerate[j] {
			s.DegenerateColumns = append(s.DegenerateColumns, j)
		}
	}

	s.Mean = mean
	s.Scale = scale
	s.st().SetFitted(c, r)
	return nil
}

// columnStats は列 j の平均と母標準偏差を返す。
// 全ての値が等しい列は平均をその値、標準偏差を厳密に 0 とする。
func columnStats(X mat.Matrix, j, r int) (mean, sd float64, constant bool) {
	first := X.At(0, j)
	constant = true
	sum := 0.0
	for i := 0; i < r; i++ {
		v := X.At(i, j)
		sum += v
		if v != first {
			constant = false
		}
	}
	if constant {
		return first, 0, true
	}

	mean = sum / float64(r)
	sumSquares := 0.0
	for i := 0; i < r; i++ {
		diff := X.At(i, j) - mean
		sumSquares += diff * diff
	}
	return mean, math.Sqrt(sumSquares / float64(r)), false
}

// Transform は学習済みの統計情報を使ってデータを標準化する
//
// 分散0の列がある場合、変換結果（該当列は NaN）と DegenerateFeatureError の
// 両方を返す。
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.st().RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}
	if err := s.st().RequireFeatures("StandardScaler.Transform", colsOf(X)); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
			}
		}
	})

	if len(s.DegenerateColumns) > 0 {
		return result, errors.NewDegenerateFeatureError("StandardScaler.Transform", s.DegenerateColumns)
	}
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.st().RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	if err := s.st().RequireFeatures("StandardScaler.InverseTransform", colsOf(X)); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			result.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return result, nil
}

// IsFitted はスケーラーが学習済みかどうかを返す
func (s *StandardScaler) IsFitted() bool {
	return s.st().IsFitted()
}

// GetParams はスケーラーのパラメータを取得する
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	nFeatures, _ := s.st().Dimensions()
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, nFeatures)
}

// Standardize は X′ = (X − mean) / sd を返す純粋関数。X は変更しない。
//
// 分散0の列があっても計算は行い（該当列は NaN）、X′・mean・sd と共に
// *errors.DegenerateFeatureError を返す。呼び出し側は結果を使うかどうかを
// エラーを見て判断する。
func Standardize(X mat.Matrix) (*mat.Dense, []float64, []float64, error) {
	scaler := NewStandardScalerDefault()
	if err := scaler.Fit(X); err != nil {
		return nil, nil, nil, err
	}
	out, err := scaler.Transform(X)
	if out == nil {
		return nil, nil, nil, err
	}
	return out.(*mat.Dense), scaler.Mean, scaler.Scale, err
}

// ApplyScaling は保存済みの mean / sd で X を標準化する。
// 予測時に学習時のスケーリングを再適用するために使う。
func ApplyScaling(X mat.Matrix, mean, sd []float64) (*mat.Dense, error) {
	r, c := X.Dims()
	if c != len(mean) || c != len(sd) {
		return nil, errors.NewDimensionError("ApplyScaling", len(mean), c, 1)
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-mean[j])/sd[j])
		}
	}
	return out, nil
}

// st は状態管理を返す。ゼロ値の StandardScaler{} でも使えるよう遅延初期化する。
func (s *StandardScaler) st() *model.StateManager {
	if s.state == nil {
		s.state = model.NewStateManager()
	}
	return s.state
}

func colsOf(X mat.Matrix) int {
	_, c := X.Dims()
	return c
}
