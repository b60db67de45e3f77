package datasets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/perceptron/pkg/errors"
)

func TestLoadCSV(t *testing.T) {
	t.Run("label in last column", func(t *testing.T) {
		X, y, err := LoadCSV(strings.NewReader("1,2,0\n3,4,1\n5,6,1\n"), DefaultCSVOptions())
		require.NoError(t, err)

		r, c := X.Dims()
		assert.Equal(t, 3, r)
		assert.Equal(t, 2, c)
		assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, X.RawMatrix().Data)
		assert.Equal(t, []float64{0, 1, 1}, y.RawVector().Data)
	})

	t.Run("header and first label column", func(t *testing.T) {
		in := "label, x1, x2\n-1, 0.5, 1.5\n1, 2.5, 3.5\n"
		X, y, err := LoadCSV(strings.NewReader(in), CSVOptions{LabelColumn: 0, Header: true})
		require.NoError(t, err)

		assert.Equal(t, []float64{0.5, 1.5, 2.5, 3.5}, X.RawMatrix().Data)
		assert.Equal(t, []float64{-1, 1}, y.RawVector().Data)
	})

	t.Run("semicolon delimiter", func(t *testing.T) {
		X, y, err := LoadCSV(strings.NewReader("1;0\n2;1\n"), CSVOptions{LabelColumn: -1, Comma: ';'})
		require.NoError(t, err)

		assert.Equal(t, []float64{1, 2}, X.RawMatrix().Data)
		assert.Equal(t, []float64{0, 1}, y.RawVector().Data)
	})
}

func TestLoadCSV_Errors(t *testing.T) {
	t.Run("unparsable cell", func(t *testing.T) {
		_, _, err := LoadCSV(strings.NewReader("1,2,0\n3,abc,1\n"), DefaultCSVOptions())
		require.Error(t, err)

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, 2, parseErr.Line)
		assert.Equal(t, 1, parseErr.Column)
		assert.Equal(t, "abc", parseErr.Value)
	})

	t.Run("ragged records", func(t *testing.T) {
		_, _, err := LoadCSV(strings.NewReader("1,2,0\n3,1\n"), DefaultCSVOptions())
		assert.Error(t, err)
	})

	t.Run("label column out of range", func(t *testing.T) {
		_, _, err := LoadCSV(strings.NewReader("1,2,0\n"), CSVOptions{LabelColumn: 3})
		var valErr *errors.ValidationError
		assert.True(t, errors.As(err, &valErr))
	})

	t.Run("single column", func(t *testing.T) {
		_, _, err := LoadCSV(strings.NewReader("1\n2\n"), DefaultCSVOptions())
		var valueErr *errors.ValueError
		assert.True(t, errors.As(err, &valueErr))
	})

	t.Run("header only", func(t *testing.T) {
		_, _, err := LoadCSV(strings.NewReader("a,b\n"), CSVOptions{LabelColumn: -1, Header: true})
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})

	t.Run("empty input", func(t *testing.T) {
		_, _, err := LoadCSV(strings.NewReader(""), DefaultCSVOptions())
		assert.True(t, errors.Is(err, errors.ErrEmptyData))
	})
}
