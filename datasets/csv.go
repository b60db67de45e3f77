// Package datasets loads labelled feature matrices for the perceptron from
// CSV and generates small synthetic problems.
package datasets

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/perceptron/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// CSVOptions controls how LoadCSV interprets its input.
type CSVOptions struct {
	// LabelColumn is the index of the label column. Negative values count
	// from the end, so -1 selects the last column.
	LabelColumn int

	// Header skips the first record.
	Header bool

	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// DefaultCSVOptions returns options for a header-less file with the label in
// the last column.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{LabelColumn: -1}
}

// ParseError reports a cell that could not be read as a number.
type ParseError struct {
	Line   int
	Column int
	Value  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("perceptron: line %d, column %d: cannot parse %q as a number", e.Line, e.Column, e.Value)
}

// LoadCSV reads numeric records from r and splits them into an N×D feature
// matrix and an N-length label vector. Every record must have the same number
// of fields.
func LoadCSV(r io.Reader, opts CSVOptions) (*mat.Dense, *mat.VecDense, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.TrimLeadingSpace = true
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	var (
		data    []float64
		labels  []float64
		width   int
		labelAt int
	)
	for first := true; ; first = false {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(err, "LoadCSV")
		}
		line, _ := reader.FieldPos(0)

		if first {
			width = len(rec)
			if width < 2 {
				return nil, nil, errors.NewValueError("LoadCSV", "need at least one feature column and one label column")
			}
			labelAt = opts.LabelColumn
			if labelAt < 0 {
				labelAt += width
			}
			if labelAt < 0 || labelAt >= width {
				return nil, nil, errors.NewValidationError("label_column", "out of range", opts.LabelColumn)
			}
			if opts.Header {
				continue
			}
		}

		for j, s := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, nil, errors.WithStack(&ParseError{Line: line, Column: j, Value: s})
			}
			if j == labelAt {
				labels = append(labels, v)
				continue
			}
			data = append(data, v)
		}
	}

	if len(labels) == 0 {
		return nil, nil, errors.NewModelError("LoadCSV", "no data rows", errors.ErrEmptyData)
	}
	return mat.NewDense(len(labels), width-1, data), mat.NewVecDense(len(labels), labels), nil
}
