package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/perceptron/pkg/errors"
)

func TestStateManager(t *testing.T) {
	s := NewStateManager()
	assert.False(t, s.IsFitted())

	err := s.RequireFitted("Perceptron", "Predict")
	var nf *errors.NotFittedError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Predict", nf.Method)

	s.SetFitted(3, 10)
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("Perceptron", "Predict"))

	nFeatures, nSamples := s.Dimensions()
	assert.Equal(t, 3, nFeatures)
	assert.Equal(t, 10, nSamples)

	assert.NoError(t, s.RequireFeatures("Perceptron.Predict", 3))
	var dimErr *errors.DimensionError
	require.True(t, errors.As(s.RequireFeatures("Perceptron.Predict", 2), &dimErr))
	assert.Equal(t, 1, dimErr.Axis)

	s.Reset()
	assert.False(t, s.IsFitted())
	nFeatures, _ = s.Dimensions()
	assert.Zero(t, nFeatures)
}

func TestStateManager_Concurrent(t *testing.T) {
	s := NewStateManager()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.SetFitted(n, n)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.IsFitted()
			_, _ = s.Dimensions()
		}()
	}
	wg.Wait()
	assert.True(t, s.IsFitted())
}
