package accounting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitTrendLine_ExactLine(t *testing.T) {
	line, ok := FitTrendLine([]float64{1, 3, 5, 7})
	require.True(t, ok)
	assert.InDelta(t, 2.0, line.Slope, 1e-12)
	assert.InDelta(t, 1.0, line.Intercept, 1e-12)
	assert.InDelta(t, 9.0, line.At(4), 1e-12)
}

func TestFitTrendLine_FlatSeries(t *testing.T) {
	line, ok := FitTrendLine([]float64{4, 4, 4})
	require.True(t, ok)
	assert.Zero(t, line.Slope)
	assert.InDelta(t, 4.0, line.Intercept, 1e-12)
}

func TestFitTrendLine_ZeroDenominator(t *testing.T) {
	_, ok := FitTrendLine(nil)
	assert.False(t, ok)

	_, ok = FitTrendLine([]float64{42})
	assert.False(t, ok)
}
