package accounting

// TrendLine is an ordinary least-squares fit y = Slope*x + Intercept over
// series indices 0..n-1.
type TrendLine struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at index x.
func (l TrendLine) At(x int) float64 {
	return l.Slope*float64(x) + l.Intercept
}

// FitTrendLine fits a line through (i, values[i]). It reports false when the
// fit is undefined, which happens for fewer than two points.
func FitTrendLine(values []float64) (TrendLine, bool) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return TrendLine{}, false
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return TrendLine{Slope: slope, Intercept: (sumY - slope*sumX) / n}, true
}
