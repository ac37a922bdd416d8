package analysis

// DataPoint is one day of a nutrient series.
// X is the 0-based chronological day index, Y the day's total.
type DataPoint struct {
	X int
	Y float64
}

// Regression is a fitted line y = Slope*x + Intercept
type Regression struct {
	Slope     float64
	Intercept float64
	RSquared  float64 // coefficient of determination, 0 for degenerate fits
}

// Predict evaluates the line at x. No bounds checking: callers extrapolate freely.
func (r Regression) Predict(x int) float64 {
	return r.Slope*float64(x) + r.Intercept
}

// FitLinear computes an ordinary least-squares line over points.
//
// Fewer than two points yields the flat zero line (predicts 0 everywhere).
// When every x is identical the slope is 0 and the line sits at mean(y).
// It never fails.
func FitLinear(points []DataPoint) Regression {
	n := float64(len(points))
	if len(points) < 2 {
		return Regression{}
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := float64(p.X)
		sumX += x
		sumY += p.Y
		sumXY += x * p.Y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return Regression{Intercept: sumY / n}
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	r := Regression{Slope: slope, Intercept: intercept}
	r.RSquared = rSquared(points, r, sumY/n)
	return r
}

// rSquared returns 1 - SSres/SStot; a constant series is a perfect fit
func rSquared(points []DataPoint, r Regression, meanY float64) float64 {
	var ssTot, ssRes float64
	for _, p := range points {
		d := p.Y - meanY
		ssTot += d * d
		e := p.Y - r.Predict(p.X)
		ssRes += e * e
	}
	if ssTot == 0 {
		return 1
	}
	return 1 - ssRes/ssTot
}
