package regression

import (
	"fmt"
	"math"

	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/frame"
)

func identity(v float64) float64 { return v }
func inverse(v float64) float64  { return 1 / v }

// leastSquares fits fy(y) = a + b*fx(x). When the transformed x has no
// variance the slope is 0 and a is the mean of fy(y).
func leastSquares(x, y []float64, fx, fy func(float64) float64) (a, b float64) {
	n := len(x)
	if n == 0 {
		return 0, 0
	}

	var sumX, sumY float64
	for i := range n {
		sumX += fx(x[i])
		sumY += fy(y[i])
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	// centered sums are more stable than the raw Σxy - n·x̄·ȳ form
	var sxy, sxx float64
	for i := range n {
		dx := fx(x[i]) - meanX
		sxy += dx * (fy(y[i]) - meanY)
		sxx += dx * dx
	}

	if sxx == 0 {
		return meanY, 0
	}

	b = sxy / sxx
	a = meanY - b*meanX

	return a, b
}

// calculateRSquared returns 1 - SS_res/SS_tot, or 0 when y has no variance.
func calculateRSquared(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	mean := calculateMean(observed)
	ssTot := 0.0
	ssRes := 0.0
	for i := range observed {
		ssTot += (observed[i] - mean) * (observed[i] - mean)
		ssRes += (observed[i] - predicted[i]) * (observed[i] - predicted[i])
	}

	if ssTot == 0 {
		return 0
	}

	return 1.0 - (ssRes / ssTot)
}

// calculateRMSE returns √(Σ(observed - predicted)² / n).
func calculateRMSE(observed, predicted []float64) float64 {
	if len(observed) == 0 {
		return 0
	}

	sumSq := 0.0
	for i := range observed {
		diff := observed[i] - predicted[i]
		sumSq += diff * diff
	}

	return math.Sqrt(sumSq / float64(len(observed)))
}

func calculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// calculateStatsOptimized computes R² and RMSE of a quadratic in one pass.
func calculateStatsOptimized(x, y []float64, a, b, c float64) (r2, rmse float64) {
	n := len(x)
	if n == 0 {
		return 0, 0
	}

	meanY := calculateMean(y)

	ssTot := 0.0
	ssRes := 0.0
	for i := range n {
		xi := x[i]
		yi := y[i]
		residual := yi - (a + b*xi + c*xi*xi)

		ssTot += (yi - meanY) * (yi - meanY)
		ssRes += residual * residual
	}

	if ssTot != 0 {
		r2 = 1.0 - (ssRes / ssTot)
	}

	return r2, math.Sqrt(ssRes / float64(n))
}

// domain records which transforms are defined for a data set.
type domain struct {
	positiveX bool
	positiveY bool
}

// inspect rejects non-finite values and reports the sign constraints of the data.
func inspect(x, y []float64) (domain, error) {
	d := domain{positiveX: true, positiveY: true}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return d, fmt.Errorf("%w: non-finite value at point %d", errs.ErrInvalidArgument, i)
		}
		if x[i] <= 0 {
			d.positiveX = false
		}
		if y[i] <= 0 {
			d.positiveY = false
		}
	}

	return d, nil
}

func (d domain) allows(t ModelType) bool {
	switch t {
	case ModelTypeHyperbolic, ModelTypeLogarithmic:
		return d.positiveX
	case ModelTypePower:
		return d.positiveX && d.positiveY
	case ModelTypeExponential:
		return d.positiveY
	default:
		return true
	}
}

// ratePoints returns (trials, rate) for every summary with at least one trial.
func ratePoints[K comparable](summaries []frame.Summary[K]) (x, y []float64) {
	x = make([]float64, 0, len(summaries))
	y = make([]float64, 0, len(summaries))
	for _, s := range summaries {
		if s.Trials == 0 {
			continue
		}
		x = append(x, float64(s.Trials))
		y = append(y, s.Rate())
	}

	return x, y
}

// tossPoints returns (covariate(id), toss as 0/1) for every row with a covariate.
// The covariate is evaluated once per block.
func tossPoints[K comparable](t *frame.Table[K], covariate func(K) (float64, bool)) (x, y []float64) {
	x = make([]float64, 0, t.Len())
	y = make([]float64, 0, t.Len())

	for b := range t.Blocks() {
		v, ok := covariate(b.ID)
		if !ok {
			continue
		}
		for _, toss := range t.Toss[b.Start:b.End()] {
			x = append(x, v)
			if toss {
				y = append(y, 1)
			} else {
				y = append(y, 0)
			}
		}
	}

	return x, y
}
