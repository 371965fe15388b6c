package regression

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/frame"
	"github.com/arloliu/tossframe/internal/options"
)

// Analyze fits every configured model to the pairs (x[i], y[i]) and returns
// them ranked by R², best first.
//
// Models whose transform is undefined for the data are skipped: hyperbolic,
// logarithmic and power need x > 0, power and exponential need y > 0.
//
// Returns errs.ErrMismatchedLength when x and y differ in length,
// errs.ErrInsufficientData when there are fewer pairs than the configured
// minimum or no model applies, and errs.ErrInvalidArgument for a NaN or
// infinite value.
func Analyze(x, y []float64, opts ...AnalyzeOption) (*Result, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return analyze(x, y, cfg)
}

// AnalyzeRates relates the head rate of each id to its number of trials:
// x = Trials, y = Rate(). Summaries without trials are ignored.
func AnalyzeRates[K comparable](summaries []frame.Summary[K], opts ...AnalyzeOption) (*Result, error) {
	x, y := ratePoints(summaries)

	return Analyze(x, y, opts...)
}

// AnalyzeTosses fits the linear probability model toss ~ covariate(id), with
// each toss counted as 1 for heads and 0 for tails. Rows whose covariate
// reports false are skipped.
//
// Only the linear model is fitted; a WithModels option is overridden.
func AnalyzeTosses[K comparable](t *frame.Table[K], covariate func(K) (float64, bool), opts ...AnalyzeOption) (*Result, error) {
	cfg := defaultAnalyzeConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	cfg.Models = []ModelType{ModelTypeLinear}

	x, y := tossPoints(t, covariate)

	return analyze(x, y, cfg)
}

func analyze(x, y []float64, cfg AnalyzeConfig) (*Result, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d x vs %d y", errs.ErrMismatchedLength, len(x), len(y))
	}

	if len(x) < cfg.MinPoints {
		return nil, fmt.Errorf("%w: %d points, need %d", errs.ErrInsufficientData, len(x), cfg.MinPoints)
	}

	dom, err := inspect(x, y)
	if err != nil {
		return nil, err
	}

	models := make([]*Model, 0, len(cfg.Models))
	for _, t := range cfg.Models {
		if !dom.allows(t) {
			continue
		}
		models = append(models, fit(t, x, y))
	}

	if len(models) == 0 {
		return nil, fmt.Errorf("%w: no candidate model applies to the data", errs.ErrInsufficientData)
	}

	// Sort models by R² (best first); NaN sorts last.
	slices.SortStableFunc(models, func(a, b *Model) int {
		ra, rb := rankable(a.RSquared), rankable(b.RSquared)
		switch {
		case ra > rb:
			return -1
		case ra < rb:
			return 1
		default:
			return 0
		}
	})

	return &Result{
		BestFit:   models[0],
		AllModels: models,
		Points:    len(x),
	}, nil
}

func rankable(r2 float64) float64 {
	if math.IsNaN(r2) {
		return math.Inf(-1)
	}

	return r2
}

func fit(t ModelType, x, y []float64) *Model {
	switch t {
	case ModelTypeHyperbolic:
		return fitHyperbolic(x, y)
	case ModelTypeLogarithmic:
		return fitLogarithmic(x, y)
	case ModelTypePower:
		return fitPower(x, y)
	case ModelTypeExponential:
		return fitExponential(x, y)
	case ModelTypePolynomial:
		return fitPolynomial(x, y)
	default:
		return fitLinear(x, y)
	}
}

// fitLinear fits y = a + b*x.
func fitLinear(x, y []float64) *Model {
	a, b := leastSquares(x, y, identity, identity)

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = a + b*x[i]
	}

	return &Model{
		Type:         ModelTypeLinear,
		Coefficients: []float64{a, b},
		RSquared:     calculateRSquared(y, predicted),
		RMSE:         calculateRMSE(y, predicted),
		Formula:      fmt.Sprintf("y = %.4f + %.4f*x", a, b),
		Estimator:    NewLinearEstimator(a, b),
	}
}

// fitHyperbolic fits y = a + b/x as a line over X' = 1/x.
func fitHyperbolic(x, y []float64) *Model {
	a, b := leastSquares(x, y, inverse, identity)

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = a + b/x[i]
	}

	return &Model{
		Type:         ModelTypeHyperbolic,
		Coefficients: []float64{a, b},
		RSquared:     calculateRSquared(y, predicted),
		RMSE:         calculateRMSE(y, predicted),
		Formula:      fmt.Sprintf("y = %.4f + %.4f / x", a, b),
		Estimator:    NewHyperbolicEstimator(a, b),
	}
}

// fitLogarithmic fits y = a + b*ln(x) as a line over X' = ln(x).
func fitLogarithmic(x, y []float64) *Model {
	a, b := leastSquares(x, y, math.Log, identity)

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = a + b*math.Log(x[i])
	}

	return &Model{
		Type:         ModelTypeLogarithmic,
		Coefficients: []float64{a, b},
		RSquared:     calculateRSquared(y, predicted),
		RMSE:         calculateRMSE(y, predicted),
		Formula:      fmt.Sprintf("y = %.4f + %.4f * ln(x)", a, b),
		Estimator:    NewLogarithmicEstimator(a, b),
	}
}

// fitPower fits y = a * x^b as a line over ln(x), ln(y).
// R² and RMSE are measured on the original scale.
func fitPower(x, y []float64) *Model {
	logA, b := leastSquares(x, y, math.Log, math.Log)
	a := math.Exp(logA)

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = a * math.Pow(x[i], b)
	}

	return &Model{
		Type:         ModelTypePower,
		Coefficients: []float64{a, b},
		RSquared:     calculateRSquared(y, predicted),
		RMSE:         calculateRMSE(y, predicted),
		Formula:      fmt.Sprintf("y = %.4f * x^%.4f", a, b),
		Estimator:    NewPowerEstimator(a, b),
	}
}

// fitExponential fits y = a * e^(b*x) as a line over x, ln(y).
func fitExponential(x, y []float64) *Model {
	logA, b := leastSquares(x, y, identity, math.Log)
	a := math.Exp(logA)

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = a * math.Exp(b*x[i])
	}

	return &Model{
		Type:         ModelTypeExponential,
		Coefficients: []float64{a, b},
		RSquared:     calculateRSquared(y, predicted),
		RMSE:         calculateRMSE(y, predicted),
		Formula:      fmt.Sprintf("y = %.4f * e^(%.4f * x)", a, b),
		Estimator:    NewExponentialEstimator(a, b),
	}
}

// fitPolynomial fits y = a + b*x + c*x² through the normal equations.
//
// With fewer than three points, or when the system is singular, it falls back
// to a straight line reported as a polynomial with c = 0.
func fitPolynomial(x, y []float64) *Model {
	n := len(x)
	if n == 0 {
		return &Model{
			Type:         ModelTypePolynomial,
			Coefficients: []float64{0, 0, 0},
			Formula:      "y = 0 + 0*x + 0*x²",
			Estimator:    NewPolynomialEstimator(0, 0, 0),
		}
	}

	if n < 3 {
		return linearAsPolynomial(x, y)
	}

	// We solve: [n    Σx   Σx²] [a]   [Σy]
	//           [Σx   Σx²  Σx³] [b] = [Σxy]
	//           [Σx²  Σx³  Σx⁴] [c]   [Σx²y]
	var sumX, sumX2, sumX3, sumX4, sumY, sumXY, sumX2Y float64
	for i := range n {
		xi := x[i]
		xi2 := xi * xi
		yi := y[i]

		sumX += xi
		sumX2 += xi2
		sumX3 += xi2 * xi
		sumX4 += xi2 * xi2
		sumY += yi
		sumXY += xi * yi
		sumX2Y += xi2 * yi
	}

	fn := float64(n)
	det := fn*sumX2*sumX4 + sumX*sumX3*sumX2 + sumX2*sumX*sumX3 -
		(sumX2*sumX2*sumX2 + sumX*sumX*sumX4 + sumX3*sumX3*fn)

	// relative threshold; the entries grow with x⁴
	if math.Abs(det) <= 1e-12*math.Max(1, fn*sumX2*sumX4) {
		return linearAsPolynomial(x, y)
	}

	// Cramer's rule
	detA := sumY*sumX2*sumX4 + sumX*sumX3*sumX2Y + sumX2*sumXY*sumX3 -
		(sumX2*sumX2*sumX2Y + sumX*sumXY*sumX4 + sumY*sumX3*sumX3)
	detB := fn*sumXY*sumX4 + sumY*sumX3*sumX2 + sumX2*sumX*sumX2Y -
		(sumX2*sumXY*sumX2 + sumY*sumX*sumX4 + fn*sumX3*sumX2Y)
	detC := fn*sumX2*sumX2Y + sumX*sumXY*sumX2 + sumY*sumX*sumX3 -
		(sumY*sumX2*sumX2 + sumX*sumX*sumX2Y + fn*sumXY*sumX3)

	a, b, c := detA/det, detB/det, detC/det
	r2, rmse := calculateStatsOptimized(x, y, a, b, c)

	return &Model{
		Type:         ModelTypePolynomial,
		Coefficients: []float64{a, b, c},
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      fmt.Sprintf("y = %.4f + %.4f*x + %.4f*x²", a, b, c),
		Estimator:    NewPolynomialEstimator(a, b, c),
	}
}

func linearAsPolynomial(x, y []float64) *Model {
	m := fitLinear(x, y)
	a, b := m.Coefficients[0], m.Coefficients[1]

	return &Model{
		Type:         ModelTypePolynomial,
		Coefficients: []float64{a, b, 0},
		RSquared:     m.RSquared,
		RMSE:         m.RMSE,
		Formula:      fmt.Sprintf("y = %.4f + %.4f*x", a, b),
		Estimator:    NewPolynomialEstimator(a, b, 0),
	}
}
