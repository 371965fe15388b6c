package regression

import (
	"fmt"
	"math"
	"testing"

	"github.com/arloliu/tossframe/frame"
)

// BenchmarkFitting benchmarks each model fit across data sizes.
func BenchmarkFitting(b *testing.B) {
	fits := []struct {
		name string
		fn   func(x, y []float64) *Model
	}{
		{"Linear", fitLinear},
		{"Hyperbolic", fitHyperbolic},
		{"Logarithmic", fitLogarithmic},
		{"Power", fitPower},
		{"Exponential", fitExponential},
		{"Polynomial", fitPolynomial},
	}
	sizes := []int{10, 100, 1000, 5000}

	for _, f := range fits {
		for _, size := range sizes {
			b.Run(fmt.Sprintf("%s/Points_%d", f.name, size), func(b *testing.B) {
				x, y := generateBenchmarkData(size)

				for b.Loop() {
					f.fn(x, y)
				}
			})
		}
	}
}

// BenchmarkAnalyzeTosses benchmarks the linear probability model on an expanded table.
func BenchmarkAnalyzeTosses(b *testing.B) {
	const rows = 2000
	ids := make([]int, rows)
	trials := make([]int, rows)
	heads := make([]int, rows)
	for k := range rows {
		ids[k] = k
		trials[k] = 50
		heads[k] = k % 51
	}
	tbl, err := frame.Expand(ids, trials, heads)
	if err != nil {
		b.Fatal(err)
	}
	covariate := func(id int) (float64, bool) { return float64(id), true }

	b.ReportAllocs()
	for b.Loop() {
		if _, err := AnalyzeTosses(tbl, covariate); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEstimatorEstimate benchmarks estimator calculations
func BenchmarkEstimatorEstimate(b *testing.B) {
	estimators := []struct {
		name string
		est  Estimator
	}{
		{"Linear", NewLinearEstimator(0.5, 0.01)},
		{"Hyperbolic", NewHyperbolicEstimator(10.0, 5.0)},
		{"Logarithmic", NewLogarithmicEstimator(8.0, 2.0)},
		{"Power", NewPowerEstimator(12.0, -0.5)},
		{"Exponential", NewExponentialEstimator(15.0, 0.1)},
		{"Polynomial", NewPolynomialEstimator(1.0, 2.0, 0.5)},
	}

	xValues := []float64{10, 50, 100, 200, 500, 1000}

	for _, est := range estimators {
		b.Run(est.name, func(b *testing.B) {
			for b.Loop() {
				for _, x := range xValues {
					_ = est.est.Estimate(x)
				}
			}
		})
	}
}

// BenchmarkStatisticalCalculations benchmarks R² and RMSE calculations
func BenchmarkStatisticalCalculations(b *testing.B) {
	sizes := []int{100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Size_%d", size), func(b *testing.B) {
			observed, predicted := generateBenchmarkData(size)

			for b.Loop() {
				_ = calculateRSquared(observed, predicted)
				_ = calculateRMSE(observed, predicted)
			}
		})
	}
}

// generateBenchmarkData creates y = 1 + 2x + 0.5x² + noise.
func generateBenchmarkData(size int) (x, y []float64) {
	x = make([]float64, size)
	y = make([]float64, size)

	for i := range size {
		xi := float64(i+1) * 0.1
		x[i] = xi
		y[i] = 1.0 + 2.0*xi + 0.5*xi*xi + 0.1*math.Sin(float64(i))
	}

	return x, y
}
