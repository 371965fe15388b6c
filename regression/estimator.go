package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ModelType represents the type of regression model.
type ModelType int

const (
	// ModelTypeHyperbolic represents the hyperbolic model: y = a + b / x
	ModelTypeHyperbolic ModelType = iota
	// ModelTypeLogarithmic represents the logarithmic model: y = a + b * ln(x)
	ModelTypeLogarithmic
	// ModelTypePower represents the power model: y = a * x^b
	ModelTypePower
	// ModelTypeExponential represents the exponential model: y = a * e^(b * x)
	ModelTypeExponential
	// ModelTypePolynomial represents the polynomial model: y = a + b*x + c*x²
	ModelTypePolynomial
	// ModelTypeLinear represents the linear model: y = a + b*x
	ModelTypeLinear
)

// allModelTypes lists every model type in fitting order.
var allModelTypes = []ModelType{
	ModelTypeLinear,
	ModelTypeHyperbolic,
	ModelTypeLogarithmic,
	ModelTypePower,
	ModelTypeExponential,
	ModelTypePolynomial,
}

// modelTypeNames maps ModelType to their string representations.
var modelTypeNames = map[ModelType]string{
	ModelTypeHyperbolic:  "hyperbolic",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
	ModelTypeExponential: "exponential",
	ModelTypePolynomial:  "polynomial",
	ModelTypeLinear:      "linear",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// modelTypeFromString maps string names to ModelType.
var modelTypeFromString = map[string]ModelType{
	"hyperbolic":  ModelTypeHyperbolic,
	"logarithmic": ModelTypeLogarithmic,
	"power":       ModelTypePower,
	"exponential": ModelTypeExponential,
	"polynomial":  ModelTypePolynomial,
	"linear":      ModelTypeLinear,
}

// ModelTypeFromString returns the ModelType for a given string name.
// Returns ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	if modelType, exists := modelTypeFromString[strings.ToLower(name)]; exists {
		return modelType
	}

	return ModelType(-1)
}

// newEmptyEstimator creates a zero estimator for modelType, or nil for an unknown type.
func newEmptyEstimator(modelType ModelType) Estimator {
	switch modelType {
	case ModelTypeHyperbolic:
		return NewHyperbolicEstimator(0, 0)
	case ModelTypeLogarithmic:
		return NewLogarithmicEstimator(0, 0)
	case ModelTypePower:
		return NewPowerEstimator(0, 0)
	case ModelTypeExponential:
		return NewExponentialEstimator(0, 0)
	case ModelTypePolynomial:
		return NewPolynomialEstimator(0, 0, 0)
	case ModelTypeLinear:
		return NewLinearEstimator(0, 0)
	default:
		return nil
	}
}

// Estimator predicts y from x with a fitted model.
type Estimator interface {
	// Estimate returns the predicted y for x.
	Estimate(x float64) float64
	// Type returns the model type.
	Type() ModelType
	// Coefficients returns the model coefficients.
	Coefficients() []float64
	// SetCoefficients replaces the coefficients. The count must match the model:
	// 3 for polynomial, 2 for every other model.
	SetCoefficients(coeffs []float64) error
}

// pair holds the two coefficients shared by the two-parameter models.
type pair struct {
	a, b   float64
	coeffs []float64 // cached to avoid allocations
}

func newPair(a, b float64) pair {
	return pair{a: a, b: b, coeffs: make([]float64, 2)}
}

func (p *pair) Coefficients() []float64 {
	p.coeffs[0] = p.a
	p.coeffs[1] = p.b

	return p.coeffs
}

func (p *pair) set(model string, coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("%s model expects exactly 2 coefficients, got %d", model, len(coeffs))
	}
	p.a = coeffs[0]
	p.b = coeffs[1]

	return nil
}

// LinearEstimator implements the linear model: y = a + b*x
type LinearEstimator struct{ pair }

// NewLinearEstimator creates a linear estimator with intercept a and slope b.
func NewLinearEstimator(a, b float64) *LinearEstimator {
	return &LinearEstimator{newPair(a, b)}
}

func (l *LinearEstimator) Estimate(x float64) float64 { return l.a + l.b*x }
func (l *LinearEstimator) Type() ModelType            { return ModelTypeLinear }

// SetCoefficients expects [a, b].
func (l *LinearEstimator) SetCoefficients(coeffs []float64) error {
	return l.set("linear", coeffs)
}

// HyperbolicEstimator implements the hyperbolic model: y = a + b / x
type HyperbolicEstimator struct{ pair }

// NewHyperbolicEstimator creates a new hyperbolic estimator with the given coefficients.
func NewHyperbolicEstimator(a, b float64) *HyperbolicEstimator {
	return &HyperbolicEstimator{newPair(a, b)}
}

// Estimate returns a + b/x, or +Inf for x <= 0.
func (h *HyperbolicEstimator) Estimate(x float64) float64 {
	if x <= 0 {
		return math.Inf(1)
	}

	return h.a + h.b/x
}

func (h *HyperbolicEstimator) Type() ModelType { return ModelTypeHyperbolic }

// SetCoefficients expects [a, b].
func (h *HyperbolicEstimator) SetCoefficients(coeffs []float64) error {
	return h.set("hyperbolic", coeffs)
}

// LogarithmicEstimator implements the logarithmic model: y = a + b * ln(x)
type LogarithmicEstimator struct{ pair }

// NewLogarithmicEstimator creates a new logarithmic estimator with the given coefficients.
func NewLogarithmicEstimator(a, b float64) *LogarithmicEstimator {
	return &LogarithmicEstimator{newPair(a, b)}
}

// Estimate returns a + b*ln(x), or +Inf for x <= 0.
func (l *LogarithmicEstimator) Estimate(x float64) float64 {
	if x <= 0 {
		return math.Inf(1)
	}

	return l.a + l.b*math.Log(x)
}

func (l *LogarithmicEstimator) Type() ModelType { return ModelTypeLogarithmic }

// SetCoefficients expects [a, b].
func (l *LogarithmicEstimator) SetCoefficients(coeffs []float64) error {
	return l.set("logarithmic", coeffs)
}

// PowerEstimator implements the power model: y = a * x^b
type PowerEstimator struct{ pair }

// NewPowerEstimator creates a new power estimator with the given coefficients.
func NewPowerEstimator(a, b float64) *PowerEstimator {
	return &PowerEstimator{newPair(a, b)}
}

// Estimate returns a * x^b, or +Inf for x <= 0.
func (p *PowerEstimator) Estimate(x float64) float64 {
	if x <= 0 {
		return math.Inf(1)
	}

	return p.a * math.Pow(x, p.b)
}

func (p *PowerEstimator) Type() ModelType { return ModelTypePower }

// SetCoefficients expects [a, b].
func (p *PowerEstimator) SetCoefficients(coeffs []float64) error {
	return p.set("power", coeffs)
}

// ExponentialEstimator implements the exponential model: y = a * e^(b * x)
type ExponentialEstimator struct{ pair }

// NewExponentialEstimator creates a new exponential estimator with the given coefficients.
func NewExponentialEstimator(a, b float64) *ExponentialEstimator {
	return &ExponentialEstimator{newPair(a, b)}
}

func (e *ExponentialEstimator) Estimate(x float64) float64 { return e.a * math.Exp(e.b*x) }
func (e *ExponentialEstimator) Type() ModelType            { return ModelTypeExponential }

// SetCoefficients expects [a, b].
func (e *ExponentialEstimator) SetCoefficients(coeffs []float64) error {
	return e.set("exponential", coeffs)
}

// PolynomialEstimator implements the polynomial model: y = a + b*x + c*x²
type PolynomialEstimator struct {
	a, b, c float64
	coeffs  []float64 // cached to avoid allocations
}

// NewPolynomialEstimator creates a new polynomial estimator with the given coefficients.
func NewPolynomialEstimator(a, b, c float64) *PolynomialEstimator {
	return &PolynomialEstimator{
		a:      a,
		b:      b,
		c:      c,
		coeffs: make([]float64, 3),
	}
}

func (p *PolynomialEstimator) Estimate(x float64) float64 { return p.a + p.b*x + p.c*x*x }
func (p *PolynomialEstimator) Type() ModelType            { return ModelTypePolynomial }

// Coefficients returns the model coefficients [a, b, c].
func (p *PolynomialEstimator) Coefficients() []float64 {
	p.coeffs[0] = p.a
	p.coeffs[1] = p.b
	p.coeffs[2] = p.c

	return p.coeffs
}

// SetCoefficients expects [a, b, c].
func (p *PolynomialEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 3 {
		return fmt.Errorf("polynomial model expects exactly 3 coefficients, got %d", len(coeffs))
	}
	p.a = coeffs[0]
	p.b = coeffs[1]
	p.c = coeffs[2]

	return nil
}

// NewEstimator creates an estimator by case-insensitive model name and coefficients.
//
// Example:
//
//	estimator, err := NewEstimator("linear", []float64{0.5, 0.01})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rate := estimator.Estimate(20)
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	modelType := ModelTypeFromString(name)
	if modelType == ModelType(-1) {
		supportedTypes := make([]string, 0, len(modelTypeNames))
		for _, modelTypeName := range modelTypeNames {
			supportedTypes = append(supportedTypes, modelTypeName)
		}
		slices.Sort(supportedTypes)

		return nil, fmt.Errorf("unknown model type: %s. Supported types: %s", name, strings.Join(supportedTypes, ", "))
	}

	estimator := newEmptyEstimator(modelType)
	if err := estimator.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return estimator, nil
}
