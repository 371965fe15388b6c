package regression

import "fmt"

// Model is one fitted candidate.
type Model struct {
	// Type is the model family.
	Type ModelType
	// Coefficients are the fitted parameters, in the order the formula names them.
	Coefficients []float64
	// RSquared is the coefficient of determination. 1 is a perfect fit; it can
	// be negative for transformed models that fit worse than the mean.
	RSquared float64
	// RMSE is the root mean square error in units of y.
	RMSE float64
	// Formula is a human-readable rendering of the fitted model.
	Formula string
	// Estimator predicts y for new x with the fitted coefficients.
	Estimator Estimator
}

// String returns a string representation of the model.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4f, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}

// Result is the outcome of an analysis.
type Result struct {
	// BestFit is the candidate with the highest R².
	BestFit *Model
	// AllModels holds every candidate that applied to the data, best first.
	AllModels []*Model
	// Points is the number of (x, y) pairs the models were fitted to.
	Points int
}

// String returns a string representation of the result.
func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{BestFit: %s, TotalModels: %d, Points: %d}",
		r.BestFit, len(r.AllModels), r.Points)
}

// Model returns the fitted candidate of type t.
func (r *Result) Model(t ModelType) (*Model, bool) {
	for _, m := range r.AllModels {
		if m.Type == t {
			return m, true
		}
	}

	return nil, false
}
