// Package regression fits simple least-squares models to (x, y) pairs and picks
// the best one by R².
//
// It is the modeling step of the toss tour: once a table has been expanded and
// summarized, the head rate of each id can be related to its number of trials,
// or the individual tosses to a numeric covariate of their id.
//
// # Usage Patterns
//
// ## Arbitrary Pairs
//
//	result, err := regression.Analyze(x, y)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.BestFit.Formula, result.BestFit.RSquared)
//	yHat := result.BestFit.Estimator.Estimate(42)
//
// ## Head Rate Versus Trials
//
//	tbl, _ := frame.Expand(ids, trials, heads)
//	result, err := regression.AnalyzeRates(tbl.Summarize())
//
// ## Linear Probability Model
//
// AnalyzeTosses regresses every toss (1 for heads, 0 for tails) on a covariate
// derived from its id, using the linear model only:
//
//	result, err := regression.AnalyzeTosses(tbl, func(id string) (float64, bool) {
//	    v, ok := ages[id]
//	    return v, ok
//	})
//	slope := result.BestFit.Coefficients[1]
//
// # Model Types
//
//   - Linear: y = a + b*x
//   - Hyperbolic: y = a + b/x (x > 0)
//   - Logarithmic: y = a + b*ln(x) (x > 0)
//   - Power: y = a * x^b (x > 0, y > 0)
//   - Exponential: y = a * e^(b*x) (y > 0)
//   - Polynomial: y = a + b*x + c*x²
//
// Models whose transform is undefined for the data, such as a power fit with a
// zero rate, are skipped rather than reported with a meaningless R².
package regression
