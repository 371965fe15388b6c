package regression

import (
	"fmt"
	"slices"

	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/internal/options"
)

// AnalyzeConfig selects the candidate models and the minimum sample size.
type AnalyzeConfig struct {
	Models    []ModelType
	MinPoints int
}

// defaultAnalyzeConfig returns every model type and a minimum of two points.
func defaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		Models:    slices.Clone(allModelTypes),
		MinPoints: 2,
	}
}

// AnalyzeOption is a functional option for AnalyzeConfig.
type AnalyzeOption = options.Option[*AnalyzeConfig]

// WithModels restricts the candidates to the given model types.
func WithModels(types ...ModelType) AnalyzeOption {
	return options.New(func(cfg *AnalyzeConfig) error {
		if len(types) == 0 {
			return fmt.Errorf("%w: no model types", errs.ErrInvalidArgument)
		}
		for _, t := range types {
			if newEmptyEstimator(t) == nil {
				return fmt.Errorf("%w: unknown model type %d", errs.ErrInvalidArgument, t)
			}
		}
		cfg.Models = slices.Clone(types)

		return nil
	})
}

// WithMinPoints sets the smallest number of pairs an analysis accepts. Values
// below two are raised to two, the least a line needs.
func WithMinPoints(n int) AnalyzeOption {
	return options.NoError(func(cfg *AnalyzeConfig) {
		cfg.MinPoints = max(n, 2)
	})
}
