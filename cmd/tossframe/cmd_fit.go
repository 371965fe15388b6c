package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/tossframe/regression"
)

func newFitCmd(a *app) *cobra.Command {
	var (
		in        inputFlags
		table     string
		models    []string
		minPoints int
	)

	cmd := &cobra.Command{
		Use:   "fit [location]",
		Short: "Fit head rate against trial count",
		Long: `Fits candidate models of rate = f(trials) over the per-id summaries and
ranks them by R².

Models: linear, hyperbolic, logarithmic, power, exponential, polynomial.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := a.summaries(cmd, args, &in, table)
			if err != nil {
				return err
			}

			opts := []regression.AnalyzeOption{regression.WithMinPoints(minPoints)}
			if len(models) > 0 {
				types := make([]regression.ModelType, 0, len(models))
				for _, name := range models {
					t := regression.ModelTypeFromString(name)
					if t.String() == "unknown" {
						return fmt.Errorf("unknown model %q", name)
					}
					types = append(types, t)
				}
				opts = append(opts, regression.WithModels(types...))
			}

			result, err := regression.AnalyzeRates(summaries, opts...)
			if err != nil {
				return err
			}
			a.logger.Debug("Fitted models", zap.Int("points", result.Points), zap.Int("models", len(result.AllModels)))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tR²\tRMSE\tFORMULA")
			for _, m := range result.AllModels {
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%s\n", m.Type, m.RSquared, m.RMSE, m.Formula)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "best fit over %d ids: %s\n", result.Points, result.BestFit.Type)

			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&table, "table", "", "fit a stored table instead of a location")
	cmd.Flags().StringSliceVar(&models, "model", nil, "restrict to these models (repeatable)")
	cmd.Flags().IntVar(&minPoints, "min-points", 2, "minimum number of ids required")

	return cmd
}
