package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/tossframe/frame"
)

func newSummaryCmd(a *app) *cobra.Command {
	var (
		in    inputFlags
		table string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "summary [location]",
		Short: "Aggregate tosses back into per-id trials, heads and rate",
		Long: `Summarizes an input file or a stored table.

With a location the inputs are expanded and summarized, which folds repeated
ids together. With --table the stored summaries are read instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := a.summaries(cmd, args, &in, table)
			if err != nil {
				return err
			}

			df := frame.SummaryDataFrame(summaries)
			if out != "" {
				return writeFrame(out, df)
			}
			fmt.Fprintln(cmd.OutOrStdout(), df)

			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&table, "table", "", "summarize a stored table instead of a location")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the summary to a .csv or .xlsx file")

	return cmd
}

// summaries resolves the per-id summaries from either a location argument or
// a stored table name.
func (a *app) summaries(cmd *cobra.Command, args []string, in *inputFlags, table string) ([]frame.Summary[string], error) {
	ctx := cmd.Context()

	switch {
	case table != "" && len(args) > 0:
		return nil, errors.New("give either a location or --table, not both")
	case table != "":
		s, err := a.openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer s.Close()

		return s.Summaries(ctx, table)
	case len(args) == 1:
		inputs, err := a.loadInputs(ctx, args[0], in)
		if err != nil {
			return nil, err
		}
		t, err := inputs.Expand()
		if err != nil {
			return nil, err
		}

		return t.Summarize(), nil
	default:
		return nil, errors.New("a location or --table is required")
	}
}
