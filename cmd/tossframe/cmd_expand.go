package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/tossframe/frame"
	"github.com/arloliu/tossframe/internal/logging"
	"github.com/arloliu/tossframe/source"
)

func newExpandCmd(a *app) *cobra.Command {
	var (
		in       inputFlags
		mode     string
		out      string
		saveName string
		head     int
	)

	cmd := &cobra.Command{
		Use:   "expand <location>",
		Short: "Expand an input table into one row per toss",
		Long: `Reads id, trials and heads columns from location and expands them.

The table is printed (first --head rows), written to --out (.csv or .xlsx) and
saved in the store under --save, as requested.

Example:
  tossframe expand players.csv --id player --out tosses.xlsx --save season1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			inputs, err := a.loadInputs(ctx, args[0], &in)
			if err != nil {
				return err
			}

			timer := logging.StartTimer(a.logger, "expand")
			var t *frame.Table[string]
			switch mode {
			case "fast":
				t, err = frame.Expand(inputs.IDs, inputs.Trials, inputs.Heads)
			case "naive":
				t, err = frame.ExpandNaive(inputs.IDs, inputs.Trials, inputs.Heads)
			case "parallel":
				t, err = frame.ExpandParallel(ctx, inputs.IDs, inputs.Trials, inputs.Heads, a.cfg.Workers())
			default:
				return fmt.Errorf("unknown --mode %q (want fast, naive or parallel)", mode)
			}
			if err != nil {
				return err
			}
			timer.Stop(zap.String("mode", mode), zap.Int("rows", t.Len()))

			if head > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), frame.ToDataFrame(t.Head(head)))
			}

			if out != "" {
				if err := writeFrame(out, frame.ToDataFrame(t)); err != nil {
					return err
				}
				a.logger.Info("Wrote table", zap.String("path", out), zap.Int("rows", t.Len()))
			}

			if saveName != "" {
				s, err := a.openStore(ctx)
				if err != nil {
					return err
				}
				defer s.Close()

				info, err := s.SaveTable(ctx, saveName, t, a.cfg.EncoderOptions()...)
				if err != nil {
					return err
				}
				a.logger.Info("Saved table",
					zap.String("name", info.Name),
					zap.Int("rows", info.Rows),
					zap.Int("runs", info.Runs),
					zap.Int("bytes", info.Size))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d input rows expanded to %d tosses (%d heads)\n",
				inputs.Len(), t.Len(), t.Heads())

			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", "fast", "expansion routine: fast, naive or parallel")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the expanded table to a .csv or .xlsx file")
	cmd.Flags().StringVar(&saveName, "save", "", "save the expanded table in the store under this name")
	cmd.Flags().IntVar(&head, "head", 10, "print the first n rows (0 to disable)")

	return cmd
}

// writeFrame writes df as an Excel workbook for .xlsx paths and as CSV otherwise.
func writeFrame(path string, df dataframe.DataFrame) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return source.WriteXLSX(path, "", df)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}
