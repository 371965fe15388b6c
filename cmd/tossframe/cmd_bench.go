package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/tossframe/blob"
	"github.com/arloliu/tossframe/format"
	"github.com/arloliu/tossframe/frame"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		rows      int
		maxTrials int
		reps      int
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare the expansion routines and table compressions on random input",
		Long: `Generates random inputs and reports the best of --reps timings for the naive,
single-pass and parallel expanders, then the encoded size of the result under
each compression.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rows <= 0 || maxTrials <= 0 || reps <= 0 {
				return fmt.Errorf("--rows, --max-trials and --reps must be positive")
			}

			ids, trials, heads := randomInputs(rows, maxTrials, seed)
			ctx := cmd.Context()
			workers := a.cfg.Workers()

			expanders := []struct {
				name string
				run  func() (*frame.Table[string], error)
			}{
				{"naive", func() (*frame.Table[string], error) { return frame.ExpandNaive(ids, trials, heads) }},
				{"fast", func() (*frame.Table[string], error) { return frame.Expand(ids, trials, heads) }},
				{"parallel", func() (*frame.Table[string], error) {
					return frame.ExpandParallel(ctx, ids, trials, heads, workers)
				}},
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "EXPANDER\tBEST\tROWS/s\t")

			var t *frame.Table[string]
			var base time.Duration
			for _, e := range expanders {
				best, table, err := bestOf(ctx, reps, e.run)
				if err != nil {
					return err
				}
				t = table
				if base == 0 {
					base = best
				}
				rate := float64(t.Len()) / best.Seconds()
				fmt.Fprintf(w, "%s\t%s\t%.3g\t\n", e.name, best, rate)
				a.logger.Debug("Bench expander", zap.String("name", e.name), zap.Duration("best", best),
					zap.Float64("speedup", float64(base)/float64(best)))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%d input rows, %d tosses, %d heads\n\n", rows, t.Len(), t.Heads())

			w = tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "COMPRESSION\tBYTES\tBITS/ROW\t")
			for _, comp := range []format.CompressionType{
				format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
			} {
				data, err := blob.Encode(t, blob.WithCompression(comp))
				if err != nil {
					return err
				}
				bits := 0.0
				if t.Len() > 0 {
					bits = float64(len(data)*8) / float64(t.Len())
				}
				fmt.Fprintf(w, "%s\t%d\t%.2f\t\n", comp, len(data), bits)
			}

			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10_000, "number of input rows")
	cmd.Flags().IntVar(&maxTrials, "max-trials", 20, "trials per row are drawn from [0, max-trials]")
	cmd.Flags().IntVar(&reps, "reps", 5, "repetitions per expander")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")

	return cmd
}

// randomInputs returns rows distinct ids with random trials in [0, maxTrials]
// and heads in [0, trials].
func randomInputs(rows, maxTrials int, seed uint64) ([]string, []int, []int) {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	ids := make([]string, rows)
	trials := make([]int, rows)
	heads := make([]int, rows)
	for i := range rows {
		ids[i] = "id-" + strconv.Itoa(i)
		trials[i] = r.IntN(maxTrials + 1)
		heads[i] = r.IntN(trials[i] + 1)
	}

	return ids, trials, heads
}

func bestOf(ctx context.Context, reps int, run func() (*frame.Table[string], error)) (time.Duration, *frame.Table[string], error) {
	var (
		best time.Duration
		t    *frame.Table[string]
	)
	for range reps {
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}

		start := time.Now()
		table, err := run()
		elapsed := time.Since(start)
		if err != nil {
			return 0, nil, err
		}
		if t == nil || elapsed < best {
			best = elapsed
		}
		t = table
	}

	return best, t, nil
}
