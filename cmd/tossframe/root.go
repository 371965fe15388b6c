package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/tossframe/frame"
	"github.com/arloliu/tossframe/internal/config"
	"github.com/arloliu/tossframe/internal/logging"
	"github.com/arloliu/tossframe/source"
	"github.com/arloliu/tossframe/store"
)

// app holds the state shared by all subcommands.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "tossframe",
		Short: "Expand per-row coin-toss counts into a table of tosses",
		Long: `tossframe turns rows of (id, trials, heads) into one row per toss.

Each input row k produces trials[k] output rows carrying id[k]; the first
heads[k] of them are heads. Inputs are read from CSV files, .xlsx workbooks or
http(s) URLs serving CSV.

Settings come from --config (YAML) and TOSSFRAME_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger, err := logging.New(cfg.Log, a.verbose)
			if err != nil {
				return err
			}
			a.logger = logger

			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// stderr sync fails on some terminals
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newExpandCmd(a),
		newSummaryCmd(a),
		newFitCmd(a),
		newBenchCmd(a),
		newTablesCmd(a),
	)

	return root
}

// inputFlags are the column selectors shared by commands that read inputs.
type inputFlags struct {
	idCol     string
	trialsCol string
	headsCol  string
	sheet     string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.idCol, "id", frame.ColID, "id column name")
	cmd.Flags().StringVar(&f.trialsCol, "trials", frame.ColTrials, "trials column name")
	cmd.Flags().StringVar(&f.headsCol, "heads", frame.ColHeads, "heads column name")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "workbook sheet for .xlsx inputs (default first sheet)")
}

func (a *app) loadInputs(ctx context.Context, location string, f *inputFlags) (frame.Inputs, error) {
	timer := logging.StartTimer(a.logger, "load inputs")

	df, err := source.Load(ctx, location,
		source.WithTimeout(a.cfg.Fetch.Timeout),
		source.WithSheet(f.sheet),
		source.WithStringColumns(f.idCol),
	)
	if err != nil {
		return frame.Inputs{}, err
	}

	in, err := frame.InputsFromDataFrame(df, f.idCol, f.trialsCol, f.headsCol)
	if err != nil {
		return frame.Inputs{}, err
	}
	// Loads taking more than half the fetch timeout are reported as slow.
	timer.StopWithThreshold(a.cfg.Fetch.Timeout/2, zap.String("location", location), zap.Int("rows", in.Len()))

	return in, nil
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	s, err := store.Open(ctx, a.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", a.cfg.Store.Path, err)
	}
	a.logger.Debug("Opened store", zap.String("path", a.cfg.Store.Path))

	return s, nil
}
