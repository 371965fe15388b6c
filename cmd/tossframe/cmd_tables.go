package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newTablesCmd(a *app) *cobra.Command {
	var del string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List or delete stored tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if del != "" {
				if err := s.DeleteTable(ctx, del); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", del)

				return nil
			}

			infos, err := s.ListTables(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tROWS\tRUNS\tCOMPRESSION\tBYTES\tCREATED")
			for _, info := range infos {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t%s\n",
					info.Name, info.Rows, info.Runs, info.Compression, info.Size, info.CreatedAt.Format(time.RFC3339))
			}

			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&del, "delete", "", "delete the named table")

	return cmd
}
