package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/export"
	"github.com/sells-group/leadgen-cli/internal/store"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a run's records to an xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "export")
		}

		path := exportOutput
		if path == "" {
			path = fmt.Sprintf("%s-%s.xlsx", run.Kind, run.ID)
		}

		var count int
		switch run.Kind {
		case store.RunKindCompanies:
			companies, err := st.ListCompanies(ctx, run.ID)
			if err != nil {
				return eris.Wrap(err, "export")
			}
			if err := export.WriteCompanies(path, companies); err != nil {
				return err
			}
			count = len(companies)
		default:
			leads, err := st.ListLeads(ctx, run.ID)
			if err != nil {
				return eris.Wrap(err, "export")
			}
			if err := export.WriteLeads(path, leads); err != nil {
				return err
			}
			count = len(leads)
		}

		zap.L().Info("export complete",
			zap.String("run_id", run.ID),
			zap.String("path", path),
			zap.Int("records", count),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path (default <kind>-<run-id>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}
