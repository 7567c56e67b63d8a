package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	historyLimit int
	historyJSON  bool
	checkSchema  bool
)

// historyCmd lists recent runs recorded in the history database.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent reconciliation runs",
	Long: `Lists runs recorded in the history database (database.enabled must be true).
With --check-schema, compares the history tables with the expected columns instead.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyCmd.Flags().BoolVar(&checkSchema, "check-schema", false, "Check the history tables against the models")

	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := bootstrap(ctx, workDir)
	if err != nil {
		return err
	}
	defer a.close()

	rec, err := a.recorder(ctx, !checkSchema)
	if err != nil {
		return fmt.Errorf("history database unavailable: %w", err)
	}
	if rec == nil {
		return errors.New("run history is disabled (set DATABASE_ENABLED=true)")
	}

	out := cmd.OutOrStdout()

	if checkSchema {
		report, err := rec.Check()
		if err != nil {
			return err
		}
		if historyJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		for table, t := range report.Tables {
			a.logger.Info("History table", zap.String("table", table), zap.String("status", t.Status), zap.Strings("missing_columns", t.MissingColumns))
		}
		if !report.Matched {
			return errors.New("history schema does not match")
		}
		return nil
	}

	runs, err := rec.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s  %-6s  %d mods: %d to download, %d skipped, %d up to date, %d failed\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"), r.RunID, r.CatalogSource,
			r.Total, r.Downloadable, r.Skipped, r.UpToDate, r.Failures)
	}
	return nil
}
