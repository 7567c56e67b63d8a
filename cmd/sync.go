package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mod-manager/core/audit"
	"mod-manager/core/reconcile"
	"mod-manager/feature/console"
	"mod-manager/feature/hub"
	"mod-manager/feature/report"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	includeOutdated bool
	useCache        bool
	quietSync       bool
	refreshSync     bool
	saveCache       bool
	noPrompt        bool
	syncPages       int
	syncOutput      string
	syncFormat      string
)

// syncCmd reconciles the manifest with the hub and reports what to download.
var syncCmd = &cobra.Command{
	Use:   "sync <spt-path>",
	Short: "Reconcile the mod list with the hub and list required downloads",
	Long: `Resolve every name in the mod list against the hub catalog, record new
and renamed mods in the manifest, then check each mod against the SPT
installation at <spt-path>.

Examples:
  # Scrape the hub and walk through required downloads
  sync ~/SPT

  # Reuse the cached catalog, print only what needs attention
  sync ~/SPT --use-cache --quiet

  # Re-read versions of known mods and export a report
  sync ~/SPT --refresh --no-prompt --output plan.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&includeOutdated, "include-outdated", false, "Offer mods that do not support the target SPT version")
	syncCmd.Flags().BoolVar(&useCache, "use-cache", false, "Use the cached catalog instead of scraping the hub")
	syncCmd.Flags().BoolVarP(&quietSync, "quiet", "q", false, "Hide skipped and up-to-date mods")
	syncCmd.Flags().BoolVar(&refreshSync, "refresh", false, "Re-read version and download link of every known mod")
	syncCmd.Flags().BoolVar(&saveCache, "save-cache", false, "Save a freshly scraped catalog even when nothing changed")
	syncCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Do not pause after each download offer")
	syncCmd.Flags().IntVar(&syncPages, "pages", 0, "Number of listing pages to scrape (default from hub.pages)")
	syncCmd.Flags().StringVarP(&syncOutput, "output", "o", "", "Write the run report to this file")
	syncCmd.Flags().StringVar(&syncFormat, "format", "", "Report format: json, yaml or text")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	sptPath := args[0]

	format, err := report.ParseFormat(syncFormat)
	if err != nil {
		return err
	}
	if syncOutput != "" && !cmd.Flags().Changed("format") {
		format = report.FormatForPath(syncOutput, format)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	a, err := bootstrap(ctx, workDir)
	if err != nil {
		return err
	}
	defer a.close()

	fsys := afero.NewOsFs()
	if ok, err := afero.DirExists(fsys, sptPath); err != nil || !ok {
		return fmt.Errorf("SPT path %q is not a directory", sptPath)
	}

	pages := a.cfg.Hub.Pages
	if cmd.Flags().Changed("pages") {
		pages = syncPages
	}

	con := console.New(cmd.OutOrStdout(), cmd.InOrStdin(), console.Options{
		Quiet:    quietSync,
		NoPrompt: noPrompt,
	})

	engine := reconcile.NewEngine(
		hub.NewDefault(a.cfg.Hub, a.logger),
		audit.New(fsys, sptPath, a.logger),
		a.stores(),
		a.logger,
	)

	opts := reconcile.Options{
		IncludeOutdated: includeOutdated,
		UseCache:        useCache,
		Refresh:         refreshSync,
		SaveCache:       saveCache,
		Pages:           pages,
		OnChange:        con.Change,
		OnResult: func(r reconcile.Result) {
			if err := con.Result(r); err != nil {
				cancel(fmt.Errorf("failed to read confirmation: %w", err))
			}
		},
	}

	if useCache {
		con.Title("Checking mods against the cached catalog")
	} else {
		con.Title(fmt.Sprintf("Scraping %d hub page(s)", pages))
	}

	plan, err := engine.Run(ctx, opts)
	if err != nil {
		if cause := context.Cause(ctx); cause != nil && cause != ctx.Err() {
			return cause
		}
		return err
	}

	for _, f := range plan.Failures {
		con.Failure(f)
	}
	con.Summary(plan)

	a.record(ctx, plan)

	return writeReport(cmd, plan, format)
}

// record stores the plan in the history database. Failures are logged only.
func (a *app) record(ctx context.Context, plan *reconcile.Plan) {
	rec, err := a.recorder(ctx, true)
	if err != nil {
		a.logger.Warn("Run history unavailable", zap.Error(err))
		return
	}
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, plan); err != nil {
		a.logger.Warn("Failed to record run", zap.String("run_id", plan.RunID), zap.Error(err))
	}
}

func writeReport(cmd *cobra.Command, plan *reconcile.Plan, format report.Format) error {
	if syncOutput == "" {
		if !cmd.Flags().Changed("format") {
			return nil
		}
		return report.Write(cmd.OutOrStdout(), plan, format)
	}

	f, err := os.Create(syncOutput)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := report.Write(f, plan, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
