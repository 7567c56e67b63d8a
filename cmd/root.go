package cmd

import (
	"fmt"
	"os"

	"mod-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// workDir holds mod-manager.yaml, .env and the state documents.
var workDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mod-manager",
	Short: "SPT mod catalog reconciler",
	Long: `mod-manager keeps a manifest of SPT mods in step with the SPT hub.
It resolves the names in hubMods.txt against the hub listing, records versions
and download links, and reports which mods need a download for the target SPT version.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable timestamps for a CLI.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&workDir, "dir", "d", ".", "Directory holding mod-manager.yaml, .env and the state files")
}
