package cmd

import (
	"errors"
	"fmt"
	"time"

	"mod-manager/core/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cacheCmd is the parent command for catalog cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the cached hub catalog",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the date and size of the cached catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), workDir)
		if err != nil {
			return err
		}
		defer a.close()

		c, err := a.catalogs().Load(cmd.Context())
		if errors.Is(err, catalog.ErrNoCache) {
			fmt.Fprintln(cmd.OutOrStdout(), "No cached catalog.")
			return nil
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Date:     %s\n", c.Date)
		if age, ok := c.Age(time.Now()); ok {
			fmt.Fprintf(out, "Age:      %d day(s)\n", int(age.Hours()/24))
		}
		fmt.Fprintf(out, "Listings: %d\n", c.Len())

		resolved := 0
		for _, name := range c.Names() {
			if e, _ := c.Get(name); e.Download != "" {
				resolved++
			}
		}
		fmt.Fprintf(out, "Resolved downloads: %d\n", resolved)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cached catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), workDir)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.catalogs().Clear(cmd.Context()); err != nil {
			return err
		}
		a.logger.Info("Catalog cache cleared", zap.String("path", a.cfg.Files.CachePath))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd, cacheClearCmd)
	RootCmd.AddCommand(cacheCmd)
}
