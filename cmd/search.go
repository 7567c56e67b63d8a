package cmd

import (
	"fmt"
	"strings"

	"mod-manager/feature/status"

	"github.com/spf13/cobra"
)

// searchCmd looks a name up in the manifest and the cached catalog.
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find mods by name in the manifest and the cached catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		a, err := bootstrap(cmd.Context(), workDir)
		if err != nil {
			return err
		}
		defer a.close()

		svc := status.NewService(a.manifests(), a.catalogs(), nil, a.logger)
		result, err := svc.Search(cmd.Context(), query)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(result.Manifest) == 0 {
			fmt.Fprintf(out, "No manifest entries match %q\n", query)
		}
		for _, hit := range result.Manifest {
			fmt.Fprintf(out, "%-10s %s\n", hit.Section, hit.Name)
		}
		if result.Catalog != nil {
			fmt.Fprintf(out, "Closest hub listing: %s (similarity %.2f)\n", result.Catalog.Name, result.Catalog.Score)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)
}
