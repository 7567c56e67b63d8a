package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"mod-manager/core/reconcile"

	"gopkg.in/yaml.v3"
)

// Format is an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat validates a format name. Empty means FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatJSON, FormatYAML, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported report format %q (want json, yaml or text)", s)
	}
}

// FormatForPath picks a format from a file extension, defaulting to fallback.
func FormatForPath(path string, fallback Format) Format {
	switch {
	case strings.HasSuffix(path, ".json"):
		return FormatJSON
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return FormatYAML
	default:
		return fallback
	}
}

// Write encodes plan to w.
func Write(w io.Writer, plan *reconcile.Plan, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(plan)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return writeText(w, plan)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

func writeText(w io.Writer, plan *reconcile.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Run:\t%s\n", plan.RunID)
	fmt.Fprintf(tw, "Target:\t%s\n", plan.Target)
	fmt.Fprintf(tw, "Catalog:\t%s (%s)\n", plan.CatalogSource, plan.CatalogDate)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "SECTION\tNAME\tVERSION\tSTATE\tDETAIL")
	for _, r := range plan.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Section, r.Name, r.Version, r.State, detail(r))
	}

	if len(plan.Failures) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "FAILED\tSTAGE\tERROR")
		for _, f := range plan.Failures {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Stage, f.Message)
		}
	}

	s := plan.Summary
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Total %d, download %d, skipped %d, up to date %d, failures %d\n",
		s.Total, s.Downloadable, s.Skipped, s.UpToDate, s.Failures)

	return tw.Flush()
}

func detail(r reconcile.Result) string {
	switch r.State {
	case reconcile.StateNeedsDownload:
		return r.Download
	case reconcile.StateSkipped:
		if r.Dependency != "" {
			return string(r.Reason) + ": " + r.Dependency
		}
		return string(r.Reason)
	default:
		return ""
	}
}
