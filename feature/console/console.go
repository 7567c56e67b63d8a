package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"mod-manager/core/reconcile"

	"github.com/charmbracelet/lipgloss"
)

// Options controls console behavior.
type Options struct {
	// Quiet hides status lines of skipped and up-to-date mods.
	Quiet bool
	// NoPrompt disables the pause after each download offer.
	NoPrompt bool
}

// Console writes styled output and reads operator confirmations.
type Console struct {
	out    io.Writer
	in     *bufio.Reader
	styles styles
	opts   Options
}

// New creates a console writing to out and reading prompts from in.
func New(out io.Writer, in io.Reader, opts Options) *Console {
	return &Console{
		out:    out,
		in:     bufio.NewReader(in),
		styles: newStyles(lipgloss.NewRenderer(out)),
		opts:   opts,
	}
}

// Printf writes one line with the given intent.
func (c *Console) Printf(intent Intent, format string, args ...any) {
	fmt.Fprintln(c.out, c.styles.render(intent, fmt.Sprintf(format, args...)))
}

// Title writes a bold heading.
func (c *Console) Title(text string) {
	fmt.Fprintln(c.out, c.styles.title.Render(text))
}

// Pause waits for the operator to press enter. End of input continues.
func (c *Console) Pause() error {
	fmt.Fprint(c.out, c.styles.muted.Render("Press enter to continue..."))
	_, err := c.in.ReadString('\n')
	fmt.Fprintln(c.out)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Change reports a resolution change.
func (c *Console) Change(ch reconcile.Change) {
	switch ch.Kind {
	case reconcile.ChangeRenamed:
		c.Printf(Info, "Renamed %q to %q (similarity %.2f)", ch.From, ch.Name, ch.Score)
	case reconcile.ChangeCreated:
		c.Printf(Info, "Added %s (%s)", ch.Name, ch.Version)
	case reconcile.ChangeRefreshed:
		c.Printf(Info, "Refreshed %s (%s)", ch.Name, ch.Version)
	}
}

// Result reports an evaluated mod and pauses after download offers.
func (c *Console) Result(r reconcile.Result) error {
	switch r.State {
	case reconcile.StateSkipped:
		if c.opts.Quiet {
			return nil
		}
		if r.Reason == reconcile.ReasonOutdatedDependency {
			c.Printf(Warning, "Skipping %s (%s): dependency %s is outdated", r.Name, r.Version, r.Dependency)
		} else {
			c.Printf(Warning, "Skipping %s: %s is outdated", r.Name, r.Version)
		}
	case reconcile.StateUpToDate:
		if c.opts.Quiet {
			return nil
		}
		c.Printf(Success, "%s is up to date", r.Name)
	case reconcile.StateNeedsDownload:
		c.Printf(Neutral, "%s (%s)", r.Name, r.Version)
		c.Printf(Info, "  %s", r.Download)
		if !c.opts.NoPrompt {
			return c.Pause()
		}
	}
	return nil
}

// Failure reports a per-mod problem.
func (c *Console) Failure(f reconcile.Failure) {
	c.Printf(Error, "Could not resolve %s (%s): %s", f.Name, f.Stage, f.Message)
}

// Summary writes the downloadable and skipped partitions of a plan.
func (c *Console) Summary(plan *reconcile.Plan) {
	c.Title("Summary")
	c.Printf(Neutral, "%d mods: %d to download, %d skipped, %d up to date",
		plan.Summary.Total, plan.Summary.Downloadable, plan.Summary.Skipped, plan.Summary.UpToDate)

	if len(plan.Downloadable) > 0 {
		c.Printf(Info, "Download: %s", joinVersions(plan.Downloadable))
	}
	if len(plan.Skipped) > 0 {
		c.Printf(Warning, "Skipped: %s", joinVersions(plan.Skipped))
	}
	if len(plan.Failures) > 0 {
		c.Printf(Error, "%d mod(s) could not be resolved", len(plan.Failures))
	}
}

func joinVersions(results []reconcile.Result) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("%s (%s)", r.Name, r.Version)
	}
	return strings.Join(parts, ", ")
}
