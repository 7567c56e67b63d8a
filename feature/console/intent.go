package console

import "github.com/charmbracelet/lipgloss"

// Intent is the purpose of a line of output.
type Intent int

const (
	Neutral Intent = iota
	Info
	Success
	Warning
	Error
)

// String returns the intent name.
func (i Intent) String() string {
	switch i {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "neutral"
	}
}

// Palette for dark terminal backgrounds.
const (
	colorInfo    = lipgloss.Color("#3B82F6")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// styles maps each intent to a style bound to one renderer.
type styles struct {
	intents map[Intent]lipgloss.Style
	muted   lipgloss.Style
	title   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		intents: map[Intent]lipgloss.Style{
			Neutral: r.NewStyle(),
			Info:    r.NewStyle().Foreground(colorInfo),
			Success: r.NewStyle().Foreground(colorSuccess),
			Warning: r.NewStyle().Foreground(colorWarning),
			Error:   r.NewStyle().Bold(true).Foreground(colorError),
		},
		muted: r.NewStyle().Foreground(colorMuted),
		title: r.NewStyle().Bold(true),
	}
}

func (s styles) render(i Intent, text string) string {
	style, ok := s.intents[i]
	if !ok {
		style = s.intents[Neutral]
	}
	return style.Render(text)
}
