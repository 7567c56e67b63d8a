// Package console renders reconciliation progress for a terminal.
//
// Output is expressed as display intents (Neutral, Info, Success, Warning,
// Error) that the console maps to lipgloss styles. When the writer is not a
// terminal the styles degrade to plain text.
//
// Download offers can pause for the operator ("press enter to continue")
// between mods. Quiet mode hides the per-mod status lines of skipped and
// up-to-date mods but keeps download offers and the summary.
package console
