package modlist

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"mod-manager/core/store"
)

// List is a parsed mod list.
type List struct {
	lines           []string
	nameLines       []int
	trailingNewline bool
	eol             string
}

// Parse parses list text. A list that uses CRLF anywhere is read and written
// back with CRLF; otherwise LF.
func Parse(data []byte) *List {
	eol := "\n"
	if bytes.Contains(data, []byte("\r\n")) {
		eol = "\r\n"
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	l := &List{trailingNewline: strings.HasSuffix(text, "\n"), eol: eol}
	text = strings.TrimSuffix(text, "\n")
	if text == "" && !l.trailingNewline {
		return l
	}

	for i, line := range strings.Split(text, "\n") {
		l.lines = append(l.lines, line)
		if !IsComment(line) {
			l.nameLines = append(l.nameLines, i)
		}
	}
	return l
}

// IsComment reports whether a line is excluded from processing.
func IsComment(line string) bool {
	return strings.TrimSpace(line) == "" || strings.Contains(line, "#")
}

// Names returns the mod names in list order.
func (l *List) Names() []string {
	names := make([]string, len(l.nameLines))
	for i, idx := range l.nameLines {
		names[i] = strings.TrimSpace(l.lines[idx])
	}
	return names
}

// Len returns the number of names.
func (l *List) Len() int {
	return len(l.nameLines)
}

// Name returns the i-th name.
func (l *List) Name(i int) string {
	return strings.TrimSpace(l.lines[l.nameLines[i]])
}

// Rename replaces the i-th name in place. It reports whether the name changed.
func (l *List) Rename(i int, name string) bool {
	if l.Name(i) == name {
		return false
	}
	l.lines[l.nameLines[i]] = name
	return true
}

// Bytes renders the list, preserving comment lines, the line terminator and
// the trailing newline.
func (l *List) Bytes() []byte {
	eol := l.eol
	if eol == "" {
		eol = "\n"
	}
	var buf bytes.Buffer
	buf.WriteString(strings.Join(l.lines, eol))
	if l.trailingNewline {
		buf.WriteString(eol)
	}
	return buf.Bytes()
}

// Store loads and saves a mod list document.
type Store struct {
	backend store.Backend
	name    string
}

// NewStore creates a mod list store for the named document.
func NewStore(backend store.Backend, name string) *Store {
	return &Store{backend: backend, name: name}
}

// Load reads and parses the list.
func (s *Store) Load(ctx context.Context) (*List, error) {
	data, err := s.backend.Read(ctx, s.name)
	if err != nil {
		return nil, fmt.Errorf("failed to load mod list: %w", err)
	}
	return Parse(data), nil
}

// Save writes the list back.
func (s *Store) Save(ctx context.Context, l *List) error {
	if err := s.backend.Write(ctx, s.name, l.Bytes()); err != nil {
		return fmt.Errorf("failed to save mod list: %w", err)
	}
	return nil
}
