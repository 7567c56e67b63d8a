package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// TargetPrefix is the mandatory prefix of a target version string.
const TargetPrefix = "SPT "

// targetWidth is the number of components a parsed target is padded to.
const targetWidth = 3

// ErrMalformed is returned for version strings that cannot be parsed.
var ErrMalformed = errors.New("malformed version")

// Target is a parsed platform baseline.
type Target struct {
	raw   string
	parts []int
}

// ParseTarget parses a target of the form "SPT X.Y.Z" or "SPT X.Y.x".
func ParseTarget(s string) (Target, error) {
	if !strings.HasPrefix(s, TargetPrefix) {
		return Target{}, fmt.Errorf("%w: target %q must start with %q", ErrMalformed, s, TargetPrefix)
	}

	normalized := strings.ReplaceAll(s, ".x", ".0")
	parts, err := parseNumeric(lastToken(normalized))
	if err != nil {
		return Target{}, fmt.Errorf("%w: target %q: %v", ErrMalformed, s, err)
	}
	for len(parts) < targetWidth {
		parts = append(parts, 0)
	}

	return Target{raw: s, parts: parts}, nil
}

// MustParseTarget is like ParseTarget but panics on error. Intended for tests and constants.
func MustParseTarget(s string) Target {
	t, err := ParseTarget(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the target as originally written.
func (t Target) String() string {
	return t.raw
}

// Parts returns a copy of the padded numeric components.
func (t Target) Parts() []int {
	out := make([]int, len(t.parts))
	copy(out, t.parts)
	return out
}

// Satisfies reports whether version is up to date against the target.
func (t Target) Satisfies(version string) (bool, error) {
	parts, err := ParseVersion(version)
	if err != nil {
		return false, err
	}

	n := min(len(parts), len(t.parts))
	for i := 0; i < n; i++ {
		if parts[i] < t.parts[i] {
			return false, nil
		}
	}
	return true, nil
}

// ParseVersion extracts the numeric components of a mod version label.
// No padding is applied.
func ParseVersion(s string) ([]int, error) {
	if i := strings.LastIndex(s, "-"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(s, ".X", ".0")

	parts, err := parseNumeric(lastToken(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, s, err)
	}
	return parts, nil
}

// IsUpToDate parses target and reports whether version satisfies it.
func IsUpToDate(version, target string) (bool, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return false, err
	}
	return t.Satisfies(version)
}

func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func parseNumeric(token string) ([]int, error) {
	if token == "" {
		return nil, errors.New("empty version")
	}
	raw := strings.Split(token, ".")
	parts := make([]int, 0, len(raw))
	for _, r := range raw {
		n, err := strconv.Atoi(r)
		if err != nil {
			return nil, fmt.Errorf("non-numeric component %q", r)
		}
		parts = append(parts, n)
	}
	return parts, nil
}
