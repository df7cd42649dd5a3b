// Package compare produces a tracked-changes document from the original and
// edited papers using whatever word-processor automation host the machine
// offers: Microsoft Word COM on Windows, LibreOffice Writer elsewhere. The
// diffing itself always belongs to the host — this package only opens,
// compares, filters citation noise, saves, and closes.
package compare

import (
	"context"
	"errors"
	"regexp"
)

// ErrUnavailable is returned by New when no automation host is installed.
// Callers treat it as a diagnostic, never a run failure.
var ErrUnavailable = errors.New("no comparison automation host available")

// Comparer opens original and edited, computes a comparison ignoring
// formatting, rejects citation-noise revisions, and saves the result to
// output. Implementations must release every opened handle on all exit
// paths before returning.
type Comparer interface {
	Compare(ctx context.Context, original, edited, output string) error
}

// New returns the platform's comparer, or ErrUnavailable.
func New() (Comparer, error) {
	return newPlatformComparer()
}

// Revision texts matching these are citation noise and get rejected:
// a parenthesis-delimited span, or a bracketed reference numeral.
const (
	ParenPattern      = `^\(.*\)`
	BracketNumPattern = `^\[\d+\]`
)

var (
	parenRe      = regexp.MustCompile(ParenPattern)
	bracketNumRe = regexp.MustCompile(BracketNumPattern)
)

// CitationNoise reports whether a revision's replaced text is citation
// noise rather than a genuine edit.
func CitationNoise(text string) bool {
	return parenRe.MatchString(text) || bracketNumRe.MatchString(text)
}
