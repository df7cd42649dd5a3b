// Package citation detects citation, footnote, and reference markers in
// sentence text. Markers are any parenthesis-, bracket-, or brace-delimited
// span. Spans are treated as opaque: they are never parsed further, and
// their presence anywhere in a sentence makes the whole sentence off-limits
// for editing.
package citation

import "regexp"

var spanRes = []*regexp.Regexp{
	regexp.MustCompile(`\(.*?\)`),
	regexp.MustCompile(`\[.*?\]`),
	regexp.MustCompile(`\{.*?\}`),
}

// Contains reports whether text carries at least one delimited span.
func Contains(text string) bool {
	for _, re := range spanRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Spans returns every delimited span found in text, in pattern order
// (all parenthesized spans, then bracketed, then braced).
func Spans(text string) []string {
	var spans []string
	for _, re := range spanRes {
		spans = append(spans, re.FindAllString(text, -1)...)
	}
	return spans
}
