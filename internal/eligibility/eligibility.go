// Package eligibility decides whether a piece of text may be sent to the
// editing service. The filter is deliberately conservative: skipping
// editable text is acceptable, editing a citation is not.
package eligibility

import (
	"strings"

	"github.com/ovyshniak/redline/internal/citation"
)

// DefaultMinWords is the minimum whitespace-delimited word count below which
// a sentence is left untouched.
const DefaultMinWords = 3

// Reason explains why a text was ruled ineligible.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonCitation Reason = "contains citation or reference marker"
	ReasonTooShort Reason = "too short to edit"
)

// Check reports whether text is eligible for editing. minWords ≤ 0 falls
// back to DefaultMinWords.
func Check(text string, minWords int) (bool, Reason) {
	if minWords <= 0 {
		minWords = DefaultMinWords
	}
	if citation.Contains(text) {
		return false, ReasonCitation
	}
	if len(strings.Fields(text)) < minWords {
		return false, ReasonTooShort
	}
	return true, ReasonNone
}
