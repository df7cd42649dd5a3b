// Package sections locates the editable body of an academic paper inside a
// flat paragraph sequence. Detection is heuristic by design: headings are
// matched with regular expressions over the paragraph text, and documents
// whose section wording deviates from the configured keywords will be
// over- or under-included.
package sections

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies one paragraph's role in the section structure.
type Kind int

const (
	// KindNone marks ordinary body text.
	KindNone Kind = iota
	// KindHeading marks a heading that is not a section boundary.
	KindHeading
	// KindAbstract marks the "Abstract" heading.
	KindAbstract
	// KindBodyStart marks an "Introduction"-class heading.
	KindBodyStart
	// KindStop marks a "References"/"Bibliography"-class heading.
	KindStop
)

// Classifier decides what a paragraph is. It is a pluggable seam: detection
// rules can be swapped without touching the segmentation core.
type Classifier interface {
	Classify(text string) Kind
}

// numeric prefix like "2.1 Methods"
var numericHeadingRe = regexp.MustCompile(`^\d+(\.\d+)*\s+\w`)

// maxHeadingWords is the word count below which a line with at most one
// period is treated as a heading.
const maxHeadingWords = 10

// RegexClassifier matches section boundaries against configurable keyword
// sets and applies a short-line heading heuristic to everything else.
type RegexClassifier struct {
	abstractRe *regexp.Regexp
	startRes   []*regexp.Regexp
	stopRes    []*regexp.Regexp
	stopExact  map[string]bool
}

// DefaultStartKeywords and DefaultStopKeywords reproduce the conventional
// section names of an academic paper.
var (
	DefaultStartKeywords = []string{"Introduction"}
	DefaultStopKeywords  = []string{"References", "Bibliography"}
)

// NewRegexClassifier builds a classifier for the given boundary keywords.
// Empty slices fall back to the defaults. Keywords match case-insensitively
// and tolerate a numeric section prefix ("2. Introduction", "7 References").
func NewRegexClassifier(startKeywords, stopKeywords []string) *RegexClassifier {
	if len(startKeywords) == 0 {
		startKeywords = DefaultStartKeywords
	}
	if len(stopKeywords) == 0 {
		stopKeywords = DefaultStopKeywords
	}

	c := &RegexClassifier{
		abstractRe: regexp.MustCompile(`(?i)^Abstract$`),
		stopExact:  make(map[string]bool),
	}
	for _, kw := range startKeywords {
		c.startRes = append(c.startRes,
			regexp.MustCompile(fmt.Sprintf(`(?i)^(?:\d+(?:\.\d+)*\.?\s*)?%s$`, regexp.QuoteMeta(kw))))
	}
	for _, kw := range stopKeywords {
		c.stopRes = append(c.stopRes,
			regexp.MustCompile(fmt.Sprintf(`(?i)^\d*\.?\s*%s$`, regexp.QuoteMeta(kw))))
		c.stopExact[kw] = true
	}
	return c
}

func (c *RegexClassifier) Classify(text string) Kind {
	text = strings.TrimSpace(text)

	if c.abstractRe.MatchString(text) {
		return KindAbstract
	}
	for _, re := range c.startRes {
		if re.MatchString(text) {
			return KindBodyStart
		}
	}
	if c.stopExact[text] {
		return KindStop
	}
	for _, re := range c.stopRes {
		if re.MatchString(text) {
			return KindStop
		}
	}
	if IsHeading(text) {
		return KindHeading
	}
	return KindNone
}

// IsHeading reports whether text looks like a heading or subheading:
// a numeric prefix such as "2.1 Methods", or a short line (under
// maxHeadingWords words) with at most one period.
func IsHeading(text string) bool {
	if numericHeadingRe.MatchString(text) {
		return true
	}
	if len(strings.Fields(text)) < maxHeadingWords && strings.Count(text, ".") <= 1 {
		return true
	}
	return false
}
