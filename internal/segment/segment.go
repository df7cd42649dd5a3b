// Package segment splits a paragraph into sentence segments at terminal
// punctuation and reassembles an edited segment sequence back into a single
// paragraph string. Splitting is purely lexical: every '.', '?' or '!' is a
// boundary, including abbreviations and decimal numbers. That behavior is
// part of the contract — edited documents must segment the same way the
// originals did.
package segment

import (
	"regexp"
	"strings"
)

// Terminal punctuation recognized as a sentence boundary.
const terminals = ".?!"

var (
	splitRe = regexp.MustCompile(`[.?!]`)

	// runs of two or more identical terminal marks, e.g. ".." or "???"
	doubleDotRe      = regexp.MustCompile(`\.\.+`)
	doubleQuestionRe = regexp.MustCompile(`\?\?+`)
	doubleBangRe     = regexp.MustCompile(`!!+`)

	spaceBeforeMarkRe = regexp.MustCompile(`\s([.?!])`)
)

// Split cuts text at every terminal punctuation mark, keeping each mark as
// its own token interleaved with the preceding text. The result alternates
// text, punctuation, text, punctuation, … and always ends with a text token,
// which is empty when the input ends with punctuation.
//
//	Split("Hi. Bye.") → ["Hi", ".", " Bye", ".", ""]
func Split(text string) []string {
	marks := splitRe.FindAllStringIndex(text, -1)
	parts := make([]string, 0, 2*len(marks)+1)

	prev := 0
	for _, m := range marks {
		parts = append(parts, text[prev:m[0]], text[m[0]:m[1]])
		prev = m[1]
	}
	parts = append(parts, text[prev:])

	return parts
}

// Texts returns only the text tokens of a Split result, in order.
func Texts(parts []string) []string {
	texts := make([]string, 0, len(parts)/2+1)
	for i := 0; i < len(parts); i += 2 {
		texts = append(texts, parts[i])
	}
	return texts
}

// Reassemble joins an alternating text/punctuation sequence (as produced by
// Split, possibly with edited text tokens) back into one paragraph string:
//
//  1. Each text token is stripped of its own trailing terminal punctuation,
//     so a mark echoed back by the editor does not duplicate the tracked one.
//  2. Text and tracked punctuation are concatenated per pair.
//  3. Runs of two or more identical terminal marks collapse to one.
//  4. Pairs are joined with a single space.
//  5. A single whitespace character left before a terminal mark is removed.
//
// A pair whose stripped text is empty contributes nothing, punctuation
// included: an emptied sentence has nothing to terminate.
func Reassemble(parts []string) string {
	var pieces []string

	for i := 0; i < len(parts); i += 2 {
		sentence := strings.TrimSpace(parts[i])
		punctuation := ""
		if i+1 < len(parts) {
			punctuation = parts[i+1]
		}

		if sentence != "" && strings.ContainsRune(terminals, rune(sentence[len(sentence)-1])) {
			sentence = strings.TrimRight(sentence, terminals)
		}
		if sentence == "" {
			continue
		}

		combined := collapseRuns(sentence + punctuation)
		pieces = append(pieces, strings.TrimSpace(combined))
	}

	joined := strings.Join(pieces, " ")
	joined = spaceBeforeMarkRe.ReplaceAllString(joined, "$1")
	return strings.TrimSpace(joined)
}

// collapseRuns reduces any run of identical terminal punctuation to a single
// mark. Mixed runs like "?!" are left alone.
func collapseRuns(s string) string {
	s = doubleDotRe.ReplaceAllString(s, ".")
	s = doubleQuestionRe.ReplaceAllString(s, "?")
	return doubleBangRe.ReplaceAllString(s, "!")
}
