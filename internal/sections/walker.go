package sections

import "strings"

// Action tells the caller what to do with the paragraph just visited.
type Action int

const (
	// ActionSkip leaves the paragraph untouched.
	ActionSkip Action = iota
	// ActionEditAbstract edits the single qualifying paragraph following
	// the "Abstract" heading.
	ActionEditAbstract
	// ActionEditBody edits an in-body paragraph.
	ActionEditBody
	// ActionStop ends the walk; no later paragraph is visited.
	ActionStop
)

// walker state machine per the section-range design:
// beforeAbstract → abstractPending on the Abstract heading, back after one
// edited paragraph; any state → inBody on an Introduction heading;
// inBody → stopped on a References/Bibliography heading.
type state int

const (
	stateBeforeAbstract state = iota
	stateAbstractPending
	stateInBody
	stateStopped
)

// minBodyPeriods is the sentence-count proxy a paragraph must meet to
// qualify for editing: at least two '.' occurrences.
const minBodyPeriods = 2

// Walker drives the section state machine over a paragraph sequence. Create
// one per document run; it is not safe for concurrent use.
type Walker struct {
	classifier   Classifier
	editAbstract bool
	state        state
}

func NewWalker(classifier Classifier, editAbstract bool) *Walker {
	return &Walker{classifier: classifier, editAbstract: editAbstract}
}

// Next consumes the next paragraph text and returns the action to take.
// Once ActionStop has been returned every later call returns ActionStop.
func (w *Walker) Next(text string) Action {
	if w.state == stateStopped {
		return ActionStop
	}

	text = strings.TrimSpace(text)

	// The abstract's follow-up paragraph is matched on sentence count alone,
	// before any heading checks.
	if w.state == stateAbstractPending && qualifies(text) {
		w.state = stateBeforeAbstract // exactly one paragraph after Abstract
		return ActionEditAbstract
	}

	switch w.classifier.Classify(text) {
	case KindAbstract:
		if w.editAbstract && w.state == stateBeforeAbstract {
			w.state = stateAbstractPending
		}
		return ActionSkip
	case KindBodyStart:
		w.state = stateInBody
		return ActionSkip
	case KindStop:
		w.state = stateStopped
		return ActionStop
	case KindHeading:
		return ActionSkip
	}

	if w.state == stateInBody && qualifies(text) {
		return ActionEditBody
	}
	return ActionSkip
}

// qualifies applies the sentence-count proxy: paragraphs with fewer than two
// periods are passed over as too short to be body prose.
func qualifies(text string) bool {
	return strings.Count(text, ".") >= minBodyPeriods
}
