package sections

import "testing"

const (
	bodyPara  = "The experiment was conducted over three weeks. The results are shown in the table below. All runs converged within budget and time."
	shortPara = "A single short remark without much structure"
)

func walkDoc(t *testing.T, w *Walker, paras []string) []Action {
	t.Helper()
	actions := make([]Action, 0, len(paras))
	for _, p := range paras {
		actions = append(actions, w.Next(p))
	}
	return actions
}

func TestWalker_SectionRange(t *testing.T) {
	w := NewWalker(NewRegexClassifier(nil, nil), true)

	paras := []string{
		"A Study of Things",   // title
		"Abstract",            // heading
		bodyPara,              // abstract text → edited
		"1. Introduction",     // heading → body opens
		bodyPara,              // edited
		"2. Methods",          // heading → skipped
		bodyPara,              // edited
		"References",          // stop
		"Smith, J. (2019). A paper. Journal.", // never visited
	}
	expected := []Action{
		ActionSkip,
		ActionSkip,
		ActionEditAbstract,
		ActionSkip,
		ActionEditBody,
		ActionSkip,
		ActionEditBody,
		ActionStop,
		ActionStop,
	}

	actions := walkDoc(t, w, paras)
	for i, a := range actions {
		if a != expected[i] {
			t.Errorf("paragraph %d (%q): action = %v, want %v", i, paras[i], a, expected[i])
		}
	}
}

func TestWalker_AbstractDisabled(t *testing.T) {
	w := NewWalker(NewRegexClassifier(nil, nil), false)

	if a := w.Next("Abstract"); a != ActionSkip {
		t.Errorf("Abstract heading: action = %v, want ActionSkip", a)
	}
	if a := w.Next(bodyPara); a != ActionSkip {
		t.Errorf("abstract text with editing disabled: action = %v, want ActionSkip", a)
	}
}

func TestWalker_OnlyOneAbstractParagraph(t *testing.T) {
	w := NewWalker(NewRegexClassifier(nil, nil), true)

	w.Next("Abstract")
	if a := w.Next(bodyPara); a != ActionEditAbstract {
		t.Fatalf("first abstract paragraph: action = %v, want ActionEditAbstract", a)
	}
	// The next qualifying paragraph is before the Introduction, so it is
	// skipped, not edited.
	if a := w.Next(bodyPara); a != ActionSkip {
		t.Errorf("second paragraph after Abstract: action = %v, want ActionSkip", a)
	}
}

func TestWalker_NothingEditedBeforeIntroduction(t *testing.T) {
	w := NewWalker(NewRegexClassifier(nil, nil), true)

	if a := w.Next(bodyPara); a != ActionSkip {
		t.Errorf("front-matter paragraph: action = %v, want ActionSkip", a)
	}
}

func TestWalker_ShortParagraphsSkippedInBody(t *testing.T) {
	w := NewWalker(NewRegexClassifier(nil, nil), true)

	w.Next("Introduction")
	if a := w.Next(shortPara); a != ActionSkip {
		t.Errorf("paragraph with fewer than two periods: action = %v, want ActionSkip", a)
	}
	if a := w.Next(bodyPara); a != ActionEditBody {
		t.Errorf("qualifying body paragraph: action = %v, want ActionEditBody", a)
	}
}

func TestWalker_StopIsTerminal(t *testing.T) {
	w := NewWalker(NewRegexClassifier(nil, nil), true)

	w.Next("Introduction")
	if a := w.Next("References"); a != ActionStop {
		t.Fatalf("References heading: action = %v, want ActionStop", a)
	}
	// Nothing after the stop heading is ever edited, even an Introduction.
	if a := w.Next("Introduction"); a != ActionStop {
		t.Errorf("paragraph after stop: action = %v, want ActionStop", a)
	}
	if a := w.Next(bodyPara); a != ActionStop {
		t.Errorf("paragraph after stop: action = %v, want ActionStop", a)
	}
}

func TestWalker_BibliographyStops(t *testing.T) {
	w := NewWalker(NewRegexClassifier(nil, nil), true)

	w.Next("Introduction")
	if a := w.Next("Bibliography"); a != ActionStop {
		t.Errorf("Bibliography heading: action = %v, want ActionStop", a)
	}
}
