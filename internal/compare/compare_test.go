package compare

import (
	"strings"
	"testing"
)

func TestCitationNoise(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "author-year citation",
			input:    "(Smith et al., 2019)",
			expected: true,
		},
		{
			name:     "numeric reference",
			input:    "[12]",
			expected: true,
		},
		{
			name:     "numeric reference with trailing text",
			input:    "[3] and surrounding text",
			expected: true,
		},
		{
			name:     "plain edit",
			input:    "was conducted",
			expected: false,
		},
		{
			name:     "bracketed word is not a reference numeral",
			input:    "[sic]",
			expected: false,
		},
		{
			name:     "paren not at start",
			input:    "text (aside)",
			expected: false,
		},
		{
			name:     "empty",
			input:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CitationNoise(tt.input); got != tt.expected {
				t.Errorf("CitationNoise(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildWordScript(t *testing.T) {
	script := BuildWordScript(`C:\in\paper.docx`, `C:\out\edited.docx`, `C:\out\trackchanges.docx`)

	for _, want := range []string{
		`$word = New-Object -ComObject Word.Application`,
		`'C:\in\paper.docx'`,
		`'C:\out\edited.docx'`,
		`SaveAs([ref] 'C:\out\trackchanges.docx', [ref] 16)`,
		`CompareDocuments($originalDoc, $editedDoc, $false, $true)`,
		`$word.Quit()`,
	} {
		if !strings.Contains(script, want) {
			t.Errorf("script missing %q", want)
		}
	}

	// The citation-noise patterns are embedded for revision rejection.
	if !strings.Contains(script, ParenPattern) || !strings.Contains(script, BracketNumPattern) {
		t.Error("script missing citation-noise patterns")
	}
}

func TestBuildWordScript_QuotesEscaped(t *testing.T) {
	script := BuildWordScript(`C:\docs\O'Brien.docx`, `edited.docx`, `out.docx`)
	if !strings.Contains(script, `'C:\docs\O''Brien.docx'`) {
		t.Error("embedded single quote not doubled for PowerShell")
	}
}
