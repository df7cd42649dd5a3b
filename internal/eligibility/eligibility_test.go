package eligibility

import "testing"

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		minWords   int
		expectedOK bool
		reason     Reason
	}{
		{
			name:       "normal sentence",
			input:      "The experiment was conducted carefully",
			minWords:   3,
			expectedOK: true,
			reason:     ReasonNone,
		},
		{
			name:       "citation blocks editing",
			input:      "Prior work (Smith et al., 2019) reports similar findings",
			minWords:   3,
			expectedOK: false,
			reason:     ReasonCitation,
		},
		{
			name:       "numeric reference blocks editing",
			input:      "This was shown before [12] in the literature",
			minWords:   3,
			expectedOK: false,
			reason:     ReasonCitation,
		},
		{
			name:       "too short",
			input:      "See above",
			minWords:   3,
			expectedOK: false,
			reason:     ReasonTooShort,
		},
		{
			name:       "exactly at threshold",
			input:      "Three word sentence",
			minWords:   3,
			expectedOK: true,
			reason:     ReasonNone,
		},
		{
			name:       "empty text",
			input:      "",
			minWords:   3,
			expectedOK: false,
			reason:     ReasonTooShort,
		},
		{
			name:       "citation wins over length",
			input:      "[1]",
			minWords:   3,
			expectedOK: false,
			reason:     ReasonCitation,
		},
		{
			name:       "zero minWords falls back to default",
			input:      "Too few",
			minWords:   0,
			expectedOK: false,
			reason:     ReasonTooShort,
		},
		{
			name:       "custom threshold",
			input:      "A longer sentence with six words",
			minWords:   10,
			expectedOK: false,
			reason:     ReasonTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Check(tt.input, tt.minWords)
			if ok != tt.expectedOK {
				t.Errorf("Check(%q, %d) ok = %v, want %v", tt.input, tt.minWords, ok, tt.expectedOK)
			}
			if reason != tt.reason {
				t.Errorf("Check(%q, %d) reason = %q, want %q", tt.input, tt.minWords, reason, tt.reason)
			}
		})
	}
}
