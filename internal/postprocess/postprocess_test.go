package postprocess

import "testing"

func TestRemoveThinkingBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no thinking blocks",
			input:    "Hello, this is a normal sentence.",
			expected: "Hello, this is a normal sentence.",
		},
		{
			name:     "simple thinking block",
			input:    "Some text<thinking>Let me check this</thinking>More text",
			expected: "Some textMore text",
		},
		{
			name:     "reasoning block",
			input:    "Start<reasoning>Analyzing the grammar</reasoning>End",
			expected: "StartEnd",
		},
		{
			name:     "reflection block",
			input:    "Begin<reflection>Checking context</reflection>Finish",
			expected: "BeginFinish",
		},
		{
			name:     "multiple thinking blocks",
			input:    "<thinking>First</thinking>middle<thinking>Second</thinking>",
			expected: "middle",
		},
		{
			name:     "truncated thinking block (no closing)",
			input:    "<thinking>Correction in progress",
			expected: "",
		},
		{
			name:     "truncated reasoning block",
			input:    "<reasoning>This model was cut off",
			expected: "",
		},
		{
			name:     "truncated thinking in middle",
			input:    "Before<thinking>Incomplete",
			expected: "Before",
		},
		{
			name:     "nested thinking inside content",
			input:    "Text<thinking>Ignored</thinking> after",
			expected: "Text after",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := removeThinkingBlocks(tt.input)
			if result != tt.expected {
				t.Errorf("removeThinkingBlocks(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRemoveInstructionEchoes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no echo",
			input:    "Just a normal corrected sentence.",
			expected: "Just a normal corrected sentence.",
		},
		{
			name:     "here's the corrected sentence echo",
			input:    "Here's the corrected sentence: Actual sentence text",
			expected: "Actual sentence text",
		},
		{
			name:     "here is the revised text echo",
			input:    "Here is the revised text: Done",
			expected: "Done",
		},
		{
			name:     "here is version no the",
			input:    "Here's edited version: Text",
			expected: "Text",
		},
		{
			name:     "the corrected sentence echo",
			input:    "The corrected sentence: Hello world",
			expected: "Hello world",
		},
		{
			name:     "corrected text without article",
			input:    "Corrected text: Done",
			expected: "Done",
		},
		{
			name:     "certainly echo",
			input:    "Certainly, here's the corrected sentence: Text",
			expected: "Text",
		},
		{
			name:     "sure echo",
			input:    "Sure, here's the revised paragraph: Done",
			expected: "Done",
		},
		{
			name:     "of course echo",
			input:    "Of course here's the improved version: Text",
			expected: "Text",
		},
		{
			name:     "echo not at start (should not match)",
			input:    "Before Here's the corrected sentence: After",
			expected: "Before Here's the corrected sentence: After",
		},
		{
			name:     "echo without colon (should not match)",
			input:    "Here's the corrected sentence text",
			expected: "Here's the corrected sentence text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := removeInstructionEchoes(tt.input)
			if result != tt.expected {
				t.Errorf("removeInstructionEchoes(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRemoveQuoteWrapping(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "single char",
			input:    "a",
			expected: "a",
		},
		{
			name:     "no quotes",
			input:    "Hello world",
			expected: "Hello world",
		},
		{
			name:     "double quotes",
			input:    "\"Hello world\"",
			expected: "Hello world",
		},
		{
			name:     "single quotes",
			input:    "'Hello world'",
			expected: "Hello world",
		},
		{
			name:     "guillemets",
			input:    "«Hello world»",
			expected: "Hello world",
		},
		{
			name:     "curly double quotes",
			input:    "“Hello world”",
			expected: "Hello world",
		},
		{
			name:     "curly single quotes",
			input:    "‘Hello world’",
			expected: "Hello world",
		},
		{
			name:     "unmatched quotes",
			input:    "\"Hello world'",
			expected: "\"Hello world'",
		},
		{
			name:     "only opening quote",
			input:    "\"Hello world",
			expected: "\"Hello world",
		},
		{
			name:     "only closing quote",
			input:    "Hello world\"",
			expected: "Hello world\"",
		},
		{
			name:     "quotes with leading/trailing whitespace",
			input:    "\"  Hello  \"",
			expected: "Hello",
		},
		{
			name:     "content with quotes inside",
			input:    "\"He said \"hello\"\"",
			expected: "He said \"hello\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := removeQuoteWrapping(tt.input)
			if result != tt.expected {
				t.Errorf("removeQuoteWrapping(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "clean text",
			input:    "Just a normal sentence.",
			expected: "Just a normal sentence.",
		},
		{
			name:     "full cleanup pipeline",
			input:    "<thinking>Thinking</thinking>Here's the corrected sentence:\n\"Edited text\"",
			expected: "Edited text",
		},
		{
			name:     "thinking + echo + quotes",
			input:    "<reasoning>Reasoning</reasoning>Here's the revised text:\n\"Result\"",
			expected: "Result",
		},
		{
			name:     "truncated thinking at end",
			input:    "Text<thinking>Incomplete",
			expected: "Text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Clean(tt.input)
			if result != tt.expected {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCollapseTrailingRuns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no run",
			input:    "The experiment was conducted.",
			expected: "The experiment was conducted.",
		},
		{
			name:     "double period",
			input:    "The experiment was conducted..",
			expected: "The experiment was conducted.",
		},
		{
			name:     "long period run",
			input:    "The experiment was conducted.....",
			expected: "The experiment was conducted.",
		},
		{
			name:     "double question mark",
			input:    "Was it conducted??",
			expected: "Was it conducted?",
		},
		{
			name:     "double exclamation",
			input:    "It worked!!",
			expected: "It worked!",
		},
		{
			name:     "run only at the end counts",
			input:    "See e.g. the results.",
			expected: "See e.g. the results.",
		},
		{
			name:     "trailing whitespace before run",
			input:    "Done..  ",
			expected: "Done.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CollapseTrailingRuns(tt.input)
			if result != tt.expected {
				t.Errorf("CollapseTrailingRuns(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
