package suggest

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitTextFitsInOneChunk(t *testing.T) {
	testCases := []struct {
		name   string
		text   string
		budget int
	}{
		{name: "empty", text: "", budget: 10},
		{name: "shorter than budget", text: "abc\ndef", budget: 10},
		{name: "exactly budget", text: "abcdefghij", budget: 10},
		{name: "multibyte characters counted once", text: "ééééé", budget: 5},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			chunks, err := SplitText(testCase.text, testCase.budget)
			if err != nil {
				t.Fatalf("SplitText error: %v", err)
			}
			if len(chunks) != 1 || chunks[0] != testCase.text {
				t.Fatalf("expected single identical chunk, got %q", chunks)
			}
		})
	}
}

func TestSplitTextBoundaries(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		budget   int
		expected []string
	}{
		{
			name:     "mid-line split without line breaks",
			text:     strings.Repeat("a", 25),
			budget:   10,
			expected: []string{strings.Repeat("a", 10), strings.Repeat("a", 10), strings.Repeat("a", 5)},
		},
		{
			name:     "backs off to a late line break",
			text:     "aaaaaaa\nbbbbbbbbb",
			budget:   10,
			expected: []string{"aaaaaaa\n", "bbbbbbbbb"},
		},
		{
			name:     "ignores an early line break",
			text:     "aa\nbbbbbbbbbbbbb",
			budget:   10,
			expected: []string{"aa\nbbbbbbb", "bbbbbb"},
		},
		{
			name:     "line break exactly at sixty percent is too early",
			text:     "aaaaaa\nbbbbbbbbbb",
			budget:   10,
			expected: []string{"aaaaaa\nbbb", "bbbbbbb"},
		},
		{
			name:     "line break at the window end",
			text:     "aaaaaaaaa\nbbbbbbbbb",
			budget:   10,
			expected: []string{"aaaaaaaaa\n", "bbbbbbbbb"},
		},
		{
			name:     "multibyte characters are never split",
			text:     strings.Repeat("é", 12),
			budget:   5,
			expected: []string{strings.Repeat("é", 5), strings.Repeat("é", 5), strings.Repeat("é", 2)},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			chunks, err := SplitText(testCase.text, testCase.budget)
			if err != nil {
				t.Fatalf("SplitText error: %v", err)
			}
			if strings.Join(chunks, "|") != strings.Join(testCase.expected, "|") {
				t.Fatalf("expected %q, got %q", testCase.expected, chunks)
			}
		})
	}
}

func TestSplitTextInvariants(t *testing.T) {
	var builder strings.Builder
	for lineIndex := 0; lineIndex < 200; lineIndex++ {
		builder.WriteString(strings.Repeat("x", lineIndex%37))
		builder.WriteString("\n")
	}
	text := builder.String()
	for _, budget := range []int{1, 7, 40, 100, 1000} {
		chunks, err := SplitText(text, budget)
		if err != nil {
			t.Fatalf("SplitText error: %v", err)
		}
		if strings.Join(chunks, "") != text {
			t.Fatalf("budget %d: chunks do not concatenate back to the input", budget)
		}
		for chunkIndex, chunk := range chunks {
			if utf8.RuneCountInString(chunk) > budget {
				t.Fatalf("budget %d: chunk %d has %d characters", budget, chunkIndex, utf8.RuneCountInString(chunk))
			}
			if chunk == "" {
				t.Fatalf("budget %d: chunk %d is empty", budget, chunkIndex)
			}
		}
	}
}

func TestSplitTextRejectsNonPositiveBudget(t *testing.T) {
	for _, budget := range []int{0, -5} {
		if _, err := SplitText("abc", budget); !errors.Is(err, ErrInvalidChunkBudget) {
			t.Fatalf("budget %d: expected ErrInvalidChunkBudget, got %v", budget, err)
		}
	}
}

func TestJoinChunkResponses(t *testing.T) {
	testCases := []struct {
		name      string
		responses []string
		expected  string
	}{
		{name: "single response", responses: []string{"  only  \n\n"}, expected: "only\n"},
		{
			name:      "separators between responses",
			responses: []string{"one", "two", "three"},
			expected:  "one\n\n---\n_Chunk 1/3 end._\n\ntwo\n\n---\n_Chunk 2/3 end._\n\nthree\n",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := joinChunkResponses(testCase.responses); actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}
