package tokenizer

import (
	"errors"
	"testing"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type failingCounter struct{}

func (failingCounter) Name() string { return "failing" }

func (failingCounter) CountString(string) (int, error) { return 0, errors.New("boom") }

func TestCountText(t *testing.T) {
	testCases := []struct {
		name          string
		counter       Counter
		text          string
		expectCounted bool
		expectTokens  int
		expectError   bool
	}{
		{name: "counts text", counter: testCounter{}, text: "hello", expectCounted: true, expectTokens: 5},
		{name: "counts empty text", counter: testCounter{}, text: "", expectCounted: true, expectTokens: 0},
		{name: "nil counter", counter: nil, text: "hello", expectCounted: false},
		{name: "invalid utf8", counter: testCounter{}, text: string([]byte{0xff, 0xfe}), expectCounted: false},
		{name: "counter failure", counter: failingCounter{}, text: "hello", expectError: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := CountText(testCase.counter, testCase.text)
			if testCase.expectError {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CountText error: %v", err)
			}
			if result.Counted != testCase.expectCounted || result.Tokens != testCase.expectTokens {
				t.Fatalf("unexpected result %+v", result)
			}
		})
	}
}

func TestIsOpenAIModel(t *testing.T) {
	testCases := map[string]bool{
		"gpt-4o-mini":      true,
		"o3-mini":          true,
		"text-embedding-3": true,
		"claude-3-haiku":   false,
		"llama-3":          false,
	}
	for model, expected := range testCases {
		if actual := isOpenAIModel(model); actual != expected {
			t.Errorf("isOpenAIModel(%q): expected %t, got %t", model, expected, actual)
		}
	}
}

// TestNewCounterDefault needs the tiktoken encoding files; it is skipped when they cannot be loaded.
func TestNewCounterDefault(t *testing.T) {
	counter, model, err := NewCounter("")
	if err != nil {
		t.Skipf("tokenizer encodings unavailable: %v", err)
	}
	if counter == nil {
		t.Fatalf("expected non-nil counter")
	}
	if model == "" {
		t.Fatalf("expected resolved model name")
	}
	tokens, err := counter.CountString("hello world")
	if err != nil {
		t.Fatalf("CountString error: %v", err)
	}
	if tokens <= 0 {
		t.Fatalf("expected positive token count, got %d", tokens)
	}
}

func TestEncodingCounterWithoutEncoding(t *testing.T) {
	_, err := encodingCounter{name: "empty"}.CountString("hello")
	if !errors.Is(err, ErrNoEncoding) {
		t.Fatalf("expected ErrNoEncoding, got %v", err)
	}
}
