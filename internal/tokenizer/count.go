package tokenizer

import "unicode/utf8"

// CountResult captures the outcome of counting a piece of text.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountText estimates tokens for text. A nil counter or invalid UTF-8 yields an uncounted result.
func CountText(counter Counter, text string) (CountResult, error) {
	if counter == nil || !utf8.ValidString(text) {
		return CountResult{Counted: false}, nil
	}
	tokens, countError := counter.CountString(text)
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}
