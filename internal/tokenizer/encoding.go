package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

// ErrNoEncoding reports a counter used without a loaded tiktoken encoding.
var ErrNoEncoding = errors.New("tiktoken encoding is not loaded")

// encodingCounter counts tokens with one tiktoken encoding. Special tokens are encoded as plain text
// because tree JSON may legitimately contain strings such as "<|endoftext|>" in file names.
type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, ErrNoEncoding
	}
	return len(counter.encoding.EncodeOrdinary(input)), nil
}
