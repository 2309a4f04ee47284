// Package tokenizer estimates how many model tokens a piece of text occupies.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultModel        = "gpt-4o-mini"
	defaultEncodingName = "cl100k_base"
)

var openAIModelPrefixes = []string{
	"gpt-",
	"o1",
	"o3",
	"o4",
	"text-embedding",
	"davinci",
	"curie",
	"babbage",
	"ada",
	"code-",
}

// NewCounter returns a tiktoken Counter for the requested model and the name of the encoding it resolved to.
// Models tiktoken does not know fall back to the cl100k_base encoding.
func NewCounter(model string) (Counter, string, error) {
	lowerModel := strings.ToLower(strings.TrimSpace(model))
	if lowerModel == "" {
		lowerModel = defaultModel
	}

	if isOpenAIModel(lowerModel) {
		encoding, encodingError := tiktoken.EncodingForModel(lowerModel)
		if encodingError == nil && encoding != nil {
			return encodingCounter{encoding: encoding, name: lowerModel}, lowerModel, nil
		}
	}

	fallback, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return encodingCounter{encoding: fallback, name: defaultEncodingName}, defaultEncodingName, nil
}

func isOpenAIModel(model string) bool {
	for _, prefix := range openAIModelPrefixes {
		if strings.HasPrefix(model, prefix) {
			return true
		}
	}
	return false
}
