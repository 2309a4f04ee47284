package suggest

import (
	"errors"
	"strings"
)

const (
	lineBreak = '\n'
	// lineBreakBackoffFraction is the earliest point of a window, as a share of the budget,
	// at which a chunk may end on a line break instead of splitting mid-line.
	lineBreakBackoffFraction = 0.6
)

// ErrInvalidChunkBudget reports a non-positive chunk size.
var ErrInvalidChunkBudget = errors.New("chunk budget must be positive")

// SplitText splits text into ordered chunks of at most maxCharacters characters (Unicode code points).
// Text that fits is returned as a single chunk. Otherwise every window ends just after its last line break
// when that break lies beyond 60% of the budget, and mid-line when it does not. The chunks concatenate back to text.
func SplitText(text string, maxCharacters int) ([]string, error) {
	if maxCharacters <= 0 {
		return nil, ErrInvalidChunkBudget
	}
	characters := []rune(text)
	if len(characters) <= maxCharacters {
		return []string{text}, nil
	}

	backoffThreshold := float64(maxCharacters) * lineBreakBackoffFraction
	var chunks []string
	for start := 0; start < len(characters); {
		end := start + maxCharacters
		if end >= len(characters) {
			end = len(characters)
		} else if breakIndex := lastLineBreak(characters, start, end); breakIndex >= 0 && float64(breakIndex) > float64(start)+backoffThreshold {
			end = breakIndex + 1
		}
		chunks = append(chunks, string(characters[start:end]))
		start = end
	}
	return chunks, nil
}

func lastLineBreak(characters []rune, start int, end int) int {
	for index := end - 1; index >= start; index-- {
		if characters[index] == lineBreak {
			return index
		}
	}
	return -1
}

// joinChunkResponses concatenates responses in order. Between consecutive responses of a
// multi-chunk request a marker records which chunk just ended.
func joinChunkResponses(responses []string) string {
	total := len(responses)
	parts := make([]string, 0, total*2)
	for index, response := range responses {
		parts = append(parts, response)
		if total > 1 && index < total-1 {
			parts = append(parts, chunkSeparator(index+1, total))
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n")) + "\n"
}
