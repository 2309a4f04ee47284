// Package suggest turns a serialized tree into naming and reorganization suggestions, one bounded chunk at a time.
package suggest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/temirov/treesense/internal/tokenizer"
)

const (
	errorSplitFormat   = "splitting tree text: %w"
	errorRequestFormat = "requesting suggestions for chunk %d/%d: %w"

	logRequestingChunk  = "requesting suggestions"
	logChunkTokens      = "chunk token estimate"
	logTokenCountFailed = "unable to estimate chunk tokens"
)

// ErrNilCompleter reports a Requester without a suggestion service.
var ErrNilCompleter = errors.New("suggestion service is not configured")

// Completer sends one system instruction and one user prompt and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

// Requester issues sequential suggestion requests for the chunks of a serialized tree.
type Requester struct {
	completer    Completer
	tokenCounter tokenizer.Counter
	logger       *zap.Logger
}

// NewRequester constructs a Requester. tokenCounter is optional and only feeds debug logs.
func NewRequester(completer Completer, tokenCounter tokenizer.Counter, logger *zap.Logger) *Requester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Requester{
		completer:    completer,
		tokenCounter: tokenCounter,
		logger:       logger,
	}
}

// Request splits serializedTree into chunks of at most maxCharactersPerChunk characters and
// requests suggestions for each chunk in order. The first failed request aborts the whole
// operation; no partial result is returned.
func (requester *Requester) Request(ctx context.Context, serializedTree string, maxCharactersPerChunk int) (string, error) {
	if requester.completer == nil {
		return "", ErrNilCompleter
	}
	chunks, splitError := SplitText(serializedTree, maxCharactersPerChunk)
	if splitError != nil {
		return "", fmt.Errorf(errorSplitFormat, splitError)
	}

	responses := make([]string, 0, len(chunks))
	for chunkIndex, chunk := range chunks {
		chunkNumber := chunkIndex + 1
		requester.logChunk(chunk, chunkNumber, len(chunks))
		response, completeError := requester.completer.Complete(ctx, SystemPrompt(), BuildUserPrompt(chunk))
		if completeError != nil {
			return "", fmt.Errorf(errorRequestFormat, chunkNumber, len(chunks), completeError)
		}
		responses = append(responses, response)
	}
	return joinChunkResponses(responses), nil
}

func (requester *Requester) logChunk(chunk string, chunkNumber int, totalChunks int) {
	requester.logger.Info(logRequestingChunk, zap.Int("chunk", chunkNumber), zap.Int("chunks", totalChunks))
	countResult, countError := tokenizer.CountText(requester.tokenCounter, chunk)
	if countError != nil {
		requester.logger.Debug(logTokenCountFailed, zap.Int("chunk", chunkNumber), zap.Error(countError))
		return
	}
	if countResult.Counted {
		requester.logger.Debug(logChunkTokens, zap.Int("chunk", chunkNumber), zap.Int("tokens", countResult.Tokens), zap.String("tokenizer", requester.tokenCounter.Name()))
	}
}
