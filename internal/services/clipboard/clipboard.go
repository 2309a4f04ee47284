// Package clipboard copies generated suggestions to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

const (
	logCopied     = "copied suggestions to clipboard"
	logCopyFailed = "unable to copy suggestions to clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard Service.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// CopyBestEffort copies text and logs the outcome. A failure never stops the caller; it reports
// whether the copy succeeded.
func CopyBestEffort(copier Copier, text string, logger *zap.Logger) bool {
	if logger == nil {
		logger = zap.NewNop()
	}
	if copier == nil {
		copier = NewService()
	}
	if copyError := copier.Copy(text); copyError != nil {
		logger.Warn(logCopyFailed, zap.Error(copyError))
		return false
	}
	logger.Info(logCopied, zap.Int("characters", len([]rune(text))))
	return true
}

var _ Copier = (*Service)(nil)
