package commands

import "go.uber.org/zap"

// TreeBuilder builds directory tree nodes using configured options.
// A MaxDepth of zero leaves the walk unlimited.
type TreeBuilder struct {
	MaxDepth       int
	IncludeHidden  bool
	ShowSizes      bool
	Excludes       []string
	FollowSymlinks bool
	Logger         *zap.Logger
}
