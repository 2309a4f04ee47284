// Package utils contains general helper functions used across treesense.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// HiddenEntryPrefix marks entries hidden by convention.
	HiddenEntryPrefix = "."
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"

	homeDirectoryShorthand = "~"
)

// DeduplicatePatterns removes duplicate entries from a slice while preserving order.
// The first occurrence of each unique entry is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// IsHiddenName reports whether an entry name starts with the hidden-entry marker.
func IsHiddenName(entryName string) bool {
	return strings.HasPrefix(entryName, HiddenEntryPrefix)
}

// FileExtension returns the extension of a base name including its dot.
// Leading dots do not start an extension, so ".bashrc" has none while "archive.tar.gz" yields ".gz".
func FileExtension(entryName string) string {
	stem := strings.TrimLeft(entryName, ".")
	if stem == "" {
		return ""
	}
	dotIndex := strings.LastIndex(stem, ".")
	if dotIndex < 0 {
		return ""
	}
	return stem[dotIndex:]
}

// ExpandHomeDirectory replaces a leading "~" with the current user's home directory.
func ExpandHomeDirectory(path string) (string, error) {
	if path != homeDirectoryShorthand && !strings.HasPrefix(path, homeDirectoryShorthand+string(filepath.Separator)) {
		return path, nil
	}
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	if homeDirectoryError != nil {
		return "", fmt.Errorf("resolve home directory for %s: %w", path, homeDirectoryError)
	}
	return filepath.Join(homeDirectory, strings.TrimPrefix(path, homeDirectoryShorthand)), nil
}

// JoinRelativePath appends a child name to a relpath, treating the root sentinel as empty.
func JoinRelativePath(parentRelativePath string, childName string) string {
	if parentRelativePath == "" || parentRelativePath == "." {
		return childName
	}
	return parentRelativePath + "/" + childName
}
