// Package config resolves configuration files, exclusion names and the suggestion-service credential.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/temirov/treesense/internal/utils"
)

const commentPrefix = "#"

// DefaultExcludes lists names skipped unless default exclusions are disabled.
var DefaultExcludes = []string{
	".DS_Store",
	"__pycache__",
	"node_modules",
	utils.GitDirectoryName,
	".idea",
	".venv",
	"venv",
}

// LoadExclusionFile reads one exclusion name per line. Blank lines and lines starting with # are ignored.
//
// #nosec G304
func LoadExclusionFile(exclusionFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(exclusionFilePath)
	if openFileError != nil {
		return nil, fmt.Errorf("opening exclusion file %s: %w", exclusionFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", exclusionFilePath, closeError)
		}
	}()

	var exclusionNames []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		exclusionNames = append(exclusionNames, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("reading exclusion file %s: %w", exclusionFilePath, scanError)
	}
	return exclusionNames, nil
}

// BuildExclusionSet combines the default names (when enabled), the explicit names and the
// names listed in exclusionFilePath (when set). The result keeps the first occurrence of each name.
func BuildExclusionSet(useDefaults bool, exclusionNames []string, exclusionFilePath string) ([]string, error) {
	var combinedNames []string
	if useDefaults {
		combinedNames = append(combinedNames, DefaultExcludes...)
	}
	for _, exclusionName := range exclusionNames {
		trimmedName := strings.TrimSpace(exclusionName)
		if trimmedName == "" {
			continue
		}
		combinedNames = append(combinedNames, trimmedName)
	}
	if exclusionFilePath != "" {
		fileNames, loadError := LoadExclusionFile(exclusionFilePath)
		if loadError != nil {
			return nil, loadError
		}
		combinedNames = append(combinedNames, fileNames...)
	}
	return utils.DeduplicatePatterns(combinedNames), nil
}
