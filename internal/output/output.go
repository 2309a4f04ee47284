// Package output renders described trees and writes the generated artifacts.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/temirov/treesense/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	artifactPermissions = 0o644
)

// RenderTreeJSON encodes a tree. Pretty output is indented with two spaces; otherwise it is compact.
// HTML characters stay unescaped and the result carries no trailing newline.
func RenderTreeJSON(node types.TreeNode, pretty bool) (string, error) {
	if node == nil {
		return "", fmt.Errorf("render tree: nil node")
	}
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if pretty {
		encoder.SetIndent(indentPrefix, indentSpacer)
	}
	if encodeError := encoder.Encode(node); encodeError != nil {
		return "", fmt.Errorf("render tree: %w", encodeError)
	}
	return string(bytes.TrimRight(buffer.Bytes(), "\n")), nil
}

// WriteArtifact replaces the file at path with content.
func WriteArtifact(path string, content string) error {
	if writeError := os.WriteFile(path, []byte(content), artifactPermissions); writeError != nil {
		return fmt.Errorf("write %s: %w", path, writeError)
	}
	return nil
}
