// Package types defines every cross‑package data structure used by the treesense CLI.
package types

import (
	"bytes"
	"encoding/json"
)

const (
	NodeTypeDirectory = "dir"
	NodeTypeFile      = "file"
	NodeTypeUnknown   = "unknown"

	// RootRelativePath is the relpath recorded for the walk root.
	RootRelativePath = "."

	// UnknownSizePlaceholder replaces the size of a file that could not be stat'ed.
	UnknownSizePlaceholder = "?"

	// PermissionDeniedReason is recorded on unknown nodes for permission failures.
	PermissionDeniedReason = "permission_denied"
)

// TreeNode is one entry of a described tree. The set of implementations is
// closed: *DirectoryNode, *FileNode and *UnknownNode.
type TreeNode interface {
	NodeType() string
	NodeName() string
	RelativePath() string
	treeNode()
}

// DirectoryNode describes a directory and its retained children.
type DirectoryNode struct {
	Name          string
	RelPath       string
	Children      []TreeNode
	CycleDetected bool
}

// FileNode describes a regular file, a symlink that is not descended, or any other non-directory entry.
type FileNode struct {
	Name      string
	RelPath   string
	IsLink    bool
	Extension string
	// Size is empty when sizes are not requested.
	Size string
	// SizeBytes is nil when sizes are not requested or the file could not be stat'ed.
	SizeBytes *int64
}

// UnknownNode records an entry that could not be inspected.
type UnknownNode struct {
	Name    string
	RelPath string
	Reason  string
}

func (node *DirectoryNode) NodeType() string     { return NodeTypeDirectory }
func (node *DirectoryNode) NodeName() string     { return node.Name }
func (node *DirectoryNode) RelativePath() string { return node.RelPath }
func (node *DirectoryNode) treeNode()            {}

func (node *FileNode) NodeType() string     { return NodeTypeFile }
func (node *FileNode) NodeName() string     { return node.Name }
func (node *FileNode) RelativePath() string { return node.RelPath }
func (node *FileNode) treeNode()            {}

func (node *UnknownNode) NodeType() string     { return NodeTypeUnknown }
func (node *UnknownNode) NodeName() string     { return node.Name }
func (node *UnknownNode) RelativePath() string { return node.RelPath }
func (node *UnknownNode) treeNode()            {}

type directoryNodeJSON struct {
	Type          string     `json:"type"`
	Name          string     `json:"name"`
	RelPath       string     `json:"relpath"`
	Children      []TreeNode `json:"children"`
	CycleDetected bool       `json:"cycle_detected,omitempty"`
}

type fileNodeJSON struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	RelPath   string `json:"relpath"`
	IsLink    bool   `json:"is_link"`
	Extension string `json:"ext"`
	Size      string `json:"size,omitempty"`
	SizeBytes *int64 `json:"size_bytes,omitempty"`
}

type unknownNodeJSON struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	RelPath string `json:"relpath"`
	Error   string `json:"error"`
}

// MarshalJSON renders the directory with its type tag first and children always present.
func (node *DirectoryNode) MarshalJSON() ([]byte, error) {
	children := node.Children
	if children == nil {
		children = []TreeNode{}
	}
	return marshalWithoutHTMLEscape(directoryNodeJSON{
		Type:          NodeTypeDirectory,
		Name:          node.Name,
		RelPath:       node.RelPath,
		Children:      children,
		CycleDetected: node.CycleDetected,
	})
}

// MarshalJSON renders the file with its type tag first.
func (node *FileNode) MarshalJSON() ([]byte, error) {
	return marshalWithoutHTMLEscape(fileNodeJSON{
		Type:      NodeTypeFile,
		Name:      node.Name,
		RelPath:   node.RelPath,
		IsLink:    node.IsLink,
		Extension: node.Extension,
		Size:      node.Size,
		SizeBytes: node.SizeBytes,
	})
}

// MarshalJSON renders the unknown entry with its type tag first.
func (node *UnknownNode) MarshalJSON() ([]byte, error) {
	return marshalWithoutHTMLEscape(unknownNodeJSON{
		Type:    NodeTypeUnknown,
		Name:    node.Name,
		RelPath: node.RelPath,
		Error:   node.Reason,
	})
}

// marshalWithoutHTMLEscape keeps names such as "a&b" or "<draft>" readable in the output.
func marshalWithoutHTMLEscape(value interface{}) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if encodeError := encoder.Encode(value); encodeError != nil {
		return nil, encodeError
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}
