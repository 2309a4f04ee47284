package commands

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/treesense/internal/types"
)

// TestBuildSizeUnavailable verifies a file that vanishes before its size is read keeps the "?" placeholder.
func TestBuildSizeUnavailable(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	vanishingPath := filepath.Join(rootDirectory, "vanishing.log")
	stablePath := filepath.Join(rootDirectory, "stable.txt")
	for _, path := range []string{vanishingPath, stablePath} {
		if writeError := os.WriteFile(path, []byte("abc"), 0o644); writeError != nil {
			testingHandle.Fatalf("writing %s: %v", path, writeError)
		}
	}

	originalFileStat := fileStat
	testingHandle.Cleanup(func() { fileStat = originalFileStat })
	fileStat = func(path string) (fs.FileInfo, error) {
		if path == vanishingPath {
			return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
		}
		return originalFileStat(path)
	}

	builder := &TreeBuilder{ShowSizes: true}
	rootNode, buildError := builder.Build(rootDirectory)
	if buildError != nil {
		testingHandle.Fatalf("Build error: %v", buildError)
	}
	root, isDirectory := rootNode.(*types.DirectoryNode)
	if !isDirectory || len(root.Children) != 2 {
		testingHandle.Fatalf("unexpected root %+v", rootNode)
	}

	sizes := map[string]*types.FileNode{}
	for _, child := range root.Children {
		fileNode, isFile := child.(*types.FileNode)
		if !isFile {
			testingHandle.Fatalf("expected file node, got %T", child)
		}
		sizes[fileNode.Name] = fileNode
	}
	vanishing := sizes["vanishing.log"]
	if vanishing == nil || vanishing.Size != types.UnknownSizePlaceholder || vanishing.SizeBytes != nil {
		testingHandle.Fatalf("expected placeholder size without bytes, got %+v", vanishing)
	}
	stable := sizes["stable.txt"]
	if stable == nil || stable.Size != "3B" || stable.SizeBytes == nil || *stable.SizeBytes != 3 {
		testingHandle.Fatalf("expected measured size, got %+v", stable)
	}
}

func TestFailureReason(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		failure  error
		expected string
	}{
		{name: "permission", failure: &fs.PathError{Op: "open", Path: "x", Err: fs.ErrPermission}, expected: types.PermissionDeniedReason},
		{name: "path error text", failure: &fs.PathError{Op: "open", Path: "x", Err: errors.New("input/output error")}, expected: "input/output error"},
		{name: "plain error", failure: errors.New("boom"), expected: "boom"},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			if actual := failureReason(testCase.failure); actual != testCase.expected {
				subTest.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}
