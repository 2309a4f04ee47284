package output_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/treesense/internal/output"
	"github.com/temirov/treesense/internal/types"
)

func sampleTree() types.TreeNode {
	sizeBytes := int64(1536)
	return &types.DirectoryNode{
		Name:    "project",
		RelPath: ".",
		Children: []types.TreeNode{
			&types.DirectoryNode{Name: "docs_&_notes", RelPath: "docs_&_notes", CycleDetected: true},
			&types.FileNode{Name: "main.go", RelPath: "main.go", Extension: ".go", Size: "1.5KB", SizeBytes: &sizeBytes},
			&types.FileNode{Name: "current", RelPath: "current", IsLink: true},
			&types.UnknownNode{Name: "secret", RelPath: "secret", Reason: "permission_denied"},
		},
	}
}

func TestRenderTreeJSON(testingHandle *testing.T) {
	leaf := &types.DirectoryNode{Name: "<draft>", RelPath: "."}

	testCases := []struct {
		name     string
		pretty   bool
		expected string
	}{
		{
			name:     "compact",
			pretty:   false,
			expected: `{"type":"dir","name":"<draft>","relpath":".","children":[]}`,
		},
		{
			name:   "pretty",
			pretty: true,
			expected: "{\n" +
				"  \"type\": \"dir\",\n" +
				"  \"name\": \"<draft>\",\n" +
				"  \"relpath\": \".\",\n" +
				"  \"children\": []\n" +
				"}",
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			rendered, err := output.RenderTreeJSON(leaf, testCase.pretty)
			if err != nil {
				subTest.Fatalf("RenderTreeJSON error: %v", err)
			}
			if rendered != testCase.expected {
				subTest.Fatalf("unexpected JSON:\n%s\nwant:\n%s", rendered, testCase.expected)
			}
		})
	}
}

func TestRenderTreeJSONNil(testingHandle *testing.T) {
	if _, err := output.RenderTreeJSON(nil, true); err == nil {
		testingHandle.Fatalf("expected error for nil tree")
	}
}

func TestRenderMarkdownTree(testingHandle *testing.T) {
	expected := "- project/\n" +
		"    - docs\\_&\\_notes/ _(cycle)_\n" +
		"    - main.go (1.5KB)\n" +
		"    - current [link]\n" +
		"    - secret _(error: permission\\_denied)_\n"

	rendered := output.RenderMarkdownTree(sampleTree())
	if rendered != expected {
		testingHandle.Fatalf("unexpected markdown:\n%s\nwant:\n%s", rendered, expected)
	}
}

func TestEscapeMarkdown(testingHandle *testing.T) {
	testCases := map[string]string{
		"plain.txt":   "plain.txt",
		"a_b*c":       "a\\_b\\*c",
		"[draft](1)":  "\\[draft\\]\\(1\\)",
		"back\\slash": "back\\\\slash",
		"#1 | >note!": "\\#1 \\| \\>note\\!",
	}
	for input, expected := range testCases {
		if actual := output.EscapeMarkdown(input); actual != expected {
			testingHandle.Fatalf("EscapeMarkdown(%q) = %q, want %q", input, actual, expected)
		}
	}
}

func TestWriteArtifact(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	artifactPath := filepath.Join(temporaryDirectory, "tree.json")

	if err := output.WriteArtifact(artifactPath, "first"); err != nil {
		testingHandle.Fatalf("WriteArtifact error: %v", err)
	}
	if err := output.WriteArtifact(artifactPath, "second"); err != nil {
		testingHandle.Fatalf("WriteArtifact error: %v", err)
	}
	content, err := os.ReadFile(artifactPath)
	if err != nil {
		testingHandle.Fatalf("read artifact: %v", err)
	}
	if string(content) != "second" {
		testingHandle.Fatalf("expected artifact to be replaced, got %q", content)
	}

	if err := output.WriteArtifact(filepath.Join(temporaryDirectory, "missing", "tree.json"), "x"); err == nil {
		testingHandle.Fatalf("expected error for missing parent directory")
	}
}
