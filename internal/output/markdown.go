package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/temirov/treesense/internal/types"
)

const (
	markdownIndent     = "    "
	markdownBullet     = "- "
	directorySuffix    = "/"
	symlinkMarker      = " [link]"
	cycleMarker        = " _(cycle)_"
	unknownEntryFormat = "%s _(error: %s)_"
	sizeFormat         = " (%s)"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
	"#", `\#`,
	"+", `\+`,
	"!", `\!`,
	">", `\>`,
	"|", `\|`,
)

// EscapeMarkdown backslash-escapes the characters Markdown would interpret inside a list item.
func EscapeMarkdown(name string) string {
	return markdownEscaper.Replace(name)
}

// RenderMarkdownTree returns the tree as a nested Markdown bullet list.
func RenderMarkdownTree(node types.TreeNode) string {
	var builder strings.Builder
	WriteMarkdownTree(&builder, node)
	return builder.String()
}

// WriteMarkdownTree writes the tree as a nested Markdown bullet list, one entry per line.
func WriteMarkdownTree(writer io.Writer, node types.TreeNode) {
	if node == nil {
		return
	}
	renderMarkdownNode(writer, node, 0)
}

func renderMarkdownNode(writer io.Writer, node types.TreeNode, depth int) {
	linePrefix := strings.Repeat(markdownIndent, depth) + markdownBullet
	switch typedNode := node.(type) {
	case *types.DirectoryNode:
		line := EscapeMarkdown(typedNode.Name) + directorySuffix
		if typedNode.CycleDetected {
			line += cycleMarker
		}
		fmt.Fprintln(writer, linePrefix+line)
		for _, child := range typedNode.Children {
			renderMarkdownNode(writer, child, depth+1)
		}
	case *types.FileNode:
		line := EscapeMarkdown(typedNode.Name)
		if typedNode.IsLink {
			line += symlinkMarker
		}
		if typedNode.Size != "" {
			line += fmt.Sprintf(sizeFormat, typedNode.Size)
		}
		fmt.Fprintln(writer, linePrefix+line)
	case *types.UnknownNode:
		fmt.Fprintln(writer, linePrefix+fmt.Sprintf(unknownEntryFormat, EscapeMarkdown(typedNode.Name), EscapeMarkdown(typedNode.Reason)))
	}
}
