package suggest

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an information architect and naming-conventions expert. " +
	"Given a directory tree in JSON, produce:\n" +
	"1) Unclear or inconsistent file/folder names with concrete rename suggestions.\n" +
	"2) Reorganization suggestions (grouping, archival, deduplication, top-level structure). " +
	"Be concise, actionable, and justify each suggestion briefly."

const treePlaceholder = "{tree_json}"

const userPromptTemplate = `Analyze the following directory tree (JSON) and respond with two sections.

## Unclear File/Folder Namings
- Identify ambiguous, generic, duplicated, or noisy names (e.g., 'final', 'copy', 'v1', 'untitled', inconsistent casing/spaces).
- For each, propose a clearer name in ` + "`old → new`" + ` format and add a one-sentence rationale.
- Reference items by ` + "`relpath`" + `.

## Reorganization Suggestions
- Propose a logical top-level structure (categories).
- Suggest merges/splits, archives for stale/unused areas, and consolidation of likely duplicates (names only).
- If sizes are present, call out unusually large folders; suggest where a README.md would help.

### Tree (JSON)
` + "```json\n" + treePlaceholder + "\n```\n"

const chunkSeparatorFormat = "\n---\n_Chunk %d/%d end._\n"

// SystemPrompt returns the fixed instruction sent with every chunk.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt embeds one chunk of the serialized tree in the analysis template.
func BuildUserPrompt(treeChunk string) string {
	return strings.Replace(userPromptTemplate, treePlaceholder, treeChunk, 1)
}

func chunkSeparator(chunkNumber int, totalChunks int) string {
	return fmt.Sprintf(chunkSeparatorFormat, chunkNumber, totalChunks)
}
