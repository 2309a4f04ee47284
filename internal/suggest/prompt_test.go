package suggest

import (
	"strings"
	"testing"
)

func TestSystemPromptText(t *testing.T) {
	expected := "You are an information architect and naming-conventions expert. " +
		"Given a directory tree in JSON, produce:\n" +
		"1) Unclear or inconsistent file/folder names with concrete rename suggestions.\n" +
		"2) Reorganization suggestions (grouping, archival, deduplication, top-level structure). " +
		"Be concise, actionable, and justify each suggestion briefly."
	if SystemPrompt() != expected {
		t.Fatalf("unexpected system instruction:\n%s", SystemPrompt())
	}
}

func TestBuildUserPromptEmbedsChunk(t *testing.T) {
	chunk := `{"type":"dir","name":"project","relpath":".","children":[]}`
	prompt := BuildUserPrompt(chunk)

	for _, section := range []string{"## Unclear File/Folder Namings", "## Reorganization Suggestions"} {
		if !strings.Contains(prompt, section) {
			t.Fatalf("expected section %q in prompt", section)
		}
	}
	if !strings.Contains(prompt, "```json\n"+chunk+"\n```") {
		t.Fatalf("expected chunk inside a fenced JSON block, got:\n%s", prompt)
	}
	if strings.Contains(prompt, treePlaceholder) {
		t.Fatalf("placeholder left in prompt")
	}
}
