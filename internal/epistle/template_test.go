package epistle

import (
	"os"
	"path/filepath"
	"testing"

	"epistle/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateWriterRendersSkeleton(t *testing.T) {
	dir := t.TempDir()
	rec := &registry.Record{
		ID:       "epistle-1700000000",
		Date:     "2025-11-14",
		Personas: []string{"Alice", "Bob"},
		Topic:    "Trust boundaries",
		Status:   registry.StatusDraft,
	}

	path := filepath.Join(dir, "alice_bob.md")
	w := &TemplateWriter{}
	require.NoError(t, w.Write(path, rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Epistle: Alice ↔ Bob")
	assert.Contains(t, content, "**ID**: epistle-1700000000")
	assert.Contains(t, content, "**Topic**: Trust boundaries")
	assert.Contains(t, content, "**Prompted by**: self-initiated")
	assert.Contains(t, content, "**Alice:**")
	assert.Contains(t, content, "**Bob:**")
	assert.Contains(t, content, "[No context documents attached yet")
}

func TestTemplateWriterRendersContextAndPromptedBy(t *testing.T) {
	dir := t.TempDir()
	prompted := "fp-123"
	rec := &registry.Record{
		ID:         "epistle-1700000001",
		Date:       "2025-11-14",
		Personas:   []string{"Alice", "Bob"},
		Topic:      "Untitled",
		PromptedBy: &prompted,
		Status:     registry.StatusDraft,
		Context:    []string{"design.md", "notes.md"},
	}

	path := filepath.Join(dir, "out.md")
	require.NoError(t, (&TemplateWriter{}).Write(path, rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "**Prompted by**: fp-123")
	assert.Contains(t, content, "- design.md")
	assert.Contains(t, content, "- notes.md")
	assert.NotContains(t, content, "[No context documents attached yet")
}
