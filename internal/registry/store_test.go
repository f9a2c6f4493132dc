package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func promptedBy(id string) *string { return &id }

func sampleRecords() []Record {
	return []Record{
		{
			ID:       "epistle-1700000000",
			Date:     "2025-11-14",
			Personas: []string{"Alice", "Bob"},
			Topic:    "Untitled",
			File:     "alice_bob_20251114T221320.md",
			Status:   StatusDraft,
		},
		{
			ID:         "epistle-1700000100",
			Date:       "2025-11-15",
			Personas:   []string{"Carol", "Dave"},
			Topic:      "Error budgets",
			PromptedBy: promptedBy("fp-123"),
			File:       "carol_dave_20251115T101500.md",
			Status:     "final",
			Keywords:   []string{"sre", "budgets"},
			Context:    []string{"notes.md"},
		},
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)

	records, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := sampleRecords()

	require.NoError(t, s.Save(want))
	got, err := s.Load()
	require.NoError(t, err)

	// Normalize applies to the input on Save, so nil slices come back
	// as empty slices; compare against the normalized form.
	for i := range want {
		want[i].Normalize()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveEmptyRegistry(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Save(nil))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, got)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestAbsentPromptedBySerializesAsNull(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleRecords()[:1]))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, `"prompted_by":null`)
	assert.Contains(t, line, `"context":[]`)
	assert.Contains(t, line, `"keywords":[]`)
	assert.True(t, strings.HasSuffix(line, "\n"), "each record line ends with a newline")
}

func TestLoadSkipsBlankLines(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleRecords()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	padded := "\n" + lines[0] + "\n\n   \n" + lines[1] + "\n\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(padded), 0o644))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleRecords()))

	f, err := os.OpenFile(s.Path(), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{this is not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, got, 2, "malformed line is skipped, valid records survive")
}

func TestLoadPreservesFileOrder(t *testing.T) {
	s := newTestStore(t)
	want := sampleRecords()
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0].ID, got[0].ID)
	assert.Equal(t, want[1].ID, got[1].ID)
}

func TestFailedSaveLeavesPreviousFileIntact(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleRecords()[:1]))

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	// Make the directory unwritable so the temp file cannot be created.
	require.NoError(t, os.Chmod(s.Dir(), 0o500))
	t.Cleanup(func() { _ = os.Chmod(s.Dir(), 0o755) })

	err = s.Save(sampleRecords())
	require.Error(t, err)

	require.NoError(t, os.Chmod(s.Dir(), 0o755))
	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleRecords()))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, RegistryFilename, e.Name())
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "letters", "nested")
	s, err := NewStore(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStoreRequiresDir(t *testing.T) {
	_, err := NewStore("", zap.NewNop())
	assert.Error(t, err)
}
