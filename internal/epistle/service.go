// Package epistle implements the operations on the epistle registry:
// creation with identity and filename derivation, listing, lookup,
// filtered search, and context attachment. Every mutation is a full
// load, in-memory change, full save against the backing store.
package epistle

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"epistle/internal/registry"

	"go.uber.org/zap"
)

// idPrefix is the fixed literal prefix of every epistle id. The rest
// is the creation time at second granularity; two creations in the
// same wall-clock second collide on id. That is a known limitation of
// the identity scheme, not avoided the way file collisions are, and
// lookup resolves it first-match-wins.
const idPrefix = "epistle-"

// DocumentWriter renders a record's satellite document to disk.
type DocumentWriter interface {
	Write(path string, rec *registry.Record) error
}

// Service implements the record operations on top of a registry
// Store. It is synchronous and holds no cross-call state.
type Service struct {
	store *registry.Store
	docs  DocumentWriter
	log   *zap.Logger
	now   func() time.Time
}

// NewService builds a Service with the default template writer.
func NewService(store *registry.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store: store,
		docs:  &TemplateWriter{},
		log:   log,
		now:   time.Now,
	}
}

// SetDocumentWriter replaces the satellite document renderer.
func (s *Service) SetDocumentWriter(w DocumentWriter) {
	s.docs = w
}

// SetClock replaces the time source used for id and filename
// derivation.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Store returns the underlying registry store.
func (s *Service) Store() *registry.Store {
	return s.store
}

// Create derives identity and a collision-free filename, writes the
// satellite document, and appends the record to the registry. The
// document is written first; if it fails, the registry is untouched.
// If the registry save fails afterwards, the document is removed
// best-effort so the two artifacts do not diverge.
func (s *Service) Create(personas []string, topic string, promptedBy *string, contextPaths, keywords []string) (*registry.Record, error) {
	if len(personas) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 personas, got %d", registry.ErrInvalidInput, len(personas))
	}

	now := s.now()
	if topic == "" {
		topic = registry.DefaultTopic
	}

	rec := registry.Record{
		ID:         idPrefix + fmt.Sprintf("%d", now.Unix()),
		Date:       now.Format("2006-01-02"),
		Personas:   personas,
		Topic:      topic,
		PromptedBy: promptedBy,
		File:       s.uniqueFilename(personas, now),
		Status:     registry.StatusDraft,
		Context:    appendUnique(nil, contextPaths...),
		Keywords:   keywords,
	}
	rec.Normalize()

	docPath := filepath.Join(s.store.Dir(), rec.File)
	if err := s.docs.Write(docPath, &rec); err != nil {
		return nil, fmt.Errorf("write epistle document %s: %w", docPath, err)
	}

	records, err := s.store.Load()
	if err != nil {
		os.Remove(docPath)
		return nil, err
	}
	records = append(records, rec)
	if err := s.store.Save(records); err != nil {
		os.Remove(docPath)
		return nil, err
	}

	s.log.Info("epistle created",
		zap.String("id", rec.ID),
		zap.String("file", rec.File),
		zap.Strings("personas", rec.Personas))
	return &rec, nil
}

// uniqueFilename derives the document filename from a slug of the
// persona names and a second-granularity timestamp, then appends _1,
// _2, ... until the name is unused in the store directory. The loop
// terminates for any finite set of existing files and never hands out
// the same name twice within one invocation, since the chosen name is
// created on disk before the registry is touched.
func (s *Service) uniqueFilename(personas []string, now time.Time) string {
	slugs := make([]string, len(personas))
	for i, p := range personas {
		slugs[i] = strings.ReplaceAll(strings.ToLower(p), " ", "-")
	}
	base := strings.Join(slugs, "_") + "_" + now.Format("20060102T150405")

	name := base + ".md"
	for counter := 1; s.fileExists(name); counter++ {
		name = fmt.Sprintf("%s_%d.md", base, counter)
	}
	return name
}

func (s *Service) fileExists(name string) bool {
	_, err := os.Stat(filepath.Join(s.store.Dir(), name))
	return err == nil
}

// List returns records filtered by persona (case-insensitive exact
// match against any participant) and/or a date lower bound, sorted by
// date descending. The sort is stable, so records sharing a date keep
// their registry order.
func (s *Service) List(filterPersona, sinceDate string) ([]registry.Record, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	var out []registry.Record
	for _, rec := range records {
		if filterPersona != "" && !rec.HasPersona(filterPersona) {
			continue
		}
		// Fixed-width YYYY-MM-DD dates compare correctly as strings.
		if sinceDate != "" && rec.Date < sinceDate {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

// Show looks a record up by case-insensitive exact id match, then by
// case-insensitive prefix match on filename, in that order. It
// returns the record together with the path of its satellite
// document. If the registry entry exists but the document does not,
// the record and path are still returned alongside
// registry.ErrDocumentMissing.
func (s *Service) Show(identifier string) (*registry.Record, string, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, "", err
	}

	var found *registry.Record
	for i := range records {
		if strings.EqualFold(records[i].ID, identifier) {
			found = &records[i]
			break
		}
	}
	if found == nil {
		lower := strings.ToLower(identifier)
		for i := range records {
			if strings.HasPrefix(strings.ToLower(records[i].File), lower) {
				found = &records[i]
				break
			}
		}
	}
	if found == nil {
		return nil, "", fmt.Errorf("%w: %q", registry.ErrNotFound, identifier)
	}

	docPath := filepath.Join(s.store.Dir(), found.File)
	if _, err := os.Stat(docPath); err != nil {
		if os.IsNotExist(err) {
			return found, docPath, fmt.Errorf("%w: %s", registry.ErrDocumentMissing, docPath)
		}
		return found, docPath, fmt.Errorf("stat epistle document %s: %w", docPath, err)
	}
	return found, docPath, nil
}

// Search filters records by topic substring, persona names, and
// keywords. All provided filters combine with AND; empty filters are
// no-ops. Unlike List, results stay in registry order.
func (s *Service) Search(topicKeyword string, personas, keywords []string) ([]registry.Record, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	var out []registry.Record
	for _, rec := range records {
		if topicKeyword != "" &&
			!strings.Contains(strings.ToLower(rec.Topic), strings.ToLower(topicKeyword)) {
			continue
		}
		if len(personas) > 0 && !matchesAnyPersona(&rec, personas) {
			continue
		}
		if len(keywords) > 0 && !matchesAnyKeyword(&rec, keywords) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// AddContext appends the given context paths, minus ones already
// present, to the record matching identifier by exact
// case-insensitive id. There is no filename fallback here; context
// attachment is an id-addressed mutation.
func (s *Service) AddContext(identifier string, contextPaths []string) (*registry.Record, error) {
	records, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range records {
		if strings.EqualFold(records[i].ID, identifier) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", registry.ErrNotFound, identifier)
	}

	records[idx].Context = appendUnique(records[idx].Context, contextPaths...)
	if err := s.store.Save(records); err != nil {
		return nil, err
	}

	rec := records[idx]
	s.log.Info("context attached",
		zap.String("id", rec.ID),
		zap.Int("context_files", len(rec.Context)))
	return &rec, nil
}

func matchesAnyPersona(rec *registry.Record, names []string) bool {
	for _, name := range names {
		if rec.HasPersona(strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

func matchesAnyKeyword(rec *registry.Record, kws []string) bool {
	for _, kw := range kws {
		if rec.HasKeyword(strings.TrimSpace(kw)) {
			return true
		}
	}
	return false
}

// appendUnique appends each path not already in dst, preserving
// first-seen order. Matching is exact string equality.
func appendUnique(dst []string, paths ...string) []string {
	for _, p := range paths {
		seen := false
		for _, existing := range dst {
			if existing == p {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, p)
		}
	}
	return dst
}
