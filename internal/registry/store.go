package registry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// RegistryFilename is the fixed name of the backing file inside the
// store directory. The format is one JSON object per line, UTF-8, no
// surrounding array. Existing registries from other tooling must stay
// readable, so the name and format are not configurable.
const RegistryFilename = "registry.ndjson"

// Store maps the backing NDJSON file to an in-memory ordered record
// sequence and back. It holds no state between calls; every mutation
// by a caller is a full Load, modify, full Save.
type Store struct {
	dir string
	log *zap.Logger
}

// NewStore creates a Store rooted at dir, creating the directory if
// needed. The store location is explicit; there is no process-wide
// default path.
func NewStore(dir string, log *zap.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("registry: store directory required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("registry: init directory %s: %w", dir, err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the store directory, where satellite documents live
// alongside the registry file.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the location of the backing registry file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, RegistryFilename)
}

// Load reads every record from the backing file, preserving file
// order. A missing file is an empty registry, not an error. Blank
// lines are skipped. A line that fails to parse is skipped with a
// warning rather than aborting the load: one corrupt line must not
// make the rest of the registry unreachable.
func (s *Store) Load() ([]Record, error) {
	f, err := os.Open(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("registry: open %s: %w", s.Path(), err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			s.log.Warn("skipping malformed registry line",
				zap.String("path", s.Path()),
				zap.Int("line", lineno),
				zap.Error(err))
			continue
		}
		rec.Normalize()
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", s.Path(), err)
	}
	return records, nil
}

// Save overwrites the backing file with the given sequence, one JSON
// object per line. The write goes to a temp file in the same
// directory which is renamed over the target, so a failure partway
// leaves the previous registry intact and a concurrent reader never
// sees a half-written file.
func (s *Store) Save(records []Record) error {
	var buf bytes.Buffer
	for i := range records {
		records[i].Normalize()
		line, err := json.Marshal(&records[i])
		if err != nil {
			return fmt.Errorf("registry: encode record %s: %w", records[i].ID, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(s.dir, RegistryFilename+".tmp-*")
	if err != nil {
		return fmt.Errorf("registry: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("registry: write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("registry: close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("registry: atomic rename %s: %w", s.Path(), err)
	}
	s.log.Debug("registry saved",
		zap.String("path", s.Path()),
		zap.Int("records", len(records)))
	return nil
}
