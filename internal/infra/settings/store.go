package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"soundboard/internal/domain"
)

// Store persists the sound registry as a single YAML document holding
// the full ordered array under the "sounds" key. Save always rewrites
// the whole file; there is exactly one writer (the board's control
// path).
type Store struct {
	path   string
	logger *slog.Logger
}

func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

type record struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Key  string `yaml:"key,omitempty"`
}

type settingsFile struct {
	Sounds []record `yaml:"sounds"`
}

// Load reads the persisted entries in saved order. A record whose file
// no longer exists is dropped; that loses the entry on the next save,
// so the drop is logged rather than fully silent.
func (s *Store) Load() ([]domain.SoundEntry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	entries := make([]domain.SoundEntry, 0, len(file.Sounds))
	for _, r := range file.Sounds {
		if r.Path == "" {
			continue
		}
		if _, err := os.Stat(r.Path); err != nil {
			s.logger.Warn("dropping sound with missing file", "name", r.Name, "path", r.Path)
			continue
		}
		entries = append(entries, domain.SoundEntry{Name: r.Name, Path: r.Path, Hotkey: r.Key})
	}
	return entries, nil
}

// Save rewrites the full array atomically: marshal to a temp file in the
// same directory, then rename over the old one.
func (s *Store) Save(entries []domain.SoundEntry) error {
	file := settingsFile{Sounds: make([]record, 0, len(entries))}
	for _, e := range entries {
		file.Sounds = append(file.Sounds, record{Name: e.Name, Path: e.Path, Key: e.Hotkey})
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating settings dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing settings file: %w", err)
	}
	return nil
}
