package application

import (
	"fmt"

	"soundboard/internal/domain"
)

// SoundStore is the in-memory registry of sound entries and the single
// source of truth for the control surface and the hotkey layer. It is a
// plain ordered data structure: the board serializes all mutation on one
// control path and persists after every change, and hotkey callbacks
// never touch it directly.
type SoundStore struct {
	order  []string
	byName map[string]domain.SoundEntry
}

func NewSoundStore() *SoundStore {
	return &SoundStore{byName: make(map[string]domain.SoundEntry)}
}

// Add inserts a new entry with no hotkey assigned.
func (s *SoundStore) Add(name, path string) error {
	if _, exists := s.byName[name]; exists {
		return fmt.Errorf("sound %q: %w", name, domain.ErrDuplicateID)
	}
	s.byName[name] = domain.SoundEntry{Name: name, Path: path}
	s.order = append(s.order, name)
	return nil
}

// Remove deletes an entry and returns it, so the caller can drop any
// live hotkey binding it still holds.
func (s *SoundStore) Remove(name string) (domain.SoundEntry, error) {
	entry, exists := s.byName[name]
	if !exists {
		return domain.SoundEntry{}, fmt.Errorf("sound %q: %w", name, domain.ErrNotFound)
	}
	delete(s.byName, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return entry, nil
}

// SetHotkey overwrites the entry's combo ("" clears it) and returns the
// previous combo.
func (s *SoundStore) SetHotkey(name, combo string) (string, error) {
	entry, exists := s.byName[name]
	if !exists {
		return "", fmt.Errorf("sound %q: %w", name, domain.ErrNotFound)
	}
	prev := entry.Hotkey
	entry.Hotkey = combo
	s.byName[name] = entry
	return prev, nil
}

// Get looks up a single entry.
func (s *SoundStore) Get(name string) (domain.SoundEntry, bool) {
	entry, exists := s.byName[name]
	return entry, exists
}

// Load replaces the store's contents, preserving the given order.
func (s *SoundStore) Load(entries []domain.SoundEntry) {
	s.order = s.order[:0]
	s.byName = make(map[string]domain.SoundEntry, len(entries))
	for _, e := range entries {
		if _, exists := s.byName[e.Name]; exists {
			continue
		}
		s.byName[e.Name] = e
		s.order = append(s.order, e.Name)
	}
}

// Snapshot returns a copy of all entries in store order.
func (s *SoundStore) Snapshot() []domain.SoundEntry {
	entries := make([]domain.SoundEntry, 0, len(s.order))
	for _, name := range s.order {
		entries = append(entries, s.byName[name])
	}
	return entries
}

func (s *SoundStore) Len() int {
	return len(s.order)
}
