package application

import "soundboard/internal/domain"

// SettingsStore durably persists the sound registry. Save rewrites the
// whole set from the in-memory order; it is never called concurrently
// (the board serializes all mutation). Load drops records whose file no
// longer exists on disk.
type SettingsStore interface {
	Load() ([]domain.SoundEntry, error)
	Save(entries []domain.SoundEntry) error
}
