package domain

import "errors"

var (
	// ErrDuplicateID is returned when adding a sound whose name is taken.
	ErrDuplicateID = errors.New("sound name already exists")
	// ErrNotFound is returned when operating on an unknown sound name.
	ErrNotFound = errors.New("sound not found")
	// ErrDeviceNotFound is returned when the reserved sink is not among
	// the host's output devices at play time.
	ErrDeviceNotFound = errors.New("output device not found")
	// ErrHotkeyConflict is returned when a combo is already bound to
	// another sound.
	ErrHotkeyConflict = errors.New("hotkey already assigned")
	// ErrHotkeysUnavailable is returned when the desktop session has no
	// global-hotkey capability.
	ErrHotkeysUnavailable = errors.New("global hotkeys unavailable in this session")
)

// SoundEntry binds a display name to an audio file and an optional global
// hotkey. Name is the unique key in the store. Hotkey holds the canonical
// combo string, or "" when unassigned.
type SoundEntry struct {
	Name   string
	Path   string
	Hotkey string
}
