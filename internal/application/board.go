package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"soundboard/internal/domain"
)

// Soundboard orchestrates the sound registry: every mutation goes
// through here, is persisted immediately, and is reflected in the live
// hotkey bindings. One mutex stands in for the single control thread;
// hotkey callbacks only ever see values captured at bind time.
type Soundboard struct {
	mu       sync.Mutex
	store    *SoundStore
	settings SettingsStore
	player   Player
	binder   HotkeyBinder
	notifier Notifier
	logger   *slog.Logger
}

func NewSoundboard(
	store *SoundStore,
	settings SettingsStore,
	player Player,
	binder HotkeyBinder,
	notifier Notifier,
	logger *slog.Logger,
) *Soundboard {
	return &Soundboard{
		store:    store,
		settings: settings,
		player:   player,
		binder:   binder,
		notifier: notifier,
		logger:   logger,
	}
}

// Restore loads the persisted entries and installs their hotkeys.
// Called once at startup before the control surface comes up.
func (b *Soundboard) Restore() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, err := b.settings.Load()
	if err != nil {
		return fmt.Errorf("loading saved sounds: %w", err)
	}
	b.store.Load(entries)
	b.rebindLocked()
	b.logger.Info("sounds restored", "count", b.store.Len())
	return nil
}

// Add registers a new sound under the given name; an empty name defaults
// to the file's base name.
func (b *Soundboard) Add(name, path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if name == "" {
		name = filepath.Base(path)
	}
	if err := b.store.Add(name, path); err != nil {
		return err
	}
	return b.persistLocked()
}

// Remove deletes a sound. Its hotkey binding is dropped before the entry
// disappears from the store.
func (b *Soundboard) Remove(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, exists := b.store.Get(name)
	if !exists {
		return fmt.Errorf("sound %q: %w", name, domain.ErrNotFound)
	}
	if entry.Hotkey != "" {
		b.binder.Unbind(entry.Hotkey)
	}
	if _, err := b.store.Remove(name); err != nil {
		return err
	}
	return b.persistLocked()
}

// SetHotkey assigns a combo to a sound. The combo is canonicalized
// first; a combo already assigned to another sound is rejected with
// domain.ErrHotkeyConflict rather than installing a second binding.
func (b *Soundboard) SetHotkey(name, combo string) error {
	if combo == "" {
		return b.ClearHotkey(name)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.binder.Available() {
		return domain.ErrHotkeysUnavailable
	}

	canonical, err := domain.CanonicalCombo(combo)
	if err != nil {
		return fmt.Errorf("invalid hotkey: %w", err)
	}

	if _, exists := b.store.Get(name); !exists {
		return fmt.Errorf("sound %q: %w", name, domain.ErrNotFound)
	}
	for _, e := range b.store.Snapshot() {
		if e.Name != name && e.Hotkey == canonical {
			return fmt.Errorf("combo %q already bound to %q: %w", canonical, e.Name, domain.ErrHotkeyConflict)
		}
	}

	if _, err := b.store.SetHotkey(name, canonical); err != nil {
		return err
	}
	if err := b.persistLocked(); err != nil {
		return err
	}
	b.rebindLocked()
	return nil
}

// ClearHotkey removes a sound's combo and its live binding.
func (b *Soundboard) ClearHotkey(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, err := b.store.SetHotkey(name, "")
	if err != nil {
		return err
	}
	if prev != "" {
		b.binder.Unbind(prev)
	}
	return b.persistLocked()
}

// Play starts playback of a named sound, preempting anything currently
// audible.
func (b *Soundboard) Play(name string) error {
	b.mu.Lock()
	entry, exists := b.store.Get(name)
	b.mu.Unlock()

	if !exists {
		return fmt.Errorf("sound %q: %w", name, domain.ErrNotFound)
	}
	return b.player.Play(entry.Path)
}

// Stop halts the active stream, if any.
func (b *Soundboard) Stop() {
	b.player.Stop()
}

// Sounds returns a snapshot of all entries in store order.
func (b *Soundboard) Sounds() []domain.SoundEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.Snapshot()
}

// HotkeysAvailable reports whether hotkey assignment works in this
// session, so the control surface can disable the affordance.
func (b *Soundboard) HotkeysAvailable() bool {
	return b.binder.Available()
}

// Close tears down the hook and silences playback.
func (b *Soundboard) Close() {
	b.binder.Close()
	b.player.Stop()
}

func (b *Soundboard) persistLocked() error {
	if err := b.settings.Save(b.store.Snapshot()); err != nil {
		return fmt.Errorf("saving sounds: %w", err)
	}
	return nil
}

// rebindLocked reinstalls every binding from scratch. A full rebuild is
// deliberate: the combo→sound relation can change arbitrarily between
// calls and rebuilding keeps the live set equal to the assigned set.
func (b *Soundboard) rebindLocked() {
	bindings := make(map[string]func())
	for _, e := range b.store.Snapshot() {
		if e.Hotkey == "" {
			continue
		}
		name, path := e.Name, e.Path
		bindings[e.Hotkey] = func() { b.trigger(name, path) }
	}
	if err := b.binder.Rebuild(bindings); err != nil {
		b.logger.Error("rebuilding hotkeys", "error", err)
	}
}

// trigger runs on the hook-delivery goroutine. Decoding can block on
// file size, so playback moves to its own goroutine and failures are
// reported through the notifier instead of the hook context.
func (b *Soundboard) trigger(name, path string) {
	go func() {
		if err := b.player.Play(path); err != nil {
			b.logger.Error("playing sound", "sound", name, "error", err)
			msg := fmt.Sprintf("Cannot play %s: %s", name, err)
			if nerr := b.notifier.Notify(context.Background(), msg); nerr != nil {
				b.logger.Error("notifying playback error", "error", nerr)
			}
		}
	}()
}
