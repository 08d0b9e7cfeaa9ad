package application_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"soundboard/internal/application"
	"soundboard/internal/domain"
)

type mockPlayer struct {
	mu      sync.Mutex
	plays   []string
	stops   int
	playErr error
	playCh  chan string
}

func (m *mockPlayer) Play(path string) error {
	m.mu.Lock()
	m.plays = append(m.plays, path)
	m.mu.Unlock()
	if m.playCh != nil {
		m.playCh <- path
	}
	return m.playErr
}

func (m *mockPlayer) Stop() {
	m.mu.Lock()
	m.stops++
	m.mu.Unlock()
}

func (m *mockPlayer) played() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.plays...)
}

type mockSettings struct {
	entries []domain.SoundEntry
	saves   int
	saveErr error
}

func (m *mockSettings) Load() ([]domain.SoundEntry, error) {
	return m.entries, nil
}

func (m *mockSettings) Save(entries []domain.SoundEntry) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.entries = append([]domain.SoundEntry{}, entries...)
	m.saves++
	return nil
}

type mockBinder struct {
	mu        sync.Mutex
	available bool
	bindings  map[string]func()
	unbinds   []string
	rebuilds  int
	closed    bool
}

func newMockBinder() *mockBinder {
	return &mockBinder{available: true, bindings: make(map[string]func())}
}

func (m *mockBinder) Available() bool { return m.available }

func (m *mockBinder) Bind(combo string, fn func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.bindings[combo]; exists {
		return domain.ErrHotkeyConflict
	}
	m.bindings[combo] = fn
	return nil
}

func (m *mockBinder) Unbind(combo string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bindings, combo)
	m.unbinds = append(m.unbinds, combo)
}

func (m *mockBinder) Rebuild(bindings map[string]func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rebuilds++
	m.bindings = make(map[string]func(), len(bindings))
	for combo, fn := range bindings {
		m.bindings[combo] = fn
	}
	return nil
}

func (m *mockBinder) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.bindings = make(map[string]func())
}

// fire simulates the OS hook delivering a key press for combo.
func (m *mockBinder) fire(combo string) bool {
	m.mu.Lock()
	fn, ok := m.bindings[combo]
	m.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}

type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	ch       chan string
}

func (m *mockNotifier) Notify(_ context.Context, message string) error {
	m.mu.Lock()
	m.messages = append(m.messages, message)
	m.mu.Unlock()
	if m.ch != nil {
		m.ch <- message
	}
	return nil
}

func newTestBoard(player *mockPlayer, settings *mockSettings, binder *mockBinder, notifier *mockNotifier) *application.Soundboard {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return application.NewSoundboard(
		application.NewSoundStore(), settings, player, binder, notifier, logger,
	)
}

func TestSoundboard_AddPersists(t *testing.T) {
	settings := &mockSettings{}
	board := newTestBoard(&mockPlayer{}, settings, newMockBinder(), &mockNotifier{})

	if err := board.Add("", "/sounds/clap.wav"); err != nil {
		t.Fatalf("adding: %v", err)
	}

	if settings.saves != 1 {
		t.Errorf("saves: got %d, want 1", settings.saves)
	}
	if len(settings.entries) != 1 || settings.entries[0].Name != "clap.wav" {
		t.Errorf("persisted entries: got %+v", settings.entries)
	}

	if err := board.Add("clap.wav", "/elsewhere/clap.wav"); !errors.Is(err, domain.ErrDuplicateID) {
		t.Errorf("duplicate add: got %v, want ErrDuplicateID", err)
	}
	if settings.saves != 1 {
		t.Errorf("failed add must not persist: saves = %d", settings.saves)
	}
}

func TestSoundboard_SetHotkeyBindsAndCanonicalizes(t *testing.T) {
	settings := &mockSettings{}
	binder := newMockBinder()
	player := &mockPlayer{playCh: make(chan string, 1)}
	board := newTestBoard(player, settings, binder, &mockNotifier{})

	if err := board.Add("clap.wav", "/sounds/clap.wav"); err != nil {
		t.Fatalf("adding: %v", err)
	}
	if err := board.SetHotkey("clap.wav", "Shift+Ctrl+W"); err != nil {
		t.Fatalf("assigning: %v", err)
	}

	if !binder.fire("ctrl+shift+w") {
		t.Fatal("canonical combo not bound")
	}
	select {
	case path := <-player.playCh:
		if path != "/sounds/clap.wav" {
			t.Errorf("played path: got %q", path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for playback")
	}

	entries := board.Sounds()
	if entries[0].Hotkey != "ctrl+shift+w" {
		t.Errorf("stored combo: got %q", entries[0].Hotkey)
	}
}

func TestSoundboard_ReassignRetargetsCombo(t *testing.T) {
	binder := newMockBinder()
	player := &mockPlayer{playCh: make(chan string, 1)}
	board := newTestBoard(player, &mockSettings{}, binder, &mockNotifier{})

	if err := board.Add("horn", "/sounds/horn.mp3"); err != nil {
		t.Fatalf("adding: %v", err)
	}
	if err := board.SetHotkey("horn", "ctrl+1"); err != nil {
		t.Fatalf("assigning: %v", err)
	}
	if err := board.SetHotkey("horn", "ctrl+2"); err != nil {
		t.Fatalf("reassigning: %v", err)
	}

	if binder.fire("ctrl+1") {
		t.Error("old combo still bound after reassignment")
	}
	if !binder.fire("ctrl+2") {
		t.Fatal("new combo not bound")
	}
	select {
	case <-player.playCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for playback")
	}
}

func TestSoundboard_DuplicateComboRejected(t *testing.T) {
	binder := newMockBinder()
	board := newTestBoard(&mockPlayer{}, &mockSettings{}, binder, &mockNotifier{})

	board.Add("a", "/a.wav")
	board.Add("b", "/b.wav")

	if err := board.SetHotkey("a", "ctrl+shift+w"); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	err := board.SetHotkey("b", "shift+ctrl+w")
	if !errors.Is(err, domain.ErrHotkeyConflict) {
		t.Fatalf("second assignment: got %v, want ErrHotkeyConflict", err)
	}

	for _, e := range board.Sounds() {
		if e.Name == "b" && e.Hotkey != "" {
			t.Errorf("rejected assignment mutated entry: %+v", e)
		}
	}
}

func TestSoundboard_RemoveDropsBinding(t *testing.T) {
	binder := newMockBinder()
	board := newTestBoard(&mockPlayer{}, &mockSettings{}, binder, &mockNotifier{})

	board.Add("clap.wav", "/sounds/clap.wav")
	if err := board.SetHotkey("clap.wav", "ctrl+shift+w"); err != nil {
		t.Fatalf("assigning: %v", err)
	}
	if err := board.Remove("clap.wav"); err != nil {
		t.Fatalf("removing: %v", err)
	}

	if binder.fire("ctrl+shift+w") {
		t.Error("combo still bound after delete")
	}
	if len(binder.unbinds) != 1 || binder.unbinds[0] != "ctrl+shift+w" {
		t.Errorf("unbinds: got %v", binder.unbinds)
	}
}

func TestSoundboard_HotkeysUnavailable(t *testing.T) {
	binder := newMockBinder()
	binder.available = false
	board := newTestBoard(&mockPlayer{}, &mockSettings{}, binder, &mockNotifier{})

	board.Add("clap.wav", "/sounds/clap.wav")
	err := board.SetHotkey("clap.wav", "ctrl+shift+w")
	if !errors.Is(err, domain.ErrHotkeysUnavailable) {
		t.Errorf("got %v, want ErrHotkeysUnavailable", err)
	}
	if board.HotkeysAvailable() {
		t.Error("HotkeysAvailable: got true")
	}
}

func TestSoundboard_TriggerFailureGoesToNotifier(t *testing.T) {
	binder := newMockBinder()
	player := &mockPlayer{playErr: domain.ErrDeviceNotFound}
	notifier := &mockNotifier{ch: make(chan string, 1)}
	board := newTestBoard(player, &mockSettings{}, binder, notifier)

	board.Add("clap.wav", "/sounds/clap.wav")
	if err := board.SetHotkey("clap.wav", "ctrl+shift+w"); err != nil {
		t.Fatalf("assigning: %v", err)
	}

	binder.fire("ctrl+shift+w")

	select {
	case msg := <-notifier.ch:
		if msg == "" {
			t.Error("empty notification")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for notification")
	}
}

func TestSoundboard_RestoreRebinds(t *testing.T) {
	settings := &mockSettings{entries: []domain.SoundEntry{
		{Name: "clap.wav", Path: "/sounds/clap.wav", Hotkey: "ctrl+shift+w"},
		{Name: "horn", Path: "/sounds/horn.mp3"},
	}}
	binder := newMockBinder()
	player := &mockPlayer{playCh: make(chan string, 1)}
	board := newTestBoard(player, settings, binder, &mockNotifier{})

	if err := board.Restore(); err != nil {
		t.Fatalf("restoring: %v", err)
	}
	if len(board.Sounds()) != 2 {
		t.Fatalf("sounds: got %d, want 2", len(board.Sounds()))
	}

	if !binder.fire("ctrl+shift+w") {
		t.Fatal("persisted combo not rebound")
	}
	select {
	case path := <-player.playCh:
		if path != "/sounds/clap.wav" {
			t.Errorf("played path: got %q", path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for playback")
	}
}

func TestSoundboard_PlayUnknown(t *testing.T) {
	board := newTestBoard(&mockPlayer{}, &mockSettings{}, newMockBinder(), &mockNotifier{})
	if err := board.Play("nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
