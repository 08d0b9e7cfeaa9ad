package hotkeys

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"

	"soundboard/internal/domain"
)

// Registry installs OS-level global hotkeys through
// golang.design/x/hotkey. It keeps exactly one live binding per
// canonical combo string and pumps key-down events to the bound
// callback on a goroutine per binding.
type Registry struct {
	logger *slog.Logger

	mu       sync.Mutex
	bindings map[string]*binding
}

type binding struct {
	hk   *hotkey.Hotkey
	done chan struct{}
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:   logger,
		bindings: make(map[string]*binding),
	}
}

// Available reports whether this desktop session can host a global key
// hook at all. Decided once per process; when false, callers should
// install the no-op binder instead.
func (r *Registry) Available() bool {
	return sessionSupported()
}

// Bind registers combo with the OS and dispatches its key-down events
// to fn. A combo that already has a live binding is rejected.
func (r *Registry) Bind(combo string, fn func()) error {
	c, err := domain.ParseCombo(combo)
	if err != nil {
		return fmt.Errorf("parsing combo %q: %w", combo, err)
	}
	mods, key, err := translate(c)
	if err != nil {
		return err
	}

	canonical := c.String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bindings[canonical]; exists {
		return fmt.Errorf("combo %q: %w", canonical, domain.ErrHotkeyConflict)
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("registering %q: %w", canonical, err)
	}

	b := &binding{hk: hk, done: make(chan struct{})}
	r.bindings[canonical] = b
	go r.pump(b, canonical, fn)

	r.logger.Debug("hotkey bound", "combo", canonical)
	return nil
}

func (r *Registry) pump(b *binding, combo string, fn func()) {
	for {
		select {
		case <-b.done:
			return
		case _, ok := <-b.hk.Keydown():
			if !ok {
				return
			}
			r.logger.Debug("hotkey fired", "combo", combo)
			fn()
		}
	}
}

// Unbind removes the live binding for combo, if any.
func (r *Registry) Unbind(combo string) {
	r.mu.Lock()
	b, exists := r.bindings[combo]
	delete(r.bindings, combo)
	r.mu.Unlock()

	if exists {
		r.release(combo, b)
	}
}

// Rebuild clears every live binding and installs the given set. Binding
// failures are collected, not fatal: one bad combo must not take the
// rest of the board's hotkeys down.
func (r *Registry) Rebuild(bindings map[string]func()) error {
	r.clear()

	var errs []error
	for combo, fn := range bindings {
		if err := r.Bind(combo, fn); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close removes every binding and stops the event pumps.
func (r *Registry) Close() {
	r.clear()
}

func (r *Registry) clear() {
	r.mu.Lock()
	old := r.bindings
	r.bindings = make(map[string]*binding)
	r.mu.Unlock()

	for combo, b := range old {
		r.release(combo, b)
	}
}

func (r *Registry) release(combo string, b *binding) {
	close(b.done)
	if err := b.hk.Unregister(); err != nil {
		r.logger.Warn("unregistering hotkey", "combo", combo, "error", err)
	}
}
