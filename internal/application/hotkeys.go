package application

// HotkeyBinder maps canonical combo strings to callbacks through an
// OS-level global key hook. At most one live binding exists per combo.
type HotkeyBinder interface {
	// Available reports whether the current desktop session can host
	// global hotkeys at all. When false, Bind and Rebuild are no-ops.
	Available() bool
	Bind(combo string, fn func()) error
	Unbind(combo string)
	// Rebuild clears every live binding and installs the given set.
	Rebuild(bindings map[string]func()) error
	Close()
}

// NoopBinder is the null provider selected at startup when the session
// has no global-hotkey capability (e.g. Wayland). Entries keep their
// persisted combos, but no OS hook is ever installed.
type NoopBinder struct{}

func (NoopBinder) Available() bool                 { return false }
func (NoopBinder) Bind(string, func()) error       { return nil }
func (NoopBinder) Unbind(string)                   {}
func (NoopBinder) Rebuild(map[string]func()) error { return nil }
func (NoopBinder) Close()                          {}
