//go:build linux

package hotkeys

import (
	"os"
	"strings"
)

// sessionSupported reports whether the desktop session can host the
// global key hook. X11 only: there is no way to install it under
// Wayland, so the capability is absent for the whole process lifetime.
func sessionSupported() bool {
	return strings.ToLower(os.Getenv("XDG_SESSION_TYPE")) == "x11"
}
