//go:build darwin

package hotkeys

func sessionSupported() bool {
	return true
}
