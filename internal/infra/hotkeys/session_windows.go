//go:build windows

package hotkeys

func sessionSupported() bool {
	return true
}
