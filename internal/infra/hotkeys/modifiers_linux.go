//go:build linux

package hotkeys

import "golang.design/x/hotkey"

var modifierMap = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1, // Alt is Mod1 under X11
	"super": hotkey.Mod4, // Super is Mod4 under X11
}
