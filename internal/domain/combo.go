package domain

import (
	"fmt"
	"strings"
)

// Canonical modifier order. A canonical combo lists its modifiers in this
// order, lowercased, followed by exactly one key token, joined with "+".
var modifierOrder = []string{"ctrl", "shift", "alt", "super"}

var modifierAliases = map[string]string{
	"ctrl":    "ctrl",
	"control": "ctrl",
	"shift":   "shift",
	"alt":     "alt",
	"option":  "alt",
	"super":   "super",
	"win":     "super",
	"cmd":     "super",
	"meta":    "super",
}

var keyAliases = map[string]string{
	"esc":    "escape",
	"return": "enter",
	"del":    "delete",
}

var namedKeys = map[string]bool{
	"space":  true,
	"enter":  true,
	"escape": true,
	"tab":    true,
	"delete": true,
	"up":     true,
	"down":   true,
	"left":   true,
	"right":  true,
}

// Combo is a canonicalized key combination. Two combos are equal exactly
// when their String() forms are equal; the hotkey registry keys its live
// bindings by that string.
type Combo struct {
	mods []string
	key  string
}

// ParseCombo canonicalizes a combo string such as "Ctrl+Shift+W". Token
// order and case are not significant in the input; the result is
// deterministic. The combo must contain exactly one non-modifier key.
func ParseCombo(s string) (Combo, error) {
	if strings.TrimSpace(s) == "" {
		return Combo{}, fmt.Errorf("empty combo")
	}

	seen := map[string]bool{}
	var key string

	for _, tok := range strings.Split(s, "+") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			return Combo{}, fmt.Errorf("empty token in combo %q", s)
		}

		if mod, ok := modifierAliases[tok]; ok {
			seen[mod] = true
			continue
		}

		tok = normalizeKey(tok)
		if !validKey(tok) {
			return Combo{}, fmt.Errorf("unknown key %q in combo %q", tok, s)
		}
		if key != "" {
			return Combo{}, fmt.Errorf("combo %q has more than one key", s)
		}
		key = tok
	}

	if key == "" {
		return Combo{}, fmt.Errorf("combo %q has no key", s)
	}

	var mods []string
	for _, m := range modifierOrder {
		if seen[m] {
			mods = append(mods, m)
		}
	}

	return Combo{mods: mods, key: key}, nil
}

// CanonicalCombo returns the canonical string form of a combo, or an
// error if it does not parse.
func CanonicalCombo(s string) (string, error) {
	c, err := ParseCombo(s)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func normalizeKey(tok string) string {
	if alias, ok := keyAliases[tok]; ok {
		return alias
	}
	return tok
}

func validKey(tok string) bool {
	if namedKeys[tok] {
		return true
	}
	if len(tok) == 1 {
		r := tok[0]
		return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
	}
	// function keys f1..f12
	if len(tok) >= 2 && tok[0] == 'f' {
		n := 0
		for _, r := range tok[1:] {
			if r < '0' || r > '9' {
				return false
			}
			n = n*10 + int(r-'0')
		}
		return n >= 1 && n <= 12
	}
	return false
}

// Modifiers returns the canonical modifier tokens in order.
func (c Combo) Modifiers() []string {
	return c.mods
}

// Key returns the terminal key token.
func (c Combo) Key() string {
	return c.key
}

func (c Combo) String() string {
	if c.key == "" {
		return ""
	}
	return strings.Join(append(append([]string{}, c.mods...), c.key), "+")
}
