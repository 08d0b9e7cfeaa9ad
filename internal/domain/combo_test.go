package domain

import (
	"strings"
	"testing"
)

func TestParseCombo_Canonicalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ctrl+shift+w", "ctrl+shift+w"},
		{"Ctrl+Shift+W", "ctrl+shift+w"},
		{"shift+ctrl+w", "ctrl+shift+w"},
		{"Control+W", "ctrl+w"},
		{"win+space", "super+space"},
		{"cmd+alt+p", "alt+super+p"},
		{"option+Return", "alt+enter"},
		{"f5", "f5"},
		{"ctrl+F12", "ctrl+f12"},
		{" ctrl + x ", "ctrl+x"},
		{"Esc", "escape"},
	}

	for _, tt := range tests {
		c, err := ParseCombo(tt.in)
		if err != nil {
			t.Errorf("ParseCombo(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if c.String() != tt.want {
			t.Errorf("ParseCombo(%q) = %q, want %q", tt.in, c.String(), tt.want)
		}
	}
}

func TestParseCombo_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"ctrl+",
		"ctrl+shift",
		"ctrl+w+x",
		"ctrl+banana",
		"f13",
		"f0",
	} {
		if _, err := ParseCombo(in); err == nil {
			t.Errorf("ParseCombo(%q): expected error, got none", in)
		}
	}
}

func TestParseCombo_EqualityIsStringEquality(t *testing.T) {
	a, err := ParseCombo("Shift+Ctrl+W")
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	b, err := ParseCombo("ctrl+shift+w")
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if a.String() != b.String() {
		t.Errorf("canonical forms differ: %q vs %q", a.String(), b.String())
	}
}

func TestCombo_ModifiersAndKey(t *testing.T) {
	c, err := ParseCombo("super+ctrl+a")
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if got := strings.Join(c.Modifiers(), ","); got != "ctrl,super" {
		t.Errorf("modifiers: got %q, want %q", got, "ctrl,super")
	}
	if c.Key() != "a" {
		t.Errorf("key: got %q, want %q", c.Key(), "a")
	}
}
