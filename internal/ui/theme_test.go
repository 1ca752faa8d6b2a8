package ui

import (
	"testing"

	"github.com/five82/moodlog/internal/api"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	names[0] = "changed"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames() should return a copy")
	}
}

func TestNextTheme(t *testing.T) {
	tests := map[string]string{
		"Nightfox": "Kanagawa",
		"Kanagawa": "Slate",
		"Slate":    "Nightfox",
		"unknown":  "Nightfox",
	}
	for current, want := range tests {
		if got := NextTheme(current); got != want {
			t.Errorf("NextTheme(%q) = %q, want %q", current, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(slate) = %q, want Slate", got)
	}
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nope) = %q, want Nightfox", got)
	}
}

func TestThemesCoverEveryMood(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		styles := th.Styles()
		for _, mood := range api.Moods {
			if _, ok := th.MoodColors[mood]; !ok {
				t.Errorf("theme %s missing color for %q", name, mood)
			}
		}
		if got := styles.MoodColor("unknown"); got != th.Muted {
			t.Errorf("theme %s MoodColor(unknown) = %q, want muted %q", name, got, th.Muted)
		}
		if got := styles.MoodColor(" Happy "); got != th.MoodColors["happy"] {
			t.Errorf("theme %s MoodColor should normalize input", name)
		}
	}
}
