package domain

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"new", "in-progress", "completed", "archived"} {
		got, err := ParseStatus(s)
		if err != nil {
			t.Fatalf("ParseStatus(%q) unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Fatalf("ParseStatus(%q) = %q", s, got)
		}
	}

	for _, s := range []string{"", "bogus", "New", "in_progress", " new"} {
		if _, err := ParseStatus(s); !errors.Is(err, ErrUnknownStatus) {
			t.Fatalf("ParseStatus(%q) expected ErrUnknownStatus, got %v", s, err)
		}
	}
}

func TestStatusList(t *testing.T) {
	if got := StatusList(); got != "new, in-progress, completed, archived" {
		t.Fatalf("unexpected status list %q", got)
	}
}
