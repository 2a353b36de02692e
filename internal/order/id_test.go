package order

import (
	"regexp"
	"testing"
	"time"
)

func TestFormatID(t *testing.T) {
	at := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	if got := FormatID(at, "A1B2"); got != "251231-2359-A1B2" {
		t.Fatalf("unexpected id: %q", got)
	}
}

func TestGenerateIDShape(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}-\d{4}-[0-9A-Z]{4}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id := GenerateID(time.UTC)
		if !pattern.MatchString(id) {
			t.Fatalf("id %q does not match ticket format", id)
		}
		seen[id] = true
	}
	if len(seen) < 2 {
		t.Fatal("expected random suffixes to vary")
	}
}

func TestShortID(t *testing.T) {
	o := Order{ID: "251231-2359-A1B2"}
	if got := o.ShortID(); got != "A1B2" {
		t.Fatalf("unexpected short id: %q", got)
	}
}
