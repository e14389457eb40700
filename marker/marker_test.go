package marker

import (
	"strings"
	"testing"
)

func TestExtractNoMarker(t *testing.T) {
	texts := []string{
		"",
		"Just a plain response.",
		"Brackets [like this] are not markers.",
		"[TASK:youtube:missing close bracket",
		"[task:youtube:lowercase keyword]",
		"[TASK:youtube:]", // empty params never match
	}
	for _, text := range texts {
		if got := Extract(text); len(got) != 0 {
			t.Errorf("Extract(%q) = %v, want none", text, got)
		}
	}
}

func TestExtractSingleMarker(t *testing.T) {
	text := "I'll play that for you!\n[TASK:youtube:Shape of You Ed Sheeran]"
	markers := Extract(text)
	if len(markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(markers))
	}
	if markers[0].Type != "youtube" {
		t.Errorf("expected type 'youtube', got '%s'", markers[0].Type)
	}
	if markers[0].Params != "Shape of You Ed Sheeran" {
		t.Errorf("unexpected params: '%s'", markers[0].Params)
	}
}

func TestExtractMultipleMarkersInOrder(t *testing.T) {
	text := "[TASK:open:github.com] and [TASK:search:golang tutorials]"
	markers := Extract(text)
	if len(markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(markers))
	}
	if markers[0].Type != "open" || markers[1].Type != "search" {
		t.Errorf("markers out of order: %v", markers)
	}
}

func TestExtractGmailParams(t *testing.T) {
	text := "Composing now.\n[TASK:gmail:john@example.com|Meeting Tomorrow|Hi John,\n\nSee you then.]"
	markers := Extract(text)
	if len(markers) != 1 {
		t.Fatalf("expected 1 marker, got %d", len(markers))
	}
	if !strings.Contains(markers[0].Params, "|Meeting Tomorrow|") {
		t.Errorf("pipe-separated params not preserved: '%s'", markers[0].Params)
	}
}

func TestFirst(t *testing.T) {
	m, ok := First("[TASK:open:a.com] [TASK:open:b.com]")
	if !ok {
		t.Fatal("expected a marker")
	}
	if m.Params != "a.com" {
		t.Errorf("expected first marker, got params '%s'", m.Params)
	}

	if _, ok := First("no markers here"); ok {
		t.Error("expected no marker")
	}
}

func TestStripRemovesMarker(t *testing.T) {
	text := "Opening GitHub for you!\n[TASK:open:github.com]"
	got := Strip(text)
	want := "Opening GitHub for you!"
	if got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
}

func TestStripPlainTextOnlyTrims(t *testing.T) {
	text := "  no markers in here  "
	if got := Strip(text); got != strings.TrimSpace(text) {
		t.Errorf("Strip() = %q, want trimmed input", got)
	}
}

func TestStripLeavesMalformedUntouched(t *testing.T) {
	text := "[TASK:open:no closing bracket"
	if got := Strip(text); got != text {
		t.Errorf("Strip() = %q, want %q", got, text)
	}
}

func TestStripIdempotent(t *testing.T) {
	texts := []string{
		"Plain text.",
		"Response.\n[TASK:youtube:some song]",
		"[TASK:open:a.com] mid [TASK:search:q]",
		"   spaced   ",
	}
	for _, text := range texts {
		once := Strip(text)
		twice := Strip(once)
		if once != twice {
			t.Errorf("Strip not idempotent for %q: %q != %q", text, once, twice)
		}
	}
}
