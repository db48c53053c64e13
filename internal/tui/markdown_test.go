package tui

import (
	"strings"
	"testing"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	if got := renderMarkdown("", 60); got != "" {
		t.Fatalf("expected empty output for empty input; got %q", got)
	}
	if got := renderMarkdown("  \n ", 60); got != "" {
		t.Fatalf("expected empty output for whitespace input; got %q", got)
	}
}

func TestRenderMarkdown_KeepsContent(t *testing.T) {
	out := renderMarkdown("Deadstock pair, **never worn**.", 60)
	if !strings.Contains(out, "never worn") {
		t.Fatalf("expected rendered text to keep the content; got %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("expected trailing newlines trimmed; got %q", out)
	}
}

func TestRenderMarkdown_TinyWidthStillRenders(t *testing.T) {
	// Widths below the floor are clamped, not rejected.
	out := renderMarkdown("just a line", 1)
	if out == "" {
		t.Fatal("expected non-empty output at tiny width")
	}
}
