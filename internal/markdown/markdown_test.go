package markdown

import (
	"strings"
	"testing"
)

func TestRender_EmptyInput(t *testing.T) {
	if got := Render(80, ""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
	if got := Render(80, "  \n\n "); got != "" {
		t.Errorf("expected empty output for whitespace, got %q", got)
	}
}

func TestRender_PlainText(t *testing.T) {
	got := Render(80, "whole milk, not skim")
	if !strings.Contains(got, "whole milk, not skim") {
		t.Errorf("expected text to survive rendering, got %q", got)
	}
}

func TestRender_ListItems(t *testing.T) {
	got := Render(80, "- one\n- two")
	if !strings.Contains(got, "one") || !strings.Contains(got, "two") {
		t.Errorf("expected list items in output, got %q", got)
	}
}

func TestRender_NoTrailingNewlines(t *testing.T) {
	got := Render(80, "note\n\n\n")
	if strings.HasSuffix(got, "\n") {
		t.Errorf("expected trailing newlines trimmed, got %q", got)
	}
}
