package layout

import (
	"strings"
	"testing"
)

func TestSanitizeTextKeepsInlineFormatting(t *testing.T) {
	got := sanitizeText(`  <strong>Email</strong><script>alert('x')</script> <a href="#">link</a>`)
	if strings.Contains(got, "script") || strings.Contains(got, "<a") {
		t.Fatalf("expected unsafe markup to be removed, got %q", got)
	}
	if !strings.Contains(got, "<strong>Email</strong>") {
		t.Fatalf("expected inline formatting to remain, got %q", got)
	}
}

func TestSanitizeIconMarkupRemovesScripts(t *testing.T) {
	got := sanitizeIconMarkup(`<svg viewBox="0 0 24 24"><script>alert('x')</script><path d="M0 0h24v24H0z" /></svg>`)
	if strings.Contains(got, "script") {
		t.Fatalf("expected script tag to be removed, got %q", got)
	}
	if !strings.Contains(got, "<svg") || !strings.Contains(got, "<path") {
		t.Fatalf("expected svg/path elements to remain, got %q", got)
	}
}
