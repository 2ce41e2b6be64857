package tui

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPositions(t *testing.T) {
	options := []string{"Coding", "Sports", "Reading"}

	if diff := cmp.Diff([]int{0, 2}, positions(options, "Reading", "Coding")); diff != "" {
		t.Fatalf("positions mismatch (-want +got):\n%s", diff)
	}
	if got := positions(options, "Knitting"); got != nil {
		t.Fatalf("expected no positions, got %v", got)
	}
}

func TestSurveyDriver_InfoWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	driver := NewSurveyDriver(&buf)

	if err := driver.Info(context.Background(), "age: age is required"); err != nil {
		t.Fatalf("info: %v", err)
	}
	if got := buf.String(); got != "age: age is required\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestSurveyDriver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := NewSurveyDriver(nil)
	if _, err := driver.Input(ctx, InputConfig{Message: "First Name"}); err == nil {
		t.Fatalf("expected context error")
	}
}
