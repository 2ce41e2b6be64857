package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
)

// ValidSnapshot returns a snapshot that satisfies every default rule.
func ValidSnapshot() model.Snapshot {
	return model.Snapshot{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		PhoneNumber:     "1234567890",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
		Age:             "30",
		Gender:          model.GenderFemale,
		Interests:       []model.Interest{model.InterestReading},
		BirthDate:       "1994-05-01",
	}
}

// MustLoadSnapshot loads a JSON fixture into a Snapshot.
func MustLoadSnapshot(t *testing.T, path string) model.Snapshot {
	t.Helper()

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	return snap
}

// LoadSnapshot reads a JSON fixture into a Snapshot, returning an error for
// callers managing setup outside of *testing.T.
func LoadSnapshot(path string) (model.Snapshot, error) {
	if path == "" {
		return model.Snapshot{}, errors.New("testsupport: snapshot path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("testsupport: read snapshot: %w", err)
	}
	var out model.Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return model.Snapshot{}, fmt.Errorf("testsupport: unmarshal snapshot: %w", err)
	}
	return out.Clone(), nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
