package state

import (
	"os"
	"path/filepath"
	"testing"
)

func testFile(t *testing.T) *File {
	t.Helper()
	return NewFile(filepath.Join(t.TempDir(), "state.yaml"))
}

func TestActiveSessionIDMissingFile(t *testing.T) {
	f := testFile(t)

	id, err := f.ActiveSessionID()
	if err != nil {
		t.Fatalf("ActiveSessionID() error = %v", err)
	}
	if id != "" {
		t.Errorf("missing file returned %q, want empty", id)
	}
}

func TestSetAndGetRoundtrip(t *testing.T) {
	f := testFile(t)

	if err := f.SetActiveSessionID("session-123"); err != nil {
		t.Fatalf("SetActiveSessionID() error = %v", err)
	}

	id, err := f.ActiveSessionID()
	if err != nil {
		t.Fatalf("ActiveSessionID() error = %v", err)
	}
	if id != "session-123" {
		t.Errorf("got %q, want \"session-123\"", id)
	}
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	if err := NewFile(path).SetActiveSessionID("session-123"); err != nil {
		t.Fatalf("SetActiveSessionID() error = %v", err)
	}

	id, err := NewFile(path).ActiveSessionID()
	if err != nil {
		t.Fatalf("ActiveSessionID() error = %v", err)
	}
	if id != "session-123" {
		t.Errorf("pointer did not survive reopen: %q", id)
	}
}

func TestClear(t *testing.T) {
	f := testFile(t)

	if err := f.SetActiveSessionID("session-123"); err != nil {
		t.Fatalf("SetActiveSessionID() error = %v", err)
	}
	if err := f.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	id, err := f.ActiveSessionID()
	if err != nil {
		t.Fatalf("ActiveSessionID() error = %v", err)
	}
	if id != "" {
		t.Errorf("got %q after Clear, want empty", id)
	}
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := os.WriteFile(path, []byte("\tnot: [valid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFile(path).ActiveSessionID(); err == nil {
		t.Error("corrupt file should return an error")
	}
}
