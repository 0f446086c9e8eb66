package storage

import (
	"path/filepath"
	"testing"
)

func TestSaveAndClaimFile(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "nested", "slot.json")

	if err := s.SaveFile(path, []byte("payload")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if !s.HasFile(path) {
		t.Fatal("HasFile() = false after SaveFile()")
	}

	data, ok, err := s.ClaimFile(path)
	if err != nil || !ok {
		t.Fatalf("ClaimFile() ok = %v, err = %v", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("ClaimFile() = %q, want payload", data)
	}
	if s.HasFile(path) {
		t.Error("file still present after ClaimFile()")
	}

	if _, ok, err := s.ClaimFile(path); ok || err != nil {
		t.Errorf("second ClaimFile() = ok %v, err %v; want false, nil", ok, err)
	}
}

func TestHasFile_Missing(t *testing.T) {
	s := &Storage{}
	if s.HasFile(filepath.Join(t.TempDir(), "missing")) {
		t.Error("HasFile() = true for a missing file")
	}
}
