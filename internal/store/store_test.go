package store

import (
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemory()

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set("slots", `{"Tacoma":0}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get("slots")
	if err != nil || !ok || v != `{"Tacoma":0}` {
		t.Fatalf("Get(slots) = %q ok=%v err=%v", v, ok, err)
	}

	// Whole-value overwrite.
	if err := s.Set("slots", `{"Tacoma":0,"Wenatchee":1}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, _, _ = s.Get("slots")
	if v != `{"Tacoma":0,"Wenatchee":1}` {
		t.Errorf("overwrite lost: got %q", v)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ferry-clock.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set("k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("k", "v2"); err != nil {
		t.Fatalf("Set upsert: %v", err)
	}

	v, ok, err := s.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get(k) = %q ok=%v err=%v, want v2", v, ok, err)
	}

	// Reopen and confirm durability.
	s.Close()
	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	v, ok, err = s2.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("after reopen Get(k) = %q ok=%v err=%v, want v2", v, ok, err)
	}
}
