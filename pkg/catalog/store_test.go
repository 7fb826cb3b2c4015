package catalog

import (
	"path/filepath"
	"testing"
)

func TestStoreReplacePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if got := len(s.Current().Menus); got == 0 {
		t.Fatal("missing file should fall back to default catalog")
	}

	next := Default()
	next.Menus = next.Menus[:3]
	if err := s.Replace(next); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if got := len(s.Current().Menus); got != 3 {
		t.Errorf("current catalog has %d menus, want 3", got)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(reloaded.Menus) != 3 {
		t.Errorf("persisted catalog has %d menus, want 3", len(reloaded.Menus))
	}
}

func TestStoreReplaceRejectsInvalid(t *testing.T) {
	s := NewStoreFrom(Default(), "")
	bad := Default()
	bad.Menus = nil
	if err := s.Replace(bad); err == nil {
		t.Fatal("expected validation error for empty menu list")
	}
	if got := len(s.Current().Menus); got == 0 {
		t.Error("failed replace must not swap the catalog")
	}
}
