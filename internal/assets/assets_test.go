package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "map0.height.gif"), []byte("height"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatalf("AddDir: %v", err)
	}

	data, err := m.Load("map0.height.gif")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(data) != "height" {
		t.Errorf("Load = %q", data)
	}
}

func TestAddDirErrors(t *testing.T) {
	m := NewManager()
	if err := m.AddDir("/nonexistent/resources"); err == nil {
		t.Error("expected error for missing dir")
	}

	file := filepath.Join(t.TempDir(), "plain.txt")
	os.WriteFile(file, nil, 0644)
	if err := m.AddDir(file); err == nil {
		t.Error("expected error for non-directory")
	}
}

func TestLaterRootsWin(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"a.gif": {Data: []byte("base")}, "b.gif": {Data: []byte("only-base")}})
	m.AddFS(fstest.MapFS{"a.gif": {Data: []byte("override")}})

	if data, _ := m.Load("a.gif"); string(data) != "override" {
		t.Errorf("a.gif = %q, want override", data)
	}
	if data, _ := m.Load("b.gif"); string(data) != "only-base" {
		t.Errorf("b.gif = %q, want only-base", data)
	}
}

func TestNotFound(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{})
	if _, err := m.Load("missing.gif"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load error = %v, want ErrNotFound", err)
	}
}

func TestCacheAndEvict(t *testing.T) {
	fsys := fstest.MapFS{"map1.color.gif": {Data: []byte("v1")}}
	m := NewManager()
	m.AddFS(fsys)

	m.Load("map1.color.gif")
	fsys["map1.color.gif"] = &fstest.MapFile{Data: []byte("v2")}

	if data, _ := m.Load("map1.color.gif"); string(data) != "v1" {
		t.Errorf("expected cached v1, got %q", data)
	}
	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses", hits, misses)
	}

	m.Evict("map1.color.gif")
	if data, _ := m.Load("map1.color.gif"); string(data) != "v2" {
		t.Errorf("expected v2 after Evict, got %q", data)
	}
}

func TestClose(t *testing.T) {
	m := NewManager()
	m.AddFS(fstest.MapFS{"x": {Data: []byte("x")}})
	m.Load("x")
	m.Close()
	if _, err := m.Load("x"); err == nil {
		t.Error("expected error after Close")
	}
}
