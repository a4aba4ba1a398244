package statefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

func TestOpenMissingFile(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := f.Offset("/tmp/a.bin"); ok {
		t.Error("fresh store reported an offset")
	}
}

func TestTouchAndOffset(t *testing.T) {
	f, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Touch("/tmp/a.bin", 128); err != nil {
		t.Fatalf("Touch: %v", err)
	}

	off, ok := f.Offset("/tmp/a.bin")
	if !ok || off != 128 {
		t.Errorf("Offset = %d, %v; want 128, true", off, ok)
	}

	if err := f.Touch("/tmp/a.bin", 64); err != nil {
		t.Fatal(err)
	}
	if off, _ := f.Offset("/tmp/a.bin"); off != 64 {
		t.Errorf("updated Offset = %d, want 64", off)
	}
}

func TestPathsWithDotsRoundTrip(t *testing.T) {
	f, _ := Open("")
	if err := f.Touch("/home/u/file.v1.bin", 7); err != nil {
		t.Fatal(err)
	}
	off, ok := f.Offset("/home/u/file.v1.bin")
	if !ok || off != 7 {
		t.Errorf("Offset = %d, %v; want 7, true", off, ok)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.json")

	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Touch("/tmp/a.bin", 42); err != nil {
		t.Fatal(err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	g, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	off, ok := g.Offset("/tmp/a.bin")
	if !ok || off != 42 {
		t.Errorf("reloaded Offset = %d, %v; want 42, true", off, ok)
	}
}

func TestUnknownKeysSurvive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	seed := `{"files":{},"future_setting":{"nested":true}}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Touch("/tmp/a.bin", 1); err != nil {
		t.Fatal(err)
	}
	if err := f.Save(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !gjson.GetBytes(data, "future_setting.nested").Bool() {
		t.Error("unknown key was dropped on rewrite")
	}
}

func TestRecentOrder(t *testing.T) {
	f, _ := Open("")
	for _, p := range []string{"/a", "/b", "/c"} {
		if err := f.Touch(p, 0); err != nil {
			t.Fatal(err)
		}
	}
	// /a becomes the most recent again.
	if err := f.Touch("/a", 0); err != nil {
		t.Fatal(err)
	}

	recent := f.Recent()
	if len(recent) != 3 || recent[0] != "/a" {
		t.Errorf("Recent = %v, want /a first of 3", recent)
	}
}

func TestCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := f.Offset("/x"); ok {
		t.Error("corrupt store reported an offset")
	}
}
