package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BytesPerLine != 16 {
		t.Errorf("BytesPerLine = %d, want 16", cfg.BytesPerLine)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
bytes_per_line = 8
log_level = "debug"

[theme]
cursor = "#ff0000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BytesPerLine != 8 {
		t.Errorf("BytesPerLine = %d, want 8", cfg.BytesPerLine)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Theme.Cursor != "#ff0000" {
		t.Errorf("Theme.Cursor = %q, want #ff0000", cfg.Theme.Cursor)
	}
	// Untouched keys keep their defaults.
	if cfg.Theme.Background != Default().Theme.Background {
		t.Errorf("Theme.Background = %q, want default", cfg.Theme.Background)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero width", "bytes_per_line = 0"},
		{"negative history", "history_limit = -1"},
		{"bad level", `log_level = "loud"`},
		{"bad toml", "bytes_per_line = ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load accepted invalid config")
			}
		})
	}
}

func TestStatePath(t *testing.T) {
	cfg := Default()
	cfg.State.Path = "/tmp/hexad-state.json"
	if got := cfg.StatePath(); got != "/tmp/hexad-state.json" {
		t.Errorf("StatePath = %q", got)
	}
	cfg.State.Enabled = false
	if got := cfg.StatePath(); got != "" {
		t.Errorf("disabled StatePath = %q, want empty", got)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("bytes_per_line = 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, func(cfg Config, err error) {
		if err != nil {
			t.Errorf("reload error: %v", err)
			return
		}
		select {
		case reloaded <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("bytes_per_line = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.BytesPerLine != 4 {
			t.Errorf("reloaded BytesPerLine = %d, want 4", cfg.BytesPerLine)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config write")
	}
}
