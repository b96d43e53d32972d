package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir == "" || cfg.DBPath == "" {
		t.Errorf("defaults not filled: %+v", cfg)
	}
	if cfg.Theme != "" {
		t.Errorf("Theme default = %q, want empty", cfg.Theme)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "data_dir: /tmp/sb\ndb_path: /tmp/sb/custom.db\ntheme: gruvbox\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/sb" || cfg.DBPath != "/tmp/sb/custom.db" || cfg.Theme != "gruvbox" {
		t.Errorf("Load = %+v", cfg)
	}
}

func TestLoadPartialFileFillsDBPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: /tmp/sb\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != filepath.Join("/tmp/sb", "shiftbook.db") {
		t.Errorf("DBPath = %q, want derived from data_dir", cfg.DBPath)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [unclosed\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
