package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dori/shiftbook/internal/db"
	"gopkg.in/yaml.v3"
)

// Config holds the optional file-backed application configuration. Every
// field has a computed default; a missing config file is not an error.
type Config struct {
	DataDir string `yaml:"data_dir"`
	DBPath  string `yaml:"db_path"`
	Theme   string `yaml:"theme"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	dataDir := db.DefaultDataDir()
	return &Config{
		DataDir: dataDir,
		DBPath:  filepath.Join(dataDir, "shiftbook.db"),
	}
}

// DefaultPath returns the expected config file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "shiftbook", "config.yaml")
	}
	return filepath.Join(home, ".config", "shiftbook", "config.yaml")
}

// Load reads the config file at path, filling unset fields from defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

func (c *Config) normalize() {
	if c.DataDir == "" {
		c.DataDir = db.DefaultDataDir()
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "shiftbook.db")
	}
}
