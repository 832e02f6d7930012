package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// GlobalConfig is the user-level config at ~/.twig/config.toml.
type GlobalConfig struct {
	// CurrentWorkspace names the default workspace for commands that do not
	// pass --workspace or --dir.
	CurrentWorkspace string `toml:"current_workspace"`

	// TUI holds optional appearance preferences.
	TUI TUIConfig `toml:"tui"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `toml:"glyphs"`
}

// ConfigDir resolves the global config directory.
// TWIG_CONFIG_DIR keeps unit tests from touching ~/.twig.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("TWIG_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, storeDirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadConfig reads the global config; a missing file yields the zero config.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg := &GlobalConfig{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the global config, creating the config dir if needed.
func SaveConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
