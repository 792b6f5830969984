package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "TINYRENDER_CONFIG"

// localNames are looked up, in order, in the working directory.
var localNames = []string{"tinyrender.yaml", "tinyrender.yml"}

// Load builds the configuration from defaults, then the config file, then
// command-line flags, and validates the result.
//
// The file is the -config flag if set, else $TINYRENDER_CONFIG, else the
// first of ./tinyrender.yaml, ./tinyrender.yml and UserConfigPath() that
// exists. An explicit path that cannot be read is an error; a missing
// discovered file is not.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	candidates := append([]string{}, localNames...)
	if p := UserConfigPath(); p != "" {
		candidates = append(candidates, p)
	}
	for _, path := range candidates {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns tinyrender's directory under the user configuration
// root (os.UserConfigDir), falling back to ~/.config/tinyrender. It returns
// "" when neither root can be determined.
func ConfigDir() string {
	root, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return ""
		}
		root = filepath.Join(home, ".config")
	}
	return filepath.Join(root, "tinyrender")
}

// UserConfigPath is the per-user config file written by Save.
func UserConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// loadFromFile decodes a YAML file over cfg. Keys absent from the file keep
// their current values; unknown keys are rejected.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}
