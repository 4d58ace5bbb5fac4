package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName     = "taskdeck"
	configFile  = "config.yaml"
	dataDirName = ".taskdeck"

	// EnvConfig overrides the config file location.
	EnvConfig = "TASKDECK_CONFIG"
	// EnvDir overrides the data directory.
	EnvDir = "TASKDECK_DIR"
	// EnvProfile overrides the active profile.
	EnvProfile = "TASKDECK_PROFILE"

	defaultProfile = "default"
)

// Profile is the user card shown by "deck profile".
type Profile struct {
	Name     string `yaml:"name,omitempty"     json:"name,omitempty"`
	Email    string `yaml:"email,omitempty"    json:"email,omitempty"`
	Phone    string `yaml:"phone,omitempty"    json:"phone,omitempty"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
	Bio      string `yaml:"bio,omitempty"      json:"bio,omitempty"`
	JoinDate string `yaml:"join_date,omitempty" json:"join_date,omitempty"`
}

// Config is the on-disk configuration file.
type Config struct {
	DataDir     string  `yaml:"data_dir,omitempty"`
	Profile     string  `yaml:"profile,omitempty"`
	ProfileInfo Profile `yaml:"profile_info,omitempty"`
}

// Overrides are values given on the command line. Empty fields are ignored.
type Overrides struct {
	DataDir string
	Profile string
}

// Settings are the effective values after applying precedence.
type Settings struct {
	DataDir string
	Profile string
}

// DefaultPath returns $TASKDECK_CONFIG or ~/.config/taskdeck/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFile), nil
}

// LoadEnv reads KEY=VALUE files into the environment without overriding
// variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the config file at path. A missing file yields an empty Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Resolve applies precedence: flag, then environment, then file, then default.
func (c *Config) Resolve(o Overrides) (Settings, error) {
	s := Settings{
		DataDir: firstNonEmpty(o.DataDir, os.Getenv(EnvDir), c.DataDir),
		Profile: firstNonEmpty(o.Profile, os.Getenv(EnvProfile), c.Profile, defaultProfile),
	}
	if s.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Settings{}, err
		}
		s.DataDir = filepath.Join(home, dataDirName)
	}
	return s, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
