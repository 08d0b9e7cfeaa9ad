package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Sink     SinkConfig     `yaml:"sink"`
	Settings SettingsConfig `yaml:"settings"`
	Control  ControlConfig  `yaml:"control"`
	Watch    WatchConfig    `yaml:"watch"`
	Log      LogConfig      `yaml:"log"`
}

type SinkConfig struct {
	// Name of the reserved virtual sink; also the substring matched
	// against device names at play time unless match overrides it.
	Name  string `yaml:"name"`
	Match string `yaml:"match"`
	// External marks the sink as provisioned outside this process, so
	// no pactl module is loaded or unloaded.
	External bool `yaml:"external"`
}

type SettingsConfig struct {
	Path string `yaml:"path"`
}

type ControlConfig struct {
	Addr      string `yaml:"addr"`
	AuthToken string `yaml:"auth_token"`
}

type WatchConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads the YAML config, expanding environment variables. A
// missing file is not an error: the daemon runs fine on defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := &Config{}
		cfg.setDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Sink.Name == "" {
		c.Sink.Name = "soundboard_internal"
	}
	if c.Sink.Match == "" {
		c.Sink.Match = c.Sink.Name
	}
	if c.Settings.Path == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.Settings.Path = filepath.Join(dir, "soundboard", "sounds.yaml")
		} else {
			c.Settings.Path = "sounds.yaml"
		}
	}
	if c.Control.Addr == "" {
		c.Control.Addr = "127.0.0.1:8765"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
