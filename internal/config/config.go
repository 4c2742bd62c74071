package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIURL is the public OpenRouter models endpoint.
	DefaultAPIURL = "https://openrouter.ai/api/v1/models"
	// DefaultSnapshotPath is relative to the working directory.
	DefaultSnapshotPath = "models_snapshot.json"

	defaultFetchTimeout  = 30 * time.Second
	defaultNotifyTimeout = 10 * time.Second
)

// Duration parses YAML values like "30s" or "1h" into a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the watcher configuration. Values are resolved in
// order: built-in defaults, then the YAML config file, then
// environment variables.
type Config struct {
	APIURL        string   `yaml:"api_url"`
	SnapshotPath  string   `yaml:"snapshot_path"`
	WebhookURL    string   `yaml:"webhook_url"`
	FetchTimeout  Duration `yaml:"fetch_timeout"`
	NotifyTimeout Duration `yaml:"notify_timeout"`
	LogLevel      string   `yaml:"log_level"`
	LogFormat     string   `yaml:"log_format"`
	TestMode      bool     `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIURL:        DefaultAPIURL,
		SnapshotPath:  DefaultSnapshotPath,
		FetchTimeout:  Duration(defaultFetchTimeout),
		NotifyTimeout: Duration(defaultNotifyTimeout),
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// defaultPath returns the path to the config file in the home directory.
func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".orwatch.yaml"), nil
}

// Load resolves the configuration. An empty path means the default
// location, where a missing file is fine; a path given explicitly must
// exist. Environment variables are applied last.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := defaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DISCORD_WEBHOOK"); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv("TEST_DISCORD"); v != "" {
		c.TestMode = true
	}
}
