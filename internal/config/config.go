// Package config loads the bgg-shelf configuration: a TOML file for
// pipeline settings and .env-style environment variables for credentials.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "bgg-shelf.toml"

// Config represents the application configuration.
type Config struct {
	User    UserConfig    `toml:"user"`
	Request RequestConfig `toml:"request"`
	Data    DataConfig    `toml:"data"`
}

// UserConfig identifies whose shelf is being analyzed.
type UserConfig struct {
	Name string `toml:"name"`

	// Exclude lists game ids dropped from the pipeline (e.g. legacy games
	// whose polls no longer apply).
	Exclude []int `toml:"exclude"`

	// NameMapping renames duplicate editions in the play log to their
	// canonical collection name.
	NameMapping map[string]string `toml:"name_mapping"`
}

// RequestConfig tunes the catalog client.
type RequestConfig struct {
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	Retries           int     `toml:"retries"`
	RetryDelaySeconds int     `toml:"retry_delay_seconds"`
	BatchRetries      int     `toml:"batch_retries"`
	BatchBackoff      float64 `toml:"batch_backoff"`
	BatchSize         int     `toml:"batch_size"`
	Workers           int     `toml:"workers"`
}

// Timeout returns the request timeout as a duration.
func (r RequestConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// RetryDelay returns the base retry delay as a duration.
func (r RequestConfig) RetryDelay() time.Duration {
	return time.Duration(r.RetryDelaySeconds) * time.Second
}

// DataConfig locates the persisted artifacts.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// SuggestedPlayersPath is where the aggregated table is written.
func (d DataConfig) SuggestedPlayersPath() string {
	return filepath.Join(d.Dir, "suggested_players.json")
}

// MetricsPath is where the metrics summary is written.
func (d DataConfig) MetricsPath() string {
	return filepath.Join(d.Dir, "metrics.json")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		User: UserConfig{
			NameMapping: map[string]string{},
		},
		Request: RequestConfig{
			TimeoutSeconds:    15,
			Retries:           3,
			RetryDelaySeconds: 5,
			BatchRetries:      10,
			BatchBackoff:      2,
			BatchSize:         20,
			Workers:           8,
		},
		Data: DataConfig{
			Dir: "data",
		},
	}
}

// Load loads the configuration from the default path. Environment variables
// from a .env file in the working directory are loaded as a side effect, so
// credentials are available before the client is built.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFromPath(DefaultFileName)
}

// LoadFromPath loads the configuration from the specified path. A missing
// file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	if cfg.User.NameMapping == nil {
		cfg.User.NameMapping = map[string]string{}
	}
	return cfg, nil
}

// SaveToPath saves the configuration to the specified path.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
