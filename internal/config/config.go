package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration for both binaries. YAML file
// first, environment overrides second, built-in defaults underneath.
type Config struct {
	Server ServerConfig `yaml:"server" json:"server"`
	Client ClientConfig `yaml:"client" json:"client"`
}

type ServerConfig struct {
	Listen            string        `yaml:"listen" json:"listen"`
	DataDir           string        `yaml:"data_dir" json:"data_dir"`
	RatePerSecond     float64       `yaml:"rate_per_second" json:"rate_per_second"`
	RateBurst         int           `yaml:"rate_burst" json:"rate_burst"`
	HeartbeatInterval time.Duration `yaml:"heartbeat_interval" json:"heartbeat_interval"`
	LeaderboardLimit  int           `yaml:"leaderboard_limit" json:"leaderboard_limit"`
}

type ClientConfig struct {
	BackendURL          string        `yaml:"backend_url" json:"backend_url"`
	DataDir             string        `yaml:"data_dir" json:"data_dir"`
	CatalogFile         string        `yaml:"catalog_file" json:"catalog_file"`
	PlayerName          string        `yaml:"player_name" json:"player_name"`
	TickInterval        time.Duration `yaml:"tick_interval" json:"tick_interval"`
	UploadInterval      time.Duration `yaml:"upload_interval" json:"upload_interval"`
	ResyncInterval      time.Duration `yaml:"resync_interval" json:"resync_interval"`
	LeaderboardInterval time.Duration `yaml:"leaderboard_interval" json:"leaderboard_interval"`
	PingInterval        time.Duration `yaml:"ping_interval" json:"ping_interval"`
	ReconnectDelay      time.Duration `yaml:"reconnect_delay" json:"reconnect_delay"`
}

// Default mirrors the reference behavior: once-per-second ticks, 5-second
// upload batches, 30-second leaderboard submits, fixed 5-second push
// reconnect.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:            ":8080",
			DataDir:           "data",
			RatePerSecond:     20,
			RateBurst:         40,
			HeartbeatInterval: 30 * time.Second,
			LeaderboardLimit:  100,
		},
		Client: ClientConfig{
			BackendURL:          "http://localhost:8080",
			DataDir:             "data",
			PlayerName:          "Anonymous",
			TickInterval:        time.Second,
			UploadInterval:      5 * time.Second,
			ResyncInterval:      30 * time.Second,
			LeaderboardInterval: 30 * time.Second,
			PingInterval:        5 * time.Minute,
			ReconnectDelay:      5 * time.Second,
		},
	}
}

// Load reads a YAML file over the defaults. A missing file is fine; a
// malformed one is not.
func Load(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.withEnv(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg.withEnv(), nil
}
