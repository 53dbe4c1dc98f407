package config

import (
	"os"
	"strconv"
	"time"
)

// withEnv applies environment overrides on top of whatever the file and
// defaults produced.
func (c *Config) withEnv() *Config {
	if v := os.Getenv("GENO_LISTEN"); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv("GENO_DATA_DIR"); v != "" {
		c.Server.DataDir = v
		c.Client.DataDir = v
	}
	if v := getEnvFloat("GENO_RATE_PER_SECOND"); v > 0 {
		c.Server.RatePerSecond = v
	}
	if v := getEnvInt("GENO_RATE_BURST"); v > 0 {
		c.Server.RateBurst = v
	}
	if v := os.Getenv("GENO_BACKEND_URL"); v != "" {
		c.Client.BackendURL = v
	}
	if v := os.Getenv("GENO_CATALOG_FILE"); v != "" {
		c.Client.CatalogFile = v
	}
	if v := os.Getenv("GENO_PLAYER_NAME"); v != "" {
		c.Client.PlayerName = v
	}
	if v := getEnvDuration("GENO_TICK_INTERVAL"); v > 0 {
		c.Client.TickInterval = v
	}
	if v := getEnvDuration("GENO_UPLOAD_INTERVAL"); v > 0 {
		c.Client.UploadInterval = v
	}
	if v := getEnvDuration("GENO_RESYNC_INTERVAL"); v > 0 {
		c.Client.ResyncInterval = v
	}
	if v := getEnvDuration("GENO_RECONNECT_DELAY"); v > 0 {
		c.Client.ReconnectDelay = v
	}
	return c
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}

func getEnvDuration(key string) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0
	}
	return d
}
