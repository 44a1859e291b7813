// Package config reads the analyzer's settings from the environment.
package config

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Environment variable names.
const (
	EnvLogLevel  = "SHAPE_MCP_LOG_LEVEL"
	EnvMinArea   = "SHAPE_MCP_MIN_AREA"
	EnvWorkers   = "SHAPE_MCP_WORKERS"
	EnvHistoryDB = "SHAPE_MCP_HISTORY_DB"
)

// HistoryOff disables run history when used as the database path.
const HistoryOff = "off"

// DefaultMinArea is the area threshold used when a request omits min_area.
const DefaultMinArea = 300.0

// Config holds the server settings. Load fills it from SHAPE_MCP_*
// environment variables.
type Config struct {
	// LogLevel "debug" enables debug logging to stderr.
	LogLevel string

	// MinArea is the default minimum object area, finite and >= 0.
	MinArea float64

	// Workers is the classification pool size, at least 1.
	Workers int

	// HistoryDB is the SQLite path, empty when history is disabled.
	HistoryDB string
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// HistoryEnabled reports whether runs can be persisted.
func (c *Config) HistoryEnabled() bool {
	return c.HistoryDB != ""
}

// Load reads the configuration from the environment. Values that fail to
// parse or are out of range fall back to their defaults.
func Load() *Config {
	return &Config{
		LogLevel:  getEnv(EnvLogLevel, ""),
		MinArea:   getFloat(EnvMinArea, DefaultMinArea),
		Workers:   getPositiveInt(EnvWorkers, runtime.NumCPU()),
		HistoryDB: historyPath(getEnv(EnvHistoryDB, defaultHistoryDB())),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return defaultVal
	}
	return v
}

func getPositiveInt(key string, defaultVal int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v < 1 {
		return defaultVal
	}
	return v
}

func historyPath(p string) string {
	if p == HistoryOff {
		return ""
	}
	return p
}

// defaultHistoryDB returns ~/.shape-analyzer/history.db, or "" when the home
// directory is unknown.
func defaultHistoryDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shape-analyzer", "history.db")
}
