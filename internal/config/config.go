// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// DefaultAlgorithm is the block cipher used when a descriptor request
	// does not name one.
	DefaultAlgorithm string
	// DefaultProvider is the crypto provider used when a descriptor request
	// does not name one. Empty selects the built-in provider.
	DefaultProvider string
	// DefaultKeySizeBits is the key size used when a descriptor request does
	// not set one.
	DefaultKeySizeBits int

	// KMSKeyURI is the URI for the key that protects descriptor master keys.
	// When empty, descriptors are written with the master key in the clear.
	KMSKeyURI string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Descriptor defaults
		DefaultAlgorithm:   env.GetString("DEFAULT_ALGORITHM", "AES"),
		DefaultProvider:    env.GetString("DEFAULT_PROVIDER", ""),
		DefaultKeySizeBits: env.GetInt("DEFAULT_KEY_SIZE_BITS", 256),

		// KMS configuration
		KMSKeyURI: env.GetString("KMS_KEY_URI", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "keyring"),
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
