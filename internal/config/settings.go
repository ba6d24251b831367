package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names read by LoadSettings and the CLI.
const (
	EnvProjectID = "GCLOUD_PROJECT_ID"
	EnvKeyFile   = "GCLOUD_KEY_FILE"

	EnvConcurrency       = "SAINTCLOUD_CONCURRENCY"
	EnvRateLimit         = "SAINTCLOUD_RATE_LIMIT"
	EnvRateBurst         = "SAINTCLOUD_RATE_BURST"
	EnvTimeoutFetch      = "SAINTCLOUD_TIMEOUT_FETCH"
	EnvTimeoutDelete     = "SAINTCLOUD_TIMEOUT_DELETE"
	EnvRetryMaxAttempts  = "SAINTCLOUD_RETRY_MAX_ATTEMPTS"
	EnvRetryInitialDelay = "SAINTCLOUD_RETRY_INITIAL_DELAY"
)

// Settings holds the tunables for talking to the Google APIs.
// These values can be customized via environment variables.
type Settings struct {
	Concurrency       int           // Maximum in-flight requests per aggregation stage or deletion batch
	RateLimit         float64       // Sustained API requests per second across all calls
	RateBurst         int           // Token bucket burst size
	FetchTimeout      time.Duration // Deadline for the whole project/service/version/instance walk
	DeleteTimeout     time.Duration // Deadline for the whole deletion batch
	RetryMaxAttempts  int           // Maximum number of retries for transient API errors
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadSettings loads settings from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - SAINTCLOUD_CONCURRENCY (default: 16)
//   - SAINTCLOUD_RATE_LIMIT (default: 10)
//   - SAINTCLOUD_RATE_BURST (default: 20)
//   - SAINTCLOUD_TIMEOUT_FETCH (default: 5m)
//   - SAINTCLOUD_TIMEOUT_DELETE (default: 10m)
//   - SAINTCLOUD_RETRY_MAX_ATTEMPTS (default: 5)
//   - SAINTCLOUD_RETRY_INITIAL_DELAY (default: 1s)
func LoadSettings() *Settings {
	return &Settings{
		Concurrency:       parsePositiveInt(EnvConcurrency, 16),
		RateLimit:         parsePositiveFloat(EnvRateLimit, 10),
		RateBurst:         parsePositiveInt(EnvRateBurst, 20),
		FetchTimeout:      parseDuration(EnvTimeoutFetch, 5*time.Minute),
		DeleteTimeout:     parseDuration(EnvTimeoutDelete, 10*time.Minute),
		RetryMaxAttempts:  parseInt(EnvRetryMaxAttempts, 5),
		RetryInitialDelay: parseDuration(EnvRetryInitialDelay, 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}

func parsePositiveInt(envVar string, defaultVal int) int {
	if i := parseInt(envVar, defaultVal); i > 0 {
		return i
	}
	return defaultVal
}

func parsePositiveFloat(envVar string, defaultVal float64) float64 {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil || f <= 0 {
		return defaultVal
	}

	return f
}
