package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearSettingsEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		EnvConcurrency, EnvRateLimit, EnvRateBurst,
		EnvTimeoutFetch, EnvTimeoutDelete,
		EnvRetryMaxAttempts, EnvRetryInitialDelay,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	clearSettingsEnvVars(t)

	s := LoadSettings()

	assert.Equal(t, 16, s.Concurrency)
	assert.InDelta(t, 10.0, s.RateLimit, 0)
	assert.Equal(t, 20, s.RateBurst)
	assert.Equal(t, 5*time.Minute, s.FetchTimeout)
	assert.Equal(t, 10*time.Minute, s.DeleteTimeout)
	assert.Equal(t, 5, s.RetryMaxAttempts)
	assert.Equal(t, time.Second, s.RetryInitialDelay)
}

func TestLoadSettings_EnvVars(t *testing.T) {
	clearSettingsEnvVars(t)
	t.Setenv(EnvConcurrency, "4")
	t.Setenv(EnvRateLimit, "2.5")
	t.Setenv(EnvRateBurst, "5")
	t.Setenv(EnvTimeoutFetch, "90s")
	t.Setenv(EnvTimeoutDelete, "2m")
	t.Setenv(EnvRetryMaxAttempts, "0")
	t.Setenv(EnvRetryInitialDelay, "250ms")

	s := LoadSettings()

	assert.Equal(t, 4, s.Concurrency)
	assert.InDelta(t, 2.5, s.RateLimit, 0)
	assert.Equal(t, 5, s.RateBurst)
	assert.Equal(t, 90*time.Second, s.FetchTimeout)
	assert.Equal(t, 2*time.Minute, s.DeleteTimeout)
	assert.Equal(t, 0, s.RetryMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, s.RetryInitialDelay)
}

func TestLoadSettings_InvalidValuesFallBack(t *testing.T) {
	clearSettingsEnvVars(t)
	t.Setenv(EnvConcurrency, "0")
	t.Setenv(EnvRateLimit, "-1")
	t.Setenv(EnvRateBurst, "lots")
	t.Setenv(EnvTimeoutFetch, "soon")
	t.Setenv(EnvTimeoutDelete, "-5m")
	t.Setenv(EnvRetryMaxAttempts, "-3")
	t.Setenv(EnvRetryInitialDelay, "")

	s := LoadSettings()

	assert.Equal(t, 16, s.Concurrency)
	assert.InDelta(t, 10.0, s.RateLimit, 0)
	assert.Equal(t, 20, s.RateBurst)
	assert.Equal(t, 5*time.Minute, s.FetchTimeout)
	assert.Equal(t, 10*time.Minute, s.DeleteTimeout)
	assert.Equal(t, 5, s.RetryMaxAttempts)
	assert.Equal(t, time.Second, s.RetryInitialDelay)
}
