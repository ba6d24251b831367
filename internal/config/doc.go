// Package config loads runtime settings for saintcloud from the environment.
//
// [LoadSettings] returns the concurrency bound, API rate limit, deadlines and
// retry policy used by the App Engine directory and the audit pipeline.
// Every value has a default; unset or invalid variables fall back to it.
package config
