// Package config loads application configuration from environment
// variables (CSAT_ prefix) layered over an optional config.yaml file.
// Environment values take precedence over file values, and both fall
// back to compiled-in defaults.
package config
