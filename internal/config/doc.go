// Package config handles loading and validating application settings
// from environment variables and optional config files. It gives the
// rest of the application type-safe access to configuration while
// keeping the loading details in one place.
package config
