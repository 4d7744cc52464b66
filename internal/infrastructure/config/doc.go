// Package config loads and validates the portal's YAML configuration.
//
// Configuration is read from a single YAML file, merged over built-in
// defaults, and finally overridden by PORTAL_* environment variables.
// Validation rejects configurations that would run insecurely (missing or
// short JWT secret) or incoherently (access token outliving the refresh
// token).
package config
