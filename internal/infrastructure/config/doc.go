// Package config provides 12-factor configuration management for the bridge.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables. Nothing is read from or
// written to disk, and the listen host is fixed to loopback.
//
// Configuration Sections:
//   - Server: preferred port (falls back to an ephemeral port)
//   - Flatpak: binary, remote name and remote URL
//   - Confirm: provider mode, dialog title, optional timeout
//   - Timeouts: command, probe and shutdown bounds
//   - Breaker: channel setup circuit breaker
//   - Logging: log level and output format
//   - RateLimit: per-client rate limiting
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Bridge on %s\n", cfg.Addr())
//
// Environment Variables:
//   - BRIDGE_PORT, FLATPAK_BIN, FLATPAK_REMOTE, FLATPAK_REMOTE_URL
//   - CONFIRM_MODE, CONFIRM_TITLE, CONFIRM_TIMEOUT
//   - COMMAND_TIMEOUT, PROBE_TIMEOUT, SHUTDOWN_TIMEOUT
//   - CHANNEL_BREAKER_THRESHOLD, CHANNEL_BREAKER_COOLDOWN
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
