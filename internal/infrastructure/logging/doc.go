// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON on stderr, info level
//   - Development: colored console output, debug level
//
// Stdout is left to the startup banner and the console confirmation prompt.
// Per-request lines are emitted at debug level only.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Bridge listening", zap.String("url", base))
//	logger.Error("Install failed", zap.String("app_id", id), zap.Error(err))
package logging
