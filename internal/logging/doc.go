// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to an in-memory ring buffer for the /api/logs tail and SSE
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",      // Global log level: debug, info, warn, error
//		Format: "text",      // Output format: text or json
//		Modules: map[string]string{
//			"roles":  "debug",  // Per-module overrides
//			"camera": "warn",
//		},
//	})
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("roles")
//	logger.Info("Resolved role", "role", role, "stream", name)
//
// # Viewing Logs
//
// When running as a systemd service or on a system with journald:
//
//	journalctl -t streamroles              # All streamroles logs
//	journalctl -t streamroles -f           # Follow live
//	journalctl -t streamroles MODULE=roles # Filter by module
//
// # Configuration
//
// Log levels can be set globally or per-module. Module-specific levels
// override the global level for that module only.
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	roles = "debug"
//	camera = "warn"
package logging
