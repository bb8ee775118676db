// Package config provides 12-factor configuration for termbridge.
//
// Configuration is loaded from environment variables with sensible
// defaults; nothing is read from files or flags.
//
// Configuration Sections:
//   - Session: table capacity and process controller windows
//   - IO: harness read buffer and poll interval
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("shell: %s\n", cfg.Session.Shell)
//
// Environment Variables:
//   - TERMBRIDGE_MAX_SESSIONS, TERMBRIDGE_SHELL
//   - TERMBRIDGE_GRACE_PERIOD, TERMBRIDGE_KILL_WAIT
//   - TERMBRIDGE_READ_BUFFER, TERMBRIDGE_POLL_INTERVAL
//   - TERMBRIDGE_LOG_LEVEL, TERMBRIDGE_LOG_DEV
//
// The C ABI takes its table capacity from the init call, not from
// TERMBRIDGE_MAX_SESSIONS; the variable applies to self-hosted tables
// such as the CLI harness.
package config
