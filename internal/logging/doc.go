// Package logging provides structured logging using uber/zap.
//
// A small Config builds loggers from plain strings and booleans, with
// two output modes:
//   - Production (the default): JSON for machine parsing
//   - Development: colored console output for human readability
//
// Every mode writes to stderr unless OutputPaths overrides it; stdout
// carries session bytes and must stay clean of log lines.
//
// Example Usage:
//
//	log, err := logging.New(logging.Config{Level: "debug"})
//	log.Info("session created", zap.Uint32("session_id", id))
//
// NewDefault and NewNop never fail: the first for hosts without
// configuration of their own, the second for tests and for callers
// that want silence.
package logging
