// Package monitoring provides Prometheus instrumentation for the
// session table.
//
// Each Metrics value owns its registry, so a host that cycles the
// library through cleanup and re-init never re-registers collectors on
// the global default registry. The registry is exposed for scraping or
// test assertions.
//
// Instruments:
//   - termbridge_sessions_active: gauge of live sessions
//   - termbridge_sessions_created_total / closed_total: lifecycle counters
//   - termbridge_session_create_errors_total{reason}: rejected creates
//   - termbridge_read_bytes_total / written_bytes_total: I/O volume
//   - termbridge_session_close_duration_seconds: close latency,
//     including grace and reap windows
package monitoring
