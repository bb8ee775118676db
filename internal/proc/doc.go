// Package proc starts, signals, and reaps the child processes behind
// terminal sessions.
//
// A Controller owns three responsibilities:
//   - Start: allocate a PTY pair and launch a command attached to it,
//     with the master descriptor left in non-blocking mode
//   - Reap: poll for child termination without ever blocking
//   - Terminate: SIGTERM with a fixed grace window escalating to
//     SIGKILL, or an immediate SIGKILL when forced
//
// Children launch through a small shell trampoline, sh -c 'exec "$0"
// "$@"', so a command that cannot be executed becomes a child exiting
// with the shell's distinguished status (127 not found, 126 not
// executable) instead of a parent-side error, while a successful exec
// replaces the shell and keeps the child PID on the target command.
//
// The Controller never waits in blocking mode and installs no SIGCHLD
// handling; callers drive every status transition by polling.
package proc
