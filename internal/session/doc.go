// Package session provides the owning registry for PTY-backed terminal
// sessions.
//
// The Table maps monotonically allocated SessionIDs to records and is
// the sole owner of every child process and master descriptor behind
// them. Each record tracks one child: its PID, its PTY master, the
// command line that started it, and a state that moves exactly once
// out of running (to exited, signaled, or unknown) when a status
// refresh observes termination.
//
// Design rules:
//   - Capacity is checked before any process is spawned, so a full
//     table has no side effects.
//   - Reads never block and never error on empty output; a zero-byte
//     result doubles as EOF, disambiguated through Status.
//   - Writes are rejected before the syscall once the child has left
//     the running state.
//   - Teardown lives in exactly two call sites, Close and Shutdown:
//     terminate, bounded reap, master close, record removal.
//
// Operations on one session from one caller execute in request order.
// The table also carries its own locking so concurrent callers are
// safe; sessions stay independent because the table lock is never held
// across grace waits or I/O.
package session
