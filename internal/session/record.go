package session

import (
	"os"
	"sync"
	"time"

	"github.com/termbridge/termbridge/internal/proc"
)

// SessionID identifies a live session. IDs are allocated monotonically
// starting at 1, wrap past the uint32 range skipping 0, and are never
// reused while their record is alive.
type SessionID uint32

// State describes the child process backing a session. State is
// terminal once it leaves StateRunning.
type State string

const (
	StateRunning  State = "running"
	StateExited   State = "exited"
	StateSignaled State = "signaled"
	StateUnknown  State = "unknown"
)

// Record is the table-owned bookkeeping for one session.
type Record struct {
	id        SessionID
	pid       int
	master    *os.File
	masterFD  int
	command   string
	createdAt time.Time

	mu           sync.Mutex
	state        State
	exitCode     *int // exit code, or signal number when signaled
	lastActivity time.Time
	released     bool
}

// Info is an owned snapshot of a session record.
type Info struct {
	ID           SessionID `json:"id"`
	PID          int       `json:"pid"`
	State        State     `json:"state"`
	ExitCode     *int      `json:"exit_code,omitempty"`
	Command      string    `json:"command"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// snapshotLocked copies the record into an owned Info. Callers hold
// r.mu.
func (r *Record) snapshotLocked() Info {
	info := Info{
		ID:           r.id,
		PID:          r.pid,
		State:        r.state,
		Command:      r.command,
		CreatedAt:    r.createdAt,
		LastActivity: r.lastActivity,
	}
	if r.exitCode != nil {
		code := *r.exitCode
		info.ExitCode = &code
	}
	return info
}

// applyExitLocked records an observed termination. Callers hold r.mu.
func (r *Record) applyExitLocked(status *proc.ExitStatus) {
	if status.Signaled {
		r.state = StateSignaled
		signal := status.Signal
		r.exitCode = &signal
		return
	}
	r.state = StateExited
	code := status.Code
	r.exitCode = &code
}
