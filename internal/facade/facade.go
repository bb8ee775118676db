package facade

import (
	"sync"

	"go.uber.org/zap"

	"github.com/termbridge/termbridge/internal/config"
	"github.com/termbridge/termbridge/internal/logging"
	"github.com/termbridge/termbridge/internal/monitoring"
	"github.com/termbridge/termbridge/internal/session"
)

// The only global state in the repository.
var (
	mu    sync.Mutex
	table *session.Table
	log   *logging.Logger
)

// Init builds the singleton table with the given capacity. Idempotent:
// an initialized facade reports true without rebuilding, keeping the
// original capacity. A capacity of 0 is taken literally; every create
// on such a table fails.
func Init(maxSessions uint32) bool {
	mu.Lock()
	defer mu.Unlock()
	if table != nil {
		return true
	}

	cfg := config.LoadOrDefault()
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		// A malformed TERMBRIDGE_LOG_LEVEL must not break the host
		// process; fall back to the stock stderr logger.
		logger = logging.NewDefault()
	}

	table = session.New(session.Config{
		MaxSessions: int(maxSessions),
		Shell:       cfg.Session.Shell,
		GracePeriod: cfg.Session.GracePeriod,
		KillWait:    cfg.Session.KillWait,
	}, logger.Named("session"), monitoring.New())
	log = logger

	log.Info("facade initialized", zap.Uint32("max_sessions", maxSessions))
	return true
}

// Cleanup shuts the table down and drops the singleton. No-op when
// uninitialized.
func Cleanup() {
	mu.Lock()
	defer mu.Unlock()
	if table == nil {
		return
	}

	table.Shutdown()
	log.Info("facade cleaned up")
	_ = log.Sync()
	table = nil
	log = nil
}

// current returns the live table and logger, nil before Init and after
// Cleanup.
func current() (*session.Table, *logging.Logger) {
	mu.Lock()
	defer mu.Unlock()
	return table, log
}

// CreateSession starts a whitespace-tokenized command line. Returns
// the new session ID, or -1 on any failure including an uninitialized
// facade.
func CreateSession(command string) int32 {
	t, lg := current()
	if t == nil {
		return -1
	}
	id, err := t.CreateCommand(command)
	if err != nil {
		lg.Error("create session failed", zap.String("command", command), zap.Error(err))
		return -1
	}
	return int32(id)
}

// Read drains pending output into buf. Returns -1 on failure, 0 when
// no data is pending, otherwise the byte count.
func Read(id uint32, buf []byte) int32 {
	t, lg := current()
	if t == nil {
		return -1
	}
	n, err := t.Read(session.SessionID(id), buf)
	if err != nil {
		lg.Error("read failed", zap.Uint32("session_id", id), zap.Error(err))
		return -1
	}
	return int32(n)
}

// Write pushes input to the session. Returns the bytes written, or -1
// on any failure.
func Write(id uint32, data []byte) int32 {
	t, lg := current()
	if t == nil {
		return -1
	}
	n, err := t.Write(session.SessionID(id), data)
	if err != nil {
		lg.Error("write failed", zap.Uint32("session_id", id), zap.Error(err))
		return -1
	}
	return int32(n)
}

// IsRunning reports whether the session exists and its child is still
// running. False for unknown IDs and an uninitialized facade.
func IsRunning(id uint32) bool {
	t, _ := current()
	if t == nil {
		return false
	}
	info, err := t.Status(session.SessionID(id))
	if err != nil {
		return false
	}
	return info.State == session.StateRunning
}

// ExitCode returns the exit code of a terminated session, or the
// signal number when it was signaled. -1 also stands for "still
// running", "unknown ID", and "status unobservable"; callers cannot
// tell these apart from the value alone.
func ExitCode(id uint32) int32 {
	t, _ := current()
	if t == nil {
		return -1
	}
	info, err := t.Status(session.SessionID(id))
	if err != nil || info.State == session.StateRunning || info.ExitCode == nil {
		return -1
	}
	return int32(*info.ExitCode)
}

// Close terminates and removes a session. False when the ID is unknown
// or the facade is uninitialized.
func Close(id uint32, force bool) bool {
	t, lg := current()
	if t == nil {
		return false
	}
	if err := t.Close(session.SessionID(id), force); err != nil {
		lg.Error("close failed", zap.Uint32("session_id", id), zap.Error(err))
		return false
	}
	return true
}

// SessionCount reports the number of live sessions, 0 when
// uninitialized.
func SessionCount() uint32 {
	t, _ := current()
	if t == nil {
		return 0
	}
	return uint32(t.Count())
}

// Resize updates a session's PTY window size. False on any failure.
func Resize(id uint32, cols, rows uint16) bool {
	t, lg := current()
	if t == nil {
		return false
	}
	if err := t.Resize(session.SessionID(id), cols, rows); err != nil {
		lg.Error("resize failed", zap.Uint32("session_id", id), zap.Error(err))
		return false
	}
	return true
}
