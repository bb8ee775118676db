package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/termbridge/termbridge/internal/logging"
	"github.com/termbridge/termbridge/internal/monitoring"
	"github.com/termbridge/termbridge/internal/proc"
	"github.com/termbridge/termbridge/internal/ptyio"
)

// Config bounds the table and parameterizes its process controller.
type Config struct {
	MaxSessions int
	Shell       string        // trampoline shell for spawned commands
	GracePeriod time.Duration // SIGTERM grace before escalation
	KillWait    time.Duration // post-kill reap window
}

// Table owns every live session: the records, the master descriptors,
// and the child processes behind them.
type Table struct {
	mu      sync.RWMutex
	records map[SessionID]*Record
	nextID  SessionID
	max     int

	ctl      *proc.Controller
	killWait time.Duration
	log      *logging.Logger
	metrics  *monitoring.Metrics
}

// New builds a Table. Metrics may be nil when instrumentation is not
// wanted. A MaxSessions of 0 yields a table on which every create
// fails.
func New(cfg Config, log *logging.Logger, metrics *monitoring.Metrics) *Table {
	if log == nil {
		log = logging.NewNop()
	}
	if cfg.MaxSessions < 0 {
		cfg.MaxSessions = 0
	}
	ctl := proc.New(proc.Options{
		Shell:       cfg.Shell,
		GracePeriod: cfg.GracePeriod,
		KillWait:    cfg.KillWait,
		Logger:      log,
	})
	return &Table{
		records:  make(map[SessionID]*Record),
		nextID:   1,
		max:      cfg.MaxSessions,
		ctl:      ctl,
		killWait: ctl.KillWait(),
		log:      log,
		metrics:  metrics,
	}
}

// CreateOptions carries optional spawn parameters for a session.
type CreateOptions struct {
	Dir  string   // working directory
	Env  []string // extra KEY=VALUE entries
	Cols uint16   // initial window size
	Rows uint16
}

// Create starts command under a fresh PTY and registers it.
func (t *Table) Create(command string, args ...string) (SessionID, error) {
	return t.CreateWithOptions(command, args, CreateOptions{})
}

// CreateCommand tokenizes a full command line on whitespace and starts
// it. Quoting is not interpreted; this is the C ABI entry path.
func (t *Table) CreateCommand(line string) (SessionID, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		if t.metrics != nil {
			t.metrics.RecordCreateError("invalid")
		}
		return 0, fmt.Errorf("%w: empty command line", ErrInvalidCommand)
	}
	return t.Create(fields[0], fields[1:]...)
}

// CreateWithOptions starts command under a fresh PTY and registers the
// session. The capacity check happens before the spawn, so a full
// table has no side effects; a spawn that loses a registration race is
// torn down rather than leaked.
func (t *Table) CreateWithOptions(command string, args []string, opts CreateOptions) (SessionID, error) {
	if strings.TrimSpace(command) == "" {
		if t.metrics != nil {
			t.metrics.RecordCreateError("invalid")
		}
		return 0, fmt.Errorf("%w: empty command", ErrInvalidCommand)
	}

	t.mu.RLock()
	full := len(t.records) >= t.max
	t.mu.RUnlock()
	if full {
		if t.metrics != nil {
			t.metrics.RecordCreateError("capacity")
		}
		return 0, fmt.Errorf("%w: limit %d", ErrMaxSessionsReached, t.max)
	}

	child, err := t.ctl.Start(command, args, proc.StartOptions{
		Dir:  opts.Dir,
		Env:  opts.Env,
		Cols: opts.Cols,
		Rows: opts.Rows,
	})
	if err != nil {
		if t.metrics != nil {
			t.metrics.RecordCreateError("fork")
		}
		return 0, fmt.Errorf("%w: %v", ErrForkFailed, err)
	}

	now := time.Now()
	rec := &Record{
		pid:          child.PID,
		master:       child.Master,
		masterFD:     child.MasterFD,
		command:      commandLine(command, args),
		createdAt:    now,
		state:        StateRunning,
		lastActivity: now,
	}

	t.mu.Lock()
	if len(t.records) >= t.max {
		t.mu.Unlock()
		// Lost the race to the last slot; tear the child down rather
		// than leak it.
		t.ctl.Terminate(child.PID, true)
		t.ctl.ReapWithin(child.PID, t.killWait)
		child.Master.Close()
		if t.metrics != nil {
			t.metrics.RecordCreateError("capacity")
		}
		return 0, fmt.Errorf("%w: limit %d", ErrMaxSessionsReached, t.max)
	}
	id := t.allocateIDLocked()
	rec.id = id
	t.records[id] = rec
	active := len(t.records)
	t.mu.Unlock()

	t.log.Info("session created",
		zap.Uint32("session_id", uint32(id)),
		zap.Int("pid", child.PID),
		zap.String("command", rec.command))
	if t.metrics != nil {
		t.metrics.RecordCreate(active)
	}
	return id, nil
}

// Read drains at most len(buf) bytes of pending output. Both "no data
// yet" and "master drained after exit" return (0, nil); callers poll
// and cross-check Status to tell them apart. Every successful read,
// zero-byte included, counts as activity.
func (t *Table) Read(id SessionID, buf []byte) (int, error) {
	rec, err := t.lookup(id)
	if err != nil {
		return 0, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.released {
		return 0, fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	t.refreshLocked(rec)

	n, err := ptyio.Read(rec.masterFD, buf)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	rec.lastActivity = time.Now()
	if n > 0 && t.metrics != nil {
		t.metrics.RecordRead(n)
	}
	return n, nil
}

// Write pushes input to the child. Rejected before the syscall once
// the child has left the running state.
func (t *Table) Write(id SessionID, data []byte) (int, error) {
	rec, err := t.lookup(id)
	if err != nil {
		return 0, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.released {
		return 0, fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	t.refreshLocked(rec)
	if rec.state != StateRunning {
		return 0, fmt.Errorf("%w: session %d is %s", ErrInvalidSession, id, rec.state)
	}

	n, err := ptyio.Write(rec.masterFD, data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	rec.lastActivity = time.Now()
	if t.metrics != nil {
		t.metrics.RecordWrite(n)
	}
	return n, nil
}

// Status refreshes the record and returns an owned snapshot.
func (t *Table) Status(id SessionID) (Info, error) {
	rec, err := t.lookup(id)
	if err != nil {
		return Info{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.released {
		return Info{}, fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	t.refreshLocked(rec)
	return rec.snapshotLocked(), nil
}

// Resize updates the PTY window size; the child observes SIGWINCH.
func (t *Table) Resize(id SessionID, cols, rows uint16) error {
	rec, err := t.lookup(id)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.released {
		return fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	t.refreshLocked(rec)
	if rec.state != StateRunning {
		return fmt.Errorf("%w: session %d is %s", ErrInvalidSession, id, rec.state)
	}

	if err := pty.Setsize(rec.master, &pty.Winsize{Cols: cols, Rows: rows}); err != nil {
		return fmt.Errorf("resize session %d: %w", id, err)
	}
	return nil
}

// Close terminates the child, reaps it, closes the master descriptor,
// and removes the record. Force sends SIGKILL immediately; graceful
// escalates after the grace window.
func (t *Table) Close(id SessionID, force bool) error {
	rec, err := t.lookup(id)
	if err != nil {
		return err
	}

	start := time.Now()
	rec.mu.Lock()
	if rec.released {
		rec.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	t.destroyLocked(rec, force)
	state := rec.state
	rec.mu.Unlock()

	t.mu.Lock()
	delete(t.records, id)
	active := len(t.records)
	t.mu.Unlock()

	t.log.Info("session closed",
		zap.Uint32("session_id", uint32(id)),
		zap.Bool("force", force),
		zap.String("state", string(state)))
	if t.metrics != nil {
		t.metrics.RecordClose(active, time.Since(start))
	}
	return nil
}

// List refreshes every record and returns owned snapshots sorted by
// ID.
func (t *Table) List() []Info {
	t.mu.RLock()
	records := lo.Values(t.records)
	t.mu.RUnlock()

	infos := lo.FilterMap(records, func(rec *Record, _ int) (Info, bool) {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		if rec.released {
			return Info{}, false
		}
		t.refreshLocked(rec)
		return rec.snapshotLocked(), true
	})
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Count reports the number of registered sessions.
func (t *Table) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}

// Shutdown force-closes every remaining session: terminate, bounded
// reap, descriptor close. Safe on an empty table and safe to call
// twice.
func (t *Table) Shutdown() {
	t.mu.Lock()
	records := lo.Values(t.records)
	t.records = make(map[SessionID]*Record)
	t.mu.Unlock()

	for _, rec := range records {
		start := time.Now()
		rec.mu.Lock()
		if !rec.released {
			t.destroyLocked(rec, true)
		}
		rec.mu.Unlock()
		if t.metrics != nil {
			t.metrics.RecordClose(0, time.Since(start))
		}
	}

	if len(records) > 0 {
		t.log.Info("table shut down", zap.Int("sessions_closed", len(records)))
	}
	if t.metrics != nil {
		t.metrics.SetActive(0)
	}
}

// lookup resolves an ID under the read lock.
func (t *Table) lookup(id SessionID) (*Record, error) {
	t.mu.RLock()
	rec, ok := t.records[id]
	t.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	return rec, nil
}

// allocateIDLocked hands out the next unused ID, wrapping past the
// uint32 range and skipping 0. Callers hold t.mu.
func (t *Table) allocateIDLocked() SessionID {
	for {
		id := t.nextID
		t.nextID++
		if t.nextID == 0 {
			t.nextID = 1
		}
		if _, taken := t.records[id]; !taken {
			return id
		}
	}
}

// refreshLocked polls the child once and records an observed
// termination. State is terminal once out of running, so a later
// refresh is a no-op. Callers hold rec.mu.
func (t *Table) refreshLocked(rec *Record) {
	if rec.state != StateRunning {
		return
	}
	status, err := t.ctl.Reap(rec.pid)
	if err != nil {
		t.log.Warn("status refresh failed",
			zap.Uint32("session_id", uint32(rec.id)),
			zap.Int("pid", rec.pid),
			zap.Error(err))
		rec.state = StateUnknown
		return
	}
	if status != nil {
		rec.applyExitLocked(status)
	}
}

// destroyLocked tears a record down: terminate if still running,
// bounded reap, master close. Callers hold rec.mu and remove the
// record from the map afterward.
func (t *Table) destroyLocked(rec *Record, force bool) {
	t.refreshLocked(rec)
	if rec.state == StateRunning {
		t.ctl.Terminate(rec.pid, force)
		if status := t.ctl.ReapWithin(rec.pid, t.killWait); status != nil {
			rec.applyExitLocked(status)
		}
	}
	rec.master.Close()
	rec.released = true
}

// commandLine joins the requested command and arguments into the
// stored command string.
func commandLine(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}
