package proc

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// ExitStatus describes how a child terminated.
type ExitStatus struct {
	Code     int  // exit code when Signaled is false
	Signal   int  // terminating signal number when Signaled is true
	Signaled bool
}

// Reap polls once for the child's termination. (nil, nil) means the
// child is still running; an error means its status can no longer be
// observed and the caller should treat the state as unknown.
func (c *Controller) Reap(pid int) (*ExitStatus, error) {
	var ws unix.WaitStatus
	wpid, err := unix.Wait4(pid, &ws, unix.WNOHANG, nil)
	if err == unix.EINTR {
		wpid, err = unix.Wait4(pid, &ws, unix.WNOHANG, nil)
	}
	if err != nil {
		return nil, err
	}
	if wpid == 0 {
		return nil, nil
	}
	if ws.Signaled() {
		return &ExitStatus{Signal: int(ws.Signal()), Signaled: true}, nil
	}
	if ws.Exited() {
		return &ExitStatus{Code: ws.ExitStatus()}, nil
	}
	return nil, nil
}

// ReapWithin polls for termination until the window elapses. Returns
// nil when the child is still running, or no longer observable, at the
// end of the window; the wait is always bounded.
func (c *Controller) ReapWithin(pid int, window time.Duration) *ExitStatus {
	const step = 5 * time.Millisecond

	deadline := c.clock.Now().Add(window)
	for {
		status, err := c.Reap(pid)
		if err != nil || status != nil {
			return status
		}
		if !c.clock.Now().Before(deadline) {
			return nil
		}
		c.clock.Sleep(step)
	}
}

// Alive probes pid with signal 0. Zombies answer until reaped, so a
// true result only means the PID is still occupied.
func (c *Controller) Alive(pid int) bool {
	return unix.Kill(pid, 0) == nil
}

// Terminate stops a child. Graceful sends SIGTERM, sleeps the grace
// period, and escalates to SIGKILL if the PID still answers; force
// skips straight to SIGKILL. Reaping is the caller's follow-up.
func (c *Controller) Terminate(pid int, force bool) {
	if force {
		_ = unix.Kill(pid, unix.SIGKILL)
		return
	}
	if err := unix.Kill(pid, unix.SIGTERM); err != nil {
		return
	}
	c.clock.Sleep(c.gracePeriod)
	if c.Alive(pid) {
		c.log.Debug("grace period expired, escalating", zap.Int("pid", pid))
		_ = unix.Kill(pid, unix.SIGKILL)
	}
}
