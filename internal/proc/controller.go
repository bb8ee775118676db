package proc

import (
	"os"
	"os/exec"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/creack/pty"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/termbridge/termbridge/internal/logging"
)

const (
	// maxArgv bounds the argv entries handed to a child, command
	// included; extra arguments are silently dropped.
	maxArgv = 63

	defaultShell       = "/bin/sh"
	defaultGracePeriod = 100 * time.Millisecond
	defaultKillWait    = 100 * time.Millisecond

	defaultCols = 80
	defaultRows = 24
)

// trampoline re-execs the real command inside the spawned shell so
// exec failures surface as child exit statuses, never parent errors.
const trampoline = `exec "$0" "$@"`

// Options configures a Controller.
type Options struct {
	Shell       string        // trampoline shell, default /bin/sh
	GracePeriod time.Duration // SIGTERM grace before escalation
	KillWait    time.Duration // post-kill reap window
	Clock       clock.Clock   // injectable for tests
	Logger      *logging.Logger
}

// Controller starts, signals, and reaps session children.
type Controller struct {
	shell       string
	gracePeriod time.Duration
	killWait    time.Duration
	clock       clock.Clock
	log         *logging.Logger
}

// New builds a Controller, filling unset options with defaults.
func New(opts Options) *Controller {
	if opts.Shell == "" {
		opts.Shell = defaultShell
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = defaultGracePeriod
	}
	if opts.KillWait <= 0 {
		opts.KillWait = defaultKillWait
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	return &Controller{
		shell:       opts.Shell,
		gracePeriod: opts.GracePeriod,
		killWait:    opts.KillWait,
		clock:       opts.Clock,
		log:         opts.Logger,
	}
}

// KillWait reports the configured post-kill reap window.
func (c *Controller) KillWait() time.Duration { return c.killWait }

// Child is a process running under a freshly allocated PTY. Callers
// take ownership of all three fields; the Controller keeps nothing.
type Child struct {
	PID      int
	Master   *os.File // must stay referenced: a collected handle closes the descriptor
	MasterFD int
}

// StartOptions carries optional spawn parameters.
type StartOptions struct {
	Dir  string   // working directory, inherited when empty
	Env  []string // extra KEY=VALUE entries appended to the inherited environment
	Cols uint16   // initial window size, 80x24 when zero
	Rows uint16
}

// Start launches command under a new PTY and returns the running
// child. The master descriptor is non-blocking: reads through it must
// never stall the caller. Argv is capped at maxArgv entries.
func (c *Controller) Start(command string, args []string, opts StartOptions) (*Child, error) {
	argv := buildArgv(command, args)

	cmd := exec.Command(c.shell, append([]string{"-c", trampoline}, argv...)...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	cmd.Env = append(os.Environ(), "TERM=xterm-256color")
	cmd.Env = append(cmd.Env, opts.Env...)

	size := &pty.Winsize{Cols: opts.Cols, Rows: opts.Rows}
	if size.Cols == 0 {
		size.Cols = defaultCols
	}
	if size.Rows == 0 {
		size.Rows = defaultRows
	}

	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, err
	}

	// Fd puts the descriptor back into blocking mode, so the flag is
	// applied after taking the raw handle, not before.
	fd := int(ptmx.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		ptmx.Close()
		c.Terminate(cmd.Process.Pid, true)
		c.ReapWithin(cmd.Process.Pid, c.killWait)
		return nil, err
	}

	c.log.Debug("child started",
		zap.Int("pid", cmd.Process.Pid),
		zap.String("command", command),
		zap.Int("argc", len(argv)))

	return &Child{
		PID:      cmd.Process.Pid,
		Master:   ptmx,
		MasterFD: fd,
	}, nil
}

// buildArgv assembles the child argv, dropping arguments past the
// fixed bound.
func buildArgv(command string, args []string) []string {
	if len(args) > maxArgv-1 {
		args = args[:maxArgv-1]
	}
	return append([]string{command}, args...)
}
