// Package driver runs a single session to completion, relaying its
// output to a writer. It is the engine behind the termbridge CLI.
package driver

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/termbridge/termbridge/internal/session"
)

const (
	defaultPollInterval = 50 * time.Millisecond
	defaultReadBuffer   = 4096
)

// Options configure a single Run.
type Options struct {
	Command string   // program to start
	Args    []string // its arguments
	Send    string   // bytes written to the session before polling, if any

	PollInterval time.Duration // sleep between empty reads
	ReadBuffer   int           // read chunk size in bytes
	Force        bool          // SIGKILL instead of graceful teardown

	Stdout io.Writer   // session output, defaults to os.Stdout
	Stderr io.Writer   // driver diagnostics, defaults to os.Stderr
	Clock  clock.Clock // injectable for tests
}

// Run starts opts.Command in a fresh session on tbl, relays everything
// the child prints, and blocks until it terminates. It returns the
// child's exit code, 128 plus the signal number when it was signaled,
// and -1 when the status could not be observed. The session is always
// removed from the table before Run returns.
func Run(tbl *session.Table, opts Options) (int, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.ReadBuffer <= 0 {
		opts.ReadBuffer = defaultReadBuffer
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}

	id, err := tbl.Create(opts.Command, opts.Args...)
	if err != nil {
		return -1, err
	}
	defer func() {
		_ = tbl.Close(id, opts.Force)
	}()

	if opts.Send != "" {
		if _, err := tbl.Write(id, []byte(opts.Send)); err != nil {
			return -1, fmt.Errorf("send input: %w", err)
		}
	}

	buf := make([]byte, opts.ReadBuffer)
	for {
		n, err := tbl.Read(id, buf)
		if err != nil {
			return -1, err
		}
		if n > 0 {
			if _, err := opts.Stdout.Write(buf[:n]); err != nil {
				return -1, fmt.Errorf("relay output: %w", err)
			}
			continue
		}

		info, err := tbl.Status(id)
		if err != nil {
			return -1, err
		}
		if info.State != session.StateRunning {
			drain(tbl, id, buf, opts.Stdout)
			code := exitCodeFor(info)
			fmt.Fprintf(opts.Stderr, "session %d %s (exit code %d)\n", id, info.State, code)
			return code, nil
		}
		opts.Clock.Sleep(opts.PollInterval)
	}
}

// drain relays output that raced the exit notification. The child has
// terminated by now, so a zero read means the buffer is empty for
// good.
func drain(tbl *session.Table, id session.SessionID, buf []byte, out io.Writer) {
	for {
		n, err := tbl.Read(id, buf)
		if err != nil || n == 0 {
			return
		}
		_, _ = out.Write(buf[:n])
	}
}

// exitCodeFor maps a terminal session state onto a shell-style exit
// code.
func exitCodeFor(info session.Info) int {
	if info.ExitCode == nil {
		return -1
	}
	switch info.State {
	case session.StateExited:
		return *info.ExitCode
	case session.StateSignaled:
		return 128 + *info.ExitCode
	default:
		return -1
	}
}
