// Package cmd provides the termbridge CLI.
package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/termbridge/termbridge/internal/config"
	"github.com/termbridge/termbridge/internal/driver"
	"github.com/termbridge/termbridge/internal/logging"
	"github.com/termbridge/termbridge/internal/monitoring"
	"github.com/termbridge/termbridge/internal/session"
)

var version = "dev"

var (
	sendInput    string
	pollInterval time.Duration
	forceClose   bool
	verbose      bool
)

// exitCode carries the child's exit code from runRoot to Execute.
var exitCode int

var rootCmd = &cobra.Command{
	Use:     "termbridge [flags] -- command [args...]",
	Short:   "Run a command under a pseudo-terminal session",
	Version: version,
	Long: `termbridge starts a command on a fresh PTY, relays its output, and
exits with the command's exit code (128+signal when it was signaled).

Examples:
  termbridge -- top -b -n 1          # run with the child's own flags
  termbridge --send "ping\n" -- cat  # feed input before relaying
  termbridge --force -- sleep 60     # SIGKILL instead of graceful close`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runRoot,
	SilenceUsage: true,
}

func init() {
	// The first positional argument stops flag parsing, so child flags
	// pass through without a -- separator.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.Flags().StringVar(&sendInput, "send", "", "input written to the session before relaying")
	rootCmd.Flags().DurationVar(&pollInterval, "poll", 50*time.Millisecond, "sleep between empty reads")
	rootCmd.Flags().BoolVar(&forceClose, "force", false, "tear the session down with SIGKILL")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug-level console logging")
}

// Execute runs the root command and returns an exit code. The caller
// (main) should call os.Exit with this code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return exitCode
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg := config.LoadOrDefault()

	logCfg := logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	}
	if verbose {
		logCfg = logging.DevelopmentConfig()
	}
	log, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tbl := session.New(session.Config{
		MaxSessions: cfg.Session.MaxSessions,
		Shell:       cfg.Session.Shell,
		GracePeriod: cfg.Session.GracePeriod,
		KillWait:    cfg.Session.KillWait,
	}, log.Named("session"), monitoring.New())
	defer tbl.Shutdown()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		log.Warn("interrupted, shutting sessions down", zap.String("signal", sig.String()))
		tbl.Shutdown()
		os.Exit(1)
	}()

	poll := cfg.IO.PollInterval
	if cmd.Flags().Changed("poll") {
		poll = pollInterval
	}

	code, err := driver.Run(tbl, driver.Options{
		Command:      args[0],
		Args:         args[1:],
		Send:         sendInput,
		PollInterval: poll,
		ReadBuffer:   cfg.IO.ReadBuffer,
		Force:        forceClose,
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	if code < 0 {
		code = 255
	}
	exitCode = code
	return nil
}
