package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Session config
	assert.Equal(t, 64, cfg.Session.MaxSessions)
	assert.Equal(t, "/bin/sh", cfg.Session.Shell)
	assert.Equal(t, 100*time.Millisecond, cfg.Session.GracePeriod)
	assert.Equal(t, 100*time.Millisecond, cfg.Session.KillWait)

	// IO config
	assert.Equal(t, 4096, cfg.IO.ReadBuffer)
	assert.Equal(t, 50*time.Millisecond, cfg.IO.PollInterval)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadOrDefault(t *testing.T) {
	// Should return defaults when no env vars set
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, 64, cfg.Session.MaxSessions)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"TERMBRIDGE_MAX_SESSIONS":  "8",
		"TERMBRIDGE_SHELL":         "/bin/bash",
		"TERMBRIDGE_GRACE_PERIOD":  "250ms",
		"TERMBRIDGE_KILL_WAIT":     "1s",
		"TERMBRIDGE_READ_BUFFER":   "8192",
		"TERMBRIDGE_POLL_INTERVAL": "10ms",
		"TERMBRIDGE_LOG_LEVEL":     "debug",
		"TERMBRIDGE_LOG_DEV":       "true",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	// Verify session config
	assert.Equal(t, 8, cfg.Session.MaxSessions)
	assert.Equal(t, "/bin/bash", cfg.Session.Shell)
	assert.Equal(t, 250*time.Millisecond, cfg.Session.GracePeriod)
	assert.Equal(t, time.Second, cfg.Session.KillWait)

	// Verify IO config
	assert.Equal(t, 8192, cfg.IO.ReadBuffer)
	assert.Equal(t, 10*time.Millisecond, cfg.IO.PollInterval)

	// Verify logging config
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	err := os.Setenv("TERMBRIDGE_MAX_SESSIONS", "2")
	require.NoError(t, err)
	defer os.Unsetenv("TERMBRIDGE_MAX_SESSIONS")

	err = os.Setenv("TERMBRIDGE_LOG_LEVEL", "warn")
	require.NoError(t, err)
	defer os.Unsetenv("TERMBRIDGE_LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, 2, cfg.Session.MaxSessions)
	assert.Equal(t, "warn", cfg.Logging.Level)

	// Verify default values still apply
	assert.Equal(t, "/bin/sh", cfg.Session.Shell)
	assert.Equal(t, 100*time.Millisecond, cfg.Session.GracePeriod)
	assert.Equal(t, 4096, cfg.IO.ReadBuffer)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	err := os.Setenv("TERMBRIDGE_GRACE_PERIOD", "not-a-duration")
	require.NoError(t, err)
	defer os.Unsetenv("TERMBRIDGE_GRACE_PERIOD")

	_, err = Load()
	assert.Error(t, err)

	// LoadOrDefault falls back rather than failing
	cfg := LoadOrDefault()
	assert.Equal(t, 100*time.Millisecond, cfg.Session.GracePeriod)
}

func TestSessionConfig(t *testing.T) {
	tests := []struct {
		name      string
		max       string
		shell     string
		wantMax   int
		wantShell string
	}{
		{
			name:      "default values",
			max:       "",
			shell:     "",
			wantMax:   64,
			wantShell: "/bin/sh",
		},
		{
			name:      "custom capacity",
			max:       "128",
			shell:     "",
			wantMax:   128,
			wantShell: "/bin/sh",
		},
		{
			name:      "custom shell",
			max:       "",
			shell:     "/usr/bin/dash",
			wantMax:   64,
			wantShell: "/usr/bin/dash",
		},
		{
			name:      "zero capacity",
			max:       "0",
			shell:     "",
			wantMax:   0,
			wantShell: "/bin/sh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean environment
			os.Unsetenv("TERMBRIDGE_MAX_SESSIONS")
			os.Unsetenv("TERMBRIDGE_SHELL")

			if tt.max != "" {
				err := os.Setenv("TERMBRIDGE_MAX_SESSIONS", tt.max)
				require.NoError(t, err)
				defer os.Unsetenv("TERMBRIDGE_MAX_SESSIONS")
			}
			if tt.shell != "" {
				err := os.Setenv("TERMBRIDGE_SHELL", tt.shell)
				require.NoError(t, err)
				defer os.Unsetenv("TERMBRIDGE_SHELL")
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantMax, cfg.Session.MaxSessions)
			assert.Equal(t, tt.wantShell, cfg.Session.Shell)
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		dev       string
		wantLevel string
		wantDev   bool
	}{
		{
			name:      "default values",
			level:     "",
			dev:       "",
			wantLevel: "info",
			wantDev:   false,
		},
		{
			name:      "debug level",
			level:     "debug",
			dev:       "",
			wantLevel: "debug",
			wantDev:   false,
		},
		{
			name:      "development mode",
			level:     "",
			dev:       "true",
			wantLevel: "info",
			wantDev:   true,
		},
		{
			name:      "error level production",
			level:     "error",
			dev:       "false",
			wantLevel: "error",
			wantDev:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean environment
			os.Unsetenv("TERMBRIDGE_LOG_LEVEL")
			os.Unsetenv("TERMBRIDGE_LOG_DEV")

			if tt.level != "" {
				err := os.Setenv("TERMBRIDGE_LOG_LEVEL", tt.level)
				require.NoError(t, err)
				defer os.Unsetenv("TERMBRIDGE_LOG_LEVEL")
			}
			if tt.dev != "" {
				err := os.Setenv("TERMBRIDGE_LOG_DEV", tt.dev)
				require.NoError(t, err)
				defer os.Unsetenv("TERMBRIDGE_LOG_DEV")
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
			assert.Equal(t, tt.wantDev, cfg.Logging.Development)
		})
	}
}
