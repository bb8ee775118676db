package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "debug", level: "debug", want: zapcore.DebugLevel},
		{name: "info", level: "info", want: zapcore.InfoLevel},
		{name: "warn", level: "warn", want: zapcore.WarnLevel},
		{name: "error", level: "error", want: zapcore.ErrorLevel},
		{name: "uppercase accepted", level: "INFO", want: zapcore.InfoLevel},
		{name: "empty means info", level: "", want: zapcore.InfoLevel},
		{name: "garbage rejected", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLevel(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultConfigTargetsStderr(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.False(t, cfg.Development)
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)
}

func TestDevelopmentConfigEnablesDebug(t *testing.T) {
	cfg := DevelopmentConfig()
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)

	log, err := New(cfg)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRespectsLevel(t *testing.T) {
	log, err := New(Config{Level: "error"})
	require.NoError(t, err)

	assert.True(t, log.Core().Enabled(zapcore.ErrorLevel))
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewDefaultNeverFails(t *testing.T) {
	log := NewDefault()
	require.NotNil(t, log)

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewNopDiscardsEverything(t *testing.T) {
	log := NewNop()
	require.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}

func TestNamedTagsEntries(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := &Logger{Logger: zap.New(core)}

	base.Named("session").Info("child started")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "session", entries[0].LoggerName)
	assert.Equal(t, "child started", entries[0].Message)
}

func TestEncodingFollowsMode(t *testing.T) {
	assert.Equal(t, "json", encodingFormat(false))
	assert.Equal(t, "console", encodingFormat(true))
}
