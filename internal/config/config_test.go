package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig(zap.NewNop())
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestNewAppConfig_FromEnvironment(t *testing.T) {
	t.Setenv("NOWPLAYING_SOURCE", "mpris")
	t.Setenv("NOWPLAYING_MPRIS_PLAYER", "spotify")
	t.Setenv("NOWPLAYING_SCROLL_INTERVAL", "13ms")
	t.Setenv("NOWPLAYING_PROGRESS_TICKS", "0")
	t.Setenv("NOWPLAYING_MAILBOX_SIZE", "4")
	t.Setenv("NOWPLAYING_MAILBOX_POLICY", "drop")
	t.Setenv("NOWPLAYING_LOG_LEVEL", "debug")
	t.Setenv("NOWPLAYING_OUTAGE_THRESHOLD", "7")

	cfg := NewAppConfig(zap.NewNop())

	if cfg.Source != SourceMpris || cfg.MprisPlayer != "spotify" {
		t.Errorf("source = %q/%q", cfg.Source, cfg.MprisPlayer)
	}
	if cfg.ScrollInterval != 13*time.Millisecond {
		t.Errorf("ScrollInterval = %v", cfg.ScrollInterval)
	}
	if cfg.ProgressTicks != 0 {
		t.Errorf("ProgressTicks = %d, want 0", cfg.ProgressTicks)
	}
	if cfg.MailboxSize != 4 || cfg.MailboxPolicy != "drop" {
		t.Errorf("mailbox = %d/%q", cfg.MailboxSize, cfg.MailboxPolicy)
	}
	if cfg.OutageThreshold != 7 {
		t.Errorf("OutageThreshold = %d, want 7", cfg.OutageThreshold)
	}
	if cfg.LogLevel != zapcore.DebugLevel {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestNewAppConfig_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(*AppConfig) bool
	}{
		{
			name:  "Bad duration",
			key:   "NOWPLAYING_RETRY_DELAY",
			value: "soon",
			check: func(c *AppConfig) bool { return c.RetryDelay == defaultRetryDelay },
		},
		{
			name:  "Negative duration",
			key:   "NOWPLAYING_IDLE_DELAY",
			value: "-1s",
			check: func(c *AppConfig) bool { return c.IdleDelay == defaultIdleDelay },
		},
		{
			name:  "Zero mailbox",
			key:   "NOWPLAYING_MAILBOX_SIZE",
			value: "0",
			check: func(c *AppConfig) bool { return c.MailboxSize == defaultMailboxSize },
		},
		{
			name:  "Zero outage threshold",
			key:   "NOWPLAYING_OUTAGE_THRESHOLD",
			value: "0",
			check: func(c *AppConfig) bool { return c.OutageThreshold == defaultOutageThreshold },
		},
		{
			name:  "Unknown source",
			key:   "NOWPLAYING_SOURCE",
			value: "carrier-pigeon",
			check: func(c *AppConfig) bool { return c.Source == defaultSource },
		},
		{
			name:  "Unknown log level",
			key:   "NOWPLAYING_LOG_LEVEL",
			value: "chatty",
			check: func(c *AppConfig) bool { return c.LogLevel == zapcore.InfoLevel },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			core, logs := observer.New(zapcore.WarnLevel)

			cfg := NewAppConfig(zap.New(core))

			if !tt.check(cfg) {
				t.Errorf("%s=%q did not fall back to the default", tt.key, tt.value)
			}
			if logs.Len() == 0 {
				t.Error("expected a warning for the invalid value")
			}
		})
	}
}

func TestNewAppConfig_ExpandsOutputDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("NOWPLAYING_OUTPUT_DIR", "~/frames")

	cfg := NewAppConfig(zap.NewNop())
	if want := filepath.Join(home, "frames"); cfg.OutputDir != want {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, want)
	}
}
