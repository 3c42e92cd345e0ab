package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "NOWPLAYING_"

// Source kinds
const (
	SourceHTTP  = "http"
	SourceMpris = "mpris"
	SourceDemo  = "demo"
)

const (
	defaultSource           = SourceHTTP
	defaultSourceURL        = "http://localhost:8080/playing"
	defaultFramebuffer      = "/dev/fb1"
	defaultOutputDir        = "/tmp/nowplaying"
	defaultSnapshotScale    = 4
	defaultSnapshotInterval = 100 * time.Millisecond
	defaultScrollInterval   = 30 * time.Millisecond
	defaultScrollCooldown   = 3 * time.Second
	defaultProgressTicks    = 5
	defaultRetryDelay       = 5 * time.Second
	defaultIdleDelay        = 5 * time.Second
	defaultOutageThreshold  = 3
	defaultMailboxSize      = 16
	defaultMailboxPolicy    = "block"
	defaultLogLevel         = "info"
)

// AppConfig holds application configuration
type AppConfig struct {
	// Source selects the playback data source: http, mpris or demo
	Source string
	// SourceURL is the JSON endpoint polled by the http source
	SourceURL string
	// MprisPlayer is the preferred player's bus name suffix, e.g. "spotify"
	MprisPlayer string

	// Framebuffer is the device the daemon draws to
	Framebuffer string
	// OutputDir receives simulator frames
	OutputDir string
	// SnapshotScale is the integer upscale of simulator frames
	SnapshotScale int
	// SnapshotInterval is how often the simulator checks for a new frame
	SnapshotInterval time.Duration

	// ScrollInterval is the marquee tick period
	ScrollInterval time.Duration
	// ScrollCooldown pauses the marquee after a track change or full cycle
	ScrollCooldown time.Duration
	// ProgressTicks is the number of one-second progress ticks between polls
	ProgressTicks int
	// RetryDelay is the wait after a transient failure
	RetryDelay time.Duration
	// IdleDelay is the wait between polls while nothing plays
	IdleDelay time.Duration
	// OutageThreshold is the number of consecutive failed polls after
	// which the display falls back to Not Playing
	OutageThreshold int

	// MailboxSize bounds the event queue
	MailboxSize int
	// MailboxPolicy is "block" or "drop"
	MailboxPolicy string

	// LogLevel is a zap level name
	LogLevel zapcore.Level
}

// Default returns the configuration used when no environment is set
func Default() *AppConfig {
	return &AppConfig{
		Source:           defaultSource,
		SourceURL:        defaultSourceURL,
		Framebuffer:      defaultFramebuffer,
		OutputDir:        defaultOutputDir,
		SnapshotScale:    defaultSnapshotScale,
		SnapshotInterval: defaultSnapshotInterval,
		ScrollInterval:   defaultScrollInterval,
		ScrollCooldown:   defaultScrollCooldown,
		ProgressTicks:    defaultProgressTicks,
		RetryDelay:       defaultRetryDelay,
		IdleDelay:        defaultIdleDelay,
		OutageThreshold:  defaultOutageThreshold,
		MailboxSize:      defaultMailboxSize,
		MailboxPolicy:    defaultMailboxPolicy,
		LogLevel:         zapcore.InfoLevel,
	}
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger) *AppConfig {
	r := envReader{logger: logger}

	cfg := &AppConfig{
		Source:           r.str("SOURCE", defaultSource),
		SourceURL:        r.str("SOURCE_URL", defaultSourceURL),
		MprisPlayer:      r.str("MPRIS_PLAYER", ""),
		Framebuffer:      r.str("FRAMEBUFFER", defaultFramebuffer),
		OutputDir:        expandPath(r.str("OUTPUT_DIR", defaultOutputDir)),
		SnapshotScale:    r.positiveInt("SNAPSHOT_SCALE", defaultSnapshotScale),
		SnapshotInterval: r.duration("SNAPSHOT_INTERVAL", defaultSnapshotInterval),
		ScrollInterval:   r.duration("SCROLL_INTERVAL", defaultScrollInterval),
		ScrollCooldown:   r.duration("SCROLL_COOLDOWN", defaultScrollCooldown),
		ProgressTicks:    r.nonNegativeInt("PROGRESS_TICKS", defaultProgressTicks),
		RetryDelay:       r.duration("RETRY_DELAY", defaultRetryDelay),
		IdleDelay:        r.duration("IDLE_DELAY", defaultIdleDelay),
		OutageThreshold:  r.positiveInt("OUTAGE_THRESHOLD", defaultOutageThreshold),
		MailboxSize:      r.positiveInt("MAILBOX_SIZE", defaultMailboxSize),
		MailboxPolicy:    r.str("MAILBOX_POLICY", defaultMailboxPolicy),
		LogLevel:         r.level("LOG_LEVEL", defaultLogLevel),
	}

	switch cfg.Source {
	case SourceHTTP, SourceMpris, SourceDemo:
	default:
		logger.Warn("Unknown source, using default",
			zap.String("source", cfg.Source),
			zap.String("default", defaultSource))
		cfg.Source = defaultSource
	}

	logger.Info("Configuration loaded",
		zap.String("source", cfg.Source),
		zap.String("sourceURL", cfg.SourceURL),
		zap.String("outputDir", cfg.OutputDir),
		zap.Duration("scrollInterval", cfg.ScrollInterval),
		zap.Int("mailboxSize", cfg.MailboxSize),
		zap.String("mailboxPolicy", cfg.MailboxPolicy))

	return cfg
}

// Expand path if it contains ~ or environment variables
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// envReader reads prefixed variables, falling back to the default and
// logging a warning when a value does not parse
type envReader struct {
	logger *zap.Logger
}

func (r envReader) lookup(key string) (string, bool) {
	v := os.Getenv(envPrefix + key)
	return v, v != ""
}

func (r envReader) invalid(key, value string, err error) {
	r.logger.Warn("Invalid configuration value, using default",
		zap.String("key", envPrefix+key),
		zap.String("value", value),
		zap.Error(err))
}

func (r envReader) str(key, def string) string {
	if v, ok := r.lookup(key); ok {
		return v
	}
	return def
}

func (r envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err == nil && d <= 0 {
		err = strconv.ErrRange
	}
	if err != nil {
		r.invalid(key, v, err)
		return def
	}
	return d
}

func (r envReader) intAtLeast(key string, def, floor int) int {
	v, ok := r.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err == nil && n < floor {
		err = strconv.ErrRange
	}
	if err != nil {
		r.invalid(key, v, err)
		return def
	}
	return n
}

func (r envReader) positiveInt(key string, def int) int {
	return r.intAtLeast(key, def, 1)
}

func (r envReader) nonNegativeInt(key string, def int) int {
	return r.intAtLeast(key, def, 0)
}

func (r envReader) level(key, def string) zapcore.Level {
	v := r.str(key, def)
	lvl, err := zapcore.ParseLevel(v)
	if err != nil {
		r.invalid(key, v, err)
		return zapcore.InfoLevel
	}
	return lvl
}
