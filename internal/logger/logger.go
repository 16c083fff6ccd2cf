package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation parameters for launcher-output journals.
const (
	DefaultMaxSizeMB  = 10 // MB
	DefaultMaxBackups = 3  // number of backup files
	DefaultMaxAgeDays = 7  // days
)

// Config holds the unified logging configuration for one supervised
// service: structured slog output for the supervisor itself plus an
// optional rotated file journal capturing launcher stderr.
// Rotation parameters follow lumberjack semantics.
type Config struct {
	Level  string `json:"level" mapstructure:"level"`   // debug|info|warn|error (default info)
	Format string `json:"format" mapstructure:"format"` // text|json (default text)
	Color  bool   `json:"color" mapstructure:"color"`   // colorize text output

	// Dir is the base directory for launcher-output journals. If
	// LauncherPath is set it overrides Dir.
	Dir          string `json:"dir" mapstructure:"dir"`
	LauncherPath string `json:"launcher_path" mapstructure:"launcher_path"`
	MaxSizeMB    int    `json:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups   int    `json:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays   int    `json:"max_age_days" mapstructure:"max_age_days"`
	Compress     bool   `json:"compress" mapstructure:"compress"`
}

// NewSlogger builds a *slog.Logger on stderr according to Level, Format
// and Color.
func (c Config) NewSlogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.slogLevel()}
	var h slog.Handler
	switch {
	case strings.EqualFold(c.Format, "json"):
		h = slog.NewJSONHandler(os.Stderr, opts)
	case c.Color:
		h = NewColorTextHandler(os.Stderr, opts)
	default:
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h)
}

func (c Config) slogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LauncherWriter returns a rotating io.WriteCloser for captured launcher
// output of the named service, or nil when no journal is configured.
func (c Config) LauncherWriter(name string) io.WriteCloser {
	path := c.LauncherPath
	if path == "" && c.Dir != "" {
		path = filepath.Join(c.Dir, name+".launcher.log")
	}
	if path == "" {
		return nil
	}
	return &lj.Logger{
		Filename:   path,
		MaxSize:    valOr(c.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: valOr(c.MaxBackups, DefaultMaxBackups),
		MaxAge:     valOr(c.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   c.Compress,
	}
}

func valOr(v int, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
