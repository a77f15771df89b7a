// Package logger writes structured logs to a rotating file in the config directory.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/noor/internal/constants"
)

var (
	// Logger is the global logger. It is nil until Init succeeds.
	Logger *log.Logger

	discard = log.New(io.Discard)
	path    string
)

type Config struct {
	Debug     bool
	ConfigDir string
	// Level is a log level name (debug, info, warn, error). Empty means warn; Debug forces debug.
	Level string
	// Console receives log output in debug mode. Defaults to os.Stderr.
	Console io.Writer
}

// Init points the global logger at <ConfigDir>/logs/noor.log. In debug mode output is mirrored to the console.
func Init(cfg Config) error {
	level, err := cfg.level()
	if err != nil {
		return err
	}

	dir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	file := filepath.Join(dir, constants.AppName+".log")

	var out io.Writer = &lumberjack.Logger{
		Filename:   file,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}
	if cfg.Debug {
		console := cfg.Console
		if console == nil {
			console = os.Stderr
		}
		out = io.MultiWriter(console, out)
	}

	Logger = log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Prefix:          constants.AppName,
	})
	path = file
	return nil
}

func (cfg Config) level() (log.Level, error) {
	switch {
	case cfg.Debug:
		return log.DebugLevel, nil
	case cfg.Level == "":
		return log.WarnLevel, nil
	}
	lvl, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	return lvl, nil
}

// Path returns the active log file, or "" before Init.
func Path() string {
	return path
}

func current() *log.Logger {
	if Logger == nil {
		return discard
	}
	return Logger
}

func Debug(msg string, keyvals ...interface{}) { current().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...interface{})  { current().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...interface{})  { current().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...interface{}) { current().Error(msg, keyvals...) }

// Fatal logs msg and exits with status 1.
func Fatal(msg string, keyvals ...interface{}) {
	current().Error(msg, keyvals...)
	os.Exit(1)
}
