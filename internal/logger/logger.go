// Package logger wraps a process-wide charmbracelet logger that writes to a
// rotated file under the config directory.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/hedaya/internal/constants"
)

// Logger is nil until Init succeeds; the helpers are no-ops before that.
var Logger *log.Logger

var logPath string

type Config struct {
	// Debug forces debug level and mirrors output to stderr.
	Debug bool
	// Level is one of debug, info, warn, error. Empty means warn.
	Level     string
	ConfigDir string
}

func parseLevel(cfg Config) (log.Level, error) {
	if cfg.Debug {
		return log.DebugLevel, nil
	}
	if strings.TrimSpace(cfg.Level) == "" {
		return log.WarnLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	return level, nil
}

func Init(cfg Config) error {
	level, err := parseLevel(cfg)
	if err != nil {
		return err
	}

	logDir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	path := filepath.Join(logDir, constants.AppName+".log")

	var writer io.Writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, writer)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	logPath = path
	return nil
}

// Path is the active log file, or "" before Init.
func Path() string {
	if Logger == nil {
		return ""
	}
	return logPath
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
