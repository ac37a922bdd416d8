package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
}

var (
	mu     sync.RWMutex
	logger *log.Logger
	file   *lumberjack.Logger
	active Config
)

// Init points the global logger at <ConfigDir>/logs/nutrilog.log.
// Calling it again with the same config keeps the open file; a different
// config closes the previous file before opening the new one.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if file != nil && cfg == active {
		return nil
	}
	if err := closeLocked(); err != nil {
		return err
	}

	file = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "nutrilog.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	active = cfg

	level := log.WarnLevel
	var writer io.Writer = file
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, file)
	}

	logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "nutrilog",
	})
	return nil
}

// Close flushes and closes the log file. Logging after Close is a no-op
// until the next Init.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeLocked()
}

func closeLocked() error {
	logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	active = Config{}
	return err
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Debug(msg, keyvals...)
	}
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Info(msg, keyvals...)
	}
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Warn(msg, keyvals...)
	}
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	if l := current(); l != nil {
		l.Error(msg, keyvals...)
	}
}
