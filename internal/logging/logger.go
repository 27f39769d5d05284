// Package logging provides config-driven categorized logging for fundlookup.
// Each category gets its own zap logger. With output "file", logs are written to
// <dir>/<date>_<category>.log so the terminal form never draws log lines over the UI.
// Before Initialize is called every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fundlookup/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, config resolution
	CategoryLoader Category = "loader" // Dataset fetch and decode
	CategoryLookup Category = "lookup" // Evaluate actions and their outcome
	CategoryUI     Category = "ui"     // Terminal form events
	CategoryHTTP   Category = "http"   // HTTP form requests
)

// Logger wraps a sugared zap logger bound to one category
type Logger struct {
	category Category
	sugar    *zap.SugaredLogger
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex

	settings    config.LoggingConfig
	level       = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sharedCore  zapcore.Core // stderr output or an injected core; nil means per-category files
	openFiles   []*os.File
	initialized bool
	settingsMu  sync.RWMutex
)

// Initialize sets up logging from config. It may be called again to
// reconfigure; previously returned loggers keep their old destination.
func Initialize(cfg config.LoggingConfig) error {
	CloseAll()

	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settings = cfg
	level.SetLevel(lvl)
	sharedCore = nil

	switch cfg.Output {
	case "none":
		initialized = false
		return nil
	case "stderr":
		sharedCore = zapcore.NewCore(newEncoder(cfg.Format), zapcore.Lock(os.Stderr), level)
	case "file", "":
		if cfg.Dir == "" {
			return fmt.Errorf("logging dir required for file output")
		}
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	default:
		return fmt.Errorf("invalid logging output: %s (valid: file, stderr, none)", cfg.Output)
	}

	initialized = true
	return nil
}

// UseCore routes every category to core. Tests use it with zaptest/observer.
func UseCore(core zapcore.Core) {
	CloseAll()

	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = config.LoggingConfig{Output: "stderr"}
	sharedCore = core
	initialized = true
}

// Reset returns logging to its uninitialized no-op state.
func Reset() {
	CloseAll()

	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = config.LoggingConfig{}
	sharedCore = nil
	initialized = false
	level.SetLevel(zapcore.InfoLevel)
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", s)
	}
}

func newEncoder(format string) zapcore.Encoder {
	if format == "console" || format == "text" {
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encCfg)
}

// SetLevel changes the level of every category at runtime.
func SetLevel(s string) error {
	lvl, err := parseLevel(s)
	if err != nil {
		return err
	}
	level.SetLevel(lvl)
	return nil
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	settingsMu.RLock()
	defer settingsMu.RUnlock()

	if !initialized {
		return false
	}
	return settings.IsCategoryEnabled(string(category))
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if logging is not initialized or the category is disabled.
func Get(category Category) *Logger {
	if !IsCategoryEnabled(category) {
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	core, err := coreFor(category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: %v\n", err)
		return &Logger{category: category, sugar: zap.NewNop().Sugar()}
	}

	l := &Logger{
		category: category,
		sugar:    zap.New(core).Named(string(category)).Sugar(),
	}
	loggers[category] = l
	return l
}

// coreFor must be called with loggersMu held.
func coreFor(category Category) (zapcore.Core, error) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()

	if sharedCore != nil {
		return sharedCore, nil
	}

	date := time.Now().Format("2006-01-02")
	logPath := filepath.Join(settings.Dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open log file %s: %w", logPath, err)
	}
	openFiles = append(openFiles, file)

	return zapcore.NewCore(newEncoder(settings.Format), zapcore.AddSync(file), level), nil
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// StructuredLog writes a log entry with custom fields
func (l *Logger) StructuredLog(lvl string, msg string, fields map[string]interface{}) {
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	switch lvl {
	case "debug":
		l.sugar.Debugw(msg, kv...)
	case "warn":
		l.sugar.Warnw(msg, kv...)
	case "error":
		l.sugar.Errorw(msg, kv...)
	default:
		l.sugar.Infow(msg, kv...)
	}
}

// With returns a logger that adds key/value context to every entry
func (l *Logger) With(ctx map[string]interface{}) *Logger {
	kv := make([]interface{}, 0, len(ctx)*2)
	for k, v := range ctx {
		kv = append(kv, k, v)
	}
	return &Logger{category: l.category, sugar: l.sugar.With(kv...)}
}

// Sync flushes buffered entries of every open logger
func Sync() {
	loggersMu.RLock()
	defer loggersMu.RUnlock()
	for _, l := range loggers {
		_ = l.sugar.Sync()
	}
}

// CloseAll flushes and closes all open log files (call at shutdown)
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for _, l := range loggers {
		_ = l.sugar.Sync()
	}
	for _, f := range openFiles {
		f.Close()
	}
	openFiles = nil
	loggers = make(map[Category]*Logger)
}

// =============================================================================
// CONVENIENCE FUNCTIONS - Quick logging without getting a logger first
// These are no-ops if the category is disabled
// =============================================================================

// Boot logs to the boot category
func Boot(format string, args ...interface{}) {
	Get(CategoryBoot).Info(format, args...)
}

// BootDebug logs debug to the boot category
func BootDebug(format string, args ...interface{}) {
	Get(CategoryBoot).Debug(format, args...)
}

// Loader logs to the loader category
func Loader(format string, args ...interface{}) {
	Get(CategoryLoader).Info(format, args...)
}

// LoaderDebug logs debug to the loader category
func LoaderDebug(format string, args ...interface{}) {
	Get(CategoryLoader).Debug(format, args...)
}

// Lookup logs to the lookup category
func Lookup(format string, args ...interface{}) {
	Get(CategoryLookup).Info(format, args...)
}

// UI logs debug to the ui category
func UI(format string, args ...interface{}) {
	Get(CategoryUI).Debug(format, args...)
}
