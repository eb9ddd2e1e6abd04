// Package logger provides a simple, singleton utility for logging to standard error and,
// once a database is attached, to the log_entries table.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	}
	return "UNKNOWN"
}

// ParseLevel maps a config string onto a Level. Unknown names yield LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug
	case "WARNING", "WARN":
		return LevelWarning
	case "ERROR":
		return LevelError
	case "FATAL":
		return LevelFatal
	}
	return LevelInfo
}

// Logger writes log messages to the console and, optionally, the database.
type Logger struct {
	mu sync.Mutex
	// db holds the database connection for writing log entries, nil until InitLogger
	db *gorm.DB
	// consoleLogger handles console output
	consoleLogger *log.Logger
	minLevel      Level
	runID         string
}

var (
	instance = &Logger{
		consoleLogger: log.New(os.Stderr, "", 0),
		minLevel:      LevelInfo,
	}
	once sync.Once
)

// InitLogger attaches a gorm.DB so that every log line is also stored in log_entries.
// Only the first call has an effect.
func InitLogger(db *gorm.DB, runID string) error {
	var err error
	once.Do(func() {
		if db == nil {
			err = fmt.Errorf("database connection cannot be nil")
			return
		}
		instance.mu.Lock()
		instance.db = db
		instance.runID = runID
		instance.mu.Unlock()

		InfoF("Logger initialized with database backend (run %s)", runID)
	})
	return err
}

// Get returns the singleton Logger instance. It is usable before InitLogger,
// in which case it only writes to the console.
func Get() *Logger {
	return instance
}

// SetOutput redirects console output.
func SetOutput(w io.Writer) {
	instance.mu.Lock()
	defer instance.mu.Unlock()
	instance.consoleLogger = log.New(w, "", 0)
}

// SetLevel drops messages below the given level.
func SetLevel(l Level) {
	instance.mu.Lock()
	defer instance.mu.Unlock()
	instance.minLevel = l
}

// LogEntry mirrors the db.LogEntry row to avoid an import cycle.
type LogEntry struct {
	Timestamp string
	Level     string
	Message   string
	RunID     string
}

// output is the internal method that formats, writes to console, and saves to database.
func (l *Logger) output(level Level, format string, args ...any) {
	l.mu.Lock()
	if level < l.minLevel {
		l.mu.Unlock()
		return
	}
	console, db, runID := l.consoleLogger, l.db, l.runID
	l.mu.Unlock()

	message := fmt.Sprintf(format, args...)

	// Format timestamp with milliseconds: 2006-01-02 15:04:05.000
	timestampStr := time.Now().Format("2006-01-02 15:04:05.000")

	console.Println(fmt.Sprintf("%s [%s] %s", timestampStr, level, message))

	if db == nil {
		return
	}

	// Write to database asynchronously so the frame loop never blocks on sqlite
	go func() {
		entry := map[string]interface{}{
			"timestamp": timestampStr,
			"level":     level.String(),
			"message":   message,
			"run_id":    runID,
		}
		if err := db.Table("log_entries").Create(entry).Error; err != nil {
			// Console only, logging here would recurse
			console.Printf("%s [ERROR] Failed to write log to database: %v\n",
				time.Now().Format("2006-01-02 15:04:05.000"), err)
		}
	}()
}

// Debug logs a debug-level message
func Debug(message string) {
	Get().output(LevelDebug, "%s", message)
}

// DebugF logs a formatted debug-level message
func DebugF(format string, args ...any) {
	Get().output(LevelDebug, format, args...)
}

// Info logs an info-level message
func Info(message string) {
	Get().output(LevelInfo, "%s", message)
}

// InfoF logs a formatted info-level message
func InfoF(format string, args ...any) {
	Get().output(LevelInfo, format, args...)
}

// Warning logs a warning-level message
func Warning(message string) {
	Get().output(LevelWarning, "%s", message)
}

// WarningF logs a formatted warning-level message
func WarningF(format string, args ...any) {
	Get().output(LevelWarning, format, args...)
}

// Error logs an error-level message
func Error(message string) {
	Get().output(LevelError, "%s", message)
}

// ErrorF logs a formatted error-level message
func ErrorF(format string, args ...any) {
	Get().output(LevelError, format, args...)
}

// Fatal logs a fatal-level message and exits the program
func Fatal(message string) {
	Get().output(LevelFatal, "%s", message)
	// Give goroutine a moment to write to database before exiting
	time.Sleep(100 * time.Millisecond)
	os.Exit(1)
}

// FatalF logs a formatted fatal-level message and exits the program
func FatalF(format string, args ...any) {
	Get().output(LevelFatal, format, args...)
	// Give goroutine a moment to write to database before exiting
	time.Sleep(100 * time.Millisecond)
	os.Exit(1)
}
