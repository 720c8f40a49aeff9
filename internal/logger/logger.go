// Package logger provides leveled logging with support for debug, info, warn, and error levels.
// Messages are printf-formatted and written either as prefixed text lines or as
// one JSON object per line, depending on the configured format.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level
type Level int

const (
	// DebugLevel logs are typically voluminous, and are usually disabled in production.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual human review.
	WarnLevel
	// ErrorLevel logs are high-priority. If the dashboard is running smoothly, it shouldn't generate any error-level logs.
	ErrorLevel
)

// String returns the lower-case level name
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "fatal"
	}
}

// ParseLevel maps a level name to a Level, defaulting to InfoLevel
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger provides leveled logging
type Logger struct {
	level  Level
	json   bool
	out    io.Writer
	logger *log.Logger
	mu     sync.Mutex
}

var (
	// Global logger instance
	defaultLogger *Logger

	// exit terminates the process after a fatal message
	exit = os.Exit
)

// Init initializes the default logger with the specified level and format
func Init(level string, format string) {
	InitWithWriter(os.Stderr, level, format)
}

// InitWithWriter is Init with an explicit destination
func InitWithWriter(w io.Writer, level string, format string) {
	jsonFormat := strings.ToLower(format) == "json"

	flags := log.LstdFlags | log.Lmicroseconds | log.Lshortfile
	if jsonFormat {
		flags = 0
	}

	defaultLogger = &Logger{
		level:  ParseLevel(level),
		json:   jsonFormat,
		out:    w,
		logger: log.New(w, "", flags),
	}
}

// emit writes msg; depth is the number of frames between emit and the
// logging call site
func (l *Logger) emit(depth int, level Level, msg string) {
	if !l.json {
		_ = l.logger.Output(depth+1, fmt.Sprintf("[%s] %s", strings.ToUpper(level.String()), msg))
		return
	}

	line, err := json.Marshal(struct {
		Time  string `json:"time"`
		Level string `json:"level"`
		Msg   string `json:"msg"`
	}{
		Time:  time.Now().UTC().Format(time.RFC3339Nano),
		Level: level.String(),
		Msg:   msg,
	})
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(append(line, '\n'))
}

func logf(level Level, format string, args ...interface{}) {
	if defaultLogger != nil && defaultLogger.level <= level {
		defaultLogger.emit(3, level, fmt.Sprintf(format, args...))
	}
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) {
	logf(DebugLevel, format, args...)
}

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) {
	logf(InfoLevel, format, args...)
}

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) {
	logf(WarnLevel, format, args...)
}

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) {
	logf(ErrorLevel, format, args...)
}

// Fatal logs a message at ErrorLevel and exits
func Fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if defaultLogger != nil {
		defaultLogger.emit(2, ErrorLevel+1, msg)
	} else {
		_ = log.Output(2, "[FATAL] "+msg)
	}
	exit(1)
}
