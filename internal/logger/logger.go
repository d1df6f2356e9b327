// Package logger provides the host's leveled logging surface: one
// io.Discard-gated *log.Logger per level, matching the teacher's
// logger package, enriched with lumberjack-backed file rotation
// (grounded on loykin-provisr's internal/logger) so a long-running
// host does not grow unbounded log files.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

var defaultLogger *Logger

// Logger holds one gated *log.Logger per level. Levels below the
// configured floor write to io.Discard instead of being skipped with a
// branch, so callers never need to check a level before logging.
type Logger struct {
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// LogLevel is the minimum severity a Logger will actually emit.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// GetLogLevelFromString maps a config string to a LogLevel, defaulting
// to WARN for anything unrecognized.
func GetLogLevelFromString(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return WARN
	}
}

// Config names the rotation policy and destination for file output. An
// empty Dir means log to stdout only.
type Config struct {
	Dir        string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Console    bool
}

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
	defaultMaxAgeDays = 7
)

func valOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Init initializes the package-level logger per cfg. When cfg.Dir is
// empty, output goes to stdout only, regardless of cfg.Console.
func Init(cfg Config) {
	var output io.Writer
	if cfg.Dir == "" {
		output = os.Stdout
	} else {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory %s: %v\n", cfg.Dir, err)
			output = os.Stdout
		} else {
			rotating := &lumberjack.Logger{
				Filename:   filepath.Join(cfg.Dir, "hostctl.log"),
				MaxSize:    valOr(cfg.MaxSizeMB, defaultMaxSizeMB),
				MaxBackups: valOr(cfg.MaxBackups, defaultMaxBackups),
				MaxAge:     valOr(cfg.MaxAgeDays, defaultMaxAgeDays),
				Compress:   cfg.Compress,
			}
			if cfg.Console {
				output = io.MultiWriter(os.Stdout, rotating)
			} else {
				output = rotating
			}
		}
	}

	level := GetLogLevelFromString(cfg.Level)
	flags := log.LstdFlags | log.Lshortfile

	defaultLogger = &Logger{
		debugLogger: log.New(io.Discard, "DEBUG: ", flags),
		infoLogger:  log.New(io.Discard, "INFO: ", flags),
		warnLogger:  log.New(io.Discard, "WARN: ", flags),
		errorLogger: log.New(io.Discard, "ERROR: ", flags),
	}
	if level <= DEBUG {
		defaultLogger.debugLogger.SetOutput(output)
	}
	if level <= INFO {
		defaultLogger.infoLogger.SetOutput(output)
	}
	if level <= WARN {
		defaultLogger.warnLogger.SetOutput(output)
	}
	if level <= ERROR {
		defaultLogger.errorLogger.SetOutput(output)
	}
}

func Debug(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.debugLogger.Println(v...)
	}
}

func Debugf(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.debugLogger.Printf(format, v...)
	}
}

func Info(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.infoLogger.Println(v...)
	}
}

func Infof(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.infoLogger.Printf(format, v...)
	}
}

func Warn(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.warnLogger.Println(v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.warnLogger.Printf(format, v...)
	}
}

func Error(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.errorLogger.Println(v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.errorLogger.Printf(format, v...)
	}
}

// Fatal logs at error level then exits. If the logger was never
// initialized, it falls back to stderr so the message is never lost.
func Fatal(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.errorLogger.Fatal(v...)
	} else {
		fmt.Fprintln(os.Stderr, v...)
		os.Exit(1)
	}
}

func Fatalf(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.errorLogger.Fatalf(format, v...)
	} else {
		fmt.Fprintf(os.Stderr, format+"\n", v...)
		os.Exit(1)
	}
}
