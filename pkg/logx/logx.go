package logx

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync/atomic"
)

// Level controls which messages are emitted
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var currentLevel atomic.Int32

var std = log.New(os.Stderr, "", log.LstdFlags)

func init() {
	currentLevel.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that will be logged.
func SetLevel(l Level) {
	currentLevel.Store(int32(l))
}

func enabled(l Level) bool {
	return int32(l) >= currentLevel.Load()
}

func output(l Level, tag, msg string) {
	if !enabled(l) {
		return
	}
	std.Printf("%s %s", tag, msg)
}

func Debug(msg string)                  { output(LevelDebug, "DEBUG", msg) }
func Debugf(format string, args ...any) { output(LevelDebug, "DEBUG", fmt.Sprintf(format, args...)) }

func Info(msg string)                  { output(LevelInfo, "INFO", msg) }
func Infof(format string, args ...any) { output(LevelInfo, "INFO", fmt.Sprintf(format, args...)) }

func Warn(msg string)                  { output(LevelWarn, "WARN", msg) }
func Warnf(format string, args ...any) { output(LevelWarn, "WARN", fmt.Sprintf(format, args...)) }

func Error(msg string)                  { output(LevelError, "ERROR", msg) }
func Errorf(format string, args ...any) { output(LevelError, "ERROR", fmt.Sprintf(format, args...)) }

// Fatalf logs and exits the process.
func Fatalf(format string, args ...any) {
	std.Printf("FATAL %s", fmt.Sprintf(format, args...))
	os.Exit(1)
}

// ============================================================================
// Structured fields
// ============================================================================

// Fields is a set of key/value pairs attached to a log entry
type Fields map[string]any

// Entry carries fields to be rendered alongside the message.
type Entry struct {
	fields Fields
}

// WithFields returns an entry that prefixes every message with the fields.
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

func (e *Entry) render() string {
	if len(e.fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.fields[k])
	}
	return b.String()
}

func (e *Entry) Info(msg string)  { output(LevelInfo, "INFO", msg+e.render()) }
func (e *Entry) Warn(msg string)  { output(LevelWarn, "WARN", msg+e.render()) }
func (e *Entry) Error(msg string) { output(LevelError, "ERROR", msg+e.render()) }

func (e *Entry) Infof(format string, args ...any) {
	output(LevelInfo, "INFO", fmt.Sprintf(format, args...)+e.render())
}

func (e *Entry) Warnf(format string, args ...any) {
	output(LevelWarn, "WARN", fmt.Sprintf(format, args...)+e.render())
}

func (e *Entry) Errorf(format string, args ...any) {
	output(LevelError, "ERROR", fmt.Sprintf(format, args...)+e.render())
}
