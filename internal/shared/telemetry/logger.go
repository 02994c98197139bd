// Package telemetry writes one JSON object per log line.
package telemetry

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel maps "debug", "warn", "error" and anything else to info.
func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

var (
	mu       sync.Mutex
	out      io.Writer = os.Stdout
	minLevel           = LevelInfo
	now                = time.Now
)

// SetOutput redirects log lines to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// SetLevel drops lines below l and returns the previous threshold.
func SetLevel(l Level) Level {
	mu.Lock()
	defer mu.Unlock()
	prev := minLevel
	minLevel = l
	return prev
}

func Debug(msg string, fields map[string]any) { Log(LevelDebug, msg, fields) }

func Info(msg string, fields map[string]any) { Log(LevelInfo, msg, fields) }

func Warn(msg string, fields map[string]any) { Log(LevelWarn, msg, fields) }

func Error(msg string, fields map[string]any) { Log(LevelError, msg, fields) }

// Log writes msg with fields at level l. Error values are flattened to their message;
// the ts, level and msg keys cannot be overridden by fields.
func Log(l Level, msg string, fields map[string]any) {
	mu.Lock()
	defer mu.Unlock()
	if l < minLevel {
		return
	}

	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		if err, ok := v.(error); ok && err != nil {
			v = err.Error()
		}
		entry[k] = v
	}
	entry["ts"] = now().UTC().Format(time.RFC3339Nano)
	entry["level"] = l.String()
	entry["msg"] = msg

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry); err != nil {
		_ = enc.Encode(map[string]any{
			"ts":    entry["ts"],
			"level": LevelError.String(),
			"msg":   "telemetry.encode_failed",
			"event": msg,
			"error": err.Error(),
		})
	}
}
