// Package logging configures the process-wide logrus logger. All log
// output goes to stderr; stdout is reserved for rendered entries.
package logging

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string
	Format string // json, text, simple, or compact
}

// CompactFormatter renders log lines as bracketed level/component
// prefixes followed by the message, for readable CLI diagnostics.
type CompactFormatter struct {
	ShowTime bool
}

// Format renders a single log entry.
func (f *CompactFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	if f.ShowTime {
		b.WriteString(fmt.Sprintf("[%s]", entry.Time.Format("15:04:05")))
	}

	b.WriteString(fmt.Sprintf("[%s]", strings.ToUpper(entry.Level.String())))

	component, hasComponent := entry.Data["component"]
	source, hasSource := entry.Data["source"]
	if hasComponent {
		b.WriteString(fmt.Sprintf("[%s]", component))
	}
	if hasSource {
		b.WriteString(fmt.Sprintf("[%s]", source))
	}

	b.WriteString(" ")
	b.WriteString(entry.Message)

	remaining := make(map[string]interface{})
	for k, v := range entry.Data {
		if k != "component" && k != "source" {
			remaining[k] = v
		}
	}
	if len(remaining) > 0 {
		keys := make([]string, 0, len(remaining))
		for k := range remaining {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString(" (")
		for i, key := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(fmt.Sprintf("%s=%v", key, remaining[key]))
		}
		b.WriteString(")")
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// InitLogger initializes the global logger with the provided configuration.
func InitLogger(config LogConfig) {
	Logger = logrus.New()
	Logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.WarnLevel
		Logger.Warnf("Invalid log level '%s', defaulting to 'warn'", config.Level)
	}
	Logger.SetLevel(level)

	switch strings.ToLower(config.Format) {
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	case "compact":
		Logger.SetFormatter(&CompactFormatter{ShowTime: true})
	case "text":
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	case "simple", "":
		Logger.SetFormatter(&CompactFormatter{ShowTime: false})
	default:
		Logger.SetFormatter(&CompactFormatter{ShowTime: false})
		Logger.Warnf("Invalid log format '%s', defaulting to 'simple'", config.Format)
	}
}

// GetLogger returns the global logger instance.
func GetLogger() *logrus.Logger {
	if Logger == nil {
		InitLogger(LogConfig{Level: "warn", Format: "simple"})
	}
	return Logger
}

// WithComponent tags log entries with the originating component.
func WithComponent(component string) *logrus.Entry {
	return GetLogger().WithField("component", component)
}

// WithSource tags log entries with the input source they concern.
func WithSource(component, source string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"component": component,
		"source":    source,
	})
}

func WithError(err error) *logrus.Entry {
	return GetLogger().WithError(err)
}
