// Package logger provides structured loggers for the different stages of the
// transcoding pipeline. It wraps logrus and exposes category-specific log
// entries such as MainLog, CfgLog, TranscoderLog, etc. The logging level and
// caller reporting can be adjusted at runtime via InitLog.
package logger

import (
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

const (
	moduleNameSerde = "SERDE"
)

var (
	initOnce sync.Once

	// MainLog is the primary logger for high-level lifecycle events
	// (startup, run summary, exit).
	MainLog = newCategory("MAIN")

	// CfgLog is used for configuration loading, validation, and printing.
	CfgLog = newCategory("CFG")

	// CodecLog is for field codec registration and lookups.
	CodecLog = newCategory("CODEC")

	// SchemaLog is for schema walking (binding decoded trees, building wire trees).
	SchemaLog = newCategory("SCHEMA")

	// TranscoderLog is for per-format encode/decode calls.
	TranscoderLog = newCategory("TRANSCODER")

	// StorageLog is for persistence of rendered documents (memory/file).
	StorageLog = newCategory("STORAGE")

	// PipelineLog is for the decode -> encode fan-out of a single record.
	PipelineLog = newCategory("PIPELINE")
)

func newCategory(category string) *log.Entry {
	return log.WithFields(log.Fields{
		"module":   moduleNameSerde,
		"category": category,
	})
}

// InitLog configures the global logrus settings. It is safe to call multiple
// times; the formatter is installed once, subsequent calls update the log
// level and reportCaller flag.
func InitLog(levelString string, reportCaller bool) error {
	var initErr error

	initOnce.Do(func() {
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	})

	parsedLevel, parseErr := parseLogLevel(levelString)
	if parseErr != nil {
		// Fallback to info if parsing fails, but still return an error
		log.SetLevel(log.InfoLevel)
		CfgLog.Warnf("invalid log level %q, falling back to info: %v", levelString, parseErr)
		initErr = parseErr
	} else {
		log.SetLevel(parsedLevel)
	}

	log.SetReportCaller(reportCaller)

	return initErr
}

// parseLogLevel converts a string log level (case-insensitive) into a logrus.Level.
func parseLogLevel(levelString string) (log.Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(levelString))

	switch normalized {
	case "trace":
		return log.TraceLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal":
		return log.FatalLevel, nil
	case "panic":
		return log.PanicLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("unknown log level: %s", levelString)
	}
}
