// Package log builds log/slog handlers from command-line style settings.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	JSONFormat = "json"
	TextFormat = "text"
)

// CreateHandler creates a [slog.Handler] writing to w from level and format
// names. An empty format means text.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(w, opts), nil
	case TextFormat, "":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", logFormat)
	}
}

// GetLevel parses a level name. An empty name means warn.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return slog.LevelError, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}
