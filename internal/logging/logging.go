// Package logging sets up the zerolog pipeline: colored console output,
// plain console format to the session log file, and an optional GELF
// stream to Graylog.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
)

// ParseLevel converts a config log level string to a zerolog level,
// defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup builds the root logger. file may be nil to skip the file writer;
// gelfAddr may be empty to skip Graylog.
func Setup(level string, file io.Writer, gelfAddr string) (zerolog.Logger, error) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		},
	}
	if file != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        file,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}
	if gelfAddr != "" {
		gw, err := gelf.NewWriter(gelfAddr)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("connecting gelf writer: %w", err)
		}
		writers = append(writers, gw)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	logger.Info().Str("loglevel", logger.GetLevel().String()).Msg("Logging set up")
	return logger, nil
}

// LogFilePath builds a session log file path using OS-appropriate path
// separators.
func LogFilePath(logsDir, appName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", appName, sessionStart.Format("20060102_150405")),
	)
}

// RemoveOldLogs deletes .log files under path older than daysDelta days.
func RemoveOldLogs(logger zerolog.Logger, path string, daysDelta int) {
	files, err := os.ReadDir(path)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read logs dir")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -daysDelta)
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".log" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(path, f.Name())); err != nil {
				logger.Warn().Err(err).Str("file", f.Name()).Msg("Failed to remove old log")
			}
		}
	}
}
