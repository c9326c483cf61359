// Package logging builds the zerolog logger shared by every command. It
// writes human output to the terminal and appends a plain timestamped
// record to the log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const fileTimeFormat = "2006-01-02 15:04:05"

type Options struct {
	// Quiet suppresses console output below warning level. The log file
	// still receives every entry.
	Quiet bool
	// FilePath is the append-only log file. Empty disables file logging.
	FilePath string
	// ConsoleOut defaults to os.Stderr.
	ConsoleOut io.Writer
}

// New returns the configured logger and a close func for the log file.
func New(opts Options) (zerolog.Logger, func() error, error) {
	console := opts.ConsoleOut
	if console == nil {
		console = os.Stderr
	}

	consoleLevel := zerolog.InfoLevel
	if opts.Quiet {
		consoleLevel = zerolog.WarnLevel
	}
	writers := []io.Writer{minLevelWriter{
		w:   zerolog.ConsoleWriter{Out: console, NoColor: !isTerminal(console), TimeFormat: "15:04:05"},
		min: consoleLevel,
	}}

	closeFile := func() error { return nil }
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, NewFileWriter(file))
		closeFile = file.Close
	}

	// Debug events reach the file writer only; the console floor is info.
	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()

	return logger, closeFile, nil
}

// NewFileWriter formats entries as "YYYY-MM-DD HH:MM:SS - LEVEL: message".
func NewFileWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:         out,
		NoColor:     true,
		TimeFormat:  fileTimeFormat,
		PartsOrder:  []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: formatFileLevel,
	}
}

func formatFileLevel(i interface{}) string {
	name := strings.ToUpper(fmt.Sprint(i))
	if name == "WARN" {
		name = "WARNING"
	}
	return "- " + name + ":"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// minLevelWriter drops entries below min for one sink of the multi writer.
type minLevelWriter struct {
	w   io.Writer
	min zerolog.Level
}

func (m minLevelWriter) Write(p []byte) (int, error) {
	return m.w.Write(p)
}

func (m minLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level != zerolog.NoLevel && level < m.min {
		return len(p), nil
	}
	return m.w.Write(p)
}

var _ zerolog.LevelWriter = minLevelWriter{}
