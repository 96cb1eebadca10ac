package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// LogFilePath is the log file, relative to the working directory (project root when run via go run ./cmd/colliderview).
const LogFilePath = "logs/colliderview.log"

// maxLines bounds the in-memory history shown by the debug overlay.
const maxLines = 64

// Logger wraps a zerolog.Logger and keeps the most recent formatted lines in memory.
type Logger struct {
	zerolog.Logger

	mem  *memorySink
	file *os.File
}

// Options selects the outputs. An empty FilePath disables the file sink; a nil Console disables console output.
type Options struct {
	Level    zerolog.Level
	FilePath string
	Console  io.Writer
}

// DefaultOptions logs at info level to stderr and LogFilePath.
func DefaultOptions() Options {
	return Options{
		Level:    zerolog.InfoLevel,
		FilePath: LogFilePath,
		Console:  os.Stderr,
	}
}

// New builds a Logger. The log directory is created if needed.
func New(opts Options) (*Logger, error) {
	mem := &memorySink{}
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: mem, NoColor: true, TimeFormat: "2006-01-02 15:04:05"},
	}
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.Kitchen})
	}
	var file *os.File
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, eris.Wrap(err, "create log directory")
		}
		f, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, eris.Wrapf(err, "open log file %s", opts.FilePath)
		}
		file = f
		writers = append(writers, f)
	}
	zl := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(opts.Level).
		With().
		Timestamp().
		Logger()
	return &Logger{Logger: zl, mem: mem, file: file}, nil
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop(), mem: &memorySink{}}
}

// Lines returns a copy of the most recent lines, oldest first.
func (l *Logger) Lines() []string {
	return l.mem.lines()
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// ParseLevel maps a config string to a zerolog level; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel, eris.Wrapf(err, "parse log level %q", s)
	}
	return lvl, nil
}

// memorySink stores formatted lines in a ring of maxLines entries.
type memorySink struct {
	mu  sync.Mutex
	buf []string
}

func (m *memorySink) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		m.buf = append(m.buf, line)
	}
	if over := len(m.buf) - maxLines; over > 0 {
		m.buf = append(m.buf[:0], m.buf[over:]...)
	}
	return len(p), nil
}

func (m *memorySink) lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.buf))
	copy(out, m.buf)
	return out
}
