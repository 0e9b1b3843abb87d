// Package logging builds the structured logger shared by codepad components.
//
// Logs go to a per-service daily JSON file when a directory is configured.
// Without one they go to the writer given in Config (stderr for plain CLI
// commands, io.Discard while the full-screen editor owns the terminal).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config controls where logs go and how verbose they are.
type Config struct {
	Level   string
	Dir     string
	Service string
	// Fallback receives text logs when Dir is empty. Nil means stderr.
	Fallback io.Writer
}

// Logger wraps slog.Logger with the file it may own.
type Logger struct {
	*slog.Logger
	file *os.File
}

// ParseLevel maps config strings onto slog levels. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger. Close must be called to release the log file.
func New(cfg Config) (*Logger, error) {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	service := cfg.Service
	if service == "" {
		service = "codepad"
	}

	if cfg.Dir == "" {
		w := cfg.Fallback
		if w == nil {
			w = os.Stderr
		}
		l := slog.New(slog.NewTextHandler(w, opts)).With("service", service)
		return &Logger{Logger: l}, nil
	}

	dir := expandHome(cfg.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := slog.New(slog.NewJSONHandler(f, opts)).With("service", service)
	return &Logger{Logger: l, file: f}, nil
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := l.file.Sync(); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
