// Package logging builds the structured logger SPEC_FULL.md §4.8
// describes: an slog.Logger fanning out to a colorized console handler
// and, when configured, a newline-JSON file handler, grounded on
// reusee-tai's logs.Logger (slogmulti.Fanout over several slog.Handler
// values) and funvibe-funxy's TTY/NO_COLOR detection in
// internal/evaluator/builtins_term.go.
package logging

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"

	"github.com/kannanvijayan/whisper/internal/config"
)

// New builds the fanout logger described by cfg.Log: a console handler
// always present, plus a file handler when cfg.Log.File is non-empty.
// The returned closer must be called (typically via defer) to flush and
// close the file handler, if one was opened.
func New(cfg config.Log) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.Level)

	var handlers []slog.Handler
	handlers = append(handlers, consoleHandler(level))

	closer := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file %s: %w", cfg.File, err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
		closer = func() { f.Close() }
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// consoleHandler builds a plain slog.TextHandler when stderr isn't a
// terminal or NO_COLOR is set (matching the teacher's detectColorLevel
// convention), and a ReplaceAttr-colorized variant otherwise.
func consoleHandler(level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if !colorEnabled() {
		return slog.NewTextHandler(os.Stderr, opts)
	}
	opts.ReplaceAttr = colorizeLevel
	return slog.NewTextHandler(os.Stderr, opts)
}

func colorEnabled() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func colorizeLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	lvl, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}
	var code string
	switch {
	case lvl >= slog.LevelError:
		code = "\x1b[31m"
	case lvl >= slog.LevelWarn:
		code = "\x1b[33m"
	case lvl >= slog.LevelInfo:
		code = "\x1b[36m"
	default:
		code = "\x1b[90m"
	}
	a.Value = slog.StringValue(code + lvl.String() + "\x1b[0m")
	return a
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
