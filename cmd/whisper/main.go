// Command whisper is the CLI driver SPEC_FULL.md §6 names: it loads a
// whisper.yaml config, builds a logger, and runs a single source file
// through pkg/embed, exiting with the code the spec assigns to each
// outcome.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/kannanvijayan/whisper/internal/config"
	"github.com/kannanvijayan/whisper/internal/logging"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/pkg/embed"
)

// version is overridable at build time via -ldflags "-X main.version=...",
// matching the teacher's own BackendType build-time override convention.
var version = "dev"

const (
	exitOK          = 0
	exitParseError  = 1
	exitUncaughtExc = 2
	exitInternalErr = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a whisper.yaml config file")
	logLevel := flag.String("log-level", "", "override the configured log level (debug|info|warn|error)")
	logFile := flag.String("log-file", "", "override the configured log file path")
	showVersion := flag.Bool("version", false, "print the module version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("whisper", version)
		return exitOK
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternalErr
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternalErr
	}
	defer closeLog()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: whisper [-config path] [-log-level level] [-log-file path] <source-file>")
		return exitInternalErr
	}

	sourcePath := flag.Arg(0)
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitInternalErr
	}

	return interpret(source, cfg, logger)
}

func interpret(source []byte, cfg config.Config, logger *slog.Logger) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("internal panic", "panic", r)
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			code = exitInternalErr
		}
	}()

	toks, err := syntax.Tokenize(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return exitParseError
	}
	prog, err := syntax.ParseProgram(toks)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return exitParseError
	}
	logger.Debug("parsed source", "statements", len(prog.Stmts))

	in := embed.NewWithLogger(cfg.HeapConfig(), logger)
	pst := syntax.Build(prog)

	result, err := in.RunSyntax(pst)
	stats := in.HeapStats()
	logger.Debug("evaluation finished", "minor_collections", stats.MinorCollections, "major_collections", stats.MajorCollections, "bytes_allocated", stats.BytesAllocated)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if result.Kind == object.EvalError {
			return exitInternalErr
		}
		return exitUncaughtExc
	}
	return exitOK
}
