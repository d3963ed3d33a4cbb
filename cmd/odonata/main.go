// =============================================================================
// main.go - Odonata Engine Shell Entry Point
// =============================================================================
//
// odonata-go starts an odonata engine as a child process and drives it from
// an interactive shell. Positions are kept locally as FEN; every question
// (search, evaluation, legal moves) is put to the engine.
//
// Usage:
//
//	odonata-go [options]
//
// =============================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/akanalytics/odonata-go/uci"
)

const (
	version = "0.3.0"

	appName = "Odonata Shell"
)

func fullTitle() string {
	return fmt.Sprintf("%s v%s (Go)", appName, version)
}

func welcomeBanner(engineName string) string {
	return fmt.Sprintf(`%s
Engine: %s

Type '.help' for available commands.
Type '.quit' to exit.
`, fullTitle(), engineName)
}

// =============================================================================
// Command-Line Arguments
// =============================================================================

type arguments struct {
	// enginePath is the odonata executable; empty means search the usual
	// build locations and PATH.
	enginePath string

	// configFile is passed to the engine as --config=<file>.
	configFile string

	// options are UCI options applied after the handshake.
	options map[string]string

	limit uci.SearchLimit

	showHelp    bool
	showVersion bool
}

// GO CONCEPT: Closures That Share State
// --------------------------------------
// value and number below are function literals that capture the local
// variable remaining. Each call consumes the next argument, so the flag
// loop and the helpers advance through the same slice without passing an
// index around. A closure captures the variable itself, not a copy of its
// value at the time the literal was written.

// parseArguments reads the flags in argv (without the program name).
func parseArguments(argv []string) (arguments, error) {
	args := arguments{options: map[string]string{}}
	remaining := argv

	value := func(flag string) (string, error) {
		if len(remaining) == 0 {
			return "", fmt.Errorf("%s requires an argument", flag)
		}
		v := remaining[0]
		remaining = remaining[1:]
		return v, nil
	}
	number := func(flag string) (int, error) {
		v, err := value(flag)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, fmt.Errorf("%s requires a positive number, got %q", flag, v)
		}
		return n, nil
	}

	for len(remaining) > 0 {
		arg := remaining[0]
		remaining = remaining[1:]

		var err error
		switch arg {
		case "--engine":
			args.enginePath, err = value(arg)

		case "--config":
			args.configFile, err = value(arg)

		case "--option":
			var kv string
			if kv, err = value(arg); err == nil {
				name, val, ok := strings.Cut(kv, "=")
				if !ok || name == "" {
					err = fmt.Errorf("--option expects name=value, got %q", kv)
				}
				args.options[name] = val
			}

		case "--depth":
			args.limit.Depth, err = number(arg)

		case "--movetime":
			var ms int
			if ms, err = number(arg); err == nil {
				args.limit.MoveTime = time.Duration(ms) * time.Millisecond
			}

		case "--nodes":
			var n int
			if n, err = number(arg); err == nil {
				args.limit.Nodes = int64(n)
			}

		case "--help", "-h":
			args.showHelp = true

		case "--version", "-v":
			args.showVersion = true

		default:
			err = fmt.Errorf("unknown argument: %s", arg)
		}
		if err != nil {
			return arguments{}, err
		}
	}
	return args, nil
}

// config builds the engine configuration for args.
func (a arguments) config() uci.Config {
	return uci.Config{
		Path:       a.enginePath,
		ConfigFile: a.configFile,
		Options:    a.options,
		Stderr:     os.Stderr,
		Logger:     uci.NewLogger(os.Stderr, uci.LevelFromEnv()),
	}
}

func printUsage() {
	fmt.Print(`USAGE: odonata-go [options]

OPTIONS:
  --engine <path>       Engine executable (default: search build dirs and PATH)
  --config <file>       Engine configuration file
  --option <name=value> Set a UCI option after the handshake (repeatable)
  --depth <n>           Default search depth for .go
  --movetime <ms>       Default search time for .go
  --nodes <n>           Default node limit for .go
  --help, -h            Show this help
  --version, -v         Show version

LOGGING:
  Protocol traffic is logged to stderr. Set RUST_LOG=debug to see every
  line sent to and received from the engine.

EXAMPLES:
  odonata-go                                Start the engine found on PATH
  odonata-go --engine ./target/release/odonata --depth 8
  odonata-go --option Hash=64 --movetime 500
`)
}

func printVersion() {
	fmt.Println(fullTitle())
}

func printError(message string) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}

// =============================================================================
// Signal Handling
// =============================================================================

// GO CONCEPT: Buffered Signal Channels
// ------------------------------------
// signal.Notify never blocks when delivering: if the channel is full the
// signal is dropped. A buffer of one guarantees the first SIGINT is kept
// even before the goroutine below reaches its receive.

// setupSignalHandler runs cleanup and exits on SIGINT or SIGTERM.
func setupSignalHandler(cleanup func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println()
		cleanup()
		os.Exit(0)
	}()
}

// =============================================================================
// Main
// =============================================================================

func main() {
	args, err := parseArguments(os.Args[1:])
	if err != nil {
		printError(err.Error())
		printUsage()
		os.Exit(1)
	}
	if args.showHelp {
		printUsage()
		return
	}
	if args.showVersion {
		printVersion()
		return
	}

	// GO CONCEPT: sync.Once
	// ---------------------
	// cleanup can be reached twice: from the signal goroutine and from the
	// end of main. once.Do runs its function on the first call only, and
	// later callers wait until that first run has finished, so the engine
	// is stopped exactly once whichever path gets there first.
	pool := uci.NewPool()
	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			if err := pool.Close(); err != nil {
				printError(fmt.Sprintf("engine shutdown: %v", err))
			}
		})
	}
	setupSignalHandler(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	client, err := pool.Get(ctx, args.config())
	cancel()
	if err != nil {
		if errors.Is(err, uci.ErrExecutableNotFound) {
			printError("no odonata executable found; use --engine <path>")
		} else {
			printError(fmt.Sprintf("failed to start engine: %v", err))
		}
		os.Exit(1)
	}

	fmt.Print(welcomeBanner(client.Version()))
	fmt.Println()

	editor := NewLineEditor(os.Stdin, os.Stdout)
	sh := newShell(client, os.Stdout, os.Stderr)
	sh.limit = args.limit
	sh.run(editor)
	editor.Close()

	cleanup()
}
