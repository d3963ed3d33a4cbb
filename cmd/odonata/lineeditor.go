// =============================================================================
// lineeditor.go - Line Input for the Shell
// =============================================================================
//
// In a terminal the shell reads through ergochat/readline: Emacs key
// bindings, Tab completion of dot-commands and help topics, and a history
// file that keeps commands worth recalling (not .quit, not repeats of the
// previous line). When stdin is piped (scripts, Emacs comint, tests) a
// bufio.Scanner reads lines and the prompt is printed by hand, so a
// transcript still shows the move number and side to move.
//
// =============================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ergochat/readline"
	"golang.org/x/term"
)

const (
	historyFileName = ".odonata_history"
	historySize     = 500
)

// searchLimitWords complete the argument of .go.
var searchLimitWords = []string{"depth", "movetime", "nodes"}

// LineEditor reads one line at a time from the user.
type LineEditor struct {
	interactive bool

	// rl is set in interactive mode only.
	rl *readline.Instance
	// last is the most recent line saved to history.
	last string

	// scanner and out are set in non-interactive mode only.
	scanner *bufio.Scanner
	out     io.Writer
}

// NewLineEditor returns an interactive editor when in is a terminal and the
// shell is not running inside Emacs, otherwise a scanner over in.
func NewLineEditor(in *os.File, out io.Writer) *LineEditor {
	interactive := term.IsTerminal(int(in.Fd())) && os.Getenv("INSIDE_EMACS") == ""
	if !interactive {
		return newScannerEditor(in, out)
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:            filepath.Join(homeDir(), historyFileName),
		HistoryLimit:           historySize,
		HistorySearchFold:      true,
		DisableAutoSaveHistory: true,
		AutoComplete:           newCompleter(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: readline init failed (%v), using basic input\n", err)
		return newScannerEditor(in, out)
	}
	return &LineEditor{interactive: true, rl: rl}
}

func newScannerEditor(in io.Reader, out io.Writer) *LineEditor {
	return &LineEditor{scanner: bufio.NewScanner(in), out: out}
}

// GO CONCEPT: Deriving Data Instead of Repeating It
// -------------------------------------------------
// The completion table is built from commandHelp, the same map .help
// prints from. Adding a command to the help text is enough to make it
// completable; there is no second list to keep in step.
//
// Map iteration order in Go is deliberately randomised, so anything shown
// to a user is sorted first. maps.Keys returns an iterator (iter.Seq) and
// slices.Sorted collects and sorts it in one call.

// dotCommands returns every documented command with its leading dot,
// sorted.
func dotCommands() []string {
	names := slices.Sorted(maps.Keys(commandHelp))
	for i, n := range names {
		names[i] = "." + n
	}
	return names
}

// newCompleter completes dot-commands, the topic after .help and the limit
// kind after .go. Moves are not completed.
func newCompleter() *readline.PrefixCompleter {
	var topics []*readline.PrefixCompleter
	for _, name := range slices.Sorted(maps.Keys(commandHelp)) {
		topics = append(topics, readline.PcItem(name))
	}
	var limits []*readline.PrefixCompleter
	for _, w := range searchLimitWords {
		limits = append(limits, readline.PcItem(w))
	}

	var items []*readline.PrefixCompleter
	for _, cmd := range dotCommands() {
		switch cmd {
		case ".help":
			items = append(items, readline.PcItem(cmd, topics...))
		case ".go":
			items = append(items, readline.PcItem(cmd, limits...))
		default:
			items = append(items, readline.PcItem(cmd))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

// worthRecording reports whether line belongs in the history file given the
// previously recorded line. Blank lines, repeats and quit commands are
// dropped.
func worthRecording(line, last string) bool {
	if line == "" || line == last {
		return false
	}
	act, err := translate(line)
	return err != nil || act.kind != actQuit
}

// GetLine prints prompt and returns the next line without its newline.
// It returns io.EOF at end of input and on Ctrl-C.
func (le *LineEditor) GetLine(prompt string) (string, error) {
	if le.interactive {
		return le.getInteractiveLine(prompt)
	}
	return le.getNonInteractiveLine(prompt)
}

func (le *LineEditor) getInteractiveLine(prompt string) (string, error) {
	le.rl.SetPrompt(prompt)
	line, err := le.rl.Readline()
	if err != nil {
		if err == readline.ErrInterrupt {
			return "", io.EOF
		}
		return "", err
	}
	le.record(line)
	return line, nil
}

// record saves line to history when worthRecording allows it.
func (le *LineEditor) record(line string) {
	trimmed := strings.TrimSpace(line)
	if !worthRecording(trimmed, le.last) {
		return
	}
	le.last = trimmed
	if le.rl != nil {
		le.rl.SaveToHistory(trimmed)
	}
}

func (le *LineEditor) getNonInteractiveLine(prompt string) (string, error) {
	fmt.Fprint(le.out, prompt)
	if !le.scanner.Scan() {
		if err := le.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return le.scanner.Text(), nil
}

// Close saves history and restores the terminal. It is safe to call more
// than once.
func (le *LineEditor) Close() {
	if le.rl != nil {
		le.rl.Close()
		le.rl = nil
	}
}

// IsInteractive reports whether readline is in use.
func (le *LineEditor) IsInteractive() bool {
	return le.interactive
}

// homeDir returns the user's home directory, or "." if it is unknown.
func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
