// =============================================================================
// help.go - Shell Help Text
// =============================================================================

package main

import (
	"fmt"
	"io"
	"strings"
)

// printHelp writes the command overview, or the entry for topic. It reports
// whether the topic was found.
func printHelp(w io.Writer, topic string) bool {
	if topic == "" {
		fmt.Fprint(w, helpOverview)
		return true
	}
	key := strings.TrimPrefix(strings.ToLower(topic), ".")
	if alias, ok := helpAliases[key]; ok {
		key = alias
	}
	text, ok := commandHelp[key]
	if !ok {
		return false
	}
	fmt.Fprintln(w, text)
	return true
}

const helpOverview = `Position:
  .board            Show the current position
  .fen [FEN]        Show the position as FEN, or set it
  .new              Start a new game from the initial position
  <moves>           Play moves in long algebraic notation (e2e4 e7e5)
  .undo             Take back the last position change
  .svg <path>       Write the position as an SVG diagram

Engine:
  .go [limit]       Search for the best move (depth 6, movetime 250, nodes N)
  .eval             Evaluate the position over JSON-RPC
  .static           Static evaluation of the position
  .moves            List the legal moves
  .attrs <move>     Describe a move (captures, castling, en passant)
  .san <move>       Show a move in standard algebraic notation
  .version          Show engine name, author and API version
  .options          List the engine's UCI options
  .set <name=value> Set a UCI option
  .raw <line>       Send a raw protocol line and show the reply

Shell:
  .help [cmd]       Show help (or help for a specific command)
  .quit             Exit
`

// GO CONCEPT: Map Literals as Lookup Tables
// -----------------------------------------
// helpAliases and commandHelp are package-level map literals, built once
// at program start. A lookup with the two-value form, v, ok := m[k],
// separates "missing" from "present with the zero value", which is how
// printHelp reports unknown topics.

var helpAliases = map[string]string{
	"h": "help", "?": "help",
	"q": "quit", "exit": "quit",
	"b": "board",
	"g": "go",
	"e": "eval",
	"m": "moves",
	"u": "undo",
}

var commandHelp = map[string]string{
	"help": `  .help [command]
    Show all commands, or detailed help for one.
    Examples:
      .help
      .help go`,

	"quit": `  .quit
    Send quit to the engine, wait for it to exit and leave the shell.
    Ctrl-D does the same.`,

	"board": `  .board
    Draw the current position, rank 8 at the top, followed by its FEN.
    Upper case is White, lower case is Black, '.' is an empty square.`,

	"fen": `  .fen [FEN]
    Without an argument, print the FEN of the current position.
    With one, replace the position. The FEN is checked locally before
    it is accepted.
    Example:
      .fen 8/8/8/8/8/8/6k1/4K2R w K - 0 1`,

	"new": `  .new
    Send ucinewgame and reset to the initial position. Clears the undo
    history.`,

	"undo": `  .undo
    Restore the position before the last .fen, .new or move list.`,

	"svg": `  .svg <path>
    Write an SVG diagram of the current position to path. The squares of
    the last move played are highlighted.`,

	"go": `  .go [limit]
    Search the current position and print the best move together with
    the final search line (depth, score, nodes, principal variation).
    The limit is one of:
      depth <n>       Search n plies
      movetime <ms>   Search for ms milliseconds
      nodes <n>       Search n nodes
      <n>             Same as depth <n>
    Without a limit the --depth, --movetime or --nodes flag applies,
    otherwise movetime 100.`,

	"eval": `  .eval
    Ask the engine for a full evaluation over JSON-RPC and print the
    outcome (score, mate distance or result) with the principal
    variation and search depth.`,

	"static": `  .static
    Print the engine's static evaluation of the position, without any
    search.`,

	"moves": `  .moves
    List the legal moves in the current position as reported by the
    engine.`,

	"attrs": `  .attrs <move>
    Describe a move: SAN, capture square, en passant and castling
    details.
    Example:
      .attrs e1g1`,

	"san": `  .san <move>
    Convert a move in long algebraic notation to SAN, for example
    g1f3 -> Nf3.`,

	"version": `  .version
    Show the engine name and author from the handshake, and the engine's
    extension API version.`,

	"options": `  .options
    List the UCI options the engine declared during the handshake, with
    their type and default value.`,

	"set": `  .set <name=value>
    Send setoption for one UCI option and wait for the engine to be
    ready.
    Example:
      .set Hash=64`,

	"raw": `  .raw <line>
    Send line to the engine verbatim, follow it with isready, and print
    every reply up to readyok. Useful for engine-specific commands.
    Example:
      .raw ext:version`,
}
