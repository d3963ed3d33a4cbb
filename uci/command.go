package uci

import (
	"fmt"
	"strings"
	"time"

	"github.com/akanalytics/odonata-go/board"
)

// CommandType represents the type of engine command.
type CommandType int

const (
	// Standard UCI
	CmdUCI CommandType = iota
	CmdIsReady
	CmdNewGame
	CmdSetOption
	CmdPosition
	CmdGo
	CmdStop
	CmdQuit

	// Extension commands, answered by a result: line
	CmdExt

	// Anything else, sent verbatim
	CmdRaw
)

// SearchLimit bounds a search. When more than one field is set, Nodes wins
// over MoveTime, which wins over Depth. The zero value searches for
// DefaultMoveTime.
type SearchLimit struct {
	Depth    int
	MoveTime time.Duration
	Nodes    int64
}

// Format returns the arguments of the go command for l.
func (l SearchLimit) Format() string {
	switch {
	case l.Nodes > 0:
		return fmt.Sprintf("nodes %d", l.Nodes)
	case l.MoveTime > 0:
		return fmt.Sprintf("movetime %d", l.MoveTime.Milliseconds())
	case l.Depth > 0:
		return fmt.Sprintf("depth %d", l.Depth)
	default:
		return fmt.Sprintf("movetime %d", DefaultMoveTime.Milliseconds())
	}
}

// Command represents one line sent to the engine.
// Use the constructor functions (NewPositionCommand, NewGoCommand, etc.)
// to create Command instances.
type Command struct {
	Type CommandType

	// Fields used by various commands (only relevant fields are populated)
	Name  string       // For setoption, ext
	Value string       // For setoption
	FEN   string       // For position, ext
	Moves []board.Move // For position, ext
	Limit SearchLimit  // For go
	Line  string       // For raw
}

// NewUCICommand creates the handshake command.
func NewUCICommand() Command {
	return Command{Type: CmdUCI}
}

// NewIsReadyCommand creates a readiness check.
func NewIsReadyCommand() Command {
	return Command{Type: CmdIsReady}
}

// NewNewGameCommand creates a new-game reset.
func NewNewGameCommand() Command {
	return Command{Type: CmdNewGame}
}

// NewSetOptionCommand creates a setoption command.
func NewSetOptionCommand(name, value string) Command {
	return Command{Type: CmdSetOption, Name: name, Value: value}
}

// NewPositionCommand sets the current position from fen, optionally
// followed by moves.
func NewPositionCommand(fen string, moves ...board.Move) Command {
	return Command{Type: CmdPosition, FEN: fen, Moves: moves}
}

// NewGoCommand starts a search bounded by limit.
func NewGoCommand(limit SearchLimit) Command {
	return Command{Type: CmdGo, Limit: limit}
}

// NewStopCommand interrupts a running search.
func NewStopCommand() Command {
	return Command{Type: CmdStop}
}

// NewQuitCommand asks the engine to exit.
func NewQuitCommand() Command {
	return Command{Type: CmdQuit}
}

// NewExtCommand creates an extension command. fen may be empty for
// commands that take no position.
func NewExtCommand(name, fen string, moves ...board.Move) Command {
	return Command{Type: CmdExt, Name: name, FEN: fen, Moves: moves}
}

// NewRawCommand sends line unchanged.
func NewRawCommand(line string) Command {
	return Command{Type: CmdRaw, Line: line}
}

// Format returns the command as sent on the wire, without a newline.
func (c Command) Format() string {
	switch c.Type {
	case CmdUCI:
		return "uci"
	case CmdIsReady:
		return "isready"
	case CmdNewGame:
		return "ucinewgame"
	case CmdSetOption:
		return fmt.Sprintf("setoption name %s value %s", c.Name, c.Value)
	case CmdPosition:
		return "position" + formatPosition(c.FEN, c.Moves)
	case CmdGo:
		return "go " + c.Limit.Format()
	case CmdStop:
		return "stop"
	case CmdQuit:
		return "quit"
	case CmdExt:
		return ExtPrefix + c.Name + formatPosition(c.FEN, c.Moves)
	case CmdRaw:
		return c.Line
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return c.Format()
}

func formatPosition(fen string, moves []board.Move) string {
	var sb strings.Builder
	if fen != "" {
		sb.WriteString(" fen ")
		sb.WriteString(fen)
	}
	if len(moves) > 0 {
		sb.WriteString(" moves ")
		sb.WriteString(board.FormatMoves(moves))
	}
	return sb.String()
}
