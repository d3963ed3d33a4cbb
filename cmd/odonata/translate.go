// =============================================================================
// translate.go - Shell Input Translation
// =============================================================================
//
// translate turns one line of shell input into an action. Dot-commands are
// local shell commands; any other input is read as a list of moves in long
// algebraic notation (e2e4 e7e5 g1f3) to play from the current position.
//
// =============================================================================

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akanalytics/odonata-go/board"
	"github.com/akanalytics/odonata-go/uci"
)

// GO CONCEPT: Enumerations With iota
// -----------------------------------
// Go has no enum keyword. A named integer type plus a const block using
// iota gives distinct, ordered values: actNone is 0, actHelp 1, and so on.
// The zero value actNone doubles as "nothing to do" for blank lines.

type actionKind int

const (
	actNone actionKind = iota
	actHelp
	actQuit
	actBoard
	actFEN
	actNew
	actGo
	actEval
	actStatic
	actMoves
	actAttrs
	actUndo
	actSVG
	actSAN
	actVersion
	actOptions
	actSetOption
	actRaw
	actPlay
)

// GO CONCEPT: Pointers as Optional Values
// ---------------------------------------
// limit is a *uci.SearchLimit rather than a uci.SearchLimit so that ".go"
// with no argument (nil, use the shell default) can be told apart from a
// limit that was given explicitly.

// action is one translated line of input. Only the fields its kind uses
// are set.
type action struct {
	kind  actionKind
	arg   string
	moves []board.Move
	limit *uci.SearchLimit
}

// translate parses a line. Blank lines yield actNone.
func translate(line string) (action, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return action{kind: actNone}, nil
	}
	if !strings.HasPrefix(trimmed, ".") {
		moves, err := board.ParseMoves(trimmed)
		if err != nil {
			return action{}, err
		}
		return action{kind: actPlay, moves: moves}, nil
	}

	keyword, args, _ := strings.Cut(trimmed, " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(keyword) {
	case ".help", ".h", ".?":
		return action{kind: actHelp, arg: args}, nil

	case ".quit", ".exit", ".q":
		return action{kind: actQuit}, nil

	case ".board", ".b":
		return action{kind: actBoard}, nil

	case ".fen":
		return action{kind: actFEN, arg: args}, nil

	case ".new":
		return action{kind: actNew}, nil

	case ".go", ".g":
		if args == "" {
			return action{kind: actGo}, nil
		}
		limit, err := parseLimit(args)
		if err != nil {
			return action{}, err
		}
		return action{kind: actGo, limit: &limit}, nil

	case ".eval", ".e":
		return action{kind: actEval}, nil

	case ".static":
		return action{kind: actStatic}, nil

	case ".moves", ".m":
		return action{kind: actMoves}, nil

	case ".attrs":
		m, err := singleMove(keyword, args)
		if err != nil {
			return action{}, err
		}
		return action{kind: actAttrs, moves: []board.Move{m}}, nil

	case ".san":
		m, err := singleMove(keyword, args)
		if err != nil {
			return action{}, err
		}
		return action{kind: actSAN, moves: []board.Move{m}}, nil

	case ".undo", ".u":
		return action{kind: actUndo}, nil

	case ".svg":
		if args == "" {
			return action{}, fmt.Errorf(".svg requires a file path")
		}
		return action{kind: actSVG, arg: args}, nil

	case ".version":
		return action{kind: actVersion}, nil

	case ".options":
		return action{kind: actOptions}, nil

	case ".set":
		if !strings.Contains(args, "=") {
			return action{}, fmt.Errorf(".set expects name=value")
		}
		return action{kind: actSetOption, arg: args}, nil

	case ".raw":
		if args == "" {
			return action{}, fmt.Errorf(".raw requires a command line")
		}
		return action{kind: actRaw, arg: args}, nil

	default:
		return action{}, fmt.Errorf("unknown command %s, type .help for a list", keyword)
	}
}

func singleMove(keyword, args string) (board.Move, error) {
	if args == "" || strings.ContainsAny(args, " \t") {
		return board.Move{}, fmt.Errorf("%s requires one move", keyword)
	}
	return board.ParseMove(args)
}

// parseLimit reads "depth 6", "movetime 250" or "nodes 10000". A bare
// number is a depth.
func parseLimit(args string) (uci.SearchLimit, error) {
	fields := strings.Fields(args)
	if len(fields) == 1 {
		fields = []string{"depth", fields[0]}
	}
	if len(fields) != 2 {
		return uci.SearchLimit{}, fmt.Errorf("expected depth, movetime or nodes followed by a number")
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 1 {
		return uci.SearchLimit{}, fmt.Errorf("invalid %s %q", fields[0], fields[1])
	}

	var limit uci.SearchLimit
	switch strings.ToLower(fields[0]) {
	case "depth":
		limit.Depth = n
	case "movetime":
		limit.MoveTime = time.Duration(n) * time.Millisecond
	case "nodes":
		limit.Nodes = int64(n)
	default:
		return uci.SearchLimit{}, fmt.Errorf("unknown search limit %q", fields[0])
	}
	return limit, nil
}
