package uci

import (
	"strconv"
	"strings"
	"time"

	"github.com/akanalytics/odonata-go/board"
)

// ParseInfoLine parses an info line carrying a principal variation, e.g.
//
//	info depth 10 seldepth 11 nodes 19349 nps 257000 score cp 529 time 74 pv a1a8 h8h7
//
// Lines without " pv" are not search results and give false. Unknown
// keywords are skipped and malformed numbers leave their field zero.
func ParseInfoLine(line string) (SearchInfo, bool) {
	if !strings.Contains(line, " pv") {
		return SearchInfo{}, false
	}
	words := strings.Fields(line)
	var info SearchInfo
	for i := 0; i < len(words); i++ {
		next := func() string {
			if i+1 < len(words) {
				i++
				return words[i]
			}
			return ""
		}
		switch words[i] {
		case "depth":
			info.Depth = atoi(next())
		case "seldepth":
			info.SelDepth = atoi(next())
		case "multipv":
			info.MultiPV = atoi(next())
		case "hashfull":
			info.HashFull = atoi(next())
		case "nodes":
			info.Nodes = atoi64(next())
		case "nps":
			info.NPS = atoi64(next())
		case "time":
			info.Time = time.Duration(atoi64(next())) * time.Millisecond
		case "cp":
			info.Score = ScoreCentipawns(atoi(next()))
		case "mate":
			info.Score = ScoreMate(atoi(next()))
		case "pv":
			for _, tok := range words[i+1:] {
				m, err := board.ParseMove(tok)
				if err != nil {
					break
				}
				info.PV = append(info.PV, m)
			}
			i = len(words)
		}
	}
	return info, true
}

// ParseSearchInfos parses every principal-variation line in lines.
func ParseSearchInfos(lines []string) []SearchInfo {
	var infos []SearchInfo
	for _, line := range lines {
		if info, ok := ParseInfoLine(line); ok {
			infos = append(infos, info)
		}
	}
	return infos
}

// parseBestMove parses the remainder of a bestmove line: "e2e4",
// "e2e4 ponder e7e5", "0000" or "(none)".
func parseBestMove(value string) (best, ponder board.Move, err error) {
	best, ponder = board.NullMove, board.NullMove
	words := strings.Fields(value)
	if len(words) == 0 || words[0] == "(none)" {
		return best, ponder, nil
	}
	if best, err = board.ParseMove(words[0]); err != nil {
		return board.NullMove, ponder, err
	}
	if len(words) >= 3 && words[1] == "ponder" {
		if p, perr := board.ParseMove(words[2]); perr == nil {
			ponder = p
		}
	}
	return best, ponder, nil
}

// ParseMoveAttributes parses a move_attributes record of keyword/value
// pairs, e.g. "from e5 to f6 capture f5 san exf6 legal true is_ep true".
func ParseMoveAttributes(record string) MoveAttributes {
	attrs := MoveAttributes{
		From:    board.NoSquare,
		To:      board.NoSquare,
		Capture: board.NoSquare,
		EP:      board.NoSquare,
	}
	words := strings.Fields(record)
	for i := 0; i+1 < len(words); i++ {
		value := words[i+1]
		switch words[i] {
		case "from":
			attrs.From = trySquare(value)
		case "to":
			attrs.To = trySquare(value)
		case "capture":
			attrs.Capture = trySquare(value)
		case "ep":
			attrs.EP = trySquare(value)
		case "san":
			attrs.SAN = value
		case "rook_move":
			attrs.RookMove = value
		case "legal":
			attrs.Legal = value == "true"
		case "is_ep":
			attrs.IsEP = value == "true"
		case "is_castle":
			attrs.IsCastle = value == "true"
		default:
			continue
		}
		i++
	}
	return attrs
}

// EngineOption is one "option name ..." line from the handshake.
type EngineOption struct {
	Name    string
	Type    string // check, spin, combo, button or string
	Default string
	Min     string
	Max     string
	Vars    []string
}

// optionKeywords delimit the values of an option line. Names and defaults
// may contain spaces.
var optionKeywords = map[string]bool{
	"name": true, "type": true, "default": true, "min": true, "max": true, "var": true,
}

// ParseOptionLine parses "option name Hash type spin default 16 min 1 max 512".
// It reports false for lines that are not option declarations.
func ParseOptionLine(line string) (EngineOption, bool) {
	if !strings.HasPrefix(line, OptionPrefix) {
		return EngineOption{}, false
	}
	var opt EngineOption
	words := strings.Fields(line)[1:]
	key := ""
	var value []string
	flush := func() {
		v := strings.Join(value, " ")
		switch key {
		case "name":
			opt.Name = v
		case "type":
			opt.Type = v
		case "default":
			if v == "<empty>" {
				v = ""
			}
			opt.Default = v
		case "min":
			opt.Min = v
		case "max":
			opt.Max = v
		case "var":
			opt.Vars = append(opt.Vars, v)
		}
		value = value[:0]
	}
	for _, w := range words {
		if optionKeywords[w] && !(key == "name" && len(value) == 0) {
			flush()
			key = w
			continue
		}
		value = append(value, w)
	}
	flush()
	return opt, opt.Name != ""
}

// ParseOptionListing parses the settings listing returned by the options
// call, one setting per line:
//
//	Threads      = type spin default 1 min 1 max 512
//	mb.force.init = type button
//
// Settings without a default map to "".
func ParseOptionListing(text string) map[string]string {
	settings := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		key, rest, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		_, def, found := strings.Cut(rest, "default")
		if !found {
			settings[key] = ""
			continue
		}
		settings[key] = firstDefault(def)
	}
	return settings
}

// firstDefault trims the text after "default" up to the next keyword.
func firstDefault(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "min" || w == "max" || w == "var" {
			return strings.Join(words[:i], " ")
		}
	}
	return strings.Join(words, " ")
}

func trySquare(text string) board.Square {
	sq, err := board.ParseSquare(text)
	if err != nil {
		return board.NoSquare
	}
	return sq
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoi64(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
