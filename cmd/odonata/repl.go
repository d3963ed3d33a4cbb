// =============================================================================
// repl.go - Interactive Shell Loop
// =============================================================================
//
// The shell keeps the current position and an undo stack locally and asks
// the engine everything else. Errors from the engine are printed and the
// loop carries on, except a closed channel, which ends the session.
//
// =============================================================================

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/akanalytics/odonata-go/board"
	"github.com/akanalytics/odonata-go/uci"
	"github.com/notnil/chess"
)

// GO CONCEPT: Interfaces Declared by the Consumer
// -----------------------------------------------
// The uci package returns a concrete *uci.Client and declares no interface
// for it. The shell declares the methods it needs here instead. Any type
// with those methods satisfies engine implicitly, which lets the tests drive
// the shell with a stub, while a one-line assertion in repl_test.go
// (var _ engine = (*uci.Client)(nil)) fails to compile if the real client
// drifts away from it.

// engine is the part of *uci.Client the shell uses.
type engine interface {
	Version() string
	Author() string
	EngineOptions() []uci.EngineOption
	NewGame() error
	SetOption(name, value string) error
	Search(b board.Board, limit uci.SearchLimit) (uci.SearchResult, error)
	StaticEval(b board.Board) (string, error)
	LegalMoves(b board.Board) ([]board.Move, error)
	MakeMoves(b board.Board, moves ...board.Move) (board.Board, error)
	MoveAttributes(b board.Board, m board.Move) (uci.MoveAttributes, error)
	Eval(b board.Board) (uci.EvalTags, error)
	APIVersion() (string, error)
	Exec(cmd uci.Command, prefix string) (uci.Result, error)
	Infos() []string
}

// lineReader is satisfied by *LineEditor.
type lineReader interface {
	GetLine(prompt string) (string, error)
}

// ply is one entry of the position history: a position and the move that
// reached it, if any.
type ply struct {
	board board.Board
	last  board.Move
}

type shell struct {
	eng     engine
	history []ply // never empty; the last entry is the current position
	limit   uci.SearchLimit
	out     io.Writer
	errOut  io.Writer
}

func newShell(eng engine, out, errOut io.Writer) *shell {
	return &shell{
		eng:     eng,
		history: []ply{{board: board.NewBoard()}},
		out:     out,
		errOut:  errOut,
	}
}

func (s *shell) current() ply {
	return s.history[len(s.history)-1]
}

func (s *shell) push(b board.Board, last board.Move) {
	s.history = append(s.history, ply{board: b, last: last})
}

// prompt shows the move number and side to move, e.g. "[12 b] > ".
func (s *shell) prompt() string {
	b := s.current().board
	return fmt.Sprintf("[%d %s] > ", b.FullmoveNumber, b.Turn)
}

// run reads and executes lines until end of input, .quit, or the engine
// going away.
func (s *shell) run(in lineReader) {
	for {
		line, err := in.GetLine(s.prompt())
		if err != nil {
			fmt.Fprintln(s.out)
			return
		}
		act, err := translate(line)
		if err != nil {
			s.printError(err)
			continue
		}
		if act.kind == actQuit {
			return
		}
		// GO CONCEPT: errors.Is Through Wrapped Errors
		// --------------------------------------------
		// A lost engine arrives as a *uci.ChannelError that wraps both
		// uci.ErrChannelClosed and the I/O error underneath. errors.Is walks
		// that tree, so one comparison catches every way the pipe can die.
		if err := s.execute(act); err != nil {
			s.printError(err)
			if errors.Is(err, uci.ErrChannelClosed) {
				fmt.Fprintln(s.errOut, "Engine connection lost.")
				return
			}
		}
	}
}

func (s *shell) printError(err error) {
	fmt.Fprintf(s.errOut, "Error: %v\n", err)
}

func (s *shell) execute(act action) error {
	b := s.current().board

	switch act.kind {
	case actNone:
		return nil

	case actHelp:
		if !printHelp(s.out, act.arg) {
			return fmt.Errorf("no help for '%s', type .help to see available commands", act.arg)
		}
		return nil

	case actBoard:
		fmt.Fprintln(s.out, b.Grid())
		fmt.Fprintln(s.out, b.FEN())
		return nil

	case actFEN:
		if act.arg == "" {
			fmt.Fprintln(s.out, b.FEN())
			return nil
		}
		nb, err := board.ParseFEN(act.arg)
		if err != nil {
			return err
		}
		s.push(nb, board.NullMove)
		return nil

	case actNew:
		if err := s.eng.NewGame(); err != nil {
			return err
		}
		s.history = []ply{{board: board.NewBoard()}}
		return nil

	case actPlay:
		nb, err := s.eng.MakeMoves(b, act.moves...)
		if err != nil {
			return err
		}
		s.push(nb, act.moves[len(act.moves)-1])
		return nil

	case actUndo:
		if len(s.history) == 1 {
			return errors.New("nothing to undo")
		}
		s.history = s.history[:len(s.history)-1]
		return nil

	case actGo:
		return s.search(b, act.limit)

	case actEval:
		tags, err := s.eng.Eval(b)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, formatEval(tags))
		return nil

	case actStatic:
		v, err := s.eng.StaticEval(b)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, v)
		return nil

	case actMoves:
		moves, err := s.eng.LegalMoves(b)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%d moves: %s\n", len(moves), board.FormatMoves(moves))
		return nil

	case actAttrs:
		attrs, err := s.eng.MoveAttributes(b, act.moves[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, formatAttributes(attrs))
		return nil

	case actSAN:
		san, err := toSAN(b, act.moves[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, san)
		return nil

	case actSVG:
		return s.writeSVG(act.arg)

	case actVersion:
		fmt.Fprintf(s.out, "%s by %s\n", s.eng.Version(), s.eng.Author())
		api, err := s.eng.APIVersion()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "api %s\n", api)
		return nil

	case actOptions:
		for _, o := range s.eng.EngineOptions() {
			fmt.Fprintf(s.out, "  %-20s %-7s %s\n", o.Name, o.Type, o.Default)
		}
		return nil

	case actSetOption:
		name, value, _ := strings.Cut(act.arg, "=")
		return s.eng.SetOption(strings.TrimSpace(name), strings.TrimSpace(value))

	case actRaw:
		return s.raw(act.arg)

	default:
		return fmt.Errorf("unhandled action %d", act.kind)
	}
}

func (s *shell) search(b board.Board, limit *uci.SearchLimit) error {
	l := s.limit
	if limit != nil {
		l = *limit
	}
	res, err := s.eng.Search(b, l)
	if err != nil {
		return err
	}
	if !res.HasMove() {
		fmt.Fprintln(s.out, "no move")
		return nil
	}
	if res.Ponder.IsNull() {
		fmt.Fprintf(s.out, "bestmove %s\n", res.BestMove)
	} else {
		fmt.Fprintf(s.out, "bestmove %s ponder %s\n", res.BestMove, res.Ponder)
	}
	if len(res.Infos) > 0 {
		fmt.Fprintln(s.out, formatInfo(res.Info))
	}
	return nil
}

func (s *shell) writeSVG(path string) error {
	cur := s.current()
	var hl board.Bitboard
	if !cur.last.IsNull() {
		hl = board.BitboardOf(cur.last.From, cur.last.To)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cur.board.WriteSVG(f, board.WithHighlight(hl)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "wrote %s\n", path)
	return nil
}

// replyPrefixes maps the first word of a raw line to the start of the reply
// that ends it.
var replyPrefixes = map[string]string{
	"uci":     uci.UCIOK,
	"isready": uci.ReadyOK,
	"go":      uci.BestMovePrefix,
}

// raw sends line and prints the engine's output up to the reply that ends
// it. Commands without a reply of their own are followed by isready.
func (s *shell) raw(line string) error {
	first, _, _ := strings.Cut(line, " ")
	prefix, ok := replyPrefixes[first]
	switch {
	case ok:
	case strings.HasPrefix(first, uci.ExtPrefix):
		prefix = uci.ResultPrefix
	default:
		prefix = uci.ReadyOK
		line += "\n" + uci.NewIsReadyCommand().Format()
	}

	res, err := s.eng.Exec(uci.NewRawCommand(line), prefix)
	if err != nil {
		return err
	}
	for _, info := range s.eng.Infos() {
		fmt.Fprintln(s.out, info)
	}
	if !res.OK() {
		return res.Err()
	}
	fmt.Fprintln(s.out, strings.TrimSpace(prefix+" "+res.Value))
	return nil
}

// toSAN converts m to standard algebraic notation, rejecting illegal moves.
func toSAN(b board.Board, m board.Move) (string, error) {
	opt, err := chess.FEN(b.FEN())
	if err != nil {
		return "", err
	}
	pos := chess.NewGame(opt).Position()
	i := slices.IndexFunc(pos.ValidMoves(), func(v *chess.Move) bool {
		return v.String() == m.String()
	})
	if i < 0 {
		return "", fmt.Errorf("%s is not legal in this position", m)
	}
	return chess.AlgebraicNotation{}.Encode(pos, pos.ValidMoves()[i]), nil
}

func formatInfo(info uci.SearchInfo) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "depth %d", info.Depth)
	if info.SelDepth > 0 {
		fmt.Fprintf(&sb, "/%d", info.SelDepth)
	}
	if score := info.Score.String(); score != "" {
		fmt.Fprintf(&sb, " score %s", score)
	}
	if info.Nodes > 0 {
		fmt.Fprintf(&sb, " nodes %d", info.Nodes)
	}
	if info.Time > 0 {
		fmt.Fprintf(&sb, " time %v", info.Time)
	}
	if len(info.PV) > 0 {
		fmt.Fprintf(&sb, " pv %s", board.FormatMoves(info.PV))
	}
	return sb.String()
}

func formatEval(t uci.EvalTags) string {
	var sb strings.Builder
	sb.WriteString(t.Outcome().String())
	if t.ACD != nil {
		fmt.Fprintf(&sb, " depth %d", *t.ACD)
	}
	if t.ACN != nil {
		fmt.Fprintf(&sb, " nodes %d", *t.ACN)
	}
	if len(t.PV) > 0 {
		fmt.Fprintf(&sb, " pv %s", strings.Join(t.PV, " "))
	}
	if len(t.BM) > 0 {
		fmt.Fprintf(&sb, " bm %s", strings.Join(t.BM, " "))
	}
	return sb.String()
}

func formatAttributes(a uci.MoveAttributes) string {
	var parts []string
	if a.SAN != "" {
		parts = append(parts, "san "+a.SAN)
	}
	parts = append(parts, fmt.Sprintf("legal %t", a.Legal))
	if a.Capture != board.NoSquare {
		parts = append(parts, "capture "+a.Capture.String())
	}
	if a.IsEP {
		parts = append(parts, "en passant")
	}
	if a.EP != board.NoSquare {
		parts = append(parts, "ep "+a.EP.String())
	}
	if a.IsCastle {
		parts = append(parts, "castle "+a.RookMove)
	}
	return strings.Join(parts, ", ")
}
