package uci

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/akanalytics/odonata-go/board"
)

// State is a client's position in its lifecycle.
type State int32

const (
	StateUninitialized State = iota
	StateHandshaking
	StateReady
	StateAwaitingResponse
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateHandshaking:
		return "handshaking"
	case StateReady:
		return "ready"
	case StateAwaitingResponse:
		return "awaiting response"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Client drives one engine over a Channel.
//
// Thread Safety:
// Every operation holds the client's mutex from the write of its command
// until its response has been read, so concurrent callers are serialized.
// A protocol error (timeout or engine error) leaves the client usable but
// the engine's internal state undefined until NewGame is called.
type Client struct {
	mu sync.Mutex

	ch     *Channel
	opts   clientOptions
	logger *slog.Logger
	state  atomic.Int32

	name    string
	author  string
	options []EngineOption

	// Lines seen while waiting for the last command's result.
	infos []string

	rpc *Correlator

	closeOnce sync.Once
}

// Connect performs the handshake with an engine whose standard output is r
// and standard input is w, applies the configured options and starts a new
// game.
func Connect(r io.Reader, w io.Writer, opts ...Option) (*Client, error) {
	o := defaultClientOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Client{
		ch:     NewChannel(r, w, o.logger),
		opts:   o,
		logger: o.logger,
		rpc:    NewCorrelator(),
	}
	if err := c.handshake(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Start launches the engine described by cfg and connects to it. If ctx is
// done before the handshake completes the process is stopped.
func Start(ctx context.Context, cfg Config) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	proc, err := StartProcess(cfg)
	if err != nil {
		return nil, err
	}
	stop := context.AfterFunc(ctx, func() { proc.Stop() })

	opts := append(cfg.options(), withCloser(proc.Stop))
	client, err := Connect(proc.Stdout(), proc.Stdin(), opts...)
	if !stop() {
		if client != nil {
			client.Close()
		}
		return nil, fmt.Errorf("start %s: %w", proc.Path(), ctx.Err())
	}
	if err != nil {
		proc.Stop()
		return nil, fmt.Errorf("start %s: %w", proc.Path(), err)
	}
	client.logger.Info("engine started", "path", proc.Path(), "pid", proc.Pid(), "version", client.Version())
	return client, nil
}

func (c *Client) handshake() error {
	c.setState(StateHandshaking)
	if err := c.ch.Send(NewUCICommand().Format()); err != nil {
		return err
	}
	for {
		line, err := c.ch.ReceiveLine()
		if err != nil {
			return err
		}
		switch {
		case line == UCIOK:
			return c.configure()
		case strings.HasPrefix(line, IDNamePrefix):
			c.name = strings.TrimSpace(line[len(IDNamePrefix):])
		case strings.HasPrefix(line, IDAuthorPrefix):
			c.author = strings.TrimSpace(line[len(IDAuthorPrefix):])
		default:
			if opt, ok := ParseOptionLine(line); ok {
				c.options = append(c.options, opt)
			}
		}
	}
}

// configure applies options in name order, then resets for a new game.
func (c *Client) configure() error {
	for _, name := range slices.Sorted(maps.Keys(c.opts.options)) {
		if err := c.setOption(name, c.opts.options[name]); err != nil {
			return err
		}
	}
	if err := c.newGame(); err != nil {
		return err
	}
	c.setState(StateReady)
	return nil
}

func (c *Client) setState(s State) {
	c.state.Store(int32(s))
}

// State returns the client's current lifecycle state.
func (c *Client) State() State {
	return State(c.state.Load())
}

// do runs fn holding the client's mutex, with the state set to
// AwaitingResponse for its duration.
func (c *Client) do(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.State() == StateTerminated {
		return newChannelError("use", ErrNotStarted)
	}
	c.setState(StateAwaitingResponse)
	defer func() {
		if c.State() == StateAwaitingResponse {
			c.setState(StateReady)
		}
	}()
	return fn()
}

// Version returns the engine's self-reported name from "id name".
func (c *Client) Version() string {
	return c.name
}

// Author returns the engine's "id author" line.
func (c *Client) Author() string {
	return c.author
}

// EngineOptions returns the options declared during the handshake.
func (c *Client) EngineOptions() []EngineOption {
	return slices.Clone(c.options)
}

// IsReady blocks until the engine answers readyok.
func (c *Client) IsReady() error {
	return c.do(c.isReady)
}

func (c *Client) isReady() error {
	if err := c.ch.Send(NewIsReadyCommand().Format()); err != nil {
		return err
	}
	for {
		line, err := c.ch.ReceiveLine()
		if err != nil {
			return err
		}
		if line == ReadyOK {
			return nil
		}
	}
}

// NewGame resets the engine's state and clears the info log.
func (c *Client) NewGame() error {
	return c.do(c.newGame)
}

func (c *Client) newGame() error {
	if err := c.ch.Send(NewNewGameCommand().Format()); err != nil {
		return err
	}
	if err := c.isReady(); err != nil {
		return err
	}
	c.infos = nil
	return nil
}

// SetOption sets an engine option and waits for the engine to catch up.
func (c *Client) SetOption(name, value string) error {
	return c.do(func() error { return c.setOption(name, value) })
}

func (c *Client) setOption(name, value string) error {
	if err := c.ch.Send(NewSetOptionCommand(name, value).Format()); err != nil {
		return err
	}
	return c.isReady()
}

// Exec sends cmd and reads lines until one starts with prefix, a line
// containing "error" arrives, or the line ceiling is reached. The three
// outcomes are reported through Result.Status; the error return is
// reserved for channel failures.
func (c *Client) Exec(cmd Command, prefix string) (Result, error) {
	var res Result
	err := c.do(func() error {
		var err error
		res, err = c.exec(cmd.Format(), prefix)
		return err
	})
	return res, err
}

func (c *Client) exec(line, prefix string) (Result, error) {
	res := Result{Command: line, Prefix: prefix}
	if err := c.ch.Send(line); err != nil {
		return res, err
	}
	c.infos = c.infos[:0]
	for res.Lines < c.opts.lineCeiling {
		text, err := c.ch.ReceiveLine()
		if err != nil {
			return res, err
		}
		res.Lines++
		if strings.HasPrefix(text, prefix) {
			res.Status = StatusOK
			res.Value = strings.TrimSpace(text[len(prefix):])
			return res, nil
		}
		if strings.Contains(text, ErrorMarker) {
			c.logger.Warn("engine reported an error", "command", line, "line", text)
			res.Status = StatusEngineError
			res.Line = text
			return res, nil
		}
		c.infos = append(c.infos, text)
	}
	c.logger.Warn("gave up waiting for result", "command", line, "prefix", prefix, "lines", res.Lines)
	res.Status = StatusTimeout
	return res, nil
}

// execValue is exec with a failed result converted to an error.
func (c *Client) execValue(cmd Command, prefix string) (string, error) {
	res, err := c.exec(cmd.Format(), prefix)
	if err != nil {
		return "", err
	}
	if err := res.Err(); err != nil {
		return "", err
	}
	return res.Value, nil
}

// ext runs an extension command and returns its result payload.
func (c *Client) ext(name string, b *board.Board, moves ...board.Move) (string, error) {
	fen := ""
	if b != nil {
		fen = b.FEN()
	}
	var value string
	err := c.do(func() error {
		var err error
		value, err = c.execValue(NewExtCommand(name, fen, moves...), ResultPrefix)
		return err
	})
	return value, err
}

// Search sets the position and searches it within limit.
func (c *Client) Search(b board.Board, limit SearchLimit) (SearchResult, error) {
	var result SearchResult
	err := c.do(func() error {
		if err := c.ch.Send(NewPositionCommand(b.FEN()).Format()); err != nil {
			return err
		}
		value, err := c.execValue(NewGoCommand(limit), BestMovePrefix)
		if err != nil {
			return err
		}
		best, ponder, err := parseBestMove(value)
		if err != nil {
			return fmt.Errorf("bestmove %q: %w", value, err)
		}
		result.BestMove, result.Ponder = best, ponder
		result.Infos = ParseSearchInfos(c.infos)
		if n := len(result.Infos); n > 0 {
			result.Info = result.Infos[n-1]
		}
		return nil
	})
	return result, err
}

// BestMove searches b within limit. It reports false when the engine has
// no move (checkmate or stalemate).
func (c *Client) BestMove(b board.Board, limit SearchLimit) (board.Move, bool, error) {
	res, err := c.Search(b, limit)
	if err != nil {
		return board.NullMove, false, err
	}
	return res.BestMove, res.HasMove(), nil
}

// StaticEval returns the engine's static evaluation of b as text.
func (c *Client) StaticEval(b board.Board) (string, error) {
	return c.ext(ExtStaticEval, &b)
}

// LegalMoves lists the legal moves in b.
func (c *Client) LegalMoves(b board.Board) ([]board.Move, error) {
	value, err := c.ext(ExtLegalMoves, &b)
	if err != nil {
		return nil, err
	}
	return board.ParseMoves(value)
}

// MakeMoves returns the position after playing moves from b. The engine
// validates the moves.
func (c *Client) MakeMoves(b board.Board, moves ...board.Move) (board.Board, error) {
	value, err := c.ext(ExtMakeMoves, &b, moves...)
	if err != nil {
		return board.EmptyBoard(), err
	}
	next, err := board.ParseFEN(value)
	if err != nil {
		return board.EmptyBoard(), err
	}
	return next, nil
}

// AttacksFrom returns the destinations of the legal moves starting on sq.
func (c *Client) AttacksFrom(b board.Board, sq board.Square) (board.Bitboard, error) {
	moves, err := c.LegalMoves(b)
	if err != nil {
		return 0, err
	}
	var dests board.Bitboard
	for _, m := range moves {
		if m.From == sq {
			dests = dests.With(m.To)
		}
	}
	return dests, nil
}

// MoveAttributes describes m played in b.
func (c *Client) MoveAttributes(b board.Board, m board.Move) (MoveAttributes, error) {
	value, err := c.ext(ExtMoveAttributes, &b, m)
	if err != nil {
		return MoveAttributes{}, err
	}
	return ParseMoveAttributes(value), nil
}

// APIVersion returns the version reported by the version extension.
func (c *Client) APIVersion() (string, error) {
	return c.ext(ExtVersion, nil)
}

// Infos returns a copy of the lines seen while waiting for the last result.
func (c *Client) Infos() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.infos)
}

// SearchInfos parses the principal-variation lines of the info log.
func (c *Client) SearchInfos() []SearchInfo {
	return ParseSearchInfos(c.Infos())
}

// Close sends quit and releases the engine. Only the first call does
// anything; later calls return nil. Close does not wait for an operation in
// progress, whose read fails once the engine exits.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if sendErr := c.ch.Send(NewQuitCommand().Format()); sendErr != nil {
			c.logger.Debug("quit not delivered", "error", sendErr)
		}
		c.ch.Close()
		c.setState(StateTerminated)
		if c.opts.closer != nil {
			err = c.opts.closer()
		}
	})
	return err
}
