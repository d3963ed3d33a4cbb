package uci

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akanalytics/odonata-go/board"
)

// fakeEngine answers the subset of the protocol the client uses. It plays
// moves locally with board.Apply for make_moves.
type fakeEngine struct {
	mu       sync.Mutex
	received []string

	// bestmove overrides the reply to go; "" means "e2e4 ponder e7e5".
	bestmove string

	// done is closed when serve returns.
	done chan struct{}
}

func (e *fakeEngine) lines() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.received...)
}

// serve reads commands from r until quit or EOF.
func (e *fakeEngine) serve(r io.Reader, w io.Writer) {
	out := bufio.NewWriter(w)
	reply := func(lines ...string) {
		for _, l := range lines {
			out.WriteString(l + "\n")
		}
		out.Flush()
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		e.mu.Lock()
		e.received = append(e.received, line)
		e.mu.Unlock()

		word, rest, _ := strings.Cut(line, " ")
		switch {
		case word == "uci":
			reply(
				"id name Odonata 0.8.0",
				"id author andy watkins",
				"option name Hash type spin default 16 min 1 max 1024",
				"option name Threads type spin default 1 min 1 max 512",
				"option name Clear Hash type button",
				"uciok",
			)
		case word == "isready":
			reply("readyok")
		case word == "ucinewgame", word == "setoption", word == "position":
		case word == "go":
			best := e.bestmove
			if best == "" {
				best = "e2e4 ponder e7e5"
			}
			reply(
				"info depth 1 seldepth 1 nodes 20 nps 2000 score cp 35 time 10 pv e2e4",
				"info string searching",
				"info depth 2 seldepth 3 nodes 120 nps 12000 score cp 12 time 10 pv e2e4 e7e5",
				"bestmove "+best,
			)
		case strings.HasPrefix(word, ExtPrefix):
			reply(e.ext(strings.TrimPrefix(word, ExtPrefix), rest)...)
		case strings.HasPrefix(line, "{"):
			if resp := e.rpc(line); resp != "" {
				reply(resp)
			}
		case word == "quit":
			return
		default:
			reply("info string error unknown command '" + line + "'")
		}
	}
}

func (e *fakeEngine) ext(name, args string) []string {
	fen, moves, _ := strings.Cut(strings.TrimPrefix(args, "fen "), " moves ")
	switch name {
	case ExtStaticEval:
		return []string{"result:35"}
	case ExtLegalMoves:
		return []string{"info string generating", "result:e2e4 d2d4 g1f3"}
	case ExtMakeMoves:
		b, err := board.ParseFEN(fen)
		if err != nil {
			return []string{"info string error bad fen"}
		}
		for _, tok := range strings.Fields(moves) {
			m, err := board.ParseMove(tok)
			if err != nil {
				return []string{"info string error bad move " + tok}
			}
			if b, err = b.Apply(m); err != nil {
				return []string{"info string error illegal move " + tok}
			}
		}
		return []string{"result:" + b.FEN()}
	case ExtMoveAttributes:
		return []string{"result:from e2 to e4 capture - ep e3 san e4 rook_move - legal true is_ep false is_castle false"}
	case ExtVersion:
		return []string{"result:0.8.0"}
	case "chatty":
		lines := make([]string, DefaultLineCeiling)
		for i := range lines {
			lines[i] = fmt.Sprintf("info string chatter %d", i)
		}
		return lines
	default:
		return []string{"info string error unknown extension " + name}
	}
}

func (e *fakeEngine) rpc(line string) string {
	var req struct {
		Method string  `json:"method"`
		ID     *uint64 `json:"id"`
		Params []any   `json:"params"`
	}
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		return `{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"Parse error"}}`
	}
	if req.ID == nil {
		return ""
	}
	id := *req.ID
	result := func(v any) string {
		data, _ := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": id, "result": v})
		return string(data)
	}
	switch req.Method {
	case MethodEval:
		return result(map[string]any{"fen": req.Params[0], "cp": 35, "pv": "e2e4 e7e5", "acd": 4, "Res": "*"})
	case MethodStaticEvalExplain:
		return result("material 0\npst 35")
	case MethodVersion:
		return result("0.8.0")
	case MethodOptions:
		return result("Threads = type spin default 1 min 1 max 512\nmb.force.init = type button\nParsedConfig file = type string default config.toml")
	case MethodPositionCatalog:
		if req.Params[0] == "broken" {
			return result([]string{board.StartFEN, "8/8 w - - 0 1"})
		}
		return result([]string{board.StartFEN, catalogRuyLopez})
	case MethodPositionUpload:
		if req.Params[0] == "" {
			return result(0)
		}
		return result(3)
	case MethodPositionDownloadModel:
		return result(2)
	case MethodTuningMSE:
		return result(0.125)
	case MethodListMethods:
		return result([]string{MethodEval, MethodVersion, MethodOptions})
	default:
		return fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"error":{"code":-32601,"message":"Method not found","data":%q}}`, id, req.Method)
	}
}

// catalogRuyLopez is an EPD record with operations after the FEN fields.
const catalogRuyLopez = `r1bqkbnr/pppp1ppp/2n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3 bm a6; id "ruy";`

// connectFake wires a client to a fake engine over in-memory pipes. The
// client is closed when the test ends.
func connectFake(t *testing.T, e *fakeEngine, opts ...Option) *Client {
	t.Helper()
	toEngineR, toEngineW := io.Pipe()
	fromEngineR, fromEngineW := io.Pipe()
	e.done = make(chan struct{})
	go func() {
		defer close(e.done)
		e.serve(toEngineR, fromEngineW)
		toEngineR.Close()
		fromEngineW.Close()
	}()
	opts = append(opts, withCloser(toEngineW.Close))
	c, err := Connect(fromEngineR, toEngineW, opts...)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// handshakeLines answer uci, the default Hash option and the new-game
// readiness check.
var handshakeLines = []string{"id name Scripted 1.0", "uciok", "readyok", "readyok"}

// connectScripted connects to an engine that replies with lines, whatever
// is sent, and then reaches EOF.
func connectScripted(t *testing.T, lines []string, opts ...Option) *Client {
	t.Helper()
	script := append(append([]string(nil), handshakeLines...), lines...)
	r := strings.NewReader(strings.Join(script, "\n") + "\n")
	c, err := Connect(r, io.Discard, opts...)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

const helperEnv = "ODONATA_FAKE_ENGINE"

// TestMain lets the test binary act as an engine for the process tests.
func TestMain(m *testing.M) {
	switch os.Getenv(helperEnv) {
	case "serve":
		(&fakeEngine{}).serve(os.Stdin, os.Stdout)
		os.Exit(0)
	case "hang":
		// Ignores quit and stdin EOF.
		time.Sleep(time.Minute)
		os.Exit(0)
	}
	os.Exit(m.Run())
}
