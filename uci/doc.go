// Package uci drives an external chess engine process over the UCI text
// protocol, plus the engine's "ext:" extension commands and a JSON-RPC
// request/response sub-protocol multiplexed over the same pipes.
//
// # Protocol Overview
//
// The protocol is line-oriented. Every command is one line written to the
// engine's standard input; the engine answers with any number of lines on
// standard output, the last of which carries a known prefix:
//
//	Handshake:     uci            -> id name ..., option name ..., uciok
//	Readiness:     isready        -> readyok
//	Search:        go depth 8     -> info ..., bestmove e2e4
//	Extension:     ext:legal_moves fen <FEN> -> result:e2e4 d2d4 ...
//	Correlated:    {"jsonrpc":"2.0","method":"eval","id":3,"params":[...]}
//	               -> {"jsonrpc":"2.0","id":3,"result":{...}}
//
// A line containing "error" before the expected prefix aborts the current
// command. The number of lines read while waiting is bounded (200 by
// default), so a silent or chatty engine surfaces as a timeout result rather
// than a hang.
//
// # Basic Usage
//
//	client, err := uci.Start(ctx, uci.Config{Path: "odonata"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	mv, ok, err := client.BestMove(board.NewBoard(), uci.SearchLimit{Depth: 8})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if ok {
//	    fmt.Println("best move", mv)
//	}
//
// # Pooling
//
// Starting an engine is expensive. A Pool hands out one warmed-up client per
// (path, config file) key and closes them all on shutdown:
//
//	pool := uci.NewPool()
//	defer pool.Close()
//	client, err := pool.Get(ctx, cfg)
//
// # Thread Safety
//
// A Client serializes its operations with a mutex held for the whole
// send-then-receive exchange, so concurrent callers take turns. A Pool is
// safe for concurrent use.
package uci
