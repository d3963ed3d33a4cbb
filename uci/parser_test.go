package uci

import (
	"maps"
	"slices"
	"testing"
	"time"

	"github.com/akanalytics/odonata-go/board"
)

func TestParseInfoLine(t *testing.T) {
	info, ok := ParseInfoLine("info depth 10 seldepth 11 nodes 19349 nps 257000 score cp 529 time 74 pv a1a8 h8h7 a8a6 h7g7")
	if !ok {
		t.Fatal("pv line not recognised")
	}
	if info.Depth != 10 || info.SelDepth != 11 || info.Nodes != 19349 || info.NPS != 257000 {
		t.Errorf("counts = %+v", info)
	}
	if info.Time != 74*time.Millisecond {
		t.Errorf("time = %v, want 74ms", info.Time)
	}
	if cp, ok := info.Score.Centipawns(); !ok || cp != 529 {
		t.Errorf("score = %v, want cp 529", info.Score)
	}
	if got := board.FormatMoves(info.PV); got != "a1a8 h8h7 a8a6 h7g7" {
		t.Errorf("pv = %q", got)
	}
}

func TestParseInfoLineMate(t *testing.T) {
	info, ok := ParseInfoLine("info depth 5 multipv 2 score mate -3 hashfull 12 pv e1e2 (none)")
	if !ok {
		t.Fatal("pv line not recognised")
	}
	if n, ok := info.Score.MateIn(); !ok || n != -3 {
		t.Errorf("score = %v, want mate -3", info.Score)
	}
	if _, ok := info.Score.Centipawns(); ok {
		t.Error("mate score also reports centipawns")
	}
	if info.MultiPV != 2 || info.HashFull != 12 {
		t.Errorf("got %+v", info)
	}
	if len(info.PV) != 1 {
		t.Errorf("pv stops at the first non-move token, got %v", info.PV)
	}
	if info.Score.String() != "mate -3" {
		t.Errorf("String() = %q", info.Score.String())
	}
}

func TestParseInfoLineWithoutPV(t *testing.T) {
	for _, line := range []string{"info depth 3 nodes 100", "info string hello", "bestmove e2e4"} {
		if _, ok := ParseInfoLine(line); ok {
			t.Errorf("%q parsed as a search result", line)
		}
	}
}

func TestParseBestMove(t *testing.T) {
	tests := []struct {
		value  string
		best   string
		ponder string
	}{
		{"e2e4", "e2e4", "0000"},
		{"e2e4 ponder e7e5", "e2e4", "e7e5"},
		{"a7a8q", "a7a8q", "0000"},
		{"0000", "0000", "0000"},
		{"(none)", "0000", "0000"},
		{"", "0000", "0000"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			best, ponder, err := parseBestMove(tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if best.String() != tt.best || ponder.String() != tt.ponder {
				t.Errorf("got %v ponder %v, want %s ponder %s", best, ponder, tt.best, tt.ponder)
			}
		})
	}
	if _, _, err := parseBestMove("e2e9"); err == nil {
		t.Error("bad move accepted")
	}
}

func TestParseMoveAttributes(t *testing.T) {
	attrs := ParseMoveAttributes("from e5 to f6 capture f5 ep - san exf6 rook_move - legal true is_ep true is_castle false")
	want := MoveAttributes{
		From:     board.E5,
		To:       board.F6,
		Capture:  board.F5,
		EP:       board.NoSquare,
		SAN:      "exf6",
		RookMove: "-",
		Legal:    true,
		IsEP:     true,
	}
	if attrs != want {
		t.Errorf("got  %+v\nwant %+v", attrs, want)
	}

	castle := ParseMoveAttributes("from e1 to g1 san O-O rook_move h1f1 is_castle true legal true")
	if !castle.IsCastle || castle.RookMove != "h1f1" || castle.SAN != "O-O" || castle.Capture != board.NoSquare {
		t.Errorf("castle = %+v", castle)
	}
}

func TestParseOptionLine(t *testing.T) {
	tests := []struct {
		line string
		want EngineOption
	}{
		{
			"option name Hash type spin default 16 min 1 max 1024",
			EngineOption{Name: "Hash", Type: "spin", Default: "16", Min: "1", Max: "1024"},
		},
		{
			"option name Clear Hash type button",
			EngineOption{Name: "Clear Hash", Type: "button"},
		},
		{
			"option name Style type combo default Normal var Solid var Normal var Risky",
			EngineOption{Name: "Style", Type: "combo", Default: "Normal", Vars: []string{"Solid", "Normal", "Risky"}},
		},
		{
			"option name Config file type string default <empty>",
			EngineOption{Name: "Config file", Type: "string"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.want.Name, func(t *testing.T) {
			got, ok := ParseOptionLine(tt.line)
			if !ok {
				t.Fatal("not recognised")
			}
			if got.Name != tt.want.Name || got.Type != tt.want.Type || got.Default != tt.want.Default ||
				got.Min != tt.want.Min || got.Max != tt.want.Max || !slices.Equal(got.Vars, tt.want.Vars) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
	if _, ok := ParseOptionLine("id name Odonata"); ok {
		t.Error("non-option line accepted")
	}
}

func TestParseOptionListing(t *testing.T) {
	listing := "Threads                        = type spin default 1 min 1 max 512\n" +
		"algo.minmax                    = type check default false\n" +
		"mb.force.init                  = type button\n" +
		"\n" +
		"not a setting\n"
	want := map[string]string{"Threads": "1", "algo.minmax": "false", "mb.force.init": ""}
	if got := ParseOptionListing(listing); !maps.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
