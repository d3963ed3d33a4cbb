package uci

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/akanalytics/odonata-go/board"
)

// Status is the outcome of a bounded command.
type Status int

const (
	// StatusOK means a line with the expected prefix arrived.
	StatusOK Status = iota
	// StatusTimeout means the line ceiling was reached first.
	StatusTimeout
	// StatusEngineError means a line containing "error" arrived first.
	StatusEngineError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusTimeout:
		return "timeout"
	case StatusEngineError:
		return "engine error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of Exec. Callers must check Status before using
// Value.
type Result struct {
	Status Status

	Value string // remainder of the matching line, trimmed (StatusOK)
	Line  string // the error line (StatusEngineError)

	Command string
	Prefix  string
	Lines   int // lines read
}

// OK reports whether the expected line arrived.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Err converts a failed result into a *TimeoutError or *EngineError.
// It returns nil for StatusOK.
func (r Result) Err() error {
	switch r.Status {
	case StatusOK:
		return nil
	case StatusEngineError:
		return &EngineError{Command: r.Command, Line: r.Line}
	default:
		return &TimeoutError{Command: r.Command, Prefix: r.Prefix, Lines: r.Lines}
	}
}

// ScoreKind distinguishes the variants of Score.
type ScoreKind int

const (
	ScoreKindNone ScoreKind = iota
	ScoreKindCentipawns
	ScoreKindMate
)

// Score is either a centipawn evaluation or a forced-mate distance. The zero
// value holds neither.
type Score struct {
	kind  ScoreKind
	value int
}

// ScoreCentipawns returns a centipawn score from the side to move's view.
func ScoreCentipawns(cp int) Score {
	return Score{kind: ScoreKindCentipawns, value: cp}
}

// ScoreMate returns a mate in n moves; negative n means being mated.
func ScoreMate(n int) Score {
	return Score{kind: ScoreKindMate, value: n}
}

// Kind returns the variant held by s.
func (s Score) Kind() ScoreKind { return s.kind }

// Centipawns returns the centipawn value when s holds one.
func (s Score) Centipawns() (int, bool) {
	return s.value, s.kind == ScoreKindCentipawns
}

// MateIn returns the mate distance when s holds one.
func (s Score) MateIn() (int, bool) {
	return s.value, s.kind == ScoreKindMate
}

// String returns "cp N", "mate N" or "" as in an info line.
func (s Score) String() string {
	switch s.kind {
	case ScoreKindCentipawns:
		return fmt.Sprintf("cp %d", s.value)
	case ScoreKindMate:
		return fmt.Sprintf("mate %d", s.value)
	default:
		return ""
	}
}

// SearchInfo is one parsed "info ... pv ..." line.
type SearchInfo struct {
	Depth    int
	SelDepth int
	MultiPV  int
	Nodes    int64
	NPS      int64
	Time     time.Duration
	HashFull int
	Score    Score
	PV       []board.Move
}

// SearchResult collects what a search produced.
type SearchResult struct {
	BestMove board.Move // board.NullMove when the engine has no move
	Ponder   board.Move // board.NullMove when absent
	Info     SearchInfo // last info line carrying a pv
	Infos    []SearchInfo
}

// HasMove reports whether the engine returned a move.
func (r SearchResult) HasMove() bool {
	return !r.BestMove.IsNull()
}

// MoveAttributes describes one move in a position as reported by the
// engine. Squares absent from the record are board.NoSquare.
type MoveAttributes struct {
	From     board.Square
	To       board.Square
	Capture  board.Square // differs from To for en passant
	EP       board.Square // en passant square after a double push
	SAN      string
	RookMove string // rook's move when castling
	Legal    bool
	IsEP     bool
	IsCastle bool
}

// MoveList decodes either a JSON array of move tokens or one
// space-separated string.
type MoveList []string

// UnmarshalJSON implements json.Unmarshaler.
func (m *MoveList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*m = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("move list: %w", err)
	}
	*m = strings.Fields(s)
	return nil
}

// Moves parses every token.
func (m MoveList) Moves() ([]board.Move, error) {
	return board.ParseMoves(strings.Join(m, " "))
}

// EvalTags is the sparse record returned by the eval call. Only the fields
// the engine sends are non-nil. Names follow EPD opcodes.
type EvalTags struct {
	CP    *int     `json:"cp,omitempty"`    // centipawn score
	CE    *int     `json:"ce,omitempty"`    // centipawn evaluation
	DM    *int     `json:"dm,omitempty"`    // direct mate in n
	BM    MoveList `json:"bm,omitempty"`    // best moves
	PV    MoveList `json:"pv,omitempty"`    // principal variation
	SM    *string  `json:"sm,omitempty"`    // supplied move
	ACD   *int     `json:"acd,omitempty"`   // analysis depth
	ACSL  *int     `json:"Acsl,omitempty"`  // analysis selective depth
	ACS   *int     `json:"acs,omitempty"`   // analysis seconds
	ACN   *int64   `json:"acn,omitempty"`   // analysis nodes
	Res   *string  `json:"Res,omitempty"`   // 1-0, 0-1, 1/2-1/2, * or ILLEGAL
	Check *bool    `json:"Check,omitempty"` // side to move in check
	Mat   *string  `json:"Mat,omitempty"`   // material summary
}

// OutcomeKind distinguishes the variants of Outcome.
type OutcomeKind int

const (
	OutcomeUnknown OutcomeKind = iota
	OutcomeScore
	OutcomeTerminal
)

// Outcome is the category of an evaluation: a score (centipawns or mate) or
// a terminal tag such as "1-0".
type Outcome struct {
	Kind     OutcomeKind
	Score    Score
	Terminal string
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeScore:
		return o.Score.String()
	case OutcomeTerminal:
		return o.Terminal
	default:
		return "unknown"
	}
}

// Outcome classifies t. A decided result wins over a mate distance, which
// wins over a centipawn value.
func (t EvalTags) Outcome() Outcome {
	if t.Res != nil && *t.Res != "" && *t.Res != "*" {
		return Outcome{Kind: OutcomeTerminal, Terminal: *t.Res}
	}
	if t.DM != nil {
		return Outcome{Kind: OutcomeScore, Score: ScoreMate(*t.DM)}
	}
	if t.CP != nil {
		return Outcome{Kind: OutcomeScore, Score: ScoreCentipawns(*t.CP)}
	}
	if t.CE != nil {
		return Outcome{Kind: OutcomeScore, Score: ScoreCentipawns(*t.CE)}
	}
	return Outcome{Kind: OutcomeUnknown}
}
