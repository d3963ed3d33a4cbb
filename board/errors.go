package board

import (
	"errors"
	"fmt"
)

// ErrShiftRange indicates a bitboard shift amount outside 0..63.
var ErrShiftRange = errors.New("shift amount out of range")

// ParseErrorKind categorizes notation parsing errors.
type ParseErrorKind int

const (
	// ErrKindSquare indicates a malformed square name.
	ErrKindSquare ParseErrorKind = iota
	// ErrKindMove indicates a malformed move token.
	ErrKindMove
	// ErrKindPiece indicates an unknown piece symbol.
	ErrKindPiece
	// ErrKindFieldCount indicates a FEN with fewer than six fields.
	ErrKindFieldCount
	// ErrKindRankCount indicates a grid field without exactly eight ranks.
	ErrKindRankCount
	// ErrKindRankWidth indicates a rank that does not expand to eight squares.
	ErrKindRankWidth
	// ErrKindPieceChar indicates a grid character that is neither a piece nor 1-8.
	ErrKindPieceChar
	// ErrKindTurn indicates a turn field other than w or b.
	ErrKindTurn
	// ErrKindCastling indicates a castling field with characters outside KQkq.
	ErrKindCastling
	// ErrKindEnPassant indicates an en-passant field that is neither - nor a square.
	ErrKindEnPassant
	// ErrKindHalfmove indicates a half-move clock that is not a non-negative integer.
	ErrKindHalfmove
	// ErrKindFullmove indicates a full-move number that is not a positive integer.
	ErrKindFullmove
)

var kindNames = map[ParseErrorKind]string{
	ErrKindSquare:     "square",
	ErrKindMove:       "move",
	ErrKindPiece:      "piece",
	ErrKindFieldCount: "field count",
	ErrKindRankCount:  "rank count",
	ErrKindRankWidth:  "rank width",
	ErrKindPieceChar:  "grid character",
	ErrKindTurn:       "turn",
	ErrKindCastling:   "castling",
	ErrKindEnPassant:  "en passant",
	ErrKindHalfmove:   "half-move clock",
	ErrKindFullmove:   "full-move number",
}

func (k ParseErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

// ParseError represents malformed notation text.
type ParseError struct {
	Kind  ParseErrorKind
	Field string // The offending field (or rank) of the input
	Text  string // The complete original input
	Msg   string // Additional context
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrKindSquare:
		return fmt.Sprintf("invalid square '%s'", e.Field)
	case ErrKindMove:
		if e.Msg != "" {
			return fmt.Sprintf("invalid move '%s': %s", e.Field, e.Msg)
		}
		return fmt.Sprintf("invalid move '%s'", e.Field)
	case ErrKindPiece:
		return fmt.Sprintf("invalid piece '%s'", e.Field)
	}
	if e.Msg != "" {
		return fmt.Sprintf("invalid FEN '%s': %s '%s': %s", e.Text, e.Kind, e.Field, e.Msg)
	}
	return fmt.Sprintf("invalid FEN '%s': %s '%s'", e.Text, e.Kind, e.Field)
}

// Is reports whether target is a *ParseError of the same kind, so callers can
// match with errors.Is(err, &ParseError{Kind: ErrKindTurn}).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

func newSquareError(text string) error {
	return &ParseError{Kind: ErrKindSquare, Field: text, Text: text}
}

func newMoveError(text, msg string) error {
	return &ParseError{Kind: ErrKindMove, Field: text, Text: text, Msg: msg}
}

func newFENError(kind ParseErrorKind, field, text, msg string) error {
	return &ParseError{Kind: kind, Field: field, Text: text, Msg: msg}
}
