package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN of the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const fenFieldCount = 6

// ParseFEN parses the six space-separated FEN fields: placement, turn,
// castling, en passant, half-move clock and full-move number. Fields after
// the sixth are ignored.
func ParseFEN(text string) (Board, error) {
	fields := strings.Fields(text)
	if len(fields) < fenFieldCount {
		return EmptyBoard(), newFENError(ErrKindFieldCount, strconv.Itoa(len(fields)), text,
			"expected 6 fields")
	}

	b := EmptyBoard()
	if err := parsePlacement(&b, fields[0], text); err != nil {
		return EmptyBoard(), err
	}

	switch fields[1] {
	case "w":
		b.Turn = White
	case "b":
		b.Turn = Black
	default:
		return EmptyBoard(), newFENError(ErrKindTurn, fields[1], text, "expected w or b")
	}

	castling, err := parseCastling(fields[2], text)
	if err != nil {
		return EmptyBoard(), err
	}
	b.Castling = castling

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return EmptyBoard(), newFENError(ErrKindEnPassant, fields[3], text, "expected - or a square")
		}
		b.EnPassant = sq
	}

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return EmptyBoard(), newFENError(ErrKindHalfmove, fields[4], text, "expected a non-negative integer")
	}
	b.HalfmoveClock = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return EmptyBoard(), newFENError(ErrKindFullmove, fields[5], text, "expected a positive integer")
	}
	b.FullmoveNumber = fullmove

	return b, nil
}

// MustParseFEN is like ParseFEN but panics on error. Intended for constants
// and tests.
func MustParseFEN(text string) Board {
	b, err := ParseFEN(text)
	if err != nil {
		panic(err)
	}
	return b
}

func parsePlacement(b *Board, field, text string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return newFENError(ErrKindRankCount, field, text,
			"expected 8 ranks but found "+strconv.Itoa(len(ranks)))
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for _, r := range row {
			switch {
			case r >= '1' && r <= '8':
				file += int(r - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", r):
				if file < 8 {
					p, _ := ParsePiece(r)
					b.Place(SquareAt(file, rank), p)
				}
				file++
			default:
				return newFENError(ErrKindPieceChar, row, text, "unexpected '"+string(r)+"'")
			}
		}
		if file != 8 {
			return newFENError(ErrKindRankWidth, row, text,
				"expected 8 squares but found "+strconv.Itoa(file))
		}
	}
	return nil
}

func parseCastling(field, text string) (CastlingRights, error) {
	if field == "-" {
		return NoCastling, nil
	}
	var c CastlingRights
	for i := 0; i < len(field); i++ {
		found := false
		for _, cl := range castlingLetters {
			if field[i] == cl.letter {
				c |= cl.right
				found = true
				break
			}
		}
		if !found {
			return NoCastling, newFENError(ErrKindCastling, field, text, "expected - or a subset of KQkq")
		}
	}
	return c, nil
}

// FEN formats the board as six space-separated FEN fields.
func (b Board) FEN() string {
	var sb strings.Builder
	b.writePlacement(&sb)
	sb.WriteByte(' ')
	sb.WriteString(b.Turn.String())
	sb.WriteByte(' ')
	sb.WriteString(b.Castling.String())
	sb.WriteByte(' ')
	sb.WriteString(b.EnPassant.Name())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullmoveNumber))
	return sb.String()
}

// PlacementFEN returns only the first FEN field.
func (b Board) PlacementFEN() string {
	var sb strings.Builder
	b.writePlacement(&sb)
	return sb.String()
}

func (b Board) writePlacement(sb *strings.Builder) {
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.PieceOn(SquareAt(file, rank))
			if p.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(p.Symbol())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}
