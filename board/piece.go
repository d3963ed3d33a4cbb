package board

import "strings"

// Color is the side a piece belongs to.
type Color int8

const (
	White Color = iota
	Black
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return c ^ 1
}

// String returns the FEN turn letter, "w" or "b".
func (c Color) String() string {
	if c == Black {
		return "b"
	}
	return "w"
}

// Kind is a piece kind without color.
type Kind int8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King

	// NoKind marks an empty square or a move without promotion.
	NoKind Kind = -1
)

// Kinds lists the six piece kinds in board index order.
var Kinds = [...]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

const kindLetters = "pnbrqk"

// Letter returns the lowercase letter of the kind ("p".."k"), or "" for NoKind.
func (k Kind) Letter() string {
	if k < Pawn || k > King {
		return ""
	}
	return kindLetters[k : k+1]
}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece is a kind combined with a color.
type Piece struct {
	Kind  Kind
	Color Color
}

// NoPiece is the content of an empty square.
var NoPiece = Piece{Kind: NoKind}

// IsNone reports whether p is NoPiece.
func (p Piece) IsNone() bool {
	return p.Kind == NoKind
}

// Symbol returns the case-coded FEN letter: uppercase for White, lowercase
// for Black and ' ' for NoPiece.
func (p Piece) Symbol() rune {
	if p.IsNone() {
		return ' '
	}
	r := rune(kindLetters[p.Kind])
	if p.Color == White {
		r -= 'a' - 'A'
	}
	return r
}

func (p Piece) String() string {
	return string(p.Symbol())
}

// ParsePiece converts a FEN piece letter to a Piece.
func ParsePiece(r rune) (Piece, error) {
	switch {
	case r >= 'a' && r <= 'z':
		if i := strings.IndexRune(kindLetters, r); i >= 0 {
			return Piece{Kind: Kind(i), Color: Black}, nil
		}
	case r >= 'A' && r <= 'Z':
		if i := strings.IndexRune(kindLetters, r+'a'-'A'); i >= 0 {
			return Piece{Kind: Kind(i), Color: White}, nil
		}
	}
	return NoPiece, &ParseError{Kind: ErrKindPiece, Field: string(r), Text: string(r)}
}
