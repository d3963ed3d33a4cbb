package board

import "strings"

// CastlingRights is the set of castling privileges not yet forfeited.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling                = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

var castlingLetters = [...]struct {
	right  CastlingRights
	letter byte
}{
	{WhiteKingside, 'K'},
	{WhiteQueenside, 'Q'},
	{BlackKingside, 'k'},
	{BlackQueenside, 'q'},
}

// Has reports whether every right in r is present.
func (c CastlingRights) Has(r CastlingRights) bool {
	return c&r == r
}

// String returns the FEN castling field in fixed KQkq order, or "-".
func (c CastlingRights) String() string {
	if c == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for _, cl := range castlingLetters {
		if c.Has(cl.right) {
			sb.WriteByte(cl.letter)
		}
	}
	return sb.String()
}

// Board is a chess position: piece placement plus the FEN game-state fields.
// Boards are comparable with ==; two boards are equal when all six FEN
// fields are equal.
//
// The zero value is not a position (its en-passant square is a1 and its
// move number 0); start from EmptyBoard, NewBoard or ParseFEN. Functions
// that fail return EmptyBoard.
type Board struct {
	pieces [6]Bitboard // indexed by Kind
	colors [2]Bitboard // indexed by Color

	Turn           Color
	Castling       CastlingRights
	EnPassant      Square // NoSquare when absent
	HalfmoveClock  int    // half-moves since the last pawn move or capture
	FullmoveNumber int    // starts at 1, incremented after Black moves
}

// EmptyBoard returns a board with no pieces, White to move, no castling
// rights, and move number 1.
func EmptyBoard() Board {
	return Board{
		Turn:           White,
		EnPassant:      NoSquare,
		FullmoveNumber: 1,
	}
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	b := EmptyBoard()
	back := [...]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file, k := range back {
		b.Place(SquareAt(file, 0), Piece{Kind: k, Color: White})
		b.Place(SquareAt(file, 1), Piece{Kind: Pawn, Color: White})
		b.Place(SquareAt(file, 6), Piece{Kind: Pawn, Color: Black})
		b.Place(SquareAt(file, 7), Piece{Kind: k, Color: Black})
	}
	b.Castling = AllCastling
	return b
}

// PieceOn returns the piece on sq, or NoPiece.
func (b Board) PieceOn(sq Square) Piece {
	bit := sq.Bitboard()
	if bit == Empty {
		return NoPiece
	}
	for _, k := range Kinds {
		if b.pieces[k]&bit != 0 {
			if b.colors[Black]&bit != 0 {
				return Piece{Kind: k, Color: Black}
			}
			return Piece{Kind: k, Color: White}
		}
	}
	return NoPiece
}

// Remove clears sq from every piece and occupancy set.
func (b *Board) Remove(sq Square) {
	bit := sq.Bitboard()
	for k := range b.pieces {
		b.pieces[k] &^= bit
	}
	b.colors[White] &^= bit
	b.colors[Black] &^= bit
}

// Place puts p on sq, replacing any occupant. Placing NoPiece empties sq.
func (b *Board) Place(sq Square, p Piece) {
	b.Remove(sq)
	if p.IsNone() || !sq.IsValid() {
		return
	}
	bit := sq.Bitboard()
	b.pieces[p.Kind] |= bit
	b.colors[p.Color] |= bit
}

// Pieces returns the squares holding pieces of kind k, of either color.
func (b Board) Pieces(k Kind) Bitboard {
	if k < Pawn || k > King {
		return Empty
	}
	return b.pieces[k]
}

// PiecesOf returns the squares holding p.
func (b Board) PiecesOf(p Piece) Bitboard {
	return b.Pieces(p.Kind) & b.Occupied(p.Color)
}

// Occupied returns the squares holding pieces of color c.
func (b Board) Occupied(c Color) Bitboard {
	return b.colors[c&1]
}

// Occupancy returns every occupied square.
func (b Board) Occupancy() Bitboard {
	return b.colors[White] | b.colors[Black]
}

// Pawns returns the squares holding pawns of either color.
func (b Board) Pawns() Bitboard { return b.pieces[Pawn] }

// Knights returns the squares holding knights of either color.
func (b Board) Knights() Bitboard { return b.pieces[Knight] }

// Bishops returns the squares holding bishops of either color.
func (b Board) Bishops() Bitboard { return b.pieces[Bishop] }

// Rooks returns the squares holding rooks of either color.
func (b Board) Rooks() Bitboard { return b.pieces[Rook] }

// Queens returns the squares holding queens of either color.
func (b Board) Queens() Bitboard { return b.pieces[Queen] }

// Kings returns the squares holding kings of either color.
func (b Board) Kings() Bitboard { return b.pieces[King] }

// Material lists the pieces inside region as symbols, White first, each
// color ordered pnbrqk, e.g. "PPPKppk".
func (b Board) Material(region Bitboard) string {
	var sb strings.Builder
	for _, c := range [...]Color{White, Black} {
		for _, k := range Kinds {
			p := Piece{Kind: k, Color: c}
			n := (b.PiecesOf(p) & region).Count()
			sb.WriteString(strings.Repeat(string(p.Symbol()), n))
		}
	}
	return sb.String()
}

// Grid draws the placement as eight lines, rank 8 first, '.' for empty.
func (b Board) Grid() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			p := b.PieceOn(SquareAt(file, rank))
			if p.IsNone() {
				sb.WriteByte('.')
			} else {
				sb.WriteRune(p.Symbol())
			}
		}
		if rank > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// String returns the FEN of the board.
func (b Board) String() string {
	return b.FEN()
}

// MarshalText implements encoding.TextMarshaler using FEN.
func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.FEN()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using FEN.
func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := ParseFEN(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
