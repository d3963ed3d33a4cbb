package board

import (
	"errors"
	"strings"
)

// NullMoveToken is the UCI spelling of "no move".
const NullMoveToken = "0000"

// Move is a move in UCI coordinate form: source, destination and an
// optional promotion kind.
type Move struct {
	From      Square
	To        Square
	Promotion Kind // NoKind unless the move promotes
}

// NullMove is the move written "0000".
var NullMove = Move{From: NoSquare, To: NoSquare, Promotion: NoKind}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool {
	return m == NullMove
}

// PromotionSymbol returns the promotion letter ("n", "b", "r" or "q"), or ""
// when the move does not promote.
func (m Move) PromotionSymbol() string {
	return m.Promotion.Letter()
}

// String returns the UCI token, e.g. "e2e4" or "c7c8q".
func (m Move) String() string {
	if m.IsNull() {
		return NullMoveToken
	}
	return m.From.Name() + m.To.Name() + m.PromotionSymbol()
}

// ParseMove parses a 4 or 5 character UCI move token. The promotion letter
// must be one of n, b, r or q. "0000" parses to NullMove.
func ParseMove(text string) (Move, error) {
	if text == NullMoveToken {
		return NullMove, nil
	}
	if len(text) != 4 && len(text) != 5 {
		return NullMove, newMoveError(text, "expected 4 or 5 characters")
	}
	from, err := ParseSquare(text[:2])
	if err != nil {
		return NullMove, newMoveError(text, "bad source square")
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return NullMove, newMoveError(text, "bad destination square")
	}
	m := Move{From: from, To: to, Promotion: NoKind}
	if len(text) == 5 {
		switch text[4] {
		case 'n':
			m.Promotion = Knight
		case 'b':
			m.Promotion = Bishop
		case 'r':
			m.Promotion = Rook
		case 'q':
			m.Promotion = Queen
		default:
			return NullMove, newMoveError(text, "promotion should be one of n, b, r or q")
		}
	}
	return m, nil
}

// ParseMoves parses a whitespace separated list of move tokens.
func ParseMoves(text string) ([]Move, error) {
	tokens := strings.Fields(text)
	moves := make([]Move, 0, len(tokens))
	for _, tok := range tokens {
		m, err := ParseMove(tok)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// FormatMoves joins moves as space separated UCI tokens.
func FormatMoves(moves []Move) string {
	tokens := make([]string, len(moves))
	for i, m := range moves {
		tokens[i] = m.String()
	}
	return strings.Join(tokens, " ")
}

var (
	// ErrNullMove is returned when applying the null move.
	ErrNullMove = errors.New("cannot apply the null move")

	// ErrNoPieceToMove is returned when the source square of a move is empty.
	ErrNoPieceToMove = errors.New("no piece on source square")
)

// castlingHome maps each square whose vacating or capture forfeits rights.
var castlingHome = map[Square]CastlingRights{
	E1: WhiteKingside | WhiteQueenside,
	H1: WhiteKingside,
	A1: WhiteQueenside,
	E8: BlackKingside | BlackQueenside,
	H8: BlackKingside,
	A8: BlackQueenside,
}

// Apply returns the position after m. It does not check legality; the engine
// is the authority on that. The bookkeeping rules are:
//
//   - a king moving two files castles and the rook on that side jumps over it;
//   - a pawn landing on the en-passant square removes the pawn behind it;
//   - a move starting on or landing on e1, a1, h1, e8, a8 or h8 forfeits the
//     castling rights tied to that square;
//   - every double pawn push sets the en-passant square to the skipped square,
//     any other move clears it;
//   - the half-move clock resets on pawn moves and captures;
//   - the full-move number increases after Black moves.
func (b Board) Apply(m Move) (Board, error) {
	if m.IsNull() {
		return b, ErrNullMove
	}
	mover := b.PieceOn(m.From)
	if mover.IsNone() {
		return b, ErrNoPieceToMove
	}

	next := b
	next.HalfmoveClock++

	captureSq := m.To
	if mover.Kind == Pawn && m.To == b.EnPassant && b.PieceOn(m.To).IsNone() {
		if mover.Color == White {
			captureSq = m.To - 8
		} else {
			captureSq = m.To + 8
		}
	}
	if !next.PieceOn(captureSq).IsNone() {
		next.Remove(captureSq)
		next.HalfmoveClock = 0
	}

	if mover.Kind == King && abs(m.From.File()-m.To.File()) == 2 {
		rank := m.From.Rank()
		rookFrom, rookTo := SquareAt(7, rank), SquareAt(5, rank)
		if m.To.File() < m.From.File() {
			rookFrom, rookTo = SquareAt(0, rank), SquareAt(3, rank)
		}
		rook := next.PieceOn(rookFrom)
		next.Remove(rookFrom)
		next.Place(rookTo, rook)
	}

	next.Castling &^= castlingHome[m.From] | castlingHome[m.To]

	placed := mover
	if m.Promotion != NoKind {
		placed.Kind = m.Promotion
	}
	next.Remove(m.From)
	next.Place(m.To, placed)

	next.EnPassant = NoSquare
	if mover.Kind == Pawn {
		next.HalfmoveClock = 0
		if abs(m.From.Rank()-m.To.Rank()) == 2 {
			next.EnPassant = SquareAt(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
		}
	}

	if b.Turn == Black {
		next.FullmoveNumber++
	}
	next.Turn = b.Turn.Opposite()
	return next, nil
}
