package board

import (
	"cmp"
	"iter"
	"math/bits"
	"strings"
)

// Bitboard is a set of squares; bit i is set when square i is a member.
type Bitboard uint64

const (
	Empty Bitboard = 0
	Full  Bitboard = ^Empty

	FileA Bitboard = 0x0101010101010101
	FileH Bitboard = FileA << 7
	Rank1 Bitboard = 0xFF
	Rank8 Bitboard = Rank1 << 56
)

// BitboardOf returns the set containing exactly the given squares. Invalid
// squares are ignored.
func BitboardOf(squares ...Square) Bitboard {
	var b Bitboard
	for _, sq := range squares {
		b |= sq.Bitboard()
	}
	return b
}

// FileOf returns all squares on the file of sq.
func FileOf(sq Square) Bitboard {
	return FileA << uint(sq.File())
}

// RankOf returns all squares on the rank of sq.
func RankOf(sq Square) Bitboard {
	return Rank1 << uint(8*sq.Rank())
}

// Union returns the squares in b or o.
func (b Bitboard) Union(o Bitboard) Bitboard { return b | o }

// Intersect returns the squares in both b and o.
func (b Bitboard) Intersect(o Bitboard) Bitboard { return b & o }

// Difference returns the squares in b but not in o.
func (b Bitboard) Difference(o Bitboard) Bitboard { return b &^ o }

// SymDiff returns the squares in exactly one of b and o.
func (b Bitboard) SymDiff(o Bitboard) Bitboard { return b ^ o }

// Complement returns every square not in b.
func (b Bitboard) Complement() Bitboard { return ^b }

// With returns b with sq added.
func (b Bitboard) With(sq Square) Bitboard { return b | sq.Bitboard() }

// Without returns b with sq removed.
func (b Bitboard) Without(sq Square) Bitboard { return b &^ sq.Bitboard() }

// Contains reports whether sq is a member.
func (b Bitboard) Contains(sq Square) bool { return b&sq.Bitboard() != 0 }

// IsEmpty reports whether the set has no members.
func (b Bitboard) IsEmpty() bool { return b == 0 }

// IsDisjoint reports whether b and o share no square.
func (b Bitboard) IsDisjoint(o Bitboard) bool { return b&o == 0 }

// Count returns the number of members.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// Shl shifts every member n squares towards h8. Bits shifted past h8 are
// dropped.
func (b Bitboard) Shl(n int) (Bitboard, error) {
	if n < 0 || n > 63 {
		return Empty, ErrShiftRange
	}
	return b << uint(n), nil
}

// Shr shifts every member n squares towards a1. Bits shifted past a1 are
// dropped.
func (b Bitboard) Shr(n int) (Bitboard, error) {
	if n < 0 || n > 63 {
		return Empty, ErrShiftRange
	}
	return b >> uint(n), nil
}

// First returns the lowest member.
func (b Bitboard) First() (Square, bool) {
	if b == 0 {
		return NoSquare, false
	}
	return Square(bits.TrailingZeros64(uint64(b))), true
}

// All yields the members in increasing square order.
func (b Bitboard) All() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for bb := b; bb != 0; bb &= bb - 1 {
			if !yield(Square(bits.TrailingZeros64(uint64(bb)))) {
				return
			}
		}
	}
}

// Squares returns the members in increasing square order.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.Count())
	for sq := range b.All() {
		squares = append(squares, sq)
	}
	return squares
}

// Compare orders bitboards by their numeric pattern.
func Compare(a, b Bitboard) int {
	return cmp.Compare(uint64(a), uint64(b))
}

// String draws the set as an 8x8 grid, rank 8 first, with 'x' for members.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Contains(SquareAt(file, rank)) {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('.')
			}
		}
		if rank > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
