// Package board models chess positions with bitboards and converts them to
// and from Forsyth-Edwards Notation (FEN).
//
// The board is a plain value: six piece-kind bitboards, two color occupancy
// bitboards and the game-state fields of a FEN record. Positions are built by
// parsing FEN, by editing with Place and Remove, or by asking an engine for a
// successor position (see package uci).
//
//	b, err := board.ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(b.PieceOn(board.E4)) // P
package board

import "strings"

// Square is a board square index. a1 is 0, h1 is 7, a8 is 56 and h8 is 63.
type Square int8

// NoSquare is the absent square, written "-" in FEN.
const NoSquare Square = -1

// Square constants for all 64 squares.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

const (
	fileNames = "abcdefgh"
	rankNames = "12345678"

	// maxStepFiles is the widest file change of any single step in a
	// pawn, knight, king or sliding-ray table.
	maxStepFiles = 2
)

// SquareAt returns the square on the given file and rank (both 0-7).
func SquareAt(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses a two character square name such as "e4". The file
// letter is case-insensitive.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, newSquareError(text)
	}
	file := strings.IndexByte(fileNames, lower(text[0]))
	rank := strings.IndexByte(rankNames, text[1])
	if file < 0 || rank < 0 {
		return NoSquare, newSquareError(text)
	}
	return SquareAt(file, rank), nil
}

// IsValid reports whether the square is one of the 64 board squares.
func (sq Square) IsValid() bool {
	return sq >= A1 && sq <= H8
}

// File returns the file of the square (0 = a, 7 = h).
func (sq Square) File() int {
	return int(sq) % 8
}

// Rank returns the rank of the square (0 = rank 1, 7 = rank 8).
func (sq Square) Rank() int {
	return int(sq) / 8
}

// Name returns the algebraic name of the square ("a1".."h8"), or "-" for
// NoSquare.
func (sq Square) Name() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{fileNames[sq.File()], rankNames[sq.Rank()]})
}

func (sq Square) String() string {
	return sq.Name()
}

// Bitboard returns the single-square bitboard for sq.
func (sq Square) Bitboard() Bitboard {
	if !sq.IsValid() {
		return Empty
	}
	return Bitboard(1) << uint(sq)
}

// IsOffBoard reports whether stepping from sq by delta leaves the board,
// either past the first/last rank or by wrapping around the a/h file edge.
// Only single steps are answered: pawn, knight and king moves and the unit
// steps of sliders, none of which crosses more than two files. A larger
// delta such as a1+3 is reported off the board even when the target exists;
// walk a slider one unit step at a time instead.
func IsOffBoard(sq Square, delta int) bool {
	to := int(sq) + delta
	if to < 0 || to > 63 {
		return true
	}
	return abs(int(sq)%8-to%8) > maxStepFiles
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
