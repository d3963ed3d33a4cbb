package board

import (
	"errors"
	"testing"
)

func TestSquareNameRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		sq := Square(i)
		got, err := ParseSquare(sq.Name())
		if err != nil {
			t.Fatalf("ParseSquare(%q) failed: %v", sq.Name(), err)
		}
		if got != sq {
			t.Errorf("ParseSquare(%q) = %d, want %d", sq.Name(), got, sq)
		}
	}
}

func TestSquareNames(t *testing.T) {
	tests := []struct {
		sq   Square
		name string
		file int
		rank int
	}{
		{A1, "a1", 0, 0},
		{B1, "b1", 1, 0},
		{H1, "h1", 7, 0},
		{A2, "a2", 0, 1},
		{B7, "b7", 1, 6},
		{F1, "f1", 5, 0},
		{H8, "h8", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sq.Name(); got != tt.name {
				t.Errorf("got %q, want %q", got, tt.name)
			}
			if tt.sq.File() != tt.file || tt.sq.Rank() != tt.rank {
				t.Errorf("file/rank = %d/%d, want %d/%d", tt.sq.File(), tt.sq.Rank(), tt.file, tt.rank)
			}
			if SquareAt(tt.file, tt.rank) != tt.sq {
				t.Errorf("SquareAt(%d, %d) = %v", tt.file, tt.rank, SquareAt(tt.file, tt.rank))
			}
		})
	}
	if NoSquare.Name() != "-" {
		t.Errorf("NoSquare.Name() = %q, want \"-\"", NoSquare.Name())
	}
}

func TestParseSquareCaseInsensitiveFile(t *testing.T) {
	sq, err := ParseSquare("E4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sq != E4 {
		t.Errorf("got %v, want e4", sq)
	}
}

func TestParseSquareRejects(t *testing.T) {
	for _, text := range []string{"", "a", "a9", "i1", "a0", "e44", "-", "00", "4e"} {
		t.Run(text, func(t *testing.T) {
			_, err := ParseSquare(text)
			if err == nil {
				t.Fatalf("ParseSquare(%q) should fail", text)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Kind != ErrKindSquare {
				t.Errorf("expected square ParseError, got %v", err)
			}
		})
	}
}

func TestIsOffBoard(t *testing.T) {
	tests := []struct {
		name  string
		sq    Square
		delta int
		want  bool
	}{
		{"north from a1", A1, 8, false},
		{"south from a1", A1, -8, true},
		{"west from a1 wraps", A1, -1, true},
		{"east from h1 wraps", H1, 1, true},
		{"north-west from a2 wraps", A2, 7, true},
		{"north-east from h1 wraps", H1, 9, true},
		{"knight g1 to h3", G1, 17, false},
		{"knight g1 to e2", G1, 6, false},
		{"knight g1 wraps to a3", G1, 10, true},
		{"knight h1 wraps to b3", H1, 10, true},
		{"knight b1 wraps to h1", B1, 6, true},
		{"north from h8", H8, 8, true},
		{"king e4 to d5", E4, 7, false},
		{"multi-file delta is not a single step", A1, 3, true},
		{"slider unit step east from d1", D1, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOffBoard(tt.sq, tt.delta); got != tt.want {
				t.Errorf("IsOffBoard(%v, %d) = %v, want %v", tt.sq, tt.delta, got, tt.want)
			}
		})
	}
}

func TestParsePiece(t *testing.T) {
	for _, r := range "pnbrqkPNBRQK" {
		p, err := ParsePiece(r)
		if err != nil {
			t.Fatalf("ParsePiece(%q) failed: %v", r, err)
		}
		if p.Symbol() != r {
			t.Errorf("ParsePiece(%q).Symbol() = %q", r, p.Symbol())
		}
	}
	if _, err := ParsePiece('x'); err == nil {
		t.Error("ParsePiece('x') should fail")
	}
	if NoPiece.Symbol() != ' ' {
		t.Errorf("NoPiece.Symbol() = %q, want ' '", NoPiece.Symbol())
	}
}
