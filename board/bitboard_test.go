package board

import (
	"errors"
	"slices"
	"testing"
)

var bitboardSamples = []Bitboard{
	Empty,
	Full,
	FileA,
	Rank8,
	BitboardOf(A1, H8),
	BitboardOf(C3, D4, E5, F6),
	0x8000000000000001,
	0x00FF00FF00FF00FF,
	0x123456789ABCDEF0,
}

func TestBitboardAlgebraLaws(t *testing.T) {
	for _, x := range bitboardSamples {
		if x.Complement().Complement() != x {
			t.Errorf("~~%#x != %#x", uint64(x), uint64(x))
		}
		if got, want := x.Count(), len(x.Squares()); got != want {
			t.Errorf("Count(%#x) = %d, but %d squares iterated", uint64(x), got, want)
		}
		for _, y := range bitboardSamples {
			if x.Intersect(y) != y.Intersect(x) {
				t.Errorf("intersection of %#x and %#x is not commutative", uint64(x), uint64(y))
			}
			if x.Union(x.Intersect(y)) != x {
				t.Errorf("absorption fails for %#x, %#x", uint64(x), uint64(y))
			}
			if x.Difference(y) != x.Intersect(y.Complement()) {
				t.Errorf("difference of %#x and %#x", uint64(x), uint64(y))
			}
			if x.SymDiff(y) != x.Union(y).Difference(x.Intersect(y)) {
				t.Errorf("symmetric difference of %#x and %#x", uint64(x), uint64(y))
			}
		}
	}
}

func TestBitboardMembership(t *testing.T) {
	bb := Empty.With(B3)
	if !bb.Contains(B3) {
		t.Error("B3 should be a member")
	}
	if bb.Contains(C4) {
		t.Error("C4 should not be a member")
	}
	if bb.Without(B3) != Empty {
		t.Error("Without(B3) should empty the set")
	}
	if !Empty.IsEmpty() || Full.IsEmpty() {
		t.Error("IsEmpty mismatch")
	}
	if !FileA.IsDisjoint(FileH) {
		t.Error("files a and h should be disjoint")
	}
}

func TestBitboardSquaresIncreasingOrder(t *testing.T) {
	bb := BitboardOf(H8, A1, E4, C2)
	got := bb.Squares()
	want := []Square{A1, C2, E4, H8}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	var iterated []Square
	for sq := range bb.All() {
		iterated = append(iterated, sq)
		if sq == E4 {
			break
		}
	}
	if !slices.Equal(iterated, []Square{A1, C2, E4}) {
		t.Errorf("early-terminated iteration got %v", iterated)
	}

	first, ok := bb.First()
	if !ok || first != A1 {
		t.Errorf("First() = %v, %v", first, ok)
	}
	if _, ok := Empty.First(); ok {
		t.Error("First() of empty set should report false")
	}
}

func TestBitboardFileAndRank(t *testing.T) {
	if got := FileOf(E4); got != FileA<<4 {
		t.Errorf("FileOf(e4) = %#x", uint64(got))
	}
	if got := RankOf(E4); got != Rank1<<24 {
		t.Errorf("RankOf(e4) = %#x", uint64(got))
	}
	if FileOf(H8) != FileH || RankOf(H8) != Rank8 {
		t.Error("h8 should be on file h and rank 8")
	}
	if n := FileOf(C5).Count(); n != 8 {
		t.Errorf("file has %d squares, want 8", n)
	}
}

func TestBitboardShift(t *testing.T) {
	got, err := Rank1.Shl(8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != RankOf(A2) {
		t.Errorf("Rank1 << 8 = %#x", uint64(got))
	}
	got, err = Rank8.Shr(56)
	if err != nil || got != Rank1 {
		t.Errorf("Rank8 >> 56 = %#x, %v", uint64(got), err)
	}
	got, err = Full.Shl(63)
	if err != nil || got != H8.Bitboard() {
		t.Errorf("Full << 63 = %#x, %v", uint64(got), err)
	}
	for _, n := range []int{-1, 64, 100} {
		if _, err := Full.Shl(n); !errors.Is(err, ErrShiftRange) {
			t.Errorf("Shl(%d) error = %v, want ErrShiftRange", n, err)
		}
		if _, err := Full.Shr(n); !errors.Is(err, ErrShiftRange) {
			t.Errorf("Shr(%d) error = %v, want ErrShiftRange", n, err)
		}
	}
}

func TestBitboardCompare(t *testing.T) {
	sorted := slices.Clone(bitboardSamples)
	slices.SortFunc(sorted, Compare)
	for i := 1; i < len(sorted); i++ {
		if uint64(sorted[i-1]) > uint64(sorted[i]) {
			t.Fatalf("not sorted at %d: %#x > %#x", i, uint64(sorted[i-1]), uint64(sorted[i]))
		}
	}
	if Compare(FileA, FileA) != 0 {
		t.Error("Compare of equal sets should be 0")
	}
}

func TestBitboardString(t *testing.T) {
	want := "x.......\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		"........\n" +
		".......x"
	if got := BitboardOf(A8, H1).String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}
