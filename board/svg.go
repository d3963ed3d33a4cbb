package board

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

const (
	defaultSquareSize = 45
	lightSquareColor  = "#f0d9b5"
	darkSquareColor   = "#b58863"
	highlightColor    = "#cdd26a"
)

var pieceGlyphs = map[rune]string{
	'K': "♔", 'Q': "♕", 'R': "♖", 'B': "♗", 'N': "♘", 'P': "♙",
	'k': "♚", 'q': "♛", 'r': "♜", 'b': "♝", 'n': "♞", 'p': "♟",
}

type svgConfig struct {
	squareSize int
	highlight  Bitboard
	flipped    bool
}

// SVGOption customizes WriteSVG.
type SVGOption func(*svgConfig)

// WithSquareSize sets the edge length of one square in pixels.
func WithSquareSize(px int) SVGOption {
	return func(c *svgConfig) {
		if px > 0 {
			c.squareSize = px
		}
	}
}

// WithHighlight marks the given squares.
func WithHighlight(squares Bitboard) SVGOption {
	return func(c *svgConfig) { c.highlight = squares }
}

// WithFlipped draws the board from Black's side.
func WithFlipped(flipped bool) SVGOption {
	return func(c *svgConfig) { c.flipped = flipped }
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// WriteSVG draws the placement of b as an SVG diagram.
func (b Board) WriteSVG(w io.Writer, opts ...SVGOption) error {
	cfg := svgConfig{squareSize: defaultSquareSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	size := cfg.squareSize

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(8*size, 8*size)
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := SquareAt(file, rank)
			x, y := file*size, (7-rank)*size
			if cfg.flipped {
				x, y = (7-file)*size, rank*size
			}
			color := lightSquareColor
			if (file+rank)%2 == 0 {
				color = darkSquareColor
			}
			if cfg.highlight.Contains(sq) {
				color = highlightColor
			}
			canvas.Rect(x, y, size, size, "fill:"+color)

			p := b.PieceOn(sq)
			if p.IsNone() {
				continue
			}
			style := fmt.Sprintf("font-size:%dpx;text-anchor:middle;dominant-baseline:central", size*4/5)
			canvas.Text(x+size/2, y+size/2, pieceGlyphs[p.Symbol()], style)
		}
	}
	canvas.End()
	return ew.err
}
