// Package output renders positions as text diagrams and JSON documents.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// BoardOptions controls diagram rendering.
type BoardOptions struct {
	// NoColor renders plain text.
	NoColor bool
	// ForceColor emits colours even when the output is not a terminal.
	ForceColor bool
	// Flip puts Black at the bottom.
	Flip bool
	// Highlight marks squares, typically the legal destinations of a piece.
	Highlight []chess.Square
}

// Square and piece colours.
const (
	lightSquare = color.BgHiWhite
	darkSquare  = color.BgGreen
	markSquare  = color.BgCyan
	checkSquare = color.BgRed
	whitePiece  = color.FgHiWhite
	blackPiece  = color.FgBlack
)

// colourEnabled follows the library's terminal detection unless the options
// force a choice.
func colourEnabled(opts BoardOptions) bool {
	if opts.NoColor {
		return false
	}
	return opts.ForceColor || !color.NoColor
}

// cell renders one square three characters wide. Without colours an empty
// square is a dot and a marked square is bracketed.
func cell(pc chess.Piece, occupied, marked, inCheck, light, coloured bool) string {
	letter := "."
	if occupied {
		letter = string(pc.Letter())
	}
	if !coloured {
		if marked {
			return "[" + letter + "]"
		}
		return " " + letter + " "
	}

	bg := darkSquare
	switch {
	case inCheck:
		bg = checkSquare
	case marked:
		bg = markSquare
	case light:
		bg = lightSquare
	}
	attrs := []color.Attribute{bg}
	if occupied {
		fg := blackPiece
		if pc.Colour == chess.White {
			fg = whitePiece
		}
		attrs = append(attrs, fg, color.Bold)
	} else {
		letter = " "
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(" " + letter + " ")
}

func checkedKingSquare(pos *chess.Position) (chess.Square, bool) {
	side := pos.SideToMove()
	if !engine.IsInCheck(pos, side) {
		return chess.Square{}, false
	}
	king, ok := pos.King(side)
	return king.Square, ok
}

// RenderBoard draws an 8x8 diagram with rank and file labels. A king in
// check is marked. Pieces use uppercase for White and lowercase for Black.
func RenderBoard(w io.Writer, pos *chess.Position, opts BoardOptions) error {
	coloured := colourEnabled(opts)

	marked := make(map[chess.Square]bool, len(opts.Highlight))
	for _, sq := range opts.Highlight {
		marked[sq] = true
	}
	checked, inCheck := checkedKingSquare(pos)

	rows := []int{8, 7, 6, 5, 4, 3, 2, 1}
	cols := []int{1, 2, 3, 4, 5, 6, 7, 8}
	if opts.Flip {
		rows = []int{1, 2, 3, 4, 5, 6, 7, 8}
		cols = []int{8, 7, 6, 5, 4, 3, 2, 1}
	}

	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "%d ", row)
		for _, col := range cols {
			sq := chess.Sq(col, row)
			pc, ok := pos.PieceAt(sq)
			light := (col+row)%2 == 1
			b.WriteString(cell(pc, ok, marked[sq], inCheck && sq == checked, light, coloured))
		}
		b.WriteByte('\n')
	}
	b.WriteString("  ")
	for _, col := range cols {
		fmt.Fprintf(&b, " %c ", chess.ColBase+col-1)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
