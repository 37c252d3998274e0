// Package viewer renders boards for --display and builds the
// e2.bucas.name viewer URL for --bucas. Both renderers read the board's
// active cells, so they are meant to run inside a solution callback (or
// any other point where the owning worker is paused).
package viewer

import (
	"fmt"
	"strings"

	"github.com/eternity2solver/eternity2/internal/board"
)

const colorChars = "abcdefghijklmnopqrstuvwxyz"

// Display renders the board's currently placed pieces as rows of
// "id(rotation)" tokens. Inside a solution callback every cell is
// placed; unplaced cells render as a dot marker.
func Display(b *board.Board) string {
	var sb strings.Builder
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			sb.WriteString(b.Cell(y*b.Width + x).Identifier.String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// BucasURL builds the e2.bucas.name viewer URL for the board's current
// state: board_edges is four lowercase letters per cell, one per
// oriented side in TOP, RIGHT, BOTTOM, LEFT order; board_pieces is the
// piece id zero-padded to three digits. Only cells up to the deepest
// recorded depth are emitted.
func BucasURL(b *board.Board) string {
	var edges, pieces strings.Builder

	p := b.Puzzle
	depth := int(b.MaxDepth.Load())
	if depth > b.TotalCells {
		depth = b.TotalCells
	}
	for i := 0; i < depth; i++ {
		cell := b.Cell(i)
		id := cell.Identifier.PieceID()
		rotation := cell.Identifier.Rotation()
		piece := p.Pieces[id]

		at := func(d board.Direction) board.Color {
			return piece.Colors[((int(d)-rotation)%4+4)%4]
		}
		edges.WriteByte(colorChars[at(board.Top)])
		edges.WriteByte(colorChars[at(board.Right)])
		edges.WriteByte(colorChars[at(board.Bottom)])
		edges.WriteByte(colorChars[at(board.Left)])

		fmt.Fprintf(&pieces, "%03d", id)
	}

	return fmt.Sprintf(
		"https://e2.bucas.name/#puzzle=work_in_progress&board_w=%d&board_h=%d&board_edges=%s&board_pieces=%s",
		p.Width, p.Height, edges.String(), pieces.String(),
	)
}
