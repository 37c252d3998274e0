// Package engine implements the parallel backtracking search: a
// row-major depth-first backtracker over a board.Board, a depth-limited
// prefix generator that seeds a work queue, a pool of workers each
// owning one board replica, and a controller that aggregates progress
// and applies stop policies.
package engine

import "github.com/eternity2solver/eternity2/internal/board"

// Solve runs the backtracker from the given depth. The board must
// already have every cell below depth placed (by Reset plus, for a
// seeded worker, ApplyPrefix). It returns true if the search was told to
// stop early — either because it found a solution under FirstSolution or
// because b.Done was set by the controller — so callers can unwind
// without examining further siblings.
func Solve(b *board.Board, depth int) bool {
	if b.Done.Load() {
		return true
	}

	b.NoteDepth(depth)

	if depth == b.TotalCells {
		b.Solutions.Add(1)
		if b.SolutionCallback != nil {
			b.SolutionCallback(b)
		}
		return b.Done.Load()
	}

	cell := b.Cell(depth)
	candidates := b.Index.Lookup(cell.Class, cell.LeftColor, cell.TopColor)

	for _, v := range candidates {
		b.CheckedNodes.Add(1)

		pieceID := v.Identifier.PieceID()
		if b.Used(pieceID) {
			continue
		}

		b.Place(depth, v)
		b.PlacedNodes.Add(1)

		stop := Solve(b, depth+1)

		b.Unplace(pieceID)

		if stop {
			return true
		}
	}

	return b.Done.Load()
}

// ApplyPrefix places the given variants at cells [0, len(prefix)) in order,
// without recursing further. It is the worker's bridge between a queued
// Prefix and Solve: the board must have just been Reset. Returns the depth
// reached, i.e. len(prefix), for convenience.
func ApplyPrefix(b *board.Board, prefix []board.PieceVariant) int {
	for depth, v := range prefix {
		b.Place(depth, v)
	}
	return len(prefix)
}
