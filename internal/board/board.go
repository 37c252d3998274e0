package board

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Cell is one grid position plus the placement/neighbor bookkeeping the
// backtracker needs. RightNeighbor/BottomNeighbor are cell indices; cells
// on the last column/row point them at the board's dummy cell so color
// writes never need a bounds check.
type Cell struct {
	Identifier Identifier
	LeftColor  Color
	TopColor   Color

	RightNeighbor  int
	BottomNeighbor int
	Class          CellClass
}

// Board is the mutable per-worker grid. Each worker owns exactly one
// Board for its lifetime; no two goroutines ever touch the same Board
// concurrently (the reporter only reads the atomic counters below).
type Board struct {
	Puzzle *Puzzle
	Index  *Index

	Width, Height int
	TotalCells    int
	Stride        int

	// cells holds the active grid (len TotalCells), one dummy cell
	// (index TotalCells), and a shadow snapshot of the active grid and
	// its dummy (len TotalCells+1, starting at ShadowBase), back to back
	// in one allocation.
	cells      []Cell
	DummyIndex int
	ShadowBase int

	used usedSet

	// Counters are written by the owning worker only and read racily by
	// the reporter; atomics keep the reads tear-free, nothing more.
	CheckedNodes atomic.Uint64
	PlacedNodes  atomic.Uint64
	Solutions    atomic.Uint64
	MaxDepth     atomic.Int64

	// Done is polled by the backtracker on recursion entry and set by
	// the controller to request cooperative shutdown.
	Done atomic.Bool

	// SolutionCallback is invoked with the board when every cell is
	// placed. It runs on the worker's goroutine inside the DFS; it must
	// not perform unbounded work.
	SolutionCallback func(*Board)

	// localMaxDepth mirrors MaxDepth without atomic overhead for the
	// owning worker's own comparisons; MaxDepth is the published copy.
	localMaxDepth int
}

// NewBoard allocates a board for the given puzzle and index. Cell
// neighbors and class assignment are computed once here; Reset only
// needs to clear placement state afterward.
func NewBoard(p *Puzzle, index *Index) *Board {
	w, h := p.Width, p.Height
	total := w * h
	dummy := total
	shadowBase := total + 1

	b := &Board{
		Puzzle:     p,
		Index:      index,
		Width:      w,
		Height:     h,
		TotalCells: total,
		Stride:     w,
		cells:      make([]Cell, 2*(total+1)),
		DummyIndex: dummy,
		ShadowBase: shadowBase,
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			right := i + 1
			bottom := i + w
			if x == w-1 {
				right = dummy
			}
			if y == h-1 {
				bottom = dummy
			}
			b.cells[i] = Cell{
				Identifier:     NoIdentifier,
				RightNeighbor:  right,
				BottomNeighbor: bottom,
				Class:          classOf(x, y, w, h),
			}
		}
	}
	b.cells[dummy] = Cell{Identifier: NoIdentifier}

	return b
}

// Reset clears placement state for a fresh search: used pieces, cell
// colors, and the Done flag. Counters are deliberately left alone; they
// accumulate across every prefix a worker processes.
func (b *Board) Reset() {
	b.used.reset()
	for i := 0; i < b.TotalCells; i++ {
		b.cells[i].Identifier = NoIdentifier
		b.cells[i].LeftColor = EdgeColor
		b.cells[i].TopColor = EdgeColor
	}
	b.cells[b.DummyIndex].LeftColor = EdgeColor
	b.cells[b.DummyIndex].TopColor = EdgeColor
	b.Done.Store(false)
}

// Cell returns a pointer to the active cell at index i.
func (b *Board) Cell(i int) *Cell {
	return &b.cells[i]
}

// Used reports whether the given piece id is currently placed.
func (b *Board) Used(pieceID int) bool {
	return b.used.has(pieceID)
}

// Place writes a variant's effect into the board: the cell's identifier,
// the right/bottom colors into the (possibly dummy) neighbors, and the
// piece's used bit. The neighbor writes are unconditional; the dummy
// cell absorbs the out-of-grid ones.
func (b *Board) Place(cellIndex int, v PieceVariant) {
	cell := &b.cells[cellIndex]
	cell.Identifier = v.Identifier
	b.cells[cell.RightNeighbor].LeftColor = v.Right
	b.cells[cell.BottomNeighbor].TopColor = v.Bottom
	b.used.set(v.Identifier.PieceID())
}

// Unplace reverses Place's piece-usage bookkeeping. The color writes
// left behind are either overwritten by the next candidate at this cell
// or inconsequential once the caller backs out further.
func (b *Board) Unplace(pieceID int) {
	b.used.clear(pieceID)
}

// NoteDepth records depth as the new maximum and snapshots the active
// cells into the shadow area if depth exceeds the previous maximum.
// Returns true if a snapshot was taken. The snapshot is best-effort: a
// reader racing the copy may observe one stale shadow.
func (b *Board) NoteDepth(depth int) bool {
	if depth <= b.localMaxDepth {
		return false
	}
	b.localMaxDepth = depth
	b.MaxDepth.Store(int64(depth))
	b.snapshot()
	return true
}

// snapshot bulk-copies the active cells (and the dummy) into the shadow
// region in one pass.
func (b *Board) snapshot() {
	copy(b.cells[b.ShadowBase:b.ShadowBase+b.TotalCells+1], b.cells[:b.TotalCells+1])
}

// ShadowCell returns a pointer to the shadow copy of active cell i,
// reflecting the board state at the depth currently recorded in
// MaxDepth. Used by String and Validate.
func (b *Board) ShadowCell(i int) *Cell {
	return &b.cells[b.ShadowBase+i]
}

// String renders the shadow snapshot (up to MaxDepth cells) as rows of
// "id(rotation)" tokens.
func (b *Board) String() string {
	var sb strings.Builder
	depth := int(b.MaxDepth.Load())
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			i := y*b.Width + x
			if i >= depth {
				sb.WriteString(NoIdentifier.String())
			} else {
				sb.WriteString(b.ShadowCell(i).Identifier.String())
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Stats is a point-in-time, racily-read snapshot of a board's counters,
// used by the controller to aggregate across workers.
type Stats struct {
	Checked   uint64
	Placed    uint64
	Solutions uint64
	MaxDepth  int64
}

// ReadStats loads the board's counters. The values may lag the owning
// worker; they are consistent enough for reporting.
func (b *Board) ReadStats() Stats {
	return Stats{
		Checked:   b.CheckedNodes.Load(),
		Placed:    b.PlacedNodes.Load(),
		Solutions: b.Solutions.Load(),
		MaxDepth:  b.MaxDepth.Load(),
	}
}

// Validate checks the search invariants on the shadow snapshot: every
// cell below the recorded depth is placed, and no piece appears twice.
// It is a test/debug helper, not used on the hot path.
func (b *Board) Validate() error {
	var seen usedSet
	depth := int(b.MaxDepth.Load())
	for i := 0; i < depth; i++ {
		cell := b.ShadowCell(i)
		if cell.Identifier == NoIdentifier {
			return fmt.Errorf("cell %d unplaced below max_depth %d", i, depth)
		}
		id := cell.Identifier.PieceID()
		if seen.has(id) {
			return fmt.Errorf("piece %d placed more than once", id)
		}
		seen.set(id)
	}
	return nil
}
