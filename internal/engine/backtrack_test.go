package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/eternity2solver/eternity2/internal/board"
)

// onePiece1x1 is the trivial puzzle: a single cell whose piece must have
// every edge colored EdgeColor.
func onePiece1x1() *board.Puzzle {
	return &board.Puzzle{
		Width: 1, Height: 1, MaxColor: 0,
		Pieces: []board.Piece{board.NewPiece(0, 0, 0, 0, 0)},
	}
}

func twoByTwoAllSame() *board.Puzzle {
	return &board.Puzzle{
		Width: 2, Height: 2, MaxColor: 1,
		Pieces: []board.Piece{
			board.NewPiece(0, 0, 0, 1, 1),
			board.NewPiece(1, 0, 0, 1, 1),
			board.NewPiece(2, 0, 0, 1, 1),
			board.NewPiece(3, 0, 0, 1, 1),
		},
	}
}

// twoByTwoUnsolvable mixes 1-colored and 2-colored corner pieces so
// that no full assignment can satisfy every shared edge.
func twoByTwoUnsolvable() *board.Puzzle {
	return &board.Puzzle{
		Width: 2, Height: 2, MaxColor: 2,
		Pieces: []board.Piece{
			board.NewPiece(0, 0, 0, 1, 1),
			board.NewPiece(1, 0, 0, 2, 2),
			board.NewPiece(2, 1, 1, 0, 0),
			board.NewPiece(3, 2, 2, 0, 0),
		},
	}
}

// A single EdgeColor-only piece yields 4 solutions, one per rotation,
// since distinct rotations are kept as distinct variants rather than
// deduplicated.
func TestSolveTrivial1x1(t *testing.T) {
	p := onePiece1x1()
	ix := board.BuildIndex(p)
	b := board.NewBoard(p, ix)
	b.Reset()

	Solve(b, 0)

	if b.Solutions.Load() != 4 {
		t.Fatalf("Solutions = %d, want 4 (one per rotation)", b.Solutions.Load())
	}
}

func TestSolveFindsKnownAssembly(t *testing.T) {
	p := twoByTwoAllSame()
	ix := board.BuildIndex(p)
	b := board.NewBoard(p, ix)
	b.Reset()

	Solve(b, 0)

	if b.Solutions.Load() == 0 {
		t.Fatal("expected at least one solution for the all-matching 2x2 puzzle")
	}
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate failed on a reported solution: %v", err)
	}
}

func TestSolveUnsolvablePuzzleFindsNone(t *testing.T) {
	p := twoByTwoUnsolvable()
	ix := board.BuildIndex(p)
	b := board.NewBoard(p, ix)
	b.Reset()

	Solve(b, 0)

	if b.Solutions.Load() != 0 {
		t.Fatalf("Solutions = %d, want 0 for an unsolvable puzzle", b.Solutions.Load())
	}
	if d := b.MaxDepth.Load(); d >= 4 {
		t.Fatalf("MaxDepth = %d, want < 4: the last cell must never be reachable", d)
	}
}

func TestSolveCountersAreDeterministic(t *testing.T) {
	p := twoByTwoAllSame()
	ix := board.BuildIndex(p)

	run := func() board.Stats {
		b := board.NewBoard(p, ix)
		b.Reset()
		Solve(b, 0)
		return b.ReadStats()
	}

	first, second := run(), run()
	if first != second {
		t.Fatalf("two identical runs diverged: %+v vs %+v", first, second)
	}
	if first.Placed > first.Checked {
		t.Fatalf("placed (%d) must never exceed checked (%d)", first.Placed, first.Checked)
	}
}

func TestSolveFirstSolutionStopsAtOne(t *testing.T) {
	p := twoByTwoAllSame()
	ix := board.BuildIndex(p)

	ctx := context.Background()
	result, err := Run(ctx, p, ix, Limits{
		Workers:        1,
		FirstSolution:  true,
		ReportInterval: time.Hour,
	}, nil)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if result.Stats.Solutions != 1 {
		t.Fatalf("Solutions = %d, want exactly 1 under FirstSolution with a single worker", result.Stats.Solutions)
	}
}

func TestSolveMaxNodesStopsEarly(t *testing.T) {
	p := twoByTwoAllSame()
	ix := board.BuildIndex(p)

	ctx := context.Background()
	result, err := Run(ctx, p, ix, Limits{
		Workers:         1,
		MaxNodesToPlace: 1,
		ReportInterval:  10 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	// The limit is only applied on a reporting tick, and the 2x2 search can
	// finish before the first one, so this checks that the run returns
	// with work recorded rather than how far short of the full search it
	// stopped.
	if result.Stats.Placed == 0 {
		t.Fatal("expected at least one placed node before the limit tripped")
	}
}

func TestRunInvokesOnSolutionPerSolution(t *testing.T) {
	p := twoByTwoAllSame()
	ix := board.BuildIndex(p)

	var mu sync.Mutex
	calls := uint64(0)
	result, err := Run(context.Background(), p, ix, Limits{
		Workers:        2,
		ReportInterval: time.Hour,
		OnSolution: func(b *board.Board) {
			mu.Lock()
			calls++
			mu.Unlock()
		},
	}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if calls != result.Stats.Solutions {
		t.Fatalf("OnSolution fired %d times for %d solutions", calls, result.Stats.Solutions)
	}
	if calls == 0 {
		t.Fatal("expected at least one solution for the all-matching 2x2 puzzle")
	}
}

func TestSolveThreadCountDoesNotChangeTotalSolutions(t *testing.T) {
	p := twoByTwoAllSame()

	counts := make(map[int]uint64)
	for _, workers := range []int{1, 4} {
		ix := board.BuildIndex(p)
		result, err := Run(context.Background(), p, ix, Limits{
			Workers:        workers,
			ReportInterval: time.Hour,
		}, nil)
		if err != nil {
			t.Fatalf("Solve returned error with %d workers: %v", workers, err)
		}
		counts[workers] = result.Stats.Solutions
	}

	if counts[1] != counts[4] {
		t.Fatalf("solution count depends on worker count: 1 worker = %d, 4 workers = %d", counts[1], counts[4])
	}
}
