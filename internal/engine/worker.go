package engine

import (
	"context"
	"time"

	"github.com/eternity2solver/eternity2/internal/board"
)

// popTimeout bounds how long a worker blocks on an empty queue before
// re-checking the queue's drained state and its Done flag, so shutdown
// is never more than a few of these behind the controller's decision.
const popTimeout = 10 * time.Millisecond

// Worker pulls Prefixes off a shared WorkQueue and runs the backtracker
// from each one on its own Board.
type Worker struct {
	ID    int
	Board *board.Board
	Queue *WorkQueue
}

// NewWorker builds a worker bound to its own board and the shared queue.
// Each worker must own a distinct *board.Board; boards are never shared
// across goroutines.
func NewWorker(id int, b *board.Board, q *WorkQueue) *Worker {
	return &Worker{ID: id, Board: b, Queue: q}
}

// Run drains prefixes from the queue until the queue is closed and empty,
// the context is cancelled, or the board's Done flag is set by the
// controller (a solution found under FirstSolution, a node-count limit
// reached, or a user stop). It never returns an error itself; errors
// belong to I/O, not to search exhaustion.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if w.Board.Done.Load() {
			return nil
		}

		prefix, ok := w.Queue.PopWait(popTimeout)
		if !ok {
			if w.Queue.Drained() {
				return nil
			}
			continue
		}

		// Reset clears Done, so a stop that landed while we were blocked
		// in PopWait must be honored before it is wiped.
		if w.Board.Done.Load() {
			return nil
		}
		w.Board.Reset()
		depth := ApplyPrefix(w.Board, prefix)
		Solve(w.Board, depth)
	}
}
