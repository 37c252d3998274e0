package engine

import (
	"context"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eternity2solver/eternity2/internal/board"
)

// maxWorkers is the CPU count minus one (leave a core for the reporter
// and the OS), floored at one.
func maxWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		return 1
	}
	return n
}

// NumWorkers clamps a requested worker count to [1, NumCPU-1].
// requested <= 0 is treated as 1.
func NumWorkers(requested int) int {
	if requested < 1 {
		requested = 1
	}
	if max := maxWorkers(); requested > max {
		requested = max
	}
	return requested
}

// Limits bundles the run-level configuration a caller hands to Run: how
// many workers to run, how eagerly to stop, and how often to report.
type Limits struct {
	Workers         int
	FirstSolution   bool
	MaxNodesToPlace uint64
	ReportInterval  time.Duration

	// OnSolution, if non-nil, is invoked on the finding worker's
	// goroutine for every completed board, before any FirstSolution stop
	// is applied. It must not perform unbounded work.
	OnSolution func(*board.Board)
}

// Result is what Run returns once every worker has exited: the final
// aggregate counters and, if any worker completed the board, a pointer to
// that worker's Board so the caller can render its shadow snapshot.
type Result struct {
	Stats       board.Stats
	SolvedBoard *board.Board
}

// Run builds one Board per worker, seeds a WorkQueue with prefixes from
// the prefix generator, runs the worker pool under an errgroup, and runs
// the Controller concurrently to report progress and apply stop
// policies. It returns once every worker has exited, which happens when
// the queue drains, a stop policy fires, or ctx is cancelled. report, if
// non-nil, is called on each Controller tick.
func Run(ctx context.Context, p *board.Puzzle, index *board.Index, limits Limits, report func(Tick)) (Result, error) {
	workers := NumWorkers(limits.Workers)
	interval := limits.ReportInterval
	if interval <= 0 {
		interval = time.Second
	}

	boards := make([]*board.Board, workers)
	for i := range boards {
		boards[i] = board.NewBoard(p, index)
	}

	queue := NewWorkQueue()
	controller := NewController(boards, queue, StopPolicy{
		FirstSolution:   limits.FirstSolution,
		MaxNodesToPlace: limits.MaxNodesToPlace,
	})

	stop := controller.SolutionCallback()
	solutionCallback := stop
	if limits.OnSolution != nil {
		onSolution := limits.OnSolution
		solutionCallback = func(b *board.Board) {
			onSolution(b)
			stop(b)
		}
	}
	for _, b := range boards {
		b.SolutionCallback = solutionCallback
	}

	generatorBoard := board.NewBoard(p, index)
	prefixes := Generate(generatorBoard, workers*4)
	if len(prefixes) == 0 {
		// No legal placement exists for the first cell. Seed a single
		// empty prefix so the run still walks the (empty) tree and
		// reports its counters.
		prefixes = []Prefix{{}}
	}
	for _, prefix := range prefixes {
		queue.Push(prefix)
	}
	queue.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(runCtx)

	pool, poolCtx := errgroup.WithContext(groupCtx)
	for i, b := range boards {
		worker := NewWorker(i, b, queue)
		pool.Go(func() error {
			return worker.Run(poolCtx)
		})
	}
	group.Go(func() error {
		// Once every worker has exited, cancel unblocks the controller's
		// tick loop so group.Wait joins it too.
		defer cancel()
		return pool.Wait()
	})
	group.Go(func() error {
		controller.Run(groupCtx, interval, report)
		return nil
	})

	err := group.Wait()

	result := Result{Stats: controller.Aggregate()}
	for _, b := range boards {
		if b.ReadStats().Solutions > 0 {
			result.SolvedBoard = b
			break
		}
	}

	if err != nil && err != context.Canceled {
		return result, err
	}
	return result, nil
}
