// Command eternity2 solves edge-matching puzzles of the Eternity II
// family: a rectangular grid of square, edge-colored, rotatable pieces
// placed so every shared edge matches and every border edge carries the
// frame color.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	flag "github.com/spf13/pflag"

	"github.com/eternity2solver/eternity2/internal/board"
	"github.com/eternity2solver/eternity2/internal/engine"
	"github.com/eternity2solver/eternity2/internal/puzfile"
	"github.com/eternity2solver/eternity2/internal/viewer"
)

// Exit codes: 0 for a completed run whether or not it found a solution,
// 2 for missing/unreadable/malformed input, 3 for internal failures, 130
// for a user interrupt (128+SIGINT).
const (
	exitOK            = 0
	exitInputError    = 2
	exitInternalError = 3
	exitUserStop      = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		puzzlePath = flag.StringP("puzzle", "p", "", "path to the puzzle file (required)")
		first      = flag.BoolP("first", "f", false, "stop at the first solution found")
		display    = flag.BoolP("display", "d", false, "print each solution to standard output")
		bucas      = flag.BoolP("bucas", "u", false, "print a bucas.name viewer URL for each displayed solution")
		maxNodes   = flag.Int64P("max-nodes", "m", -1, "stop once this many nodes have been placed (<= 0 disables)")
		numThreads = flag.Int64P("number-threads", "n", 1, "maximum worker threads (clamped to CPU count minus one, minimum 1)")
	)
	flag.Parse()

	// Progress ticks and solution dumps belong on stdout; stderr carries
	// only fatal I/O errors.
	log.SetOutput(os.Stdout)

	if *puzzlePath == "" {
		fmt.Fprintln(os.Stderr, "eternity2: --puzzle is required")
		flag.Usage()
		return exitInputError
	}

	puzzle, err := puzfile.Load(*puzzlePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eternity2: %v\n", err)
		return exitInputError
	}

	log.Printf("[main] loaded puzzle %dx%d, %d colors", puzzle.Width, puzzle.Height, puzzle.MaxColor+1)

	index := board.BuildIndex(puzzle)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	limits := engine.Limits{
		Workers:        int(*numThreads),
		FirstSolution:  *first,
		ReportInterval: time.Second,
	}
	if *maxNodes > 0 {
		limits.MaxNodesToPlace = uint64(*maxNodes)
	}

	// One print mutex serializes solution dumps against each other; each
	// log line is already atomic on its own.
	var printMu sync.Mutex
	if *display || *bucas {
		limits.OnSolution = func(b *board.Board) {
			printMu.Lock()
			defer printMu.Unlock()
			if *display {
				fmt.Print(viewer.Display(b))
			}
			if *bucas {
				fmt.Println(viewer.BucasURL(b))
			}
		}
	}

	start := time.Now()
	result, err := engine.Run(ctx, puzzle, index, limits, func(t engine.Tick) {
		log.Println("[reporter]", engine.FormatTick(t))
	})
	elapsed := time.Since(start)

	if err != nil {
		fmt.Fprintf(os.Stderr, "eternity2: search error: %v\n", err)
		return exitInternalError
	}

	printSummary(result.Stats, elapsed)

	if ctx.Err() != nil {
		log.Printf("[main] stopped by user")
		return exitUserStop
	}

	if result.Stats.Solutions == 0 {
		log.Printf("[main] no solution found")
	}
	return exitOK
}

func printSummary(s board.Stats, elapsed time.Duration) {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		seconds = 1
	}
	log.Printf("[main] done in %s: checked=%s placed=%s solutions=%s max_depth=%d",
		elapsed.Round(time.Millisecond),
		humanize.Comma(int64(s.Checked)),
		humanize.Comma(int64(s.Placed)),
		humanize.Comma(int64(s.Solutions)),
		s.MaxDepth,
	)
	log.Printf("[main] rate: checked %s/s, placed %s/s",
		humanize.Comma(int64(float64(s.Checked)/seconds)),
		humanize.Comma(int64(float64(s.Placed)/seconds)),
	)
}
