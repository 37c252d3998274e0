package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/eternity2solver/eternity2/internal/board"
)

// StopPolicy bundles the two early-stop conditions: FirstSolution halts
// every worker as soon as any one of them completes the board, and
// MaxNodesToPlace halts once the aggregate placed-node count reaches the
// limit. Zero values disable the corresponding policy.
type StopPolicy struct {
	FirstSolution   bool
	MaxNodesToPlace uint64
}

// Controller polls every worker's board on a fixed tick, aggregates
// their counters, applies the configured StopPolicy, and reports
// progress. Stops fan out to every board's Done flag plus a queue close
// so idle workers wake up.
type Controller struct {
	boards []*board.Board
	queue  *WorkQueue
	policy StopPolicy
}

// NewController builds a Controller over the given boards (one per
// worker) and the queue those workers pull from.
func NewController(boards []*board.Board, queue *WorkQueue, policy StopPolicy) *Controller {
	return &Controller{boards: boards, queue: queue, policy: policy}
}

// SolutionCallback returns the callback every board's SolutionCallback
// field should be set to before workers start: under FirstSolution it
// stops the whole pool the instant any worker completes the board,
// instead of waiting for the next reporting tick.
func (c *Controller) SolutionCallback() func(*board.Board) {
	return func(b *board.Board) {
		if c.policy.FirstSolution {
			c.StopAll()
		}
	}
}

// StopAll sets every board's Done flag and closes the queue so idle
// workers wake up and exit rather than blocking on PopWait.
func (c *Controller) StopAll() {
	for _, b := range c.boards {
		b.Done.Store(true)
	}
	c.queue.Close()
}

// Aggregate sums every board's Stats into one point-in-time total. The
// reads race the owning workers; the totals are approximate while the
// search is live and exact once every worker has exited.
func (c *Controller) Aggregate() board.Stats {
	var total board.Stats
	for _, b := range c.boards {
		s := b.ReadStats()
		total.Checked += s.Checked
		total.Placed += s.Placed
		total.Solutions += s.Solutions
		if s.MaxDepth > total.MaxDepth {
			total.MaxDepth = s.MaxDepth
		}
	}
	return total
}

// Tick is one reporting-interval observation: the aggregate counters,
// their change since the previous tick, the wall-clock elapsed time, the
// work queue's remaining size, and the per-worker gauge.
type Tick struct {
	Stats     board.Stats
	Delta     board.Stats
	Elapsed   time.Duration
	QueueSize int
	Gauge     string
}

// Run ticks every interval until ctx is cancelled or a stop policy fires,
// invoking report (if non-nil) on each tick. It returns the final
// aggregate.
func (c *Controller) Run(ctx context.Context, interval time.Duration, report func(Tick)) board.Stats {
	start := time.Now()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var prev board.Stats
	for {
		select {
		case <-ctx.Done():
			return c.Aggregate()
		case <-ticker.C:
			stats := c.Aggregate()
			if report != nil {
				report(Tick{
					Stats: stats,
					Delta: board.Stats{
						Checked:   stats.Checked - prev.Checked,
						Placed:    stats.Placed - prev.Placed,
						Solutions: stats.Solutions - prev.Solutions,
						MaxDepth:  stats.MaxDepth - prev.MaxDepth,
					},
					Elapsed:   time.Since(start),
					QueueSize: c.queue.Size(),
					Gauge:     c.Gauge(),
				})
			}
			prev = stats
			if c.policy.MaxNodesToPlace > 0 && stats.Placed >= c.policy.MaxNodesToPlace {
				c.StopAll()
				return stats
			}
			if anyDone(c.boards) {
				return c.Aggregate()
			}
		}
	}
}

func anyDone(boards []*board.Board) bool {
	for _, b := range boards {
		if b.Done.Load() {
			return true
		}
	}
	return false
}

// Gauge renders one character per worker, '#' while its board's Done
// flag is clear and '.' once it is set. A worker that has exited because
// the queue ran dry, without a stop, still shows '#'.
func (c *Controller) Gauge() string {
	marks := make([]byte, len(c.boards))
	for i, b := range c.boards {
		if b.Done.Load() {
			marks[i] = '.'
		} else {
			marks[i] = '#'
		}
	}
	return "[" + string(marks) + "]"
}

// FormatTick renders one progress line with large counts humanized and
// per-tick deltas alongside the running totals.
func FormatTick(t Tick) string {
	return fmt.Sprintf(
		"[%s] checked=%s (+%s) placed=%s (+%s) solutions=%s max_depth=%d queue=%d %s",
		t.Elapsed.Round(time.Second),
		humanize.Comma(int64(t.Stats.Checked)),
		humanize.Comma(int64(t.Delta.Checked)),
		humanize.Comma(int64(t.Stats.Placed)),
		humanize.Comma(int64(t.Delta.Placed)),
		humanize.Comma(int64(t.Stats.Solutions)),
		t.Stats.MaxDepth,
		t.QueueSize,
		t.Gauge,
	)
}
