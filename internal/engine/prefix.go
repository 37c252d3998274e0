package engine

import "github.com/eternity2solver/eternity2/internal/board"

// Prefix is one disjoint row-major partial assignment produced by the
// prefix generator: the sequence of variants placed at cells
// [0, len(Prefix)).
type Prefix = []board.PieceVariant

// maxGeneratorIterations bounds how many times Generate grows its target
// depth before giving up and handing back whatever it has, for
// pathological puzzles where no depth ever reaches the desired prefix
// count.
const maxGeneratorIterations = 20

// Generate enumerates disjoint prefixes for seeding the work queue. The
// top-left cell is pinned to the first variant of its bucket, which
// fixes the corner's orientation and prunes the three rotated mirrors
// of every subtree; all deeper cells are enumerated exhaustively. It
// starts at depth 1 and grows the depth until it has collected at least
// minCount prefixes, the depth reaches the board's width (a full first
// row), or the iteration safeguard trips — whichever comes first. gen is
// a scratch board dedicated to generation; it is Reset before returning.
func Generate(gen *board.Board, minCount int) []Prefix {
	maxDepth := gen.Width
	if gen.TotalCells < maxDepth {
		maxDepth = gen.TotalCells
	}

	var best []Prefix
	for depth, iter := 1, 0; depth <= maxDepth && iter < maxGeneratorIterations; depth, iter = depth+1, iter+1 {
		gen.Reset()
		best = collectPrefixes(gen, depth)
		if len(best) >= minCount {
			break
		}
	}

	gen.Reset()
	return best
}

// collectPrefixes runs an exhaustive depth-limited DFS on gen, returning
// every way to fill cells [0, depth) legally once the first cell is
// pinned to its bucket's first variant.
func collectPrefixes(gen *board.Board, depth int) []Prefix {
	var collected []Prefix
	path := make(Prefix, 0, depth)

	var walk func(d int)
	walk = func(d int) {
		if d == depth {
			cp := make(Prefix, depth)
			copy(cp, path)
			collected = append(collected, cp)
			return
		}
		cell := gen.Cell(d)
		candidates := gen.Index.Lookup(cell.Class, cell.LeftColor, cell.TopColor)
		if d == 0 && len(candidates) > 1 {
			candidates = candidates[:1]
		}
		for _, v := range candidates {
			pieceID := v.Identifier.PieceID()
			if gen.Used(pieceID) {
				continue
			}
			gen.Place(d, v)
			path = append(path, v)

			walk(d + 1)

			path = path[:len(path)-1]
			gen.Unplace(pieceID)
		}
	}
	walk(0)

	return collected
}
