package board

// Index is the precomputed three-level mapping
//
//	index[cell_class][left_color, top_color] -> list of PieceVariant
//
// All variants live in a single contiguous arena; each (class, left,
// top) bucket is a range into that arena, handed out as a slice. The
// arena is built once and never mutated afterward.
type Index struct {
	stride int // MaxColor + 1
	arena  []PieceVariant
	// offset[class*stride*stride + left*stride + top] is the start index
	// into arena for that bucket; length[same key] is its length.
	offset []int32
	length []int32
}

// BuildIndex constructs the piece index over every (piece, rotation)
// combination in the puzzle.
func BuildIndex(p *Puzzle) *Index {
	stride := int(p.MaxColor) + 1
	bucketCount := int(numCellClasses) * stride * stride

	// First pass: bucket each variant to learn per-bucket counts, so the
	// arena can be laid out with exact offsets in one allocation.
	type located struct {
		variant PieceVariant
		bucket  int
	}
	items := make([]located, 0, len(p.Pieces)*4)
	counts := make([]int32, bucketCount)

	for _, piece := range p.Pieces {
		for rotation := 0; rotation < 4; rotation++ {
			variant, left, top := buildVariant(piece, rotation)
			class := bucketFor(piece, variant)
			key := int(class)*stride*stride + int(left)*stride + int(top)
			items = append(items, located{variant: variant, bucket: key})
			counts[key]++
		}
	}

	offset := make([]int32, bucketCount)
	var running int32
	for i, c := range counts {
		offset[i] = running
		running += c
	}

	arena := make([]PieceVariant, running)
	cursor := make([]int32, bucketCount)
	copy(cursor, offset)
	for _, it := range items {
		arena[cursor[it.bucket]] = it.variant
		cursor[it.bucket]++
	}

	return &Index{
		stride: stride,
		arena:  arena,
		offset: offset,
		length: counts,
	}
}

// bucketFor decides which CellClass bucket a variant belongs in: inner
// pieces always go to Inside; otherwise an oriented right==EdgeColor
// routes to BorderRight, an oriented bottom==EdgeColor routes to
// BorderBottom, and anything else (an edge piece whose edge faces left
// or top) still lives in Inside, reachable only through first-row and
// first-column keys.
func bucketFor(p Piece, v PieceVariant) CellClass {
	if p.Kind == Inner {
		return Inside
	}
	if v.Right == EdgeColor {
		return BorderRight
	}
	if v.Bottom == EdgeColor {
		return BorderBottom
	}
	return Inside
}

// Lookup returns the admissible variants for a cell of the given class
// with the given incoming left/top colors. The returned slice must not
// be mutated; it aliases the index's arena.
func (ix *Index) Lookup(class CellClass, left, top Color) []PieceVariant {
	key := int(class)*ix.stride*ix.stride + int(left)*ix.stride + int(top)
	n := ix.length[key]
	if n == 0 {
		return nil
	}
	start := ix.offset[key]
	return ix.arena[start : start+n]
}
