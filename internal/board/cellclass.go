package board

// CellClass selects which bucket of the piece index a cell draws
// candidates from. The bottom-right cell counts as BorderRight; its
// bottom border is enforced by what the index key can admit.
type CellClass uint8

const (
	Inside CellClass = iota
	BorderBottom
	BorderRight
	numCellClasses
)

func (c CellClass) String() string {
	switch c {
	case Inside:
		return "INNER"
	case BorderBottom:
		return "BORDER_BOTTOM"
	case BorderRight:
		return "BORDER_RIGHT"
	default:
		return "UNKNOWN"
	}
}

// classOf returns the CellClass of the cell at (x, y) in a W x H board.
func classOf(x, y, w, h int) CellClass {
	switch {
	case x == w-1:
		return BorderRight
	case y == h-1:
		return BorderBottom
	default:
		return Inside
	}
}
