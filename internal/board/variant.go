package board

import "fmt"

// Identifier packs a placed piece's id and rotation into a single value:
// bits 0-7 hold the piece id (0..255), bits 8-9 the rotation (0..3).
type Identifier uint16

// NoIdentifier marks an empty cell.
const NoIdentifier Identifier = 0xFFFF

// NewIdentifier packs a piece id and rotation.
func NewIdentifier(id int, rotation int) Identifier {
	return Identifier(uint16(id) | uint16(rotation)<<8)
}

// PieceID returns the packed piece id.
func (id Identifier) PieceID() int {
	return int(id & 0xFF)
}

// Rotation returns the packed rotation (0..3).
func (id Identifier) Rotation() int {
	return int((id >> 8) & 0x3)
}

// String renders "id(rotation)", the token format used for --display
// dumps.
func (id Identifier) String() string {
	if id == NoIdentifier {
		return "  .( )"
	}
	return fmt.Sprintf("%3d(%d)", id.PieceID(), id.Rotation())
}

// PieceVariant is a precomputed (piece, rotation) pair together with the
// oriented right/bottom colors it contributes when placed. The oriented
// left/top colors are the lookup key into the piece index and are not
// stored here.
type PieceVariant struct {
	Identifier Identifier
	Right      Color
	Bottom     Color
}

// buildVariant computes the oriented colors for (piece, rotation) and
// returns the PieceVariant plus the oriented left/top colors used as the
// index lookup key.
func buildVariant(p Piece, rotation int) (variant PieceVariant, left, top Color) {
	l, t, r, b := p.rotated(rotation)
	return PieceVariant{
		Identifier: NewIdentifier(p.ID, rotation),
		Right:      r,
		Bottom:     b,
	}, l, t
}
