package board

// twoByTwoAllSame builds the classic four-identical-corner-pieces
// puzzle: every piece carries color 1 on its inner sides and EdgeColor
// where it touches the frame. Any piece fits any cell, in the one
// rotation that turns its two frame sides outward.
func twoByTwoAllSame() *Puzzle {
	pieces := []Piece{
		NewPiece(0, 0, 0, 1, 1),
		NewPiece(1, 0, 0, 1, 1),
		NewPiece(2, 0, 0, 1, 1),
		NewPiece(3, 0, 0, 1, 1),
	}
	return &Puzzle{Width: 2, Height: 2, MaxColor: 1, Pieces: pieces}
}
