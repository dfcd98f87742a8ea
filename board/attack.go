package board

var (
	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	bishopDirs    = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	rookDirs      = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
)

// pawnDir is the row step of a pawn advance for each color.
func pawnDir(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// squareAttacked reports whether any piece of color by attacks sq.
// Rays stop at the first occupied square.
func squareAttacked(cells *[64]Piece, sq Square, by Color) bool {
	row, col := sq.Row(), sq.Col()

	// Pawns attack diagonally forward, so look one row behind sq from the attacker's view.
	pr := row - pawnDir(by)
	for _, dc := range [2]int{-1, 1} {
		if onBoard(pr, col+dc) {
			p := cells[NewSquare(pr, col+dc)]
			if p.Type == PieceTypePawn && p.Color == by {
				return true
			}
		}
	}

	for _, o := range knightOffsets {
		r, c := row+o[0], col+o[1]
		if onBoard(r, c) {
			p := cells[NewSquare(r, c)]
			if p.Type == PieceTypeKnight && p.Color == by {
				return true
			}
		}
	}

	for _, o := range kingOffsets {
		r, c := row+o[0], col+o[1]
		if onBoard(r, c) {
			p := cells[NewSquare(r, c)]
			if p.Type == PieceTypeKing && p.Color == by {
				return true
			}
		}
	}

	if rayAttacked(cells, row, col, by, bishopDirs, PieceTypeBishop) {
		return true
	}
	return rayAttacked(cells, row, col, by, rookDirs, PieceTypeRook)
}

func rayAttacked(cells *[64]Piece, row, col int, by Color, dirs [4][2]int, slider PieceType) bool {
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			p := cells[NewSquare(r, c)]
			if !p.IsEmpty() {
				if p.Color == by && (p.Type == slider || p.Type == PieceTypeQueen) {
					return true
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
	return false
}

// IsSquareAttacked reports whether sq is attacked by side by.
func IsSquareAttacked(b *Board, sq Square, by Color) bool {
	return squareAttacked(&b.squares, sq, by)
}

// Attackers lists the squares of every piece of color by attacking sq.
func Attackers(b *Board, sq Square, by Color) []Square {
	return attackersOf(&b.squares, sq, by, nil)
}

// AttackersIn is Attackers over a bare grid, for callers that edit a scratch
// copy of the cells.
func AttackersIn(cells *[64]Piece, sq Square, by Color, dst []Square) []Square {
	return attackersOf(cells, sq, by, dst)
}

func attackersOf(cells *[64]Piece, sq Square, by Color, dst []Square) []Square {
	row, col := sq.Row(), sq.Col()
	pr := row - pawnDir(by)
	for _, dc := range [2]int{-1, 1} {
		if onBoard(pr, col+dc) {
			s := NewSquare(pr, col+dc)
			if p := cells[s]; p.Type == PieceTypePawn && p.Color == by {
				dst = append(dst, s)
			}
		}
	}
	for _, o := range knightOffsets {
		if r, c := row+o[0], col+o[1]; onBoard(r, c) {
			s := NewSquare(r, c)
			if p := cells[s]; p.Type == PieceTypeKnight && p.Color == by {
				dst = append(dst, s)
			}
		}
	}
	for _, o := range kingOffsets {
		if r, c := row+o[0], col+o[1]; onBoard(r, c) {
			s := NewSquare(r, c)
			if p := cells[s]; p.Type == PieceTypeKing && p.Color == by {
				dst = append(dst, s)
			}
		}
	}
	dst = rayAttackers(cells, row, col, by, bishopDirs, PieceTypeBishop, dst)
	return rayAttackers(cells, row, col, by, rookDirs, PieceTypeRook, dst)
}

func rayAttackers(cells *[64]Piece, row, col int, by Color, dirs [4][2]int, slider PieceType, dst []Square) []Square {
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			s := NewSquare(r, c)
			p := cells[s]
			if !p.IsEmpty() {
				if p.Color == by && (p.Type == slider || p.Type == PieceTypeQueen) {
					dst = append(dst, s)
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
	return dst
}

// kingAttacked is the self-check test used by legality filtering.
// A board without a king of color c is never reported in check.
func kingAttacked(cells *[64]Piece, c Color) bool {
	k, ok := findKing(cells, c)
	if !ok {
		return false
	}
	return squareAttacked(cells, k, c.Other())
}

// AttacksFrom appends every square the piece on sq attacks, including squares
// held by its own side. Pawns contribute only their capture diagonals.
func (b *Board) AttacksFrom(sq Square, dst []Square) []Square {
	p := b.squares[sq]
	row, col := sq.Row(), sq.Col()
	switch p.Type {
	case PieceTypePawn:
		r := row + pawnDir(p.Color)
		for _, dc := range [2]int{-1, 1} {
			if onBoard(r, col+dc) {
				dst = append(dst, NewSquare(r, col+dc))
			}
		}
	case PieceTypeKnight:
		dst = stepAttacks(row, col, knightOffsets[:], dst)
	case PieceTypeKing:
		dst = stepAttacks(row, col, kingOffsets[:], dst)
	case PieceTypeBishop:
		dst = b.rayAttacks(row, col, bishopDirs[:], dst)
	case PieceTypeRook:
		dst = b.rayAttacks(row, col, rookDirs[:], dst)
	case PieceTypeQueen:
		dst = b.rayAttacks(row, col, bishopDirs[:], dst)
		dst = b.rayAttacks(row, col, rookDirs[:], dst)
	}
	return dst
}

func stepAttacks(row, col int, offsets [][2]int, dst []Square) []Square {
	for _, o := range offsets {
		if r, c := row+o[0], col+o[1]; onBoard(r, c) {
			dst = append(dst, NewSquare(r, c))
		}
	}
	return dst
}

func (b *Board) rayAttacks(row, col int, dirs [][2]int, dst []Square) []Square {
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		for onBoard(r, c) {
			s := NewSquare(r, c)
			dst = append(dst, s)
			if !b.squares[s].IsEmpty() {
				break
			}
			r += d[0]
			c += d[1]
		}
	}
	return dst
}
