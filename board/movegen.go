package board

// pieceDestinations appends the pseudo-legal destinations of the piece on sq.
// Castling is generated separately since it needs attack information.
func (b *Board) pieceDestinations(sq Square, dst []Square) []Square {
	p := b.squares[sq]
	switch p.Type {
	case PieceTypePawn:
		return b.pawnDestinations(sq, p.Color, dst)
	case PieceTypeKnight:
		return b.stepDestinations(sq, p.Color, knightOffsets[:], dst)
	case PieceTypeBishop:
		return b.slideDestinations(sq, p.Color, bishopDirs[:], dst)
	case PieceTypeRook:
		return b.slideDestinations(sq, p.Color, rookDirs[:], dst)
	case PieceTypeQueen:
		dst = b.slideDestinations(sq, p.Color, bishopDirs[:], dst)
		return b.slideDestinations(sq, p.Color, rookDirs[:], dst)
	case PieceTypeKing:
		return b.stepDestinations(sq, p.Color, kingOffsets[:], dst)
	}
	return dst
}

func (b *Board) stepDestinations(sq Square, c Color, offsets [][2]int, dst []Square) []Square {
	row, col := sq.Row(), sq.Col()
	for _, o := range offsets {
		r, cc := row+o[0], col+o[1]
		if !onBoard(r, cc) {
			continue
		}
		to := NewSquare(r, cc)
		if t := b.squares[to]; t.IsEmpty() || t.Color != c {
			dst = append(dst, to)
		}
	}
	return dst
}

func (b *Board) slideDestinations(sq Square, c Color, dirs [][2]int, dst []Square) []Square {
	row, col := sq.Row(), sq.Col()
	for _, d := range dirs {
		r, cc := row+d[0], col+d[1]
		for onBoard(r, cc) {
			to := NewSquare(r, cc)
			t := b.squares[to]
			if t.IsEmpty() {
				dst = append(dst, to)
			} else {
				if t.Color != c {
					dst = append(dst, to)
				}
				break
			}
			r += d[0]
			cc += d[1]
		}
	}
	return dst
}

func (b *Board) pawnDestinations(sq Square, c Color, dst []Square) []Square {
	row, col := sq.Row(), sq.Col()
	dir := pawnDir(c)
	startRow := 6
	if c == Black {
		startRow = 1
	}

	r := row + dir
	if onBoard(r, col) && b.squares[NewSquare(r, col)].IsEmpty() {
		dst = append(dst, NewSquare(r, col))
		if row == startRow && b.squares[NewSquare(r+dir, col)].IsEmpty() {
			dst = append(dst, NewSquare(r+dir, col))
		}
	}
	for _, dc := range [2]int{-1, 1} {
		if !onBoard(r, col+dc) {
			continue
		}
		to := NewSquare(r, col+dc)
		t := b.squares[to]
		if !t.IsEmpty() && t.Color != c {
			dst = append(dst, to)
		} else if t.IsEmpty() && to == b.enPassant && c == b.turn {
			dst = append(dst, to)
		}
	}
	return dst
}

// castleDestinations appends the king's two-square castling moves that are legal right now.
func (b *Board) castleDestinations(sq Square, c Color, dst []Square) []Square {
	homeRow := 7
	if c == Black {
		homeRow = 0
	}
	king := b.squares[sq]
	if sq != NewSquare(homeRow, 4) || king.Moved {
		return dst
	}
	enemy := c.Other()
	if squareAttacked(&b.squares, sq, enemy) {
		return dst
	}

	// Kingside: f and g empty and not attacked.
	if b.castleRookReady(NewSquare(homeRow, 7), c) &&
		b.squares[NewSquare(homeRow, 5)].IsEmpty() && b.squares[NewSquare(homeRow, 6)].IsEmpty() &&
		!squareAttacked(&b.squares, NewSquare(homeRow, 5), enemy) &&
		!squareAttacked(&b.squares, NewSquare(homeRow, 6), enemy) {
		dst = append(dst, NewSquare(homeRow, 6))
	}
	// Queenside: b, c and d empty, c and d not attacked.
	if b.castleRookReady(NewSquare(homeRow, 0), c) &&
		b.squares[NewSquare(homeRow, 1)].IsEmpty() && b.squares[NewSquare(homeRow, 2)].IsEmpty() &&
		b.squares[NewSquare(homeRow, 3)].IsEmpty() &&
		!squareAttacked(&b.squares, NewSquare(homeRow, 3), enemy) &&
		!squareAttacked(&b.squares, NewSquare(homeRow, 2), enemy) {
		dst = append(dst, NewSquare(homeRow, 2))
	}
	return dst
}

func (b *Board) castleRookReady(sq Square, c Color) bool {
	r := b.squares[sq]
	return r.Type == PieceTypeRook && r.Color == c && !r.Moved
}

func (b *Board) isCastle(m Move) bool {
	p := b.squares[m.From]
	d := m.To.Col() - m.From.Col()
	return p.Type == PieceTypeKing && m.From.Row() == m.To.Row() && (d == 2 || d == -2)
}

func (b *Board) isEnPassant(m Move) bool {
	p := b.squares[m.From]
	return p.Type == PieceTypePawn && m.To == b.enPassant && m.From.Col() != m.To.Col() && b.squares[m.To].IsEmpty()
}

func (b *Board) isPromotion(m Move) bool {
	p := b.squares[m.From]
	if p.Type != PieceTypePawn {
		return false
	}
	return (p.Color == White && m.To.Row() == 0) || (p.Color == Black && m.To.Row() == 7)
}

// IsCapture reports whether m removes an enemy piece, en passant included.
func (b *Board) IsCapture(m Move) bool {
	return !b.squares[m.To].IsEmpty() || b.isEnPassant(m)
}

// CapturedPiece returns the piece m would remove, or NoPiece.
func (b *Board) CapturedPiece(m Move) Piece {
	if b.isEnPassant(m) {
		return b.squares[NewSquare(m.From.Row(), m.To.Col())]
	}
	return b.squares[m.To]
}

// isLegal plays m on a scratch grid and checks that c's king is not left attacked.
func (b *Board) isLegal(m Move, c Color) bool {
	scratch := b.squares
	relocate(&scratch, m, b.enPassant)
	return !kingAttacked(&scratch, c)
}

func (b *Board) generate(c Color, noisyOnly bool, dst []Move) []Move {
	var buf [32]Square
	for from := Square(0); from < 64; from++ {
		p := b.squares[from]
		if p.IsEmpty() || p.Color != c {
			continue
		}
		dests := b.pieceDestinations(from, buf[:0])
		if p.Type == PieceTypeKing && !noisyOnly {
			dests = b.castleDestinations(from, c, dests)
		}
		for _, to := range dests {
			m := Move{From: from, To: to}
			promo := b.isPromotion(m)
			if noisyOnly && !promo && !b.IsCapture(m) {
				continue
			}
			if !b.isLegal(m, c) {
				continue
			}
			if promo {
				for _, pt := range PromotionTypes {
					m.Promotion = pt
					dst = append(dst, m)
				}
				continue
			}
			dst = append(dst, m)
		}
	}
	return dst
}

// LegalMoves returns every legal move for the side to move.
// Promotions appear once per promotion piece.
func (b *Board) LegalMoves() []Move {
	return b.generate(b.turn, false, make([]Move, 0, 48))
}

// LegalMovesFor generates legal moves for c even when c is not on move.
func (b *Board) LegalMovesFor(c Color) []Move {
	return b.generate(c, false, make([]Move, 0, 48))
}

// NoisyMoves returns the legal captures and promotions for the side to move.
func (b *Board) NoisyMoves() []Move {
	return b.generate(b.turn, true, make([]Move, 0, 16))
}

// ValidMoves lists the legal destinations of the piece on sq.
func (b *Board) ValidMoves(sq Square) []Square {
	if !sq.Valid() {
		return nil
	}
	p := b.squares[sq]
	if p.IsEmpty() {
		return nil
	}
	var buf [32]Square
	dests := b.pieceDestinations(sq, buf[:0])
	if p.Type == PieceTypeKing {
		dests = b.castleDestinations(sq, p.Color, dests)
	}
	out := make([]Square, 0, len(dests))
	for _, to := range dests {
		if b.isLegal(Move{From: sq, To: to}, p.Color) {
			out = append(out, to)
		}
	}
	return out
}

// IsLegalMove checks a fully specified move against the current position.
func (b *Board) IsLegalMove(m Move) bool {
	p := b.squares[m.From]
	if p.IsEmpty() || p.Color != b.turn {
		return false
	}
	if b.isPromotion(m) != (m.Promotion != PieceTypeNone) {
		return false
	}
	if m.Promotion != PieceTypeNone && !IsPromotionType(m.Promotion) {
		return false
	}
	for _, to := range b.ValidMoves(m.From) {
		if to == m.To {
			return true
		}
	}
	return false
}

func (b *Board) hasLegalMove(c Color) bool {
	var buf [32]Square
	for from := Square(0); from < 64; from++ {
		p := b.squares[from]
		if p.IsEmpty() || p.Color != c {
			continue
		}
		// Castling never rescues a position with no other legal move, so it is skipped here.
		for _, to := range b.pieceDestinations(from, buf[:0]) {
			if b.isLegal(Move{From: from, To: to}, c) {
				return true
			}
		}
	}
	return false
}
