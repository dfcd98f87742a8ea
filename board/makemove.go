package board

import "fmt"

// relocate moves the pieces of m on cells: the mover, an en-passant victim and a castling rook.
// It returns the captured piece. Flags and promotion are left to the caller.
func relocate(cells *[64]Piece, m Move, ep Square) Piece {
	p := cells[m.From]
	captured := cells[m.To]

	if p.Type == PieceTypePawn && m.To == ep && captured.IsEmpty() && m.From.Col() != m.To.Col() {
		victim := NewSquare(m.From.Row(), m.To.Col())
		captured = cells[victim]
		cells[victim] = NoPiece
	}
	if p.Type == PieceTypeKing && m.From.Row() == m.To.Row() {
		row := m.From.Row()
		switch m.To.Col() - m.From.Col() {
		case 2:
			rook := cells[NewSquare(row, 7)]
			rook.Moved = true
			cells[NewSquare(row, 5)] = rook
			cells[NewSquare(row, 7)] = NoPiece
		case -2:
			rook := cells[NewSquare(row, 0)]
			rook.Moved = true
			cells[NewSquare(row, 3)] = rook
			cells[NewSquare(row, 0)] = NoPiece
		}
	}

	cells[m.From] = NoPiece
	cells[m.To] = p
	return captured
}

// applyMove plays a legal move and updates every scalar of the position.
// A pawn reaching the last rank without m.Promotion is left as a pawn with the promotion marker set.
func (b *Board) applyMove(m Move) Piece {
	mover := b.squares[m.From]
	promo := b.isPromotion(m)
	captured := relocate(&b.squares, m, b.enPassant)

	moved := mover
	moved.Moved = true
	b.promotion = NoSquare
	if promo {
		if m.Promotion != PieceTypeNone {
			moved = Piece{Type: m.Promotion, Color: mover.Color, Moved: true}
		} else {
			b.promotion = m.To
		}
	}
	b.squares[m.To] = moved

	b.enPassant = NoSquare
	if mover.Type == PieceTypePawn {
		if d := m.To.Row() - m.From.Row(); d == 2 || d == -2 {
			b.enPassant = NewSquare((m.From.Row()+m.To.Row())/2, m.From.Col())
		}
	}

	if mover.Type == PieceTypePawn || !captured.IsEmpty() {
		b.halfmove = 0
	} else {
		b.halfmove++
	}
	if b.turn == Black {
		b.moveCount++
	}
	b.turn = b.turn.Other()
	b.hash = b.computeHash()
	return captured
}

// ExecuteMove validates and plays the move from -> to for the side to move.
// On failure the board is left untouched. A pawn reaching the last rank waits for PromotePawn.
func (b *Board) ExecuteMove(from, to Square) error {
	if b.promotion != NoSquare {
		return ErrPromotionPending
	}
	if !from.Valid() || !to.Valid() {
		return ErrBadSquare
	}
	p := b.squares[from]
	if p.IsEmpty() {
		return ErrNoPiece
	}
	if p.Color != b.turn {
		return ErrNotYourPiece
	}
	legal := false
	for _, d := range b.ValidMoves(from) {
		if d == to {
			legal = true
			break
		}
	}
	if !legal {
		return ErrIllegalDestination
	}

	m := Move{From: from, To: to}
	next := *b
	next.history = History{}
	key := b.BookKey()
	captured := next.applyMove(m)
	if kingAttacked(&next.squares, p.Color) {
		return ErrIllegalDestination
	}

	rec := MoveRecord{
		Ply:      b.history.Len() + 1,
		Player:   p.Color,
		Notation: m.String(),
		Piece:    p,
		Start:    from,
		End:      to,
		Captured: captured,
		BookKey:  key,
	}
	rec.Annotation = describeMove(rec) + next.statusSuffix()

	next.history = b.history
	next.history.append(rec)
	*b = next
	return nil
}

// PromotePawn completes a pending promotion on sq with pt.
func (b *Board) PromotePawn(sq Square, pt PieceType) error {
	if b.promotion == NoSquare || b.promotion != sq {
		return ErrNoPromotion
	}
	if !IsPromotionType(pt) {
		return fmt.Errorf("%w: %s", ErrBadPromotionPiece, pt)
	}
	pawn := b.squares[sq]
	b.squares[sq] = Piece{Type: pt, Color: pawn.Color, Moved: true}
	b.promotion = NoSquare
	b.hash = b.computeHash()

	if rec := b.history.lastRef(); rec != nil && rec.End == sq {
		rec.Promotion = pt
		rec.Notation = Move{From: rec.Start, To: rec.End, Promotion: pt}.String()
		rec.Annotation = describeMove(*rec) + b.statusSuffix()
	}
	return nil
}

// Play executes a fully specified move, promotion included.
func (b *Board) Play(m Move) error {
	if err := b.ExecuteMove(m.From, m.To); err != nil {
		return err
	}
	if sq, ok := b.PendingPromotion(); ok {
		pt := m.Promotion
		if pt == PieceTypeNone {
			pt = PieceTypeQueen
		}
		return b.PromotePawn(sq, pt)
	}
	return nil
}

// statusSuffix annotates the position for the side now on move.
func (b *Board) statusSuffix() string {
	switch b.Status() {
	case Checkmate:
		return " - checkmate"
	case Check:
		return " - check"
	case Stalemate:
		return " - stalemate"
	}
	return ""
}
