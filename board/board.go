package board

import "fmt"

// Board is the complete game position plus its move history.
// The zero value is not usable; build one with NewBoard, NewEmptyBoard or FromFEN.
type Board struct {
	squares   [64]Piece
	turn      Color
	moveCount int // full move number, incremented after Black moves
	halfmove  int
	enPassant Square // square passed over by the last double pawn step
	promotion Square // pawn awaiting a promotion choice
	history   History
	hash      uint64
}

var backRank = [8]PieceType{
	PieceTypeRook, PieceTypeKnight, PieceTypeBishop, PieceTypeQueen,
	PieceTypeKing, PieceTypeBishop, PieceTypeKnight, PieceTypeRook,
}

// NewBoard returns the standard starting position with White to move.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for col := 0; col < 8; col++ {
		b.squares[NewSquare(0, col)] = NewPiece(Black, backRank[col])
		b.squares[NewSquare(1, col)] = NewPiece(Black, PieceTypePawn)
		b.squares[NewSquare(6, col)] = NewPiece(White, PieceTypePawn)
		b.squares[NewSquare(7, col)] = NewPiece(White, backRank[col])
	}
	b.hash = b.computeHash()
	return b
}

// NewEmptyBoard returns a board with no pieces, White to move.
func NewEmptyBoard() *Board {
	b := &Board{
		turn:      White,
		moveCount: 1,
		enPassant: NoSquare,
		promotion: NoSquare,
	}
	b.hash = b.computeHash()
	return b
}

func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.squares[sq]
}

// Place puts p on sq, replacing anything there. Used for setting up positions.
func (b *Board) Place(sq Square, p Piece) {
	b.squares[sq] = p
	b.hash = b.computeHash()
}

// Remove clears sq and returns what was there.
func (b *Board) Remove(sq Square) Piece {
	p := b.squares[sq]
	b.squares[sq] = NoPiece
	b.hash = b.computeHash()
	return p
}

// SetTurn sets the side to move. It clears any en-passant target.
func (b *Board) SetTurn(c Color) {
	b.turn = c
	b.enPassant = NoSquare
	b.hash = b.computeHash()
}

func (b *Board) Turn() Color { return b.turn }
func (b *Board) MoveCount() int { return b.moveCount }
func (b *Board) HalfmoveClock() int { return b.halfmove }
func (b *Board) EnPassant() Square { return b.enPassant }
func (b *Board) Hash() uint64 { return b.hash }
func (b *Board) History() *History { return &b.history }

// PendingPromotion reports the square of a pawn waiting for PromotePawn.
func (b *Board) PendingPromotion() (Square, bool) {
	return b.promotion, b.promotion != NoSquare
}

// Copy returns a deep copy. Mutating the copy never affects b.
func (b *Board) Copy() *Board {
	nb := *b
	nb.history = b.history.clone()
	return &nb
}

// Simulate returns a copy with m applied and no history attached.
// m must come from LegalMoves; a promotion without a piece choice becomes a queen.
func (b *Board) Simulate(m Move) *Board {
	nb := *b
	nb.history = History{}
	if m.Promotion == PieceTypeNone && nb.isPromotion(m) {
		m.Promotion = PieceTypeQueen
	}
	nb.applyMove(m)
	return &nb
}

// ToList renders the grid as glyphs, row 0 = rank 8, "" for empty squares.
func (b *Board) ToList() [8][8]string {
	var out [8][8]string
	for sq := Square(0); sq < 64; sq++ {
		out[sq.Row()][sq.Col()] = b.squares[sq].Glyph()
	}
	return out
}

// KingSquare finds the king of color c.
func (b *Board) KingSquare(c Color) (Square, bool) {
	return findKing(&b.squares, c)
}

func findKing(cells *[64]Piece, c Color) (Square, bool) {
	for sq := Square(0); sq < 64; sq++ {
		p := cells[sq]
		if p.Type == PieceTypeKing && p.Color == c {
			return sq, true
		}
	}
	return NoSquare, false
}

// Validate checks the one-king-per-side invariant.
func (b *Board) Validate() error {
	var kings [2]int
	for _, p := range b.squares {
		if p.Type == PieceTypeKing {
			kings[p.Color]++
		}
	}
	for c, n := range kings {
		if n != 1 {
			return fmt.Errorf("%w: %s has %d kings", ErrMissingKing, Color(c), n)
		}
	}
	return nil
}

// PieceCount counts every piece on the board, kings and pawns included.
func (b *Board) PieceCount() int {
	n := 0
	for _, p := range b.squares {
		if !p.IsEmpty() {
			n++
		}
	}
	return n
}

// Cells exposes the grid for read-only scans by the evaluator.
func (b *Board) Cells() *[64]Piece { return &b.squares }

// String draws the board with FEN letters, rank 8 first.
func (b *Board) String() string {
	buf := make([]byte, 0, 90)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.squares[NewSquare(row, col)]
			if p.IsEmpty() {
				buf = append(buf, '.')
			} else {
				buf = append(buf, p.FENLetter())
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
