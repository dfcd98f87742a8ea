package board

// Status is the state of the game for the side to move.
type Status int

const (
	InProgress Status = iota
	Check
	Checkmate
	Stalemate
)

var statusNames = [...]string{"in progress", "check", "checkmate", "stalemate"}

func (s Status) String() string { return statusNames[s] }

// Over reports whether no further moves can be played.
func (s Status) Over() bool { return s == Checkmate || s == Stalemate }

// IsCheck reports whether color's king is attacked.
func IsCheck(b *Board, color Color) bool {
	return kingAttacked(&b.squares, color)
}

// IsCheckmate is true when color is in check and has no legal move.
// King moves, captures of the checker and interpositions are all covered by
// the legal-move search, so a knight or pawn checker can only be answered by the first two.
func IsCheckmate(b *Board, color Color) bool {
	return IsCheck(b, color) && !b.hasLegalMove(color)
}

// IsStalemate is true when color is not in check and has no legal move.
func IsStalemate(b *Board, color Color) bool {
	return !IsCheck(b, color) && !b.hasLegalMove(color)
}

// Status classifies the position for the side to move.
func (b *Board) Status() Status {
	inCheck := IsCheck(b, b.turn)
	if !b.hasLegalMove(b.turn) {
		if inCheck {
			return Checkmate
		}
		return Stalemate
	}
	if inCheck {
		return Check
	}
	return InProgress
}

// CheckGameStatus is Status with the king invariant verified first.
func (b *Board) CheckGameStatus() (Status, error) {
	if err := b.Validate(); err != nil {
		return InProgress, err
	}
	return b.Status(), nil
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool { return IsCheck(b, b.turn) }
