package board

import "fmt"

// Square indexes the 8x8 grid as row*8+col. Row 0 is rank 8, col 0 is the a-file.
type Square int8

const NoSquare Square = -1

func NewSquare(row, col int) Square { return Square(row*8 + col) }

func (s Square) Row() int { return int(s) / 8 }
func (s Square) Col() int { return int(s) % 8 }

// Valid reports whether s lies on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

func onBoard(row, col int) bool { return row >= 0 && row < 8 && col >= 0 && col < 8 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.Col()), byte('8' - s.Row())})
}

// ChessNotationToIndex converts algebraic square notation ("e2") to (row, col).
func ChessNotationToIndex(s string) (row, col int, err error) {
	if len(s) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	file, rank := s[0]|0x20, s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	return int('8' - rank), int(file - 'a'), nil
}

// IndexToChessNotation is the inverse of ChessNotationToIndex.
func IndexToChessNotation(row, col int) (string, error) {
	if !onBoard(row, col) {
		return "", fmt.Errorf("%w: (%d, %d)", ErrBadSquare, row, col)
	}
	return NewSquare(row, col).String(), nil
}

// ParseSquare is the typed form of ChessNotationToIndex.
func ParseSquare(s string) (Square, error) {
	row, col, err := ChessNotationToIndex(s)
	if err != nil {
		return NoSquare, err
	}
	return NewSquare(row, col), nil
}

// Move is a from/to pair. Promotion is set only for pawn moves onto the last rank.
type Move struct {
	From      Square
	To        Square
	Promotion PieceType
}

// NullMove is the zero-information move used as an empty marker.
var NullMove = Move{From: NoSquare, To: NoSquare}

func (m Move) IsNull() bool { return m.From == NoSquare }

// String renders coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Promotion != PieceTypeNone {
		s += string(m.Promotion.Letter())
	}
	return s
}

// ParseMove parses coordinate notation. The result still needs validating against a position.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("%w: %q", ErrBadNotation, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		m.Promotion = PieceTypeFromLetter(s[4])
		if !IsPromotionType(m.Promotion) {
			return NullMove, fmt.Errorf("%w: %q", ErrBadNotation, s)
		}
	}
	return m, nil
}
