package board

// Color is the side owning a piece or the side to move.
type Color int8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceType is a colorless piece kind. PieceTypeNone marks an empty cell.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

var pieceTypeNames = [7]string{"", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (pt PieceType) String() string {
	if int(pt) < len(pieceTypeNames) {
		return pieceTypeNames[pt]
	}
	return "?"
}

// Letter returns the lowercase FEN/UCI letter of the piece type.
func (pt PieceType) Letter() byte {
	return " pnbrqk"[pt]
}

// PieceTypeFromLetter maps a promotion letter (q, r, b, n) or any FEN letter to a type.
func PieceTypeFromLetter(c byte) PieceType {
	switch c | 0x20 {
	case 'p':
		return PieceTypePawn
	case 'n':
		return PieceTypeKnight
	case 'b':
		return PieceTypeBishop
	case 'r':
		return PieceTypeRook
	case 'q':
		return PieceTypeQueen
	case 'k':
		return PieceTypeKing
	}
	return PieceTypeNone
}

// Piece is a value-like cell content. The zero value is an empty square.
// Moved is consulted for king and rook castling rights.
type Piece struct {
	Type  PieceType
	Color Color
	Moved bool
}

// NoPiece is the empty cell.
var NoPiece = Piece{}

func NewPiece(c Color, pt PieceType) Piece { return Piece{Type: pt, Color: c} }

func (p Piece) IsEmpty() bool { return p.Type == PieceTypeNone }

var glyphs = [2][7]string{
	{"", "♙", "♘", "♗", "♖", "♕", "♔"},
	{"", "♟", "♞", "♝", "♜", "♛", "♚"},
}

// Glyph returns the unicode figure for the piece, or "" for an empty cell.
func (p Piece) Glyph() string {
	if p.IsEmpty() {
		return ""
	}
	return glyphs[p.Color][p.Type]
}

// FENLetter returns the FEN letter (uppercase for White).
func (p Piece) FENLetter() byte {
	l := p.Type.Letter()
	if p.Color == White {
		return l - 0x20
	}
	return l
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Type.String()
}

// PromotionTypes lists the legal promotion choices, strongest first.
var PromotionTypes = [4]PieceType{PieceTypeQueen, PieceTypeRook, PieceTypeBishop, PieceTypeKnight}

func IsPromotionType(pt PieceType) bool {
	return pt == PieceTypeQueen || pt == PieceTypeRook || pt == PieceTypeBishop || pt == PieceTypeKnight
}
