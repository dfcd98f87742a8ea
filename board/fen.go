package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// FENStartPos is the standard initial position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFEN builds a board from a FEN string. Placement and side to move are read
// through dragontoothmg; castling, en passant and clocks are read from the fields directly.
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: want at least 4 fields, got %d", ErrBadFEN, len(fields))
	}
	if err := checkPlacement(fields[0]); err != nil {
		return nil, err
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, fmt.Errorf("%w: side to move %q", ErrBadFEN, fields[1])
	}
	if len(fields) == 4 {
		fields = append(fields, "0", "1")
	} else if len(fields) == 5 {
		fields = append(fields, "1")
	}

	dt := dragontoothmg.ParseFen(strings.Join(fields[:6], " "))
	b := NewEmptyBoard()
	for dsq := uint8(0); dsq < 64; dsq++ {
		sq := fromDragontoothSquare(dsq)
		if pt := pieceTypeOnBitboards(dsq, &dt.White); pt != PieceTypeNone {
			b.squares[sq] = Piece{Type: pt, Color: White, Moved: true}
		} else if pt := pieceTypeOnBitboards(dsq, &dt.Black); pt != PieceTypeNone {
			b.squares[sq] = Piece{Type: pt, Color: Black, Moved: true}
		}
	}
	if dt.Wtomove {
		b.turn = White
	} else {
		b.turn = Black
	}

	// Pawns on their start rank have not moved; king and rook flags follow the castling field.
	for col := 0; col < 8; col++ {
		if p := &b.squares[NewSquare(6, col)]; p.Type == PieceTypePawn && p.Color == White {
			p.Moved = false
		}
		if p := &b.squares[NewSquare(1, col)]; p.Type == PieceTypePawn && p.Color == Black {
			p.Moved = false
		}
	}
	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			row, c, rookCol := 7, White, 7
			switch fields[2][i] {
			case 'K':
			case 'Q':
				rookCol = 0
			case 'k':
				row, c = 0, Black
			case 'q':
				row, c, rookCol = 0, Black, 0
			default:
				return nil, fmt.Errorf("%w: castling field %q", ErrBadFEN, fields[2])
			}
			king := &b.squares[NewSquare(row, 4)]
			rook := &b.squares[NewSquare(row, rookCol)]
			if king.Type == PieceTypeKing && king.Color == c && rook.Type == PieceTypeRook && rook.Color == c {
				king.Moved = false
				rook.Moved = false
			}
		}
	}
	if fields[3] != "-" {
		ep, err := ParseSquare(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: en passant %q", ErrBadFEN, fields[3])
		}
		b.enPassant = ep
	}
	if n, err := strconv.Atoi(fields[4]); err == nil {
		b.halfmove = n
	}
	if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
		b.moveCount = n
	}
	b.hash = b.computeHash()
	return b, nil
}

// MustFEN is FromFEN for literals known to be valid.
func MustFEN(fen string) *Board {
	b, err := FromFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

func checkPlacement(s string) error {
	ranks := strings.Split(s, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: %d ranks", ErrBadFEN, len(ranks))
	}
	for _, r := range ranks {
		n := 0
		for i := 0; i < len(r); i++ {
			ch := r[i]
			switch {
			case ch >= '1' && ch <= '8':
				n += int(ch - '0')
			case PieceTypeFromLetter(ch) != PieceTypeNone:
				n++
			default:
				return fmt.Errorf("%w: bad character %q", ErrBadFEN, ch)
			}
		}
		if n != 8 {
			return fmt.Errorf("%w: rank %q has %d files", ErrBadFEN, r, n)
		}
	}
	return nil
}

// fromDragontoothSquare converts a1=0 indexing to row*8+col with row 0 = rank 8.
func fromDragontoothSquare(dsq uint8) Square {
	return NewSquare(7-int(dsq/8), int(dsq%8))
}

// ToDragontoothSquare is the inverse of the internal square conversion.
func ToDragontoothSquare(sq Square) uint8 {
	return uint8((7-sq.Row())*8 + sq.Col())
}

func pieceTypeOnBitboards(dsq uint8, bb *dragontoothmg.Bitboards) PieceType {
	mask := uint64(1) << dsq
	switch {
	case bb.All&mask == 0:
		return PieceTypeNone
	case bb.Pawns&mask != 0:
		return PieceTypePawn
	case bb.Knights&mask != 0:
		return PieceTypeKnight
	case bb.Bishops&mask != 0:
		return PieceTypeBishop
	case bb.Rooks&mask != 0:
		return PieceTypeRook
	case bb.Queens&mask != 0:
		return PieceTypeQueen
	case bb.Kings&mask != 0:
		return PieceTypeKing
	}
	return PieceTypeNone
}

func (b *Board) placementFEN() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.squares[NewSquare(row, col)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.FENLetter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (b *Board) sideFEN() string {
	if b.turn == White {
		return "w"
	}
	return "b"
}

// BookKey is the simplified position key: placement plus side to move.
func (b *Board) BookKey() string {
	return b.placementFEN() + " " + b.sideFEN()
}

// ToFEN exports the position.
func (b *Board) ToFEN() string {
	cr := b.CastlingRights()
	castle := ""
	if cr&CastleWhiteKing != 0 {
		castle += "K"
	}
	if cr&CastleWhiteQueen != 0 {
		castle += "Q"
	}
	if cr&CastleBlackKing != 0 {
		castle += "k"
	}
	if cr&CastleBlackQueen != 0 {
		castle += "q"
	}
	if castle == "" {
		castle = "-"
	}
	return fmt.Sprintf("%s %s %s %s %d %d", b.placementFEN(), b.sideFEN(), castle, b.enPassant, b.halfmove, b.moveCount)
}
