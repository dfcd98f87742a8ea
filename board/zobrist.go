package board

import "math/rand"

// Zobrist keys for pieces, castling, en passant and side to move.
var zobristPiece [2][7][64]uint64
var zobristCastle [16]uint64
var zobristEnPassant [8]uint64
var zobristSide uint64

func init() {
	initZobrist()
}

func initZobrist() {
	// Fixed seed so hashes are stable between runs
	rnd := rand.New(rand.NewSource(0xC0DE))

	for c := 0; c < 2; c++ {
		for pt := 1; pt < 7; pt++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[c][pt][sq] = rnd.Uint64()
			}
		}
	}
	for cr := 0; cr < 16; cr++ {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Castling right bits as used in FEN and in the hash.
const (
	CastleWhiteKing  uint8 = 1
	CastleWhiteQueen uint8 = 2
	CastleBlackKing  uint8 = 4
	CastleBlackQueen uint8 = 8
)

// CastlingRights derives the rights from king and rook move flags.
func (b *Board) CastlingRights() uint8 {
	var cr uint8
	if k := b.squares[NewSquare(7, 4)]; k.Type == PieceTypeKing && k.Color == White && !k.Moved {
		if b.castleRookReady(NewSquare(7, 7), White) {
			cr |= CastleWhiteKing
		}
		if b.castleRookReady(NewSquare(7, 0), White) {
			cr |= CastleWhiteQueen
		}
	}
	if k := b.squares[NewSquare(0, 4)]; k.Type == PieceTypeKing && k.Color == Black && !k.Moved {
		if b.castleRookReady(NewSquare(0, 7), Black) {
			cr |= CastleBlackKing
		}
		if b.castleRookReady(NewSquare(0, 0), Black) {
			cr |= CastleBlackQueen
		}
	}
	return cr
}

func (b *Board) computeHash() uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		p := b.squares[sq]
		if !p.IsEmpty() {
			key ^= zobristPiece[p.Color][p.Type][sq]
		}
	}
	if b.turn == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[b.CastlingRights()]
	if b.enPassant != NoSquare {
		key ^= zobristEnPassant[b.enPassant.Col()]
	}
	return key
}
