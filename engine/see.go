package engine

import (
	"chess-ai/board"
)

var SeePieceValue = [7]int{
	board.PieceTypeKing:   5000,
	board.PieceTypePawn:   100,
	board.PieceTypeKnight: 300,
	board.PieceTypeBishop: 300,
	board.PieceTypeRook:   500,
	board.PieceTypeQueen:  900}

// see is the static exchange evaluation of the capture m: the material the
// side to move nets if both sides keep recapturing on m.To with their least
// valuable attacker and may stop whenever continuing loses.
func see(b *board.Board, m board.Move) int {
	// Prepare values
	var gain [32]int
	depth := 0
	cells := *b.Cells()

	attacker := cells[m.From]
	target := cells[m.To]
	if target.IsEmpty() && attacker.Type == board.PieceTypePawn && m.From.Col() != m.To.Col() {
		// En passant: the victim is beside the capturing pawn.
		victim := board.NewSquare(m.From.Row(), m.To.Col())
		target = cells[victim]
		cells[victim] = board.NoPiece
	}
	gain[0] = SeePieceValue[target.Type]
	if m.Promotion != board.PieceTypeNone {
		gain[0] += SeePieceValue[m.Promotion] - SeePieceValue[board.PieceTypePawn]
		attacker.Type = m.Promotion
	}
	cells[m.From] = board.NoPiece
	cells[m.To] = attacker

	// We "already made the first move", so we swap side before going into the loop
	side := attacker.Color.Other()
	var buf [16]board.Square
	for depth < len(gain)-1 {
		from, ok := leastValuableAttacker(&cells, m.To, side, buf[:0])
		if !ok {
			break
		}
		depth++
		gain[depth] = SeePieceValue[cells[m.To].Type] - gain[depth-1]
		cells[m.To] = cells[from]
		cells[from] = board.NoPiece
		side = side.Other()
	}

	for x := depth; x > 0; x-- {
		gain[x-1] = -Max(-gain[x-1], gain[x])
	}
	return gain[0]
}

// leastValuableAttacker recomputes attackers on every call so sliders behind
// a piece that has just captured are picked up.
func leastValuableAttacker(cells *[64]board.Piece, sq board.Square, by board.Color, buf []board.Square) (board.Square, bool) {
	best := board.NoSquare
	bestVal := 0
	for _, s := range board.AttackersIn(cells, sq, by, buf) {
		v := SeePieceValue[cells[s].Type]
		if best == board.NoSquare || v < bestVal {
			best, bestVal = s, v
		}
	}
	return best, best != board.NoSquare
}
