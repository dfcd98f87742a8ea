package engine

import (
	"chess-ai/board"
)

// isSafeMove reports whether the piece moved by m is left hanging on its
// destination. It is safe when unattacked there, defended there, or when its
// cheapest attacker is worth more than it.
func isSafeMove(b *board.Board, m board.Move) bool {
	after := b.Simulate(m)
	p := after.PieceAt(m.To)
	us, them := p.Color, p.Color.Other()

	attackers := board.Attackers(after, m.To, them)
	if len(attackers) == 0 {
		return true
	}
	if board.IsSquareAttacked(after, m.To, us) {
		return true
	}
	cheapest := PieceValue[board.PieceTypeKing]
	for _, a := range attackers {
		if v := PieceValue[after.PieceAt(a).Type]; v < cheapest {
			cheapest = v
		}
	}
	return cheapest > PieceValue[p.Type]
}

// pickSafe returns the best-scoring safe move among the exact scores within
// margin of the best, or the best move when none of them is safe. scores must
// be sorted best first.
func pickSafe(b *board.Board, scores []rootScore, margin int) rootScore {
	best := scores[0]
	for _, s := range scores {
		if !s.exact || s.score < best.score-margin {
			break
		}
		if isSafeMove(b, s.move) {
			return s
		}
	}
	return best
}
