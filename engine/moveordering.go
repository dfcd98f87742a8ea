package engine

import (
	"chess-ai/board"
)

type scoredMove struct {
	move  board.Move
	score int
}

/*
	Move ordering offsets!
	- The TT move is the best move found for this position at some earlier depth, so it goes first.
	- Promotions and winning captures come next, MVV-LVA style (10 x victim - attacker).
	- Captures that lose material on the exchange drop below the killers.
	- Quiet moves use history, the learned preference, a centre tie-break and a
	  penalty for walking an attacked piece onto an attacked, undefended square.
*/
const (
	ttMoveOffset     = 1 << 30
	captureOffset    = 1 << 24
	killerOffset     = 1 << 22
	badCaptureOffset = 1 << 21
)

// Ordering the moves one at a time, at index given
func orderNextMove(currIndex int, moves []scoredMove) {
	bestIndex := currIndex
	bestScore := moves[bestIndex].score

	for index := bestIndex + 1; index < len(moves); index++ {
		if moves[index].score > bestScore {
			bestIndex = index
			bestScore = moves[index].score
		}
	}
	moves[currIndex], moves[bestIndex] = moves[bestIndex], moves[currIndex]
}

func (s *searcher) scoreMoves(b *board.Board, moves []board.Move, ttMove board.Move, ply int) []scoredMove {
	us := b.Turn()
	list := make([]scoredMove, len(moves))
	for i, m := range moves {
		list[i].move = m
		switch {
		case m == ttMove:
			list[i].score = ttMoveOffset
		case m.Promotion != board.PieceTypeNone || b.IsCapture(m):
			list[i].score = scoreNoisy(b, m)
		case s.killers.isKiller(m, ply):
			list[i].score = killerOffset
			if m == s.killers.KillerMoves[ply][0] {
				list[i].score++
			}
		default:
			list[i].score = s.history.Score(us, m) + s.scoreQuiet(b, m)
		}
	}
	return list
}

// scoreNoisy ranks captures by 10 x victim - attacker, with promotions counted
// as capturing the promoted piece. Exchanges that lose material sink below
// the killers.
func scoreNoisy(b *board.Board, m board.Move) int {
	victim := PieceValue[b.CapturedPiece(m).Type]
	if m.Promotion != board.PieceTypeNone {
		victim += PieceValue[m.Promotion]
	}
	attacker := PieceValue[b.PieceAt(m.From).Type]
	if b.IsCapture(m) {
		if x := see(b, m); x < 0 {
			return badCaptureOffset + x
		}
	}
	return captureOffset + 10*victim - attacker
}

func (s *searcher) scoreQuiet(b *board.Board, m board.Move) int {
	us := b.Turn()
	them := us.Other()
	score := 6 - centerManhattanDistance[m.To]

	if w, ok := s.learned[MoveKey{From: m.From, To: m.To}]; ok {
		score += int((w - 0.5) * float64(s.learningScale))
	}

	p := b.PieceAt(m.From)
	if p.Type != board.PieceTypeKing &&
		board.IsSquareAttacked(b, m.From, them) &&
		board.IsSquareAttacked(b, m.To, them) &&
		!defendedBy(b, m.To, us, m.From) {
		score -= PieceValue[p.Type]
	}
	return score
}

// defendedBy reports whether a piece of color c other than the one on
// exclude guards sq.
func defendedBy(b *board.Board, sq board.Square, c board.Color, exclude board.Square) bool {
	for _, a := range board.Attackers(b, sq, c) {
		if a != exclude {
			return true
		}
	}
	return false
}

// scoreCaptures orders quiescence moves, which are all noisy.
func scoreCaptures(b *board.Board, moves []board.Move) []scoredMove {
	list := make([]scoredMove, len(moves))
	for i, m := range moves {
		list[i] = scoredMove{move: m, score: scoreNoisy(b, m)}
	}
	return list
}
