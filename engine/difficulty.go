package engine

import (
	"sort"

	"chess-ai/board"
)

// scanOnePly scores every move by the static evaluation of the resulting
// position, best first.
func scanOnePly(b *board.Board, moves []board.Move) []scoredMove {
	us := b.Turn()
	list := make([]scoredMove, len(moves))
	for i, m := range moves {
		list[i] = scoredMove{move: m, score: EvaluateFor(b.Simulate(m), us)}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].score > list[j].score })
	return list
}

// quickScan is the fallback when no search depth completed in time.
func quickScan(b *board.Board, moves []board.Move) (board.Move, int) {
	list := scanOnePly(b, moves)
	return list[0].move, list[0].score
}

// easyMove plays a random move from the top third of a one-ply scan.
func (e *Engine) easyMove(b *board.Board, moves []board.Move) Result {
	list := scanOnePly(b, moves)
	n := (len(list) + 2) / 3
	pick := list[e.intn(n)]
	return Result{Move: pick.move, Score: pick.score, Depth: 1, Source: SourceEasy}
}
