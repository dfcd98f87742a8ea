package engine

import "chess-ai/board"

const MaxDepth = 64

type KillerStruct struct {
	KillerMoves [MaxDepth + 1][2]board.Move
}

func (k *KillerStruct) InsertKiller(move board.Move, ply int) {
	if ply > MaxDepth {
		return
	}
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

func (k *KillerStruct) isKiller(move board.Move, ply int) bool {
	if ply > MaxDepth {
		return false
	}
	return move == k.KillerMoves[ply][0] || move == k.KillerMoves[ply][1]
}

// Clear the killer moves table.
func (k *KillerStruct) ClearKillers() {
	for depth := 0; depth < MaxDepth+1; depth++ {
		k.KillerMoves[depth][0] = board.NullMove
		k.KillerMoves[depth][1] = board.NullMove
	}
}

// HistoryStruct accumulates depth-squared credit for quiet moves that caused
// a beta cutoff, indexed by mover color and squares.
type HistoryStruct struct {
	table [2][64][64]int32
}

const maxHistory = 1 << 20

func (h *HistoryStruct) Add(c board.Color, m board.Move, depth int) {
	v := h.table[c][m.From][m.To] + int32(depth*depth)
	if v > maxHistory {
		// Age everything so scores stay comparable.
		for i := range h.table[c] {
			for j := range h.table[c][i] {
				h.table[c][i][j] /= 2
			}
		}
		v /= 2
	}
	h.table[c][m.From][m.To] = v
}

func (h *HistoryStruct) Score(c board.Color, m board.Move) int {
	return int(h.table[c][m.From][m.To])
}
