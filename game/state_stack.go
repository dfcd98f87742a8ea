package game

import (
	"chess-ai/board"
)

const fiftyMoveLimit = 100

// stackState captures the information we need to reason about repetitions and draws.
type stackState struct {
	Hash   uint64
	Rule50 int
}

// StateStack is the per-game position history used for draw detection.
type StateStack struct {
	states []stackState
}

// Reset rebuilds the stack so that it only contains the current board.
func (s *StateStack) Reset(b *board.Board) {
	s.states = s.states[:0]
	s.Push(b)
}

// Push appends the board's current state.
func (s *StateStack) Push(b *board.Board) {
	s.states = append(s.states, stackState{
		Hash:   b.Hash(),
		Rule50: b.HalfmoveClock(),
	})
}

func (s *StateStack) Pop() {
	if len(s.states) == 0 {
		return
	}
	s.states = s.states[:len(s.states)-1]
}

func (s *StateStack) Len() int { return len(s.states) }

// FiftyMoves reports whether 50 moves per side passed without a capture or
// pawn move.
func (s *StateStack) FiftyMoves() bool {
	if len(s.states) == 0 {
		return false
	}
	return s.states[len(s.states)-1].Rule50 >= fiftyMoveLimit
}

// Repetitions counts earlier occurrences of the current position. Only
// positions since the last irreversible move can match.
func (s *StateStack) Repetitions() int {
	if len(s.states) <= 1 {
		return 0
	}
	curr := s.states[len(s.states)-1]
	count, _ := s.repetitionInfo(curr.Hash, curr.Rule50)
	return count
}

func (s *StateStack) repetitionInfo(hash uint64, rule50 int) (count int, firstIdx int) {
	firstIdx = -1
	start := len(s.states) - 1 - rule50
	if start < 0 {
		start = 0
	}
	end := len(s.states) - 2
	for i := start; i <= end; i++ {
		if s.states[i].Hash == hash {
			count++
			if firstIdx == -1 {
				firstIdx = i
			}
		}
	}
	return count, firstIdx
}
