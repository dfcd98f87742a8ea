package game

import (
	"testing"

	"chess-ai/board"
)

func TestStateStackRepetitionWindow(t *testing.T) {
	b := board.NewBoard()
	var s StateStack
	s.Reset(b)
	for _, mv := range []string{"g1f3", "g8f6", "f3g1", "f6g8"} {
		m, _ := board.ParseMove(mv)
		if err := b.Play(m); err != nil {
			t.Fatal(err)
		}
		s.Push(b)
	}
	if got := s.Repetitions(); got != 1 {
		t.Fatalf("start position seen %d times before, want 1", got)
	}

	// A pawn move resets the window: nothing before it can repeat.
	m, _ := board.ParseMove("e2e4")
	if err := b.Play(m); err != nil {
		t.Fatal(err)
	}
	s.Push(b)
	if got := s.Repetitions(); got != 0 {
		t.Fatalf("repetitions after a pawn move: %d", got)
	}
	s.Pop()
	if s.Len() != 5 {
		t.Fatalf("len %d after pop", s.Len())
	}
}
