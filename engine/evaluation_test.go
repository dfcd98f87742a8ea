package engine

import (
	"testing"

	"chess-ai/board"
)

// mirror flips b top to bottom and swaps the colors and the side to move.
func mirror(b *board.Board) *board.Board {
	m := board.NewEmptyBoard()
	for sq := board.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() {
			continue
		}
		p.Color = p.Color.Other()
		m.Place(board.NewSquare(7-sq.Row(), sq.Col()), p)
	}
	m.SetTurn(b.Turn().Other())
	return m
}

func TestEvaluateStartIsBalanced(t *testing.T) {
	if got := Evaluate(board.NewBoard()); got != 0 {
		t.Fatalf("start position evaluates to %d", got)
	}
}

func TestEvaluateIsColorSymmetric(t *testing.T) {
	for _, fen := range []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"4k3/8/8/3q4/8/2N5/8/4K3 b - - 0 1",
	} {
		b := board.MustFEN(fen)
		if a, m := Evaluate(b), Evaluate(mirror(b)); a != -m {
			t.Errorf("%s: %d vs mirrored %d", fen, a, m)
		}
		if EvaluateFor(b, board.Black) != -Evaluate(b) {
			t.Errorf("%s: EvaluateFor(Black) is not the negation", fen)
		}
	}
}

func TestEvaluateMaterial(t *testing.T) {
	b := board.MustFEN("3qk3/8/8/8/8/8/8/3QK3 w - - 0 1")
	up := board.MustFEN("4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	if d := Evaluate(up) - Evaluate(b); d < PieceValue[board.PieceTypeQueen]-200 {
		t.Fatalf("an extra queen is worth only %d", d)
	}
}

func TestEvaluateTerminal(t *testing.T) {
	mated := board.MustFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if got := Evaluate(mated); got != -Checkmate {
		t.Fatalf("white mated: got %d", got)
	}
	if got := EvaluateFor(mated, board.Black); got != Checkmate {
		t.Fatalf("black mating: got %d", got)
	}
	stale := board.MustFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if got := Evaluate(stale); got != DrawScore {
		t.Fatalf("stalemate: got %d", got)
	}
}

func TestEvaluateHangingPiece(t *testing.T) {
	safe := board.MustFEN("4k3/8/8/3n4/8/4P3/8/4K3 w - - 0 1")
	hanging := board.MustFEN("4k3/8/8/3n4/4P3/8/8/4K3 b - - 0 1")
	// Same material; in the second the knight on d5 is attacked by a pawn.
	if Evaluate(hanging) <= Evaluate(safe) {
		t.Fatalf("attacked knight should cost black: safe %d hanging %d", Evaluate(safe), Evaluate(hanging))
	}
}

func TestGetPiecePhase(t *testing.T) {
	if got := GetPiecePhase(board.NewBoard()); got != TotalPhase {
		t.Fatalf("start phase %d, want %d", got, TotalPhase)
	}
	if got := GetPiecePhase(board.MustFEN("4k3/pppp4/8/8/8/8/PPPP4/4K3 w - - 0 1")); got != 0 {
		t.Fatalf("pawn ending phase %d", got)
	}
}

func TestMobilityCountsLegalMoves(t *testing.T) {
	// The e2 knight is pinned by the e7 rook: its attacked squares are not moves.
	b := board.MustFEN("4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1")
	want := len(b.LegalMovesFor(board.White)) - len(b.LegalMovesFor(board.Black))
	if got := mobility(b); got != want || got != 4-16 {
		t.Fatalf("mobility = %d, want %d (4 king moves against 16)", got, want)
	}
	if got := mobility(board.NewBoard()); got != 0 {
		t.Fatalf("start mobility = %d", got)
	}
}
