package bench

import (
	"testing"

	"chess-ai/board"
)

const (
	startFEN    = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	kiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos6FEN     = "r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10"
)

func mustFEN(b *testing.B, fen string) *board.Board {
	pos, err := board.FromFEN(fen)
	if err != nil {
		b.Fatalf("FromFEN: %v", err)
	}
	return pos
}

func benchLegalMoves(b *testing.B, fen string) {
	pos := mustFEN(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.LegalMoves()
	}
}

func BenchmarkLegalMoves_Initial(b *testing.B)  { benchLegalMoves(b, startFEN) }
func BenchmarkLegalMoves_Kiwipete(b *testing.B) { benchLegalMoves(b, kiwipeteFEN) }
func BenchmarkLegalMoves_Pos6(b *testing.B)     { benchLegalMoves(b, pos6FEN) }

func BenchmarkNoisyMoves_EP(b *testing.B) {
	pos := mustFEN(b, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.NoisyMoves()
	}
}

func BenchmarkSimulate_AllMoves_Initial(b *testing.B) {
	pos := mustFEN(b, startFEN)
	moves := pos.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			_ = pos.Simulate(m)
		}
	}
}

func BenchmarkStatus_Kiwipete(b *testing.B) {
	pos := mustFEN(b, kiwipeteFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pos.Status()
	}
}
