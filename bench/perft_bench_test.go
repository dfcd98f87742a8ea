package bench

import (
	"testing"

	"chess-ai/board"
)

func benchPerft(b *testing.B, fen string, depth int) {
	pos := mustFEN(b, fen)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.Perft(pos, depth)
	}
}

func BenchmarkPerft_Initial_D3(b *testing.B)  { benchPerft(b, startFEN, 3) }
func BenchmarkPerft_Kiwipete_D2(b *testing.B) { benchPerft(b, kiwipeteFEN, 2) }

func BenchmarkReferencePerft_Initial_D3(b *testing.B) {
	pos := mustFEN(b, startFEN)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = board.ReferencePerft(pos, 3)
	}
}
