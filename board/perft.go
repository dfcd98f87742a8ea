package board

import "github.com/dylhunn/dragontoothmg"

// Perft counts leaf nodes of the legal move tree to the given depth.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += Perft(b.Simulate(m), depth-1)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range b.LegalMoves() {
		out[m] = Perft(b.Simulate(m), depth-1)
	}
	return out
}

// ReferencePerft runs perft on the same position with dragontoothmg's generator.
// It is the cross-check for our own move generation.
func ReferencePerft(b *Board, depth int) uint64 {
	dt := dragontoothmg.ParseFen(b.ToFEN())
	return dragontoothPerft(&dt, depth)
}

// ReferenceDivide is ReferencePerft split by root move, keyed by coordinate notation.
func ReferenceDivide(b *Board, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	dt := dragontoothmg.ParseFen(b.ToFEN())
	for _, m := range dt.GenerateLegalMoves() {
		unapply := dt.Apply(m)
		out[m.String()] = dragontoothPerft(&dt, depth-1)
		unapply()
	}
	return out
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}
