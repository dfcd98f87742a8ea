package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"chess-ai/board"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.UseBook = false
	opts.Seed = 1
	return opts
}

// refMinimax is an unpruned negamax with the same leaf rules as the engine.
func refMinimax(b *board.Board, depth, ply, qdepth int) int {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		if b.InCheck() {
			return -(Checkmate - ply)
		}
		return DrawScore
	}
	if depth == 0 {
		return refQuiescence(b, ply, qdepth)
	}
	best := -Infinity
	for _, m := range moves {
		best = Max(best, -refMinimax(b.Simulate(m), depth-1, ply+1, qdepth))
	}
	return best
}

func refQuiescence(b *board.Board, ply, qdepth int) int {
	switch b.Status() {
	case board.Checkmate:
		return -(Checkmate - ply)
	case board.Stalemate:
		return DrawScore
	}
	best := sideSign(b.Turn()) * evaluatePosition(b)
	if qdepth == 0 {
		return best
	}
	for _, m := range b.NoisyMoves() {
		best = Max(best, -refQuiescence(b.Simulate(m), ply+1, qdepth-1))
	}
	return best
}

func TestSearchMatchesMinimax(t *testing.T) {
	positions := []struct {
		fen   string
		depth int
	}{
		{"4k3/8/8/3q4/8/2N5/8/4K3 w - - 0 1", 3},
		{"6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1", 3},
		{"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", 2},
		{"8/8/8/4k3/3pP3/8/8/4K2R b K e3 0 1", 3},
	}
	for _, tc := range positions {
		b := board.MustFEN(tc.fen)
		want := refMinimax(b, tc.depth, 0, DefaultOptions().QuiescenceDepth)
		for _, workers := range []int{1, 4} {
			opts := testOptions()
			opts.MaxDepth = tc.depth
			opts.Workers = workers
			opts.DisableTT = true
			opts.SafetyFilter = false
			res, err := New(opts).Search(context.Background(), b, 0)
			if err != nil {
				t.Fatalf("%s: %v", tc.fen, err)
			}
			if res.Score != want {
				t.Errorf("%s workers=%d: score %d, minimax %d", tc.fen, workers, res.Score, want)
			}
			if res.Depth < 1 || res.Depth > tc.depth || res.Source != SourceSearch {
				t.Errorf("%s workers=%d: depth %d source %s", tc.fen, workers, res.Depth, res.Source)
			}
			if !b.IsLegalMove(res.Move) {
				t.Errorf("%s workers=%d: illegal move %s", tc.fen, workers, res.Move)
			}
		}
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	b := board.MustFEN("6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1")
	opts := testOptions()
	opts.Difficulty = Hard
	opts.MaxDepth = 3
	res, err := New(opts).Search(context.Background(), b, 5*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.String() != "d1d8" {
		t.Fatalf("expected d1d8, got %s", res.Move)
	}
	if res.Score != Checkmate-1 {
		t.Fatalf("expected mate score %d, got %d", Checkmate-1, res.Score)
	}
}

func TestSearchFindsScholarsMate(t *testing.T) {
	// The queen is attacked by the f6 knight, but Qxf7 is mate.
	b := board.MustFEN("r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4")
	opts := testOptions()
	opts.MaxDepth = 3
	res, err := New(opts).Search(context.Background(), b, 10*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if res.Move.String() != "h5f7" {
		t.Fatalf("expected Qxf7#, got %s (score %d)", res.Move, res.Score)
	}
}

func TestSearchRespectsBudget(t *testing.T) {
	const overrun = 50 * time.Millisecond
	positions := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10",
	}
	for _, fen := range positions {
		for _, budget := range []time.Duration{20 * time.Millisecond, 300 * time.Millisecond} {
			b := board.MustFEN(fen)
			opts := testOptions()
			opts.Difficulty = Hard
			e := New(opts)
			start := time.Now()
			m, ok, err := e.GetBestMove(context.Background(), b, budget)
			elapsed := time.Since(start)
			if err != nil || !ok {
				t.Fatalf("%s: GetBestMove: %v %v", fen, ok, err)
			}
			if !b.IsLegalMove(m) {
				t.Fatalf("%s: illegal move %s", fen, m)
			}
			if elapsed > budget+overrun {
				t.Errorf("%s: search took %v with a %v budget", fen, elapsed, budget)
			}
		}
	}
}

func TestSearchCancelledContextStillMoves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := board.NewBoard()
	res, err := New(testOptions()).Search(ctx, b, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !b.IsLegalMove(res.Move) {
		t.Fatalf("illegal move %s from %s", res.Move, res.Source)
	}
}

func TestGetBestMoveNoLegalMoves(t *testing.T) {
	for _, fen := range []string{
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",                             // stalemate
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", // checkmate
	} {
		m, ok, err := New(testOptions()).GetBestMove(context.Background(), board.MustFEN(fen), time.Second)
		if err != nil || ok || !m.IsNull() {
			t.Errorf("%s: got %s %v %v", fen, m, ok, err)
		}
	}
}

func TestSearchRejectsInvalidPosition(t *testing.T) {
	b := board.NewEmptyBoard()
	b.Place(board.NewSquare(7, 4), board.NewPiece(board.White, board.PieceTypeKing))
	_, err := New(testOptions()).Search(context.Background(), b, time.Second)
	if !errors.Is(err, ErrInvalidPosition) || !errors.Is(err, board.ErrMissingKing) {
		t.Fatalf("expected ErrInvalidPosition wrapping ErrMissingKing, got %v", err)
	}
}

func TestEasyPicksFromTopThird(t *testing.T) {
	b := board.MustFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	list := scanOnePly(b, b.LegalMoves())
	top := map[board.Move]bool{}
	for _, sm := range list[:(len(list)+2)/3] {
		top[sm.move] = true
	}
	opts := testOptions()
	opts.Difficulty = Easy
	e := New(opts)
	for i := 0; i < 20; i++ {
		res, err := e.Search(context.Background(), b, time.Second)
		if err != nil {
			t.Fatal(err)
		}
		if res.Source != SourceEasy || !top[res.Move] {
			t.Fatalf("easy move %s (%s) not in the top third", res.Move, res.Source)
		}
	}
}

func TestSearchUsesBook(t *testing.T) {
	b := board.NewBoard()
	opts := DefaultOptions()
	opts.BookBestProb = 1
	opts.Seed = 3
	e := New(opts)
	e.Book().Add(b.BookKey(), "d2d4", 3)
	e.Book().Add(b.BookKey(), "e2e4", 5)
	e.Book().Add(b.BookKey(), "e2e5", 9) // not legal, ignored
	res, err := e.Search(context.Background(), b, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if res.Source != SourceBook || res.Move.String() != "e2e4" {
		t.Fatalf("expected book move e2e4, got %s from %s", res.Move, res.Source)
	}
}

func TestSearchBookRandomPick(t *testing.T) {
	b := board.NewBoard()
	opts := DefaultOptions()
	opts.BookBestProb = 1e-9
	opts.Seed = 11
	e := New(opts)
	e.Book().Add(b.BookKey(), "d2d4", 3)
	e.Book().Add(b.BookKey(), "e2e4", 5)
	e.Book().Add(b.BookKey(), "g1f3", 1)
	e.Book().Add(b.BookKey(), "e2e5", 9) // not legal, ignored

	seen := map[string]int{}
	for i := 0; i < 90; i++ {
		res, err := e.Search(context.Background(), b, time.Second)
		if err != nil {
			t.Fatal(err)
		}
		if res.Source != SourceBook {
			t.Fatalf("expected a book move, got %s from %s", res.Move, res.Source)
		}
		seen[res.Move.String()]++
	}
	if seen["e2e5"] != 0 {
		t.Fatalf("illegal book entry played %d times", seen["e2e5"])
	}
	for _, m := range []string{"d2d4", "e2e4", "g1f3"} {
		if seen[m] == 0 {
			t.Fatalf("book move %s never picked: %v", m, seen)
		}
	}
}

func TestSearchSkipsBookAfterOpening(t *testing.T) {
	b := board.MustFEN("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 30")
	opts := testOptions()
	opts.UseBook = true
	opts.MaxDepth = 1
	e := New(opts)
	e.Book().Add(b.BookKey(), "a2a3", 100)
	res, err := e.Search(context.Background(), b, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if res.Source == SourceBook {
		t.Fatalf("book consulted at move 30")
	}
}

func TestSafetyFilterPrefersSafeMove(t *testing.T) {
	// Nxe5 wins a pawn but the knight is lost to d6; Ng5 is quiet and safe.
	b := board.MustFEN("4k3/8/3p4/4p3/8/5N2/8/4K3 w - - 0 1")
	if isSafeMove(b, mustMove(t, "f3e5")) {
		t.Fatalf("knight on e5 is attacked by the d6 pawn and undefended")
	}
	if !isSafeMove(b, mustMove(t, "f3g5")) {
		t.Fatalf("knight on g5 is unattacked")
	}
	if isSafeMove(b, mustMove(t, "f3d4")) {
		t.Fatalf("knight on d4 is attacked by the e5 pawn and undefended")
	}
	scores := []rootScore{
		{move: mustMove(t, "f3e5"), score: 120, exact: true},
		{move: mustMove(t, "f3g5"), score: 20, exact: true},
		{move: mustMove(t, "e1d2"), score: -500, exact: true},
	}
	if got := pickSafe(b, scores, 150); got.move.String() != "f3g5" {
		t.Fatalf("expected the safe move within the margin, got %s", got.move)
	}
	if got := pickSafe(b, scores, 50); got.move.String() != "f3e5" {
		t.Fatalf("safe move outside the margin should not be preferred, got %s", got.move)
	}
}
