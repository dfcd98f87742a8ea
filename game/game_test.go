package game_test

import (
	"errors"
	"strings"
	"testing"

	"chess-ai/board"
	"chess-ai/game"
)

func play(t *testing.T, g *game.Game, moves ...string) string {
	t.Helper()
	var msg string
	for _, m := range moves {
		var err error
		msg, err = g.PlayTurn(m[:2], m[2:])
		if err != nil {
			t.Fatalf("PlayTurn(%s): %v", m, err)
		}
	}
	return msg
}

func TestPlayTurnReasons(t *testing.T) {
	g := game.New()
	tests := []struct {
		from, to string
		want     error
		reason   string
	}{
		{"e4", "e5", board.ErrNoPiece, "no piece at source"},
		{"e7", "e5", board.ErrNotYourPiece, "not your piece"},
		{"e2", "e5", board.ErrIllegalDestination, "illegal destination"},
		{"z9", "e4", board.ErrBadNotation, ""},
	}
	for _, tc := range tests {
		_, err := g.PlayTurn(tc.from, tc.to)
		if !errors.Is(err, tc.want) {
			t.Errorf("%s%s: got %v want %v", tc.from, tc.to, err, tc.want)
		}
		if tc.reason != "" && (err == nil || !strings.Contains(err.Error(), tc.reason)) {
			t.Errorf("%s%s: message %v should mention %q", tc.from, tc.to, err, tc.reason)
		}
	}
	if g.Turn() != board.White || g.Board().History().Len() != 0 {
		t.Fatalf("rejected moves changed the game")
	}
}

func TestFoolsMate(t *testing.T) {
	g := game.New()
	msg := play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if !g.Over() || g.Reason() != game.ByCheckmate {
		t.Fatalf("expected checkmate, got %v", g.Reason())
	}
	if w := g.Winner(); w == nil || *w != board.Black {
		t.Fatalf("winner: %v", w)
	}
	if msg != "Checkmate! Black wins." {
		t.Fatalf("message %q", msg)
	}
	if _, err := g.PlayTurn("a2", "a3"); !errors.Is(err, board.ErrGameOver) {
		t.Fatalf("move after mate: %v", err)
	}
	st := g.State()
	if !st.GameOver || st.Reason != "checkmate" || st.Board[4][7] != "♛" {
		t.Fatalf("state %+v", st)
	}
}

func TestCheckMessage(t *testing.T) {
	g := game.New()
	msg := play(t, g, "e2e4", "f7f6", "d1h5")
	if msg != "Black king is in check!" {
		t.Fatalf("message %q", msg)
	}
}

func TestPromotionFlow(t *testing.T) {
	g := game.FromBoard(board.MustFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1"))
	msg := play(t, g, "a7a8")
	if !strings.Contains(msg, "promotion") {
		t.Fatalf("message %q", msg)
	}
	if _, err := g.PlayTurn("h7", "h6"); !errors.Is(err, board.ErrPromotionPending) {
		t.Fatalf("move during promotion: %v", err)
	}
	msg, err := g.Promote(board.PieceTypeQueen)
	if err != nil {
		t.Fatal(err)
	}
	if msg != "" {
		t.Fatalf("queen on a8 does not reach h7, got %q", msg)
	}
	if p := g.Board().PieceAt(board.NewSquare(0, 0)); p.Type != board.PieceTypeQueen {
		t.Fatalf("a8 holds %v", p)
	}
	if _, err := g.Promote(board.PieceTypeQueen); !errors.Is(err, board.ErrNoPromotion) {
		t.Fatalf("second promotion: %v", err)
	}
}

func TestStalemate(t *testing.T) {
	g := game.FromBoard(board.MustFEN("7k/8/6K1/8/8/8/8/5Q2 w - - 0 1"))
	msg := play(t, g, "f1f7")
	if g.Reason() != game.ByStalemate || g.Winner() != nil {
		t.Fatalf("expected stalemate, got %v", g.Reason())
	}
	if msg != "Draw by stalemate." {
		t.Fatalf("message %q", msg)
	}
}

func TestThreefoldRepetition(t *testing.T) {
	g := game.New()
	play(t, g, "g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1")
	if g.Over() {
		t.Fatalf("only two occurrences so far")
	}
	msg := play(t, g, "f6g8")
	if g.Reason() != game.ByRepetition {
		t.Fatalf("expected repetition, got %v", g.Reason())
	}
	if msg != "Draw by threefold repetition." {
		t.Fatalf("message %q", msg)
	}
}

func TestFiftyMoveRule(t *testing.T) {
	g := game.FromBoard(board.MustFEN("4k3/8/8/8/8/8/8/R3K3 w - - 99 80"))
	play(t, g, "a1a2")
	if g.Reason() != game.ByFiftyMoves {
		t.Fatalf("expected fifty-move draw, got %v", g.Reason())
	}
}

// Sixteen pawn moves followed by a hundred quiet half-moves.
const fiftyMoveSequence = "d2d4 d7d5 f2f4 f7f5 e2e3 e7e6 g2g3 g7g6 h2h4 h7h5 c2c3 c7c6 b2b4 b7b5 a2a3 a7a6 " +
	"b1d2 g8e7 f1g2 c8b7 e1f2 e8f7 d1e2 f8g7 h1h3 a8a7 c1b2 b8d7 a1c1 b7c8 c1b1 d7f8 g1f3 f8h7 " +
	"d2f1 e7g8 f1d2 g8e7 d2f1 e7g8 f1h2 g8h6 f3g5 f7f8 e2c2 f8e7 b1d1 c8b7 f2e2 g7f8 g2f3 h7f6 " +
	"c2c1 d8c8 c1a1 c8a8 d1g1 b7c8 h2f1 h8h7 h3h2 h7h8 f1d2 f8g7 d2f1 c8d7 a1c1 a8b7 b2a1 a7a8 " +
	"f1d2 h8c8 g1g2 c8f8 h2h1 f8g8 g2g1 g8h8 g5h3 h6g8 d2f1 g8h6 f1h2 f6g4 h2f1 g4f6 f1d2 g7f8 " +
	"g1e1 b7c7 h1g1 f8g7 f3h1 h8b8 e1f1 d7e8 d2b3 e8d7 b3c5 f6e4 h3g5 h6g4 c5b3 e4f6 g5h3 g4h6 " +
	"h1f3 f6g8 g1h1 g7f6 f1f2 e7d8 e2f1 d8c8 f1g2 c8b7"

func TestFiftyMoveRuleScenario(t *testing.T) {
	moves := strings.Fields(fiftyMoveSequence)
	g := game.New()
	play(t, g, moves[:len(moves)-1]...)
	if g.Over() {
		t.Fatalf("game ended early by %v at halfmove clock %d", g.Reason(), g.Board().HalfmoveClock())
	}
	msg := play(t, g, moves[len(moves)-1])
	if g.Reason() != game.ByFiftyMoves {
		t.Fatalf("expected fifty-move draw, got %v (clock %d)", g.Reason(), g.Board().HalfmoveClock())
	}
	if msg != "Draw by fifty-move rule." {
		t.Fatalf("message %q", msg)
	}
}

func TestInsufficientMaterial(t *testing.T) {
	g := game.FromBoard(board.MustFEN("4k3/8/8/8/8/8/3n4/4K3 w - - 0 1"))
	play(t, g, "e1d2")
	if g.Reason() != game.ByInsufficientMaterial {
		t.Fatalf("expected insufficient material, got %v", g.Reason())
	}
}
