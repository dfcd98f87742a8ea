package selfplay

import (
	"strings"
	"testing"

	"github.com/notnil/chess"

	"chess-ai/engine"
	"chess-ai/game"
)

func TestExportPGNCheckmate(t *testing.T) {
	pgn, err := ExportPGN(foolsMate(t), "white", "black")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`[White "white"]`, "Qh4#", "0-1"} {
		if !strings.Contains(pgn, want) {
			t.Fatalf("PGN missing %q:\n%s", want, pgn)
		}
	}

	opt, err := chess.PGN(strings.NewReader(pgn))
	if err != nil {
		t.Fatal(err)
	}
	g := chess.NewGame(opt)
	if g.Outcome() != chess.BlackWon || len(g.Moves()) != 4 {
		t.Fatalf("reparsed outcome %s after %d moves", g.Outcome(), len(g.Moves()))
	}
}

func TestExportPGNMoveLimitDraw(t *testing.T) {
	g := game.New()
	start := g.Board().ToFEN()
	for _, mv := range [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}, {"b8", "c6"}} {
		if _, err := g.PlayTurn(mv[0], mv[1]); err != nil {
			t.Fatal(err)
		}
	}
	s := Summarize("capped", start, g)
	if s.Result != engine.Draw {
		t.Fatalf("result = %s", s.Result)
	}
	pgn, err := ExportPGN(s, "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(pgn, "1/2-1/2") || !strings.Contains(pgn, "Nc6") {
		t.Fatalf("unexpected PGN:\n%s", pgn)
	}
}

func TestExportPGNRejectsUnknownMove(t *testing.T) {
	s := foolsMate(t)
	s.Records[1].Notation = "e7e4"
	if _, err := ExportPGN(s, "a", "b"); err == nil {
		t.Fatal("expected an error")
	}
}
