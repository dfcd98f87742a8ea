package selfplay

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"chess-ai/engine"
	"chess-ai/game"
)

func easyEngine(dir string) *engine.Engine {
	opts := engine.DefaultOptions()
	opts.Difficulty = engine.Easy
	opts.Seed = 7
	if dir != "" {
		opts.BookPath = filepath.Join(dir, "book.json")
		opts.WeightsPath = filepath.Join(dir, "weights.json")
	}
	return engine.New(opts)
}

// foolsMate is a finished game used by the archive and PGN tests.
func foolsMate(t *testing.T) Summary {
	t.Helper()
	g := game.New()
	start := g.Board().ToFEN()
	for _, mv := range [][2]string{{"f2", "f3"}, {"e7", "e5"}, {"g2", "g4"}, {"d8", "h4"}} {
		if _, err := g.PlayTurn(mv[0], mv[1]); err != nil {
			t.Fatalf("%s%s: %v", mv[0], mv[1], err)
		}
	}
	s := Summarize("fools-mate", start, g)
	for range s.Records {
		s.Plies = append(s.Plies, Ply{Score: 12, Depth: 3, Source: engine.SourceSearch, Nodes: 1000, Elapsed: 5 * time.Millisecond})
	}
	return s
}

func TestPlayStopsAtMoveLimit(t *testing.T) {
	e := easyEngine("")
	s, err := Play(context.Background(), e, Config{MaxPlies: 12, MoveTime: 50 * time.Millisecond}, "t-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Records) == 0 || len(s.Records) > 12 {
		t.Fatalf("played %d plies, want 1..12", len(s.Records))
	}
	if len(s.Plies) != len(s.Records) {
		t.Fatalf("%d engine plies for %d records", len(s.Plies), len(s.Records))
	}
	for i, r := range s.Records {
		if r.Ply != i+1 {
			t.Fatalf("record %d has ply %d", i, r.Ply)
		}
	}
	if s.Reason == game.NotOver && s.Result != engine.Draw {
		t.Fatalf("unfinished game scored %s", s.Result)
	}
}

func TestPlayHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Play(ctx, easyEngine(""), Config{}, "t-1"); err == nil {
		t.Fatal("expected an error from a cancelled context")
	}
}

func TestRunPersistsLearning(t *testing.T) {
	dir := t.TempDir()
	e := easyEngine(dir)

	var seen []string
	err := Run(context.Background(), e, Config{Games: 2, MaxPlies: 8, MoveTime: 20 * time.Millisecond}, func(s Summary) error {
		seen = append(seen, s.ID)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != "game-0001" || seen[1] != "game-0002" {
		t.Fatalf("games = %v", seen)
	}

	if n := engine.LoadOpeningBook(filepath.Join(dir, "book.json"), nil).Len(); n == 0 {
		t.Fatal("opening book was not saved")
	}
	if n := engine.LoadLearning(filepath.Join(dir, "weights.json"), nil).Len(); n == 0 {
		t.Fatal("learning weights were not saved")
	}
}
