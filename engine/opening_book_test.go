package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"chess-ai/board"
)

func TestOpeningBookRecordFirstPlies(t *testing.T) {
	moves := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	var all []string
	for i := 0; i < 6; i++ {
		all = append(all, moves...)
	}
	records := playedRecords(t, all...)

	ob := NewOpeningBook()
	ob.Record(records, Draw)

	start := board.NewBoard().BookKey()
	got := ob.Lookup(start)
	// The start position recurs every four plies; plies 1, 5, ..., 17 fall inside the first 20.
	if got["g1f3"] != 5*0.5 {
		t.Fatalf("start position g1f3 score %v, want 2.5", got["g1f3"])
	}
	if len(got) != 1 {
		t.Fatalf("unexpected moves %v", got)
	}
}

func TestOpeningBookCreditsWinner(t *testing.T) {
	records := playedRecords(t, "e2e4", "e7e5")
	ob := NewOpeningBook()
	ob.Record(records, WhiteWins)
	if got := ob.Lookup(records[0].BookKey)["e2e4"]; got != 1 {
		t.Fatalf("white move score %v", got)
	}
	if got := ob.Lookup(records[1].BookKey)["e7e5"]; got != 0 {
		t.Fatalf("black move score %v", got)
	}
}

func TestOpeningBookLookupIsACopy(t *testing.T) {
	ob := NewOpeningBook()
	ob.Add("k", "e2e4", 1)
	ob.Lookup("k")["e2e4"] = 99
	if ob.Lookup("k")["e2e4"] != 1 {
		t.Fatalf("Lookup exposed internal state")
	}
}

func TestOpeningBookSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book", "book.json")
	ob := LoadOpeningBook(path, nil)
	ob.Record(playedRecords(t, "e2e4", "c7c5", "g1f3"), BlackWins)
	if err := ob.Save(); err != nil {
		t.Fatal(err)
	}
	back := LoadOpeningBook(path, nil)
	if back.Len() != 3 {
		t.Fatalf("loaded %d positions, want 3", back.Len())
	}
	key := board.NewBoard().BookKey()
	if back.Lookup(key)["e2e4"] != ob.Lookup(key)["e2e4"] {
		t.Fatalf("round trip changed scores")
	}
}

func TestOpeningBookUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "book.json")
	if err := os.WriteFile(corrupt, []byte("[1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if LoadOpeningBook(corrupt, nil).Len() != 0 {
		t.Fatalf("corrupt book should load empty")
	}
	// A directory in place of the file cannot be read or replaced.
	ob := LoadOpeningBook(dir, nil)
	if ob.Len() != 0 {
		t.Fatalf("directory should load as an empty book")
	}
	ob.Add("k", "e2e4", 1)
	if err := ob.Update(func(*OpeningBook) {}); err == nil {
		t.Fatalf("saving over a directory should fail")
	}
	if ob.Lookup("k")["e2e4"] != 1 {
		t.Fatalf("failed save dropped the in-memory book")
	}
}

func TestOpeningBookConcurrentUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ob := LoadOpeningBook(path, nil)
			if err := ob.Update(func(ob *OpeningBook) { ob.Add("k", "e2e4", 1) }); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if got := LoadOpeningBook(path, nil).Lookup("k")["e2e4"]; got != 8 {
		t.Fatalf("lost updates: %v, want 8", got)
	}
}

func TestLearnFromGamePersistsBoth(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions()
	opts.BookPath = filepath.Join(dir, "book.json")
	opts.WeightsPath = filepath.Join(dir, "weights.json")
	opts.MaxDepth = 1
	e := New(opts)

	b := board.NewBoard()
	for i := 0; i < 4; i++ {
		m, ok, err := e.GetBestMove(context.Background(), b, time.Second)
		if err != nil || !ok {
			t.Fatalf("GetBestMove: %v %v", ok, err)
		}
		if err := b.Play(m); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.LearnFromGame(b.History().Records(), Draw); err != nil {
		t.Fatal(err)
	}
	if n := LoadOpeningBook(opts.BookPath, nil).Len(); n != 4 {
		t.Fatalf("book has %d positions, want 4", n)
	}
	if n := LoadLearning(opts.WeightsPath, nil).Len(); n == 0 {
		t.Fatalf("no learning weights saved")
	}
}
