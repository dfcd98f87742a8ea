package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"chess-ai/engine"
	"chess-ai/selfplay"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	games := flag.Int("games", 10, "number of games to play")
	moveTime := flag.Duration("movetime", 0, "time budget per move (0 = default)")
	maxPlies := flag.Int("maxplies", 200, "plies after which a game is scored as a draw")
	difficulty := flag.String("difficulty", "", "easy, medium or hard (overrides -config)")
	configPath := flag.String("config", getenv("CHESS_CONFIG", ""), "JSON engine options")
	bookPath := flag.String("book", getenv("CHESS_BOOK", "book.json"), "opening book file")
	weightsPath := flag.String("weights", getenv("CHESS_WEIGHTS", "weights.json"), "learning weights file")
	archivePath := flag.String("archive", "", "write games to this Parquet file")
	pgnPath := flag.String("pgn", "", "append games to this PGN file")
	verbose := flag.Bool("v", false, "print engine info lines")
	flag.Parse()

	opts := engine.DefaultOptions()
	if *configPath != "" {
		var err error
		if opts, err = engine.LoadOptions(*configPath); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *difficulty != "" {
		d, err := engine.ParseDifficulty(*difficulty)
		if err != nil {
			log.Fatalf("difficulty: %v", err)
		}
		opts.Difficulty = d
	}
	opts.BookPath = *bookPath
	opts.WeightsPath = *weightsPath
	if *verbose {
		opts.Logger = log.New(os.Stderr, "", 0)
	}
	eng := engine.New(opts)
	log.Printf("book %s: %d positions, weights %s: %d moves",
		*bookPath, eng.Book().Len(), *weightsPath, eng.Learning().Len())

	var archive *selfplay.ArchiveWriter
	if *archivePath != "" {
		var err error
		if archive, err = selfplay.NewArchiveWriter(*archivePath, 4); err != nil {
			log.Fatalf("archive: %v", err)
		}
	}
	var pgn *os.File
	if *pgnPath != "" {
		var err error
		if pgn, err = os.OpenFile(*pgnPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err != nil {
			log.Fatalf("pgn: %v", err)
		}
		defer pgn.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	name := "chess-ai " + opts.Difficulty.String()
	tally := map[engine.GameResult]int{}
	cfg := selfplay.Config{
		Games:    *games,
		MaxPlies: *maxPlies,
		MoveTime: *moveTime,
		Logger:   log.Default(),
	}
	runErr := selfplay.Run(ctx, eng, cfg, func(s selfplay.Summary) error {
		tally[s.Result]++
		if archive != nil {
			if err := archive.Write(s); err != nil {
				return fmt.Errorf("archive %s: %w", s.ID, err)
			}
		}
		if pgn != nil {
			text, err := selfplay.ExportPGN(s, name, name)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(pgn, strings.TrimSpace(text)+"\n"); err != nil {
				return fmt.Errorf("pgn %s: %w", s.ID, err)
			}
		}
		return nil
	})

	if archive != nil {
		if err := archive.Close(); err != nil {
			log.Printf("archive: %v", err)
		}
	}
	log.Printf("results: %d-%d-%d (white-black-draw)", tally[engine.WhiteWins], tally[engine.BlackWins], tally[engine.Draw])
	if runErr != nil && ctx.Err() == nil {
		log.Fatalf("selfplay: %v", runErr)
	}
}
