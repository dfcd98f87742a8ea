// Package selfplay plays the engine against itself and feeds each finished
// game back into the opening book and the learning weights.
package selfplay

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"chess-ai/board"
	"chess-ai/engine"
	"chess-ai/game"
)

// Config controls a self-play session. Zero fields take the defaults.
type Config struct {
	Games    int
	MaxPlies int // games reaching this length are scored as draws
	MoveTime time.Duration
	IDPrefix string
	Logger   *log.Logger
}

func (c Config) withDefaults() Config {
	if c.Games <= 0 {
		c.Games = 1
	}
	if c.MaxPlies <= 0 {
		c.MaxPlies = 200
	}
	if c.MoveTime <= 0 {
		c.MoveTime = 500 * time.Millisecond
	}
	if c.IDPrefix == "" {
		c.IDPrefix = "game"
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	return c
}

// Ply is the engine's account of one move it played.
type Ply struct {
	Move    board.Move
	Score   int
	Depth   int
	Source  engine.Source
	Nodes   uint64
	Elapsed time.Duration
}

// Summary is a finished (or abandoned) game.
type Summary struct {
	ID       string
	StartFEN string
	Records  []board.MoveRecord
	Plies    []Ply
	Result   engine.GameResult
	Reason   game.Reason
	Duration time.Duration
}

// Summarize captures the state of g. Plies is left empty for games not
// played by the engine.
func Summarize(id, startFEN string, g *game.Game) Summary {
	return Summary{
		ID:       id,
		StartFEN: startFEN,
		Records:  g.Board().History().Records(),
		Result:   engine.ResultFor(g.Winner()),
		Reason:   g.Reason(),
	}
}

// Play runs one game from the initial position.
func Play(ctx context.Context, e *engine.Engine, cfg Config, id string) (Summary, error) {
	cfg = cfg.withDefaults()
	g := game.New()
	startFEN := g.Board().ToFEN()
	start := time.Now()

	var plies []Ply
	for !g.Over() && g.Board().History().Len() < cfg.MaxPlies {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		res, err := e.Search(ctx, g.Board(), cfg.MoveTime)
		if err != nil {
			return Summary{}, fmt.Errorf("%s ply %d: %w", id, len(plies)+1, err)
		}
		if _, err := g.PlayMove(res.Move); err != nil {
			return Summary{}, fmt.Errorf("%s ply %d: play %s: %w", id, len(plies)+1, res.Move, err)
		}
		plies = append(plies, Ply{
			Move:    res.Move,
			Score:   res.Score,
			Depth:   res.Depth,
			Source:  res.Source,
			Nodes:   res.Stats.Nodes,
			Elapsed: res.Elapsed,
		})
	}

	s := Summarize(id, startFEN, g)
	s.Plies = plies
	s.Duration = time.Since(start)
	return s, nil
}

// Run plays cfg.Games games in sequence. After each game the engine learns
// from it and onGame, if set, receives the summary. Failing to persist what
// was learned is logged and does not stop the session.
func Run(ctx context.Context, e *engine.Engine, cfg Config, onGame func(Summary) error) error {
	cfg = cfg.withDefaults()
	for i := 1; i <= cfg.Games; i++ {
		id := fmt.Sprintf("%s-%04d", cfg.IDPrefix, i)
		s, err := Play(ctx, e, cfg, id)
		if err != nil {
			return err
		}
		if err := e.LearnFromGame(s.Records, s.Result); err != nil {
			cfg.Logger.Printf("%s: learning not saved: %v", id, err)
		}
		reason := s.Reason.String()
		if reason == "" {
			reason = "move limit"
		}
		cfg.Logger.Printf("%s: %s (%s) in %d plies, %v", id, s.Result, reason, len(s.Records), s.Duration.Round(time.Millisecond))
		if onGame != nil {
			if err := onGame(s); err != nil {
				return err
			}
		}
	}
	return nil
}
