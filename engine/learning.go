package engine

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"sync"

	"golang.org/x/exp/maps"

	"chess-ai/board"
)

// GameResult is the outcome of a finished game.
type GameResult int

const (
	Draw GameResult = iota
	WhiteWins
	BlackWins
)

// ResultFor turns a winner into a GameResult. A nil winner is a draw.
func ResultFor(winner *board.Color) GameResult {
	switch {
	case winner == nil:
		return Draw
	case *winner == board.White:
		return WhiteWins
	}
	return BlackWins
}

func (r GameResult) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	}
	return "1/2-1/2"
}

// RewardFor is 1 for a win, 0.5 for a draw and 0 for a loss, seen from c.
func (r GameResult) RewardFor(c board.Color) float64 {
	switch {
	case r == Draw:
		return 0.5
	case (r == WhiteWins) == (c == board.White):
		return 1
	}
	return 0
}

// MoveKey identifies a move by its squares alone. It marshals as "e2e4".
type MoveKey struct {
	From, To board.Square
}

func (k MoveKey) String() string { return k.From.String() + k.To.String() }

func (k MoveKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *MoveKey) UnmarshalText(b []byte) error {
	s := string(b)
	if len(s) != 4 {
		return fmt.Errorf("%w: move key %q", board.ErrBadNotation, s)
	}
	from, err := board.ParseSquare(s[:2])
	if err != nil {
		return err
	}
	to, err := board.ParseSquare(s[2:])
	if err != nil {
		return err
	}
	k.From, k.To = from, to
	return nil
}

// DefaultWeight is the preference of a move that has never been learned.
const DefaultWeight = 0.5

// Learning is a flat table of move preferences in [0, 1], nudged towards the
// outcome of every finished game.
type Learning struct {
	mu      sync.RWMutex
	weights map[MoveKey]float64

	path   string
	rate   float64
	logger *log.Logger
}

func NewLearning() *Learning {
	return &Learning{
		weights: make(map[MoveKey]float64),
		rate:    DefaultOptions().LearningRate,
		logger:  log.New(io.Discard, "", 0),
	}
}

// LoadLearning reads weights from path. A missing or corrupt file yields
// empty weights bound to path.
func LoadLearning(path string, logger *log.Logger) *Learning {
	l := NewLearning()
	l.path = path
	if logger != nil {
		l.logger = logger
	}
	if err := l.reload(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.logger.Printf("info string learning weights %s unreadable, starting empty: %v", path, err)
	}
	return l
}

func (l *Learning) reload() error {
	weights := make(map[MoveKey]float64)
	if err := loadJSON(l.path, &weights); err != nil {
		return err
	}
	l.mu.Lock()
	l.weights = weights
	l.mu.Unlock()
	return nil
}

func (l *Learning) Path() string { return l.path }

func (l *Learning) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.weights)
}

// Weight returns the learned preference for k, DefaultWeight if unknown.
func (l *Learning) Weight(k MoveKey) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if w, ok := l.weights[k]; ok {
		return w
	}
	return DefaultWeight
}

// Snapshot copies the weights for lock-free reads during a search.
func (l *Learning) Snapshot() map[MoveKey]float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.weights)
}

// Nudge moves the weight of k towards reward: w += rate * (reward - w).
func (l *Learning) Nudge(k MoveKey, reward float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.weights[k]
	if !ok {
		w = DefaultWeight
	}
	l.weights[k] = w + l.rate*(reward-w)
}

// Apply nudges every move of a finished game towards the result seen by the
// player who made it.
func (l *Learning) Apply(records []board.MoveRecord, result GameResult) {
	for _, r := range records {
		l.Nudge(MoveKey{From: r.Start, To: r.End}, result.RewardFor(r.Player))
	}
}

func (l *Learning) Save() error {
	if l.path == "" {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	if err := saveJSON(l.path, l.weights); err != nil {
		return fmt.Errorf("save learning weights: %w", err)
	}
	return nil
}

// Update reloads the file, applies fn and saves under the path lock.
func (l *Learning) Update(fn func(*Learning)) error {
	if l.path == "" {
		fn(l)
		return nil
	}
	unlock := lockPath(l.path)
	defer unlock()
	if err := l.reload(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		l.logger.Printf("info string learning weights %s unreadable, keeping memory copy: %v", l.path, err)
	}
	fn(l)
	return l.Save()
}

// LearnFromGame records a finished game in the opening book and the learning
// weights and persists both. Failures are logged and returned; the in-memory
// stores are updated either way.
func (e *Engine) LearnFromGame(records []board.MoveRecord, result GameResult) error {
	bookErr := e.book.Update(func(ob *OpeningBook) { ob.Record(records, result) })
	learnErr := e.learning.Update(func(l *Learning) { l.Apply(records, result) })
	err := errors.Join(bookErr, learnErr)
	if err != nil {
		e.opts.Logger.Printf("info string learning not persisted: %v", err)
	}
	return err
}
