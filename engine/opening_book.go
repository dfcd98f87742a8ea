package engine

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"sort"
	"sync"

	"golang.org/x/exp/maps"

	"chess-ai/board"
)

// OpeningBook maps a position key (FEN placement and side to move) to the
// moves played from it, each with an accumulated score.
type OpeningBook struct {
	mu      sync.RWMutex
	entries map[string]map[string]float64

	path   string
	plies  int
	logger *log.Logger
}

func NewOpeningBook() *OpeningBook {
	return &OpeningBook{
		entries: make(map[string]map[string]float64),
		plies:   DefaultOptions().BookPlies,
		logger:  log.New(io.Discard, "", 0),
	}
}

// LoadOpeningBook reads the book at path. A missing or corrupt file yields an
// empty book bound to path, so later saves recreate it.
func LoadOpeningBook(path string, logger *log.Logger) *OpeningBook {
	ob := NewOpeningBook()
	ob.path = path
	if logger != nil {
		ob.logger = logger
	}
	if err := ob.reload(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		ob.logger.Printf("info string opening book %s unreadable, starting empty: %v", path, err)
	}
	return ob
}

func (ob *OpeningBook) reload() error {
	entries := make(map[string]map[string]float64)
	if err := loadJSON(ob.path, &entries); err != nil {
		return err
	}
	ob.mu.Lock()
	ob.entries = entries
	ob.mu.Unlock()
	return nil
}

// Path is the file the book saves to, empty for an in-memory book.
func (ob *OpeningBook) Path() string { return ob.path }

// Len is the number of positions in the book.
func (ob *OpeningBook) Len() int {
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	return len(ob.entries)
}

// Lookup returns a copy of the moves known for key.
func (ob *OpeningBook) Lookup(key string) map[string]float64 {
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	return maps.Clone(ob.entries[key])
}

// Add credits score to move notation in position key.
func (ob *OpeningBook) Add(key, notation string, score float64) {
	ob.mu.Lock()
	defer ob.mu.Unlock()
	moves, ok := ob.entries[key]
	if !ok {
		moves = make(map[string]float64)
		ob.entries[key] = moves
	}
	moves[notation] += score
}

// Record adds the opening moves of a finished game. Each move is credited
// with the result from its player's point of view.
func (ob *OpeningBook) Record(records []board.MoveRecord, result GameResult) {
	for _, r := range records {
		if r.Ply > ob.plies {
			break
		}
		if r.BookKey == "" {
			continue
		}
		ob.Add(r.BookKey, r.Notation, result.RewardFor(r.Player))
	}
}

// Save writes the book to its path. An in-memory book is not saved.
func (ob *OpeningBook) Save() error {
	if ob.path == "" {
		return nil
	}
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	if err := saveJSON(ob.path, ob.entries); err != nil {
		return fmt.Errorf("save opening book: %w", err)
	}
	return nil
}

// Update reloads the file, applies fn and saves, holding the path lock the
// whole time so concurrent games finishing do not lose each other's updates.
// If the file cannot be read, fn applies to the in-memory book.
func (ob *OpeningBook) Update(fn func(*OpeningBook)) error {
	if ob.path == "" {
		fn(ob)
		return nil
	}
	unlock := lockPath(ob.path)
	defer unlock()
	if err := ob.reload(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		ob.logger.Printf("info string opening book %s unreadable, keeping memory copy: %v", ob.path, err)
	}
	fn(ob)
	return ob.Save()
}

// bookMove picks a book move for b: the highest scored one with probability
// BookBestProb, otherwise a uniformly random known move. Moves that are not
// legal in b are ignored.
func (e *Engine) bookMove(b *board.Board, legal []board.Move) (board.Move, bool) {
	known := e.book.Lookup(b.BookKey())
	if len(known) == 0 {
		return board.NullMove, false
	}
	notations := maps.Keys(known)
	sort.Strings(notations)

	var candidates []board.Move
	var scores []float64
	for _, n := range notations {
		m, err := board.ParseMove(n)
		if err != nil {
			continue
		}
		if m, ok := matchLegal(legal, m); ok {
			candidates = append(candidates, m)
			scores = append(scores, known[n])
		}
	}
	if len(candidates) == 0 {
		return board.NullMove, false
	}

	if e.randFloat() < e.opts.BookBestProb {
		best := 0
		for i := range candidates {
			if scores[i] > scores[best] {
				best = i
			}
		}
		return candidates[best], true
	}
	return candidates[e.intn(len(candidates))], true
}

// matchLegal finds m in legal. A promotion without a piece matches the queen
// promotion.
func matchLegal(legal []board.Move, m board.Move) (board.Move, bool) {
	if m.Promotion == board.PieceTypeNone {
		for _, l := range legal {
			if l.From == m.From && l.To == m.To && l.Promotion == board.PieceTypeQueen {
				m.Promotion = board.PieceTypeQueen
				break
			}
		}
	}
	for _, l := range legal {
		if l == m {
			return l, true
		}
	}
	return board.NullMove, false
}
