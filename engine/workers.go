package engine

import (
	"sync"
	"sync/atomic"

	"chess-ai/board"
)

// rootScore is the result of one root move at one depth. exact is false when
// the move failed low against the shared bound, so score is only an upper bound.
type rootScore struct {
	move  board.Move
	score int
	exact bool
	done  bool
}

// searchRoot searches every root move to depth. The first move is searched
// alone with a full window; the rest are handed to the worker pool, each
// searched with alpha just below the best score so far. With the safety
// filter on, alpha is lowered by the safety margin so every move that could
// still be picked by the filter gets an exact score.
//
// When the search is stopped, the moves that finished are returned with
// complete == false. Nothing is returned if even the first move did not finish.
func (e *Engine) searchRoot(b *board.Board, moves []board.Move, depth int, workers []*searcher) (results []rootScore, complete bool) {
	results = make([]rootScore, len(moves))
	for i, m := range moves {
		results[i].move = m
	}

	first := workers[0]
	v := -first.alphabeta(b.Simulate(moves[0]), depth-1, -Infinity, Infinity, 1)
	if first.stopped() {
		return nil, false
	}
	results[0] = rootScore{move: moves[0], score: v, exact: true, done: true}

	margin := 0
	if e.opts.SafetyFilter {
		margin = e.opts.SafetyMargin
	}
	var best atomic.Int64
	best.Store(int64(v))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for _, s := range workers {
		wg.Add(1)
		go func(s *searcher) {
			defer wg.Done()
			for i := range jobs {
				if s.stopped() {
					continue
				}
				alpha := int(best.Load()) - margin
				score := -s.alphabeta(b.Simulate(moves[i]), depth-1, -Infinity, -alpha, 1)
				if s.stopped() {
					continue
				}
				results[i] = rootScore{move: moves[i], score: score, exact: score > alpha, done: true}
				raiseBest(&best, score)
			}
		}(s)
	}
	for i := 1; i < len(moves); i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if !first.stopped() {
		return results, true
	}
	finished := results[:0]
	for _, r := range results {
		if r.done {
			finished = append(finished, r)
		}
	}
	return finished, false
}

func raiseBest(best *atomic.Int64, score int) {
	for {
		cur := best.Load()
		if int64(score) <= cur || best.CompareAndSwap(cur, int64(score)) {
			return
		}
	}
}
