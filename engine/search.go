package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"chess-ai/board"
)

// Source tells where a chosen move came from.
type Source int

const (
	SourceSearch Source = iota
	SourceBook
	SourceEasy
	SourceQuick
	SourceRandom
)

var sourceNames = [...]string{"search", "book", "easy", "quick", "random"}

func (s Source) String() string {
	if s < 0 || int(s) >= len(sourceNames) {
		return fmt.Sprintf("source(%d)", int(s))
	}
	return sourceNames[s]
}

// Stats is a snapshot of the search counters.
type Stats struct {
	Nodes            uint64
	QNodes           uint64
	TTHits           uint64
	TTCutoffs        uint64
	BetaCutoffs      uint64
	QStandPatCutoffs uint64
	QBetaCutoffs     uint64
}

// Result describes the move chosen by a search. Score is from the point of
// view of the side to move and is zero for book and random moves.
type Result struct {
	Move    board.Move
	Score   int
	Depth   int
	Source  Source
	Stats   Stats
	Elapsed time.Duration
}

// Engine picks moves for a position. Searches on one Engine are serialized;
// the parallelism lives inside a single search.
type Engine struct {
	opts     Options
	tt       *TransTable
	book     *OpeningBook
	learning *Learning
	stats    CutStatistics

	mu    sync.Mutex
	rngMu sync.Mutex
	rng   *rand.Rand
}

// New builds an engine, loading the opening book and learning weights from
// the configured paths. Unreadable files leave the stores empty.
func New(opts Options) *Engine {
	opts = opts.withDefaults()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
	if !opts.DisableTT {
		e.tt = NewTransTable(opts.TTSizeMB)
	}
	if opts.BookPath != "" {
		e.book = LoadOpeningBook(opts.BookPath, opts.Logger)
	} else {
		e.book = NewOpeningBook()
	}
	e.book.plies = opts.BookPlies
	if opts.WeightsPath != "" {
		e.learning = LoadLearning(opts.WeightsPath, opts.Logger)
	} else {
		e.learning = NewLearning()
	}
	e.learning.rate = opts.LearningRate
	return e
}

func (e *Engine) Options() Options        { return e.opts }
func (e *Engine) Book() *OpeningBook      { return e.book }
func (e *Engine) Learning() *Learning     { return e.learning }
func (e *Engine) TransTable() *TransTable { return e.tt }

// GetBestMove returns the move to play in b. ok is false only when the side
// to move has no legal move.
func (e *Engine) GetBestMove(ctx context.Context, b *board.Board, budget time.Duration) (board.Move, bool, error) {
	res, err := e.Search(ctx, b, budget)
	if errors.Is(err, ErrNoLegalMoves) {
		return board.NullMove, false, nil
	}
	if err != nil {
		return board.NullMove, false, err
	}
	return res.Move, true, nil
}

// Search picks a move for the side to move in b within budget. A zero budget
// leaves only the depth limit and ctx to end the search. Running out of time
// is not an error: the deepest completed result, or a fallback, is returned.
func (e *Engine) Search(ctx context.Context, b *board.Board, budget time.Duration) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := b.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidPosition, err)
	}
	if _, pending := b.PendingPromotion(); pending {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidPosition, board.ErrPromotionPending)
	}
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return Result{Move: board.NullMove}, ErrNoLegalMoves
	}

	// Wiping the table is not charged to the move's budget.
	e.tt.Clear()

	var th TimeHandler
	th.StartTime(budget)
	e.stats.reset()

	res := e.choose(ctx, b, moves, &th)
	res.Elapsed = th.Elapsed()
	res.Stats = e.stats.snapshot()

	if e.opts.PrintStats {
		e.stats.dump(e.opts.Logger)
	}
	e.opts.Logger.Printf("info string bestmove %s source %s", res.Move, res.Source)
	return res, nil
}

func (e *Engine) choose(ctx context.Context, b *board.Board, moves []board.Move, th *TimeHandler) Result {
	if e.opts.UseBook && bookPly(b) < e.opts.BookPlies {
		if m, ok := e.bookMove(b, moves); ok {
			return Result{Move: m, Source: SourceBook}
		}
	}
	if e.opts.Difficulty == Easy && e.opts.MaxDepth == 0 {
		return e.easyMove(b, moves)
	}
	if res, ok := e.iterativeDeepening(ctx, b, moves, th); ok {
		return res
	}
	if ctx.Err() == nil {
		m, score := quickScan(b, moves)
		return Result{Move: m, Score: score, Depth: 1, Source: SourceQuick}
	}
	return Result{Move: moves[e.intn(len(moves))], Source: SourceRandom}
}

// bookPly is the number of half-moves played to reach b, derived from the
// move counter so positions set up from FEN count too.
func bookPly(b *board.Board) int {
	return (b.MoveCount()-1)*2 + int(b.Turn())
}

func (e *Engine) intn(n int) int {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Intn(n)
}

func (e *Engine) randFloat() float64 {
	e.rngMu.Lock()
	defer e.rngMu.Unlock()
	return e.rng.Float64()
}

func (e *Engine) iterativeDeepening(ctx context.Context, b *board.Board, moves []board.Move, th *TimeHandler) (Result, bool) {
	var stop atomic.Bool
	learned := e.learning.Snapshot()
	workers := make([]*searcher, e.opts.Workers)
	for i := range workers {
		workers[i] = &searcher{
			tt:            e.tt,
			th:            th,
			ctx:           ctx,
			stop:          &stop,
			learned:       learned,
			learningScale: e.opts.LearningScale,
			qdepth:        e.opts.QuiescenceDepth,
		}
	}
	defer func() {
		for _, s := range workers {
			s.flush(&e.stats)
		}
	}()

	ordered := workers[0].scoreMoves(b, moves, board.NullMove, 0)
	order := make([]board.Move, len(ordered))
	for i := range ordered {
		orderNextMove(i, ordered)
		order[i] = ordered[i].move
	}

	var best []rootScore
	completed := 0
	limit := e.opts.depthLimit()
	for depth := 1; depth <= limit; depth++ {
		if depth > 1 && th.SoftExpired() {
			break
		}
		scores, complete := e.searchRoot(b, order, depth, workers)
		if len(scores) > 0 {
			sortRootScores(scores)
			best = scores
			completed = depth
		}
		if !complete {
			break
		}
		for i := range scores {
			order[i] = scores[i].move
		}

		e.opts.Logger.Printf("info depth %d score %s nodes %d time %d pv %s",
			depth, getMateOrCPScore(scores[0].score), sumNodes(workers),
			th.Elapsed().Milliseconds(), scores[0].move)

		if scores[0].score > MateThreshold {
			break
		}
	}
	if len(best) == 0 {
		return Result{}, false
	}

	choice := best[0]
	if e.opts.SafetyFilter {
		choice = pickSafe(b, best, e.opts.SafetyMargin)
	}
	return Result{Move: choice.move, Score: choice.score, Depth: completed, Source: SourceSearch}, true
}

type counters struct {
	nodes, qnodes, ttHits, ttCutoffs, betaCutoffs, qStandPat, qBeta uint64
}

// searcher is the per-worker search state. Only the transposition table and
// the stop flag are shared with other workers.
type searcher struct {
	tt   *TransTable
	th   *TimeHandler
	ctx  context.Context
	stop *atomic.Bool

	killers KillerStruct
	history HistoryStruct

	learned       map[MoveKey]float64
	learningScale int
	qdepth        int

	c counters
}

func (s *searcher) stopped() bool { return s.stop.Load() }

// tick counts a node and polls the clock every 64 nodes.
func (s *searcher) tick() bool {
	s.c.nodes++
	if s.c.nodes&63 == 0 && (s.th.TimeStatus() || s.ctx.Err() != nil) {
		s.stop.Store(true)
	}
	return s.stop.Load()
}

func (s *searcher) flush(cs *CutStatistics) {
	cs.Nodes.Add(s.c.nodes)
	cs.QNodes.Add(s.c.qnodes)
	cs.TTHits.Add(s.c.ttHits)
	cs.TTCutoffs.Add(s.c.ttCutoffs)
	cs.BetaCutoffs.Add(s.c.betaCutoffs)
	cs.QStandPatCutoffs.Add(s.c.qStandPat)
	cs.QBetaCutoffs.Add(s.c.qBeta)
	s.c = counters{}
}

func sumNodes(workers []*searcher) uint64 {
	var n uint64
	for _, s := range workers {
		n += s.c.nodes
	}
	return n
}

// alphabeta is a fail-soft negamax search of b to depth plies. Scores are from
// the side to move; mates are -(Checkmate - ply) so nearer mates score higher.
func (s *searcher) alphabeta(b *board.Board, depth int, alpha, beta int, ply int) int {
	if s.tick() {
		return 0
	}
	if depth <= 0 {
		return s.quiescence(b, alpha, beta, ply, s.qdepth)
	}

	ttMove := board.NullMove
	if e, ok := s.tt.Probe(b.Hash()); ok {
		s.c.ttHits++
		ttMove = e.Move
		if usable, score := useEntry(e, depth, ply, &alpha, &beta); usable {
			s.c.ttCutoffs++
			return score
		}
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		if b.InCheck() {
			return -(Checkmate - ply)
		}
		return DrawScore
	}

	origAlpha := alpha
	best := -Infinity
	bestMove := board.NullMove
	list := s.scoreMoves(b, moves, ttMove, ply)
	for i := range list {
		orderNextMove(i, list)
		m := list[i].move

		score := -s.alphabeta(b.Simulate(m), depth-1, -beta, -alpha, ply+1)
		if s.stopped() {
			return 0
		}
		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.c.betaCutoffs++
			if !b.IsCapture(m) && m.Promotion == board.PieceTypeNone {
				s.killers.InsertKiller(m, ply)
				s.history.Add(b.Turn(), m, depth)
			}
			break
		}
	}

	flag := ExactFlag
	if best <= origAlpha {
		flag = AlphaFlag
	} else if best >= beta {
		flag = BetaFlag
	}
	s.tt.Store(b.Hash(), depth, ply, bestMove, best, flag)
	return best
}

// quiescence resolves captures and promotions for up to qdepth plies so the
// static evaluation is not taken in the middle of an exchange.
func (s *searcher) quiescence(b *board.Board, alpha, beta int, ply int, qdepth int) int {
	s.c.qnodes++
	if s.tick() {
		return 0
	}

	switch b.Status() {
	case board.Checkmate:
		return -(Checkmate - ply)
	case board.Stalemate:
		return DrawScore
	}

	standPat := sideSign(b.Turn()) * evaluatePosition(b)
	if qdepth <= 0 {
		return standPat
	}
	if standPat >= beta {
		s.c.qStandPat++
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	best := standPat
	list := scoreCaptures(b, b.NoisyMoves())
	for i := range list {
		orderNextMove(i, list)
		score := -s.quiescence(b.Simulate(list[i].move), -beta, -alpha, ply+1, qdepth-1)
		if s.stopped() {
			return 0
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.c.qBeta++
			break
		}
	}
	return best
}
