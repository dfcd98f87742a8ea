// Package game orchestrates turns on a board: it parses coordinates, applies
// moves, completes promotions and tracks how the game ended.
package game

import (
	"fmt"

	"chess-ai/board"
)

// Reason says why a game ended.
type Reason int

const (
	NotOver Reason = iota
	ByCheckmate
	ByStalemate
	ByFiftyMoves
	ByRepetition
	ByInsufficientMaterial
)

var reasonNames = [...]string{"", "checkmate", "stalemate", "fifty-move rule", "threefold repetition", "insufficient material"}

func (r Reason) String() string { return reasonNames[r] }

// Game is one game in progress. It is not safe for concurrent use.
type Game struct {
	board  *board.Board
	states StateStack
	reason Reason
	winner *board.Color
}

// New starts a game from the initial position.
func New() *Game {
	return FromBoard(board.NewBoard())
}

// FromBoard continues a game from b, which the Game takes ownership of.
func FromBoard(b *board.Board) *Game {
	g := &Game{board: b}
	g.states.Reset(b)
	g.updateOutcome()
	return g
}

func (g *Game) Board() *board.Board { return g.board }
func (g *Game) Turn() board.Color   { return g.board.Turn() }
func (g *Game) Over() bool          { return g.reason != NotOver }
func (g *Game) Reason() Reason      { return g.reason }

// Winner is nil while the game runs and for draws.
func (g *Game) Winner() *board.Color { return g.winner }

// PlayTurn plays the move from -> to given in algebraic notation ("e2", "e4")
// and returns a message describing the new situation. When the move reaches
// the last rank the game waits for Promote.
func (g *Game) PlayTurn(from, to string) (string, error) {
	if g.Over() {
		return "", board.ErrGameOver
	}
	f, err := board.ParseSquare(from)
	if err != nil {
		return "", err
	}
	t, err := board.ParseSquare(to)
	if err != nil {
		return "", err
	}
	mover := g.board.Turn()
	if err := g.board.ExecuteMove(f, t); err != nil {
		return "", err
	}
	if sq, pending := g.board.PendingPromotion(); pending {
		return fmt.Sprintf("%s pawn reached %s, choose a promotion piece", mover, sq), nil
	}
	return g.afterMove(mover), nil
}

// Promote completes a pending promotion.
func (g *Game) Promote(pt board.PieceType) (string, error) {
	sq, pending := g.board.PendingPromotion()
	if !pending {
		return "", board.ErrNoPromotion
	}
	mover := g.board.PieceAt(sq).Color
	if err := g.board.PromotePawn(sq, pt); err != nil {
		return "", err
	}
	return g.afterMove(mover), nil
}

// PlayMove plays a complete move, promotion included.
func (g *Game) PlayMove(m board.Move) (string, error) {
	if g.Over() {
		return "", board.ErrGameOver
	}
	mover := g.board.Turn()
	if err := g.board.Play(m); err != nil {
		return "", err
	}
	return g.afterMove(mover), nil
}

func (g *Game) afterMove(mover board.Color) string {
	g.states.Push(g.board)
	g.updateOutcome()

	switch g.reason {
	case ByCheckmate:
		return fmt.Sprintf("Checkmate! %s wins.", mover)
	case NotOver:
		if g.board.InCheck() {
			return fmt.Sprintf("%s king is in check!", g.board.Turn())
		}
		return ""
	}
	return fmt.Sprintf("Draw by %s.", g.reason)
}

func (g *Game) updateOutcome() {
	g.reason, g.winner = NotOver, nil
	switch g.board.Status() {
	case board.Checkmate:
		w := g.board.Turn().Other()
		g.reason, g.winner = ByCheckmate, &w
	case board.Stalemate:
		g.reason = ByStalemate
	default:
		switch {
		case g.states.FiftyMoves():
			g.reason = ByFiftyMoves
		case g.states.Repetitions() >= 2:
			g.reason = ByRepetition
		case insufficientMaterial(g.board):
			g.reason = ByInsufficientMaterial
		}
	}
}

// insufficientMaterial covers bare kings and a single minor piece.
func insufficientMaterial(b *board.Board) bool {
	minors := 0
	for _, p := range b.Cells() {
		switch p.Type {
		case board.PieceTypePawn, board.PieceTypeRook, board.PieceTypeQueen:
			return false
		case board.PieceTypeKnight, board.PieceTypeBishop:
			minors++
		}
	}
	return minors <= 1
}

// State is a snapshot for display.
type State struct {
	Board    [8][8]string
	Turn     board.Color
	GameOver bool
	Winner   *board.Color
	Reason   string
}

func (g *Game) State() State {
	return State{
		Board:    g.board.ToList(),
		Turn:     g.board.Turn(),
		GameOver: g.Over(),
		Winner:   g.winner,
		Reason:   g.reason.String(),
	}
}
