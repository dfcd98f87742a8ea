package selfplay

import (
	"fmt"
	"strconv"

	"github.com/notnil/chess"

	"chess-ai/engine"
	"chess-ai/game"
)

// ExportPGN renders a game from the initial position as PGN.
func ExportPGN(s Summary, white, black string) (string, error) {
	g := chess.NewGame()
	g.AddTagPair("Event", "Self-play")
	g.AddTagPair("Site", s.ID)
	g.AddTagPair("White", white)
	g.AddTagPair("Black", black)
	g.AddTagPair("PlyCount", strconv.Itoa(len(s.Records)))

	for _, r := range s.Records {
		if err := playUCI(g, r.Notation); err != nil {
			return "", fmt.Errorf("%s ply %d: %w", s.ID, r.Ply, err)
		}
	}

	if g.Outcome() == chess.NoOutcome {
		switch {
		case s.Result == engine.WhiteWins:
			g.Resign(chess.Black)
		case s.Result == engine.BlackWins:
			g.Resign(chess.White)
		case s.Reason == game.ByRepetition:
			drawOr(g, chess.ThreefoldRepetition)
		case s.Reason == game.ByFiftyMoves:
			drawOr(g, chess.FiftyMoveRule)
		default:
			drawOr(g, chess.DrawOffer)
		}
	}
	return g.String(), nil
}

func playUCI(g *chess.Game, uci string) error {
	for _, m := range g.ValidMoves() {
		if m.String() == uci {
			return g.Move(m)
		}
	}
	return fmt.Errorf("move %s not valid in %s", uci, g.Position())
}

// drawOr claims a draw by method, falling back to an agreed draw when the
// PGN library does not see the claim as valid.
func drawOr(g *chess.Game, method chess.Method) {
	if err := g.Draw(method); err != nil {
		g.Draw(chess.DrawOffer)
	}
}
