package engine

import "errors"

var (
	ErrInvalidPosition   = errors.New("invalid position")
	ErrNoLegalMoves      = errors.New("no legal moves")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
