package board

import "errors"

var (
	ErrNoPiece            = errors.New("no piece at source")
	ErrNotYourPiece       = errors.New("not your piece")
	ErrIllegalDestination = errors.New("illegal destination")
	ErrPromotionPending   = errors.New("promotion pending")
	ErrNoPromotion        = errors.New("no promotion pending on that square")
	ErrBadPromotionPiece  = errors.New("invalid promotion piece")
	ErrGameOver           = errors.New("game is over")
	ErrMissingKing        = errors.New("board has no king")
	ErrBadNotation        = errors.New("invalid square notation")
	ErrBadSquare          = errors.New("square off board")
	ErrBadFEN             = errors.New("invalid FEN")
)
