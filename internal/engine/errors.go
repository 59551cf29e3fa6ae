package engine

import "errors"

var (
	ErrOutOfTurn        = errors.New("out of turn")
	ErrIllegalAction    = errors.New("illegal action")
	ErrIllegalCard      = errors.New("illegal card")
	ErrIllegalBid       = errors.New("illegal bid")
	ErrIllegalChallenge = errors.New("illegal challenge")
	ErrGameFull         = errors.New("game is full")
	ErrGameNotFound     = errors.New("game not found")
)

// ErrorKind maps a rejection to its wire taxonomy name.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrOutOfTurn):
		return "out_of_turn"
	case errors.Is(err, ErrIllegalCard):
		return "illegal_card"
	case errors.Is(err, ErrIllegalBid):
		return "illegal_bid"
	case errors.Is(err, ErrIllegalChallenge):
		return "illegal_challenge"
	case errors.Is(err, ErrGameFull):
		return "game_full"
	case errors.Is(err, ErrGameNotFound):
		return "game_not_found"
	default:
		return "illegal_action"
	}
}
