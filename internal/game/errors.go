// internal/game/errors.go
package game

import "errors"

// All action failures are recoverable, caller-attributable validation errors.
// An action that returns one of these has made no state change at all; the
// client is expected to surface the message and allow a retry.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrGameInProgress      = errors.New("game already in progress")
	ErrGameNotStarted      = errors.New("game not in progress")
	ErrAlreadyStarted      = errors.New("game already started")
	ErrInsufficientPlayers = errors.New("need at least 4 players")
	ErrUnknownPlayer       = errors.New("player not in room")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrEmptyHand           = errors.New("you have no cards")
	ErrHandNotEmpty        = errors.New("you still have cards")
	ErrTargetEmptyHand     = errors.New("target has no cards")
	ErrNotOpponent         = errors.New("can only ask opponents")
	ErrNotTeammate         = errors.New("can only pass to teammate")
	ErrUnknownCard         = errors.New("no such card")
	ErrMissingHalfSuit     = errors.New("you don't have any cards in this half-suit")
	ErrAlreadyHoldCard     = errors.New("you already have this card")
	ErrNotTeamTurn         = errors.New("can only claim on your team's turn")
	ErrUnknownHalfSuit     = errors.New("no such half-suit")
	ErrSuitResolved        = errors.New("half-suit already claimed")
	ErrIncompleteClaim     = errors.New("must assign all 6 cards")
	ErrRemoveAfterStart    = errors.New("cannot remove players after the game has started")
)
