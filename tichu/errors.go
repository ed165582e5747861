package tichu

import "fmt"

type GameError struct {
	Code string
	Msg  string
}

func (e *GameError) ErrorCode() string { return e.Code }
func (e *GameError) Error() string     { return e.Msg }

var (
	// ErrNotNow is for actions that make no sense in the current mode
	ErrNotNow = &GameError{"NOTNOW", "you cannot do that now"}
	// ErrNotYourTurn means moves are only possible on your own turn
	ErrNotYourTurn = &GameError{"NOTYOURTURN", "it's not your turn"}
	// ErrAlreadyJoined means join was already sent
	ErrAlreadyJoined = &GameError{"ALREADYJOINED", "already joined"}
	// ErrBadName means a blank player name
	ErrBadName = &GameError{"BADNAME", "please enter your name"}
	// ErrBadTeam means a team other than A or B
	ErrBadTeam = &GameError{"BADTEAM", "team must be A or B"}

	// ErrNothingSelected means an empty play
	ErrNothingSelected = &GameError{"NOTHINGSELECTED", "no cards selected"}
	// ErrNotInHand means a card that the server never dealt
	ErrNotInHand = &GameError{"NOTINHAND", "card is not in your hand"}
	// ErrEmptyMove means a blank free text move
	ErrEmptyMove = &GameError{"EMPTYMOVE", "no move entered"}
	// ErrAlreadyPlayed means tichu can no longer be called this round
	ErrAlreadyPlayed = &GameError{"ALREADYPLAYED", "you have already played cards this round"}

	// ErrInvalidAssignment is for exchange cards not in the pool, or unknown recipients
	ErrInvalidAssignment = &GameError{"INVALIDASSIGNMENT", "cannot assign that card"}
	// ErrIncompleteAssignment means some target has no card yet
	ErrIncompleteAssignment = &GameError{"INCOMPLETEASSIGNMENT", "every player needs a card"}
	// ErrInvalidWish means a wish outside the rank domain
	ErrInvalidWish = &GameError{"INVALIDWISH", "invalid wish"}
	// ErrInvalidRecipient means a dragon recipient the server did not offer
	ErrInvalidRecipient = &GameError{"INVALIDRECIPIENT", "invalid recipient"}

	// ErrTransportUnavailable means the command was dropped, not connected
	ErrTransportUnavailable = &GameError{"TRANSPORTUNAVAILABLE", "not connected"}
	// ErrUnknownEvent is for inbound messages nobody understands
	ErrUnknownEvent = &GameError{"UNKNOWNEVENT", "unknown event"}
)

// ValidationError is a command refused locally. It is never sent.
type ValidationError struct {
	Command string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Refuse makes a ValidationError for a command.
func Refuse(cmd Command, err error) error {
	return &ValidationError{Command: cmd.CommandName(), Err: err}
}
