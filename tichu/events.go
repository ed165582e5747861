package tichu

import (
	"fmt"

	"github.com/undeconstructed/gotichu/comms"
)

// Event is something the server pushes.
type Event interface {
	EventName() string
}

const (
	EvGameMessage           = "game_message"
	EvTurnMessage           = "turn_message"
	EvErrorMessage          = "error_message"
	EvUpdateHand            = "update_hand"
	EvLastPlayed            = "last_played"
	EvYourTurn              = "your_turn"
	EvTurnUpdate            = "turn_update"
	EvChooseDragonRecipient = "choose_dragon_recipient"
	EvAskWish               = "ask_wish"
	EvRoundOver             = "round_over"
	EvChooseGrandTichu      = "choose_grand_tichu"
	EvCallGrandTichu        = "call_grand_tichu"
	EvStartPassing          = "start_passing"
)

// EventNames lists every inbound event the client handles.
var EventNames = []string{
	EvGameMessage, EvTurnMessage, EvErrorMessage, EvUpdateHand, EvLastPlayed,
	EvYourTurn, EvTurnUpdate, EvChooseDragonRecipient, EvAskWish, EvRoundOver,
	EvChooseGrandTichu, EvCallGrandTichu, EvStartPassing,
}

// eventAliases are spellings some servers use for the same event.
var eventAliases = map[string]string{
	"game-message": EvGameMessage,
}

// CanonicalEventName maps aliases to the real event name.
func CanonicalEventName(name string) string {
	if n, ok := eventAliases[name]; ok {
		return n
	}
	return name
}

type GameMessage struct {
	Message string `json:"message"`
}

type TurnMessage struct {
	Message string `json:"message"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

type UpdateHand struct {
	Hand []Card `json:"hand"`
}

type LastPlayed struct {
	Cards []Card `json:"cards"`
}

type YourTurn struct {
	YourTurn bool `json:"your_turn"`
}

type TurnUpdate struct {
	Current string `json:"current"`
	You     string `json:"you"`
}

type ChooseDragonRecipient struct {
	Recipients []string `json:"recipients"`
}

type AskWish struct{}

// TeamPoints is a score per team.
type TeamPoints struct {
	A int `json:"A"`
	B int `json:"B"`
}

type RoundOver struct {
	Scores      TeamPoints `json:"scores"`
	RoundPoints TeamPoints `json:"round_points"`
}

type ChooseGrandTichu struct{}

type CallGrandTichu struct{}

type StartPassing struct {
	Cards   []PassCard `json:"cards"`
	Targets []string   `json:"targets"`
}

func (GameMessage) EventName() string           { return EvGameMessage }
func (TurnMessage) EventName() string           { return EvTurnMessage }
func (ErrorMessage) EventName() string          { return EvErrorMessage }
func (UpdateHand) EventName() string            { return EvUpdateHand }
func (LastPlayed) EventName() string            { return EvLastPlayed }
func (YourTurn) EventName() string              { return EvYourTurn }
func (TurnUpdate) EventName() string            { return EvTurnUpdate }
func (ChooseDragonRecipient) EventName() string { return EvChooseDragonRecipient }
func (AskWish) EventName() string               { return EvAskWish }
func (RoundOver) EventName() string             { return EvRoundOver }
func (ChooseGrandTichu) EventName() string      { return EvChooseGrandTichu }
func (CallGrandTichu) EventName() string        { return EvCallGrandTichu }
func (StartPassing) EventName() string          { return EvStartPassing }

// DecodeEvent turns a message from the server into a typed event.
func DecodeEvent(msg comms.Message) (Event, error) {
	var ev Event
	var err error

	switch CanonicalEventName(msg.Type()) {
	case EvGameMessage:
		e := GameMessage{}
		err = comms.Decode(msg, &e)
		ev = e
	case EvTurnMessage:
		e := TurnMessage{}
		err = comms.Decode(msg, &e)
		ev = e
	case EvErrorMessage:
		e := ErrorMessage{}
		err = comms.Decode(msg, &e)
		ev = e
	case EvUpdateHand:
		e := UpdateHand{}
		err = comms.Decode(msg, &e)
		ev = e
	case EvLastPlayed:
		e := LastPlayed{}
		err = comms.Decode(msg, &e)
		ev = e
	case EvYourTurn:
		e := YourTurn{}
		err = comms.Decode(msg, &e)
		ev = e
	case EvTurnUpdate:
		e := TurnUpdate{}
		err = comms.Decode(msg, &e)
		ev = e
	case EvChooseDragonRecipient:
		e := ChooseDragonRecipient{}
		err = comms.Decode(msg, &e)
		ev = e
	case EvAskWish:
		ev = AskWish{}
	case EvRoundOver:
		e := RoundOver{}
		err = comms.Decode(msg, &e)
		ev = e
	case EvChooseGrandTichu:
		ev = ChooseGrandTichu{}
	case EvCallGrandTichu:
		ev = CallGrandTichu{}
	case EvStartPassing:
		e := StartPassing{}
		err = comms.Decode(msg, &e)
		ev = e
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, msg.Head)
	}

	if err != nil {
		return nil, err
	}
	return ev, nil
}
