package tichu

// Command is something the client sends.
type Command interface {
	CommandName() string
}

const (
	CmdJoin                    = "join"
	CmdPlayCard                = "play_card"
	CmdPass                    = "pass"
	CmdDragonRecipientSelected = "dragon_recipient_selected"
	CmdWishCard                = "wish_card"
	CmdGrandTichuChoice        = "grand_tichu_choice"
	CmdTichuCall               = "tichu_call"
	CmdReadyForNextRound       = "ready_for_next_round"
	CmdPassCards               = "pass_cards"
)

type Join struct {
	Name string `json:"name"`
	Team string `json:"team,omitempty"`
}

// PlayCards plays the selected cards.
type PlayCards struct {
	Cards []Card `json:"cards"`
}

// PlayMove plays a move typed as text.
type PlayMove struct {
	Move string `json:"move"`
}

type Pass struct{}

type DragonRecipientSelected struct {
	Recipient string `json:"recipient"`
}

type WishCard struct {
	Wish string `json:"wish"`
}

type GrandTichuChoice struct {
	Choice bool `json:"choice"`
}

type TichuCall struct {
	Choice bool `json:"choice"`
}

type ReadyForNextRound struct{}

// PassCards maps recipient to card id.
type PassCards struct {
	Assignments map[string]string `json:"assignments"`
}

func (Join) CommandName() string                    { return CmdJoin }
func (PlayCards) CommandName() string               { return CmdPlayCard }
func (PlayMove) CommandName() string                { return CmdPlayCard }
func (Pass) CommandName() string                    { return CmdPass }
func (DragonRecipientSelected) CommandName() string { return CmdDragonRecipientSelected }
func (WishCard) CommandName() string                { return CmdWishCard }
func (GrandTichuChoice) CommandName() string        { return CmdGrandTichuChoice }
func (TichuCall) CommandName() string               { return CmdTichuCall }
func (ReadyForNextRound) CommandName() string       { return CmdReadyForNextRound }
func (PassCards) CommandName() string               { return CmdPassCards }
