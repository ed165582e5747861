package client

// Mode is what the client is waiting for.
type Mode int

const (
	Idle Mode = iota
	MyTurn
	OpponentTurn
	AwaitingDragonRecipient
	AwaitingWish
	AwaitingGrandTichuChoice
	PassingPhase
	RoundOver
)

var modeNames = [...]string{
	Idle:                     "idle",
	MyTurn:                   "my-turn",
	OpponentTurn:             "opponent-turn",
	AwaitingDragonRecipient:  "awaiting-dragon-recipient",
	AwaitingWish:             "awaiting-wish",
	AwaitingGrandTichuChoice: "awaiting-grand-tichu",
	PassingPhase:             "passing",
	RoundOver:                "round-over",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return "unknown"
	}
	return modeNames[m]
}

// Prompt says if the mode is waiting for one decision from the player.
func (m Mode) Prompt() bool {
	switch m {
	case AwaitingDragonRecipient, AwaitingWish, AwaitingGrandTichuChoice, PassingPhase:
		return true
	}
	return false
}

// MarshalText makes modes readable in JSON.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
