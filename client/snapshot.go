package client

import (
	"github.com/undeconstructed/gotichu/tichu"
)

// Snapshot is a copy of the machine's state, safe to hand to other
// goroutines.
type Snapshot struct {
	Mode             Mode             `json:"mode"`
	Resume           Mode             `json:"resume"`
	Pending          []Mode           `json:"pending,omitempty"`
	Name             string           `json:"name"`
	Team             string           `json:"team,omitempty"`
	Joined           bool             `json:"joined"`
	Banner           string           `json:"banner"`
	MovesEnabled     bool             `json:"moves_enabled"`
	Hand             []tichu.Card     `json:"hand"`
	Selected         []tichu.Card     `json:"selected"`
	LastPlayed       []tichu.Card     `json:"last_played"`
	DragonRecipients []string         `json:"dragon_recipients,omitempty"`
	Passing          *PassingView     `json:"passing,omitempty"`
	Scores           tichu.TeamPoints `json:"scores"`
	RoundPoints      tichu.TeamPoints `json:"round_points"`
	CanCallTichu     bool             `json:"can_call_tichu"`
}
