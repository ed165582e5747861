package client

import (
	"github.com/undeconstructed/gotichu/tichu"
)

// PromptKind is which overlay is showing.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptGrandTichu
	PromptDragon
	PromptWish
	PromptPassing
	PromptRoundOver
)

// Prompt describes an overlay. Recipients and Ranks are only set for the
// prompts that offer them.
type Prompt struct {
	Kind       PromptKind
	Recipients []string
	Ranks      []string
}

// PassingView is the exchange as it stands.
type PassingView struct {
	Pool        []tichu.PassCard  `json:"pool"`
	Targets     []string          `json:"targets"`
	Assignments map[string]string `json:"assignments"`
	Complete    bool              `json:"complete"`
}

// Sink is whatever shows the game to the player. The machine calls it
// after every change; it never calls back.
type Sink interface {
	GameView()
	Hand(hand []tichu.Card, selected []tichu.Card)
	LastPlayed(cards []tichu.Card)
	Turn(banner string, movesEnabled bool)
	Prompt(p Prompt)
	Passing(v PassingView)
	MainPanel(enabled bool)
	Scores(total tichu.TeamPoints, round tichu.TeamPoints)
	Log(text string)
	Error(text string)
}
