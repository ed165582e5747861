package tichu

import "strings"

// Card is the identity token the server gives a card, e.g. "spades_8.png"
// or "Dragon.png". Cards are compared as strings and nothing else.
type Card string

// PassCard is a card offered for the exchange.
type PassCard struct {
	ID    string `json:"id"`
	Image string `json:"image"`
}

// The four cards without a suit.
const (
	Dragon  = "Dragon"
	Phoenix = "Phoenix"
	MahJong = "Mah Jong"
	Dog     = "Dog"
)

var specials = []string{Dragon, Phoenix, MahJong, Dog}

var suitMarks = map[string]string{
	"spades":   "♠",
	"hearts":   "♥",
	"diamonds": "♦",
	"clubs":    "♣",
	"black":    "♠",
	"red":      "♥",
	"blue":     "♦",
	"green":    "♣",
}

func (c Card) name() string {
	s := string(c)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSuffix(s, ".png")
}

// Special gives the special identity of a card, or "".
func (c Card) Special() string {
	n := c.name()
	for _, s := range specials {
		if strings.EqualFold(n, s) {
			return s
		}
	}
	return ""
}

// Label is a short form for the terminal. Tokens that don't look like
// "suit_rank" (or the exchange form "rank_suit") are shown as they are.
func (c Card) Label() string {
	if s := c.Special(); s != "" {
		return s
	}
	n := c.name()
	parts := strings.SplitN(n, "_", 2)
	if len(parts) != 2 {
		return n
	}
	if mark, ok := suitMarks[strings.ToLower(parts[0])]; ok {
		return parts[1] + mark
	}
	if mark, ok := suitMarks[strings.ToLower(parts[1])]; ok {
		return parts[0] + mark
	}
	return n
}

// Contains says if a card is in a list.
func Contains(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// Labels maps Label over a list.
func Labels(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Label())
	}
	return out
}
