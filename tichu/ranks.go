package tichu

import "strings"

// NoWish is the wish for nothing in particular.
const NoWish = "None"

// WishRanks is everything that can be wished for after the Mah Jong.
var WishRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", NoWish}

// ParseWish canonicalises user input into a wish, ignoring case and spaces.
func ParseWish(in string) (string, error) {
	in = strings.TrimSpace(in)
	for _, r := range WishRanks {
		if strings.EqualFold(in, r) {
			return r, nil
		}
	}
	return "", ErrInvalidWish
}

// ValidWish says if a value is exactly one of WishRanks.
func ValidWish(w string) bool {
	for _, r := range WishRanks {
		if w == r {
			return true
		}
	}
	return false
}

const (
	TeamA = "A"
	TeamB = "B"
)

// ParseTeam accepts "", "a", "B", etc.
func ParseTeam(in string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(in)) {
	case "":
		return "", nil
	case TeamA:
		return TeamA, nil
	case TeamB:
		return TeamB, nil
	default:
		return "", ErrBadTeam
	}
}
