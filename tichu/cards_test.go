package tichu

import "testing"

func TestCardLabel(t *testing.T) {
	cases := []struct {
		card  Card
		label string
	}{
		{"spades_8.png", "8♠"},
		{"hearts_10.png", "10♥"},
		{"8_spades", "8♠"},
		{"Dragon.png", Dragon},
		{"mah jong.png", MahJong},
		{"/static/cards/phoenix.png", Phoenix},
		{"Dog", Dog},
		{"weird", "weird"},
		{"a_b", "a_b"},
	}
	for _, c := range cases {
		if got := c.card.Label(); got != c.label {
			t.Errorf("label of %s: %s, wanted %s", c.card, got, c.label)
		}
	}
}

func TestCardSpecial(t *testing.T) {
	if Card("clubs_A.png").Special() != "" {
		t.Errorf("clubs ace is not special")
	}
	if Card("Mah Jong.png").Special() != MahJong {
		t.Errorf("mah jong is special")
	}
}

func TestContains(t *testing.T) {
	hand := []Card{"a", "b"}
	if !Contains(hand, "b") || Contains(hand, "c") {
		t.Errorf("contains is wrong")
	}
}
