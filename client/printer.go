package client

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/undeconstructed/gotichu/tichu"
)

const (
	RED     = "\033[31m"
	GREEN   = "\033[32m"
	YELLOW  = "\033[33m"
	BLUE    = "\033[34m"
	MAGENTA = "\033[35m"
	CYAN    = "\033[36m"
	WHITE   = "\033[37m"
	RESET   = "\033[0m"
)

// Printer is a Sink that writes to a terminal.
type Printer struct {
	mu     sync.Mutex
	out    io.Writer
	colour bool
}

func NewPrinter(out io.Writer, colour bool) *Printer {
	return &Printer{out: out, colour: colour}
}

func (p *Printer) col(c, s string) string {
	if !p.colour {
		return s
	}
	return c + s + RESET
}

func (p *Printer) printf(f string, args ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, f, args...)
}

func (p *Printer) GameView() {
	p.printf("%s\n", p.col(GREEN, "joined, waiting for the game"))
}

func (p *Printer) Hand(hand []tichu.Card, selected []tichu.Card) {
	p.printf("Hand:     %s\n", p.cardList(hand, selected))
}

func (p *Printer) cardList(cards []tichu.Card, selected []tichu.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	var parts []string
	for i, c := range cards {
		s := fmt.Sprintf("%d:%s", i+1, c.Label())
		if tichu.Contains(selected, c) {
			s = p.col(BLUE, "["+s+"]")
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func (p *Printer) LastPlayed(cards []tichu.Card) {
	p.printf("Played:   %s\n", strings.Join(tichu.Labels(cards), " "))
}

func (p *Printer) Turn(banner string, movesEnabled bool) {
	if banner == "" {
		return
	}
	if movesEnabled {
		p.printf("%s\n", p.col(YELLOW, banner))
	} else {
		p.printf("%s\n", banner)
	}
}

func (p *Printer) Prompt(pr Prompt) {
	switch pr.Kind {
	case PromptGrandTichu:
		p.printf("%s\n", p.col(MAGENTA, "Call Grand Tichu? (gt yes | gt no)"))
	case PromptDragon:
		p.printf("%s %s\n", p.col(MAGENTA, "Give the dragon trick to: (dragon <name>)"), strings.Join(pr.Recipients, ", "))
	case PromptWish:
		p.printf("%s %s\n", p.col(MAGENTA, "Make your wish: (wish <rank>)"), strings.Join(pr.Ranks, " "))
	case PromptPassing:
		p.printf("%s\n", p.col(MAGENTA, "Pass one card to each player: (give <player> <card>, then passcards)"))
	case PromptRoundOver:
		p.printf("%s\n", p.col(MAGENTA, "Round over. (ready)"))
	}
}

func (p *Printer) Passing(v PassingView) {
	var pool []string
	for i, c := range v.Pool {
		pool = append(pool, fmt.Sprintf("%d:%s", i+1, tichu.Card(c.ID).Label()))
	}
	var lines []string
	targets := append([]string(nil), v.Targets...)
	sort.Strings(targets)
	for _, t := range targets {
		if id, ok := v.Assignments[t]; ok {
			lines = append(lines, fmt.Sprintf("  %s → %s", tichu.Card(id).Label(), t))
		} else {
			lines = append(lines, fmt.Sprintf("  – → %s", t))
		}
	}
	ready := ""
	if v.Complete {
		ready = p.col(GREEN, " (ready to pass)")
	}
	p.printf("Exchange: %s%s\n%s\n", strings.Join(pool, " "), ready, strings.Join(lines, "\n"))
}

func (p *Printer) MainPanel(enabled bool) {}

func (p *Printer) Scores(total tichu.TeamPoints, round tichu.TeamPoints) {
	p.printf("Team A: %d points\nTeam B: %d points\n+%d points for team A this round\n+%d points for team B this round\n",
		total.A, total.B, round.A, round.B)
}

func (p *Printer) Log(text string) {
	p.printf("> %s\n", text)
}

func (p *Printer) Error(text string) {
	p.printf("%s %s\n", p.col(RED, "Error:"), text)
}
