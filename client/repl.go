package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	rl "github.com/chzyer/readline"

	"github.com/undeconstructed/gotichu/tichu"
)

// Repl reads commands from the terminal.
type Repl struct {
	l   *rl.Instance
	box *Box
	act Actions
}

func NewRepl(historyFile string, box *Box, act Actions) (*Repl, error) {
	r := &Repl{box: box, act: act}

	completer := rl.NewPrefixCompleter(
		rl.PcItem("join"),
		rl.PcItem("hand"),
		rl.PcItem("select", rl.PcItemDynamic(r.handItems)),
		rl.PcItem("play"),
		rl.PcItem("move"),
		rl.PcItem("pass"),
		rl.PcItem("tichu"),
		rl.PcItem("gt", rl.PcItem("yes"), rl.PcItem("no")),
		rl.PcItem("wish", rl.PcItemDynamic(func(string) []string { return tichu.WishRanks })),
		rl.PcItem("dragon", rl.PcItemDynamic(r.dragonItems)),
		rl.PcItem("give", rl.PcItemDynamic(r.targetItems)),
		rl.PcItem("take", rl.PcItemDynamic(r.targetItems)),
		rl.PcItem("passcards"),
		rl.PcItem("ready"),
		rl.PcItem("status"),
		rl.PcItem("follow"),
		rl.PcItem("quit"),
	)

	l, err := rl.NewEx(&rl.Config{
		Prompt:            "» ",
		HistoryFile:       historyFile,
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, err
	}
	r.l = l

	return r, nil
}

// Stdout is for printing without messing up the input line.
func (r *Repl) Stdout() io.Writer {
	return r.l.Stdout()
}

func (r *Repl) Close() error {
	return r.l.Close()
}

func (r *Repl) handItems(string) []string {
	s := r.box.Get()
	if s == nil {
		return nil
	}
	var out []string
	for _, c := range s.Hand {
		out = append(out, string(c))
	}
	return out
}

func (r *Repl) dragonItems(string) []string {
	s := r.box.Get()
	if s == nil {
		return nil
	}
	return s.DragonRecipients
}

func (r *Repl) targetItems(string) []string {
	s := r.box.Get()
	if s == nil || s.Passing == nil {
		return nil
	}
	return s.Passing.Targets
}

func (r *Repl) setPrompt(s *Snapshot) {
	if s == nil {
		r.l.SetPrompt("» ")
		return
	}
	colour := WHITE
	switch {
	case s.Mode == MyTurn:
		colour = YELLOW
	case s.Mode.Prompt() || s.Mode == RoundOver:
		colour = MAGENTA
	}
	who := s.Name
	if who == "" {
		who = "-"
	}
	r.l.SetPrompt(fmt.Sprintf("%s%s|%s»%s ", colour, who, s.Mode, RESET))
}

// Run reads lines until EOF, interrupt, quit or the context ends.
func (r *Repl) Run(ctx context.Context) error {
	go func() {
		// keep the prompt up to date while waiting for input
		var seen *Snapshot
		for {
			s, ok := <-r.box.Listen(ctx, seen)
			if !ok {
				r.l.Close()
				return
			}
			seen = s
			r.setPrompt(s)
			r.l.Refresh()
		}
	}()

	for {
		r.setPrompt(r.box.Get())

		line, err := r.l.Readline()
		if err == rl.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err != nil {
			return nil
		}

		if quit := r.exec(ctx, strings.TrimSpace(line)); quit {
			return nil
		}
	}
}

func (r *Repl) exec(ctx context.Context, line string) bool {
	out := r.l.Stdout()

	parts := strings.SplitN(line, " ", 2)
	cmd := parts[0]
	rest := ""
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}

	// errors from actions are already shown by the sink
	switch cmd {
	case "join":
		var name, team string
		_, err := fmt.Sscan(rest, &name, &team)
		if err != nil && name == "" {
			fmt.Fprintf(out, "join <name> [A|B]\n")
			return false
		}
		_ = r.act.Join(name, team)
	case "hand", "h":
		printSnapshotHand(out, r.box.Get())
	case "select", "s":
		if rest == "" {
			fmt.Fprintf(out, "select <card|number>...\n")
			return false
		}
		for _, arg := range strings.Fields(rest) {
			_ = r.act.Toggle(r.handCard(arg))
		}
	case "play", "p":
		_ = r.act.PlayCards()
	case "move":
		_ = r.act.PlayMove(rest)
	case "pass":
		_ = r.act.Pass()
	case "tichu":
		_ = r.act.CallTichu()
	case "gt":
		switch strings.ToLower(rest) {
		case "yes", "y":
			_ = r.act.GrandTichu(true)
		case "no", "n":
			_ = r.act.GrandTichu(false)
		default:
			fmt.Fprintf(out, "gt yes|no\n")
		}
	case "wish":
		_ = r.act.Wish(rest)
	case "dragon":
		_ = r.act.ChooseDragonRecipient(rest)
	case "give":
		var target, card string
		_, err := fmt.Sscan(rest, &target, &card)
		if err != nil {
			fmt.Fprintf(out, "give <player> <card|number>\n")
			return false
		}
		_ = r.act.Assign(target, r.poolCard(card))
	case "take":
		_ = r.act.Unassign(rest)
	case "passcards":
		_ = r.act.PassCards()
	case "ready":
		_ = r.act.ReadyForNextRound()
	case "status", "":
		printSnapshot(out, r.box.Get())
	case "follow":
		r.follow(ctx)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(out, "unknown\n")
	}
	return false
}

// handCard resolves a 1-based hand position, or passes the token through.
func (r *Repl) handCard(arg string) tichu.Card {
	s := r.box.Get()
	if n, err := strconv.Atoi(arg); err == nil && s != nil && n >= 1 && n <= len(s.Hand) {
		return s.Hand[n-1]
	}
	return tichu.Card(arg)
}

// poolCard resolves a 1-based exchange pool position, or passes the id
// through.
func (r *Repl) poolCard(arg string) string {
	s := r.box.Get()
	if n, err := strconv.Atoi(arg); err == nil && s != nil && s.Passing != nil && n >= 1 && n <= len(s.Passing.Pool) {
		return s.Passing.Pool[n-1].ID
	}
	return arg
}

// follow prints the banner on every change until interrupted.
func (r *Repl) follow(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	out := r.l.Stdout()
	seen := r.box.Get()
	for {
		s, ok := <-r.box.Listen(ctx, seen)
		if !ok {
			return
		}
		seen = s
		fmt.Fprintf(out, "%s: %s\n", s.Mode, s.Banner)
	}
}

func printSnapshotHand(out io.Writer, s *Snapshot) {
	if s == nil {
		return
	}
	fmt.Fprintf(out, "Hand:     %s\n", strings.Join(tichu.Labels(s.Hand), " "))
	fmt.Fprintf(out, "Selected: %s\n", strings.Join(tichu.Labels(s.Selected), " "))
}

func printSnapshot(out io.Writer, s *Snapshot) {
	if s == nil {
		fmt.Fprintf(out, "not started\n")
		return
	}
	fmt.Fprintf(out, "Player:   %s %s\n", s.Name, s.Team)
	fmt.Fprintf(out, "Mode:     %s\n", s.Mode)
	fmt.Fprintf(out, "Turn:     %s\n", s.Banner)
	printSnapshotHand(out, s)
	fmt.Fprintf(out, "Played:   %s\n", strings.Join(tichu.Labels(s.LastPlayed), " "))
	fmt.Fprintf(out, "Scores:   A %d, B %d\n", s.Scores.A, s.Scores.B)
	if s.Passing != nil {
		fmt.Fprintf(out, "Exchange: %v\n", s.Passing.Assignments)
	}
}
