package client

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/undeconstructed/gotichu/tichu"
)

// Machine turns server events and player actions into modes. It trusts the
// server completely about what happens next, and trusts the player not at
// all about what gets sent.
//
// A Machine is not safe for concurrent use; Client runs it on one goroutine.
type Machine struct {
	mode Mode
	// resume is the mode to go back to when every prompt is answered. It is
	// never a prompt mode.
	resume Mode
	// under holds prompts still open beneath the current one, innermost
	// last.
	under []Mode
	// deferred holds prompts that arrived during RoundOver, in order.
	deferred []Mode

	sel              *Selection
	dragonRecipients []string
	lastPlayed       []tichu.Card
	scores           tichu.TeamPoints
	roundPoints      tichu.TeamPoints
	banner           string

	name   string
	team   string
	joined bool
	played bool

	emit *Emitter
	sink Sink
	log  zerolog.Logger
}

func NewMachine(out Sender, sink Sink) *Machine {
	log := log.With().Str("component", "machine").Logger()
	return &Machine{
		mode:   Idle,
		resume: Idle,
		sel:    NewSelection(),
		emit:   NewEmitter(out),
		sink:   sink,
		log:    log,
	}
}

// Mode is the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Selection is for reading. Changes go through the machine.
func (m *Machine) Selection() *Selection { return m.sel }

// Handle applies one event from the server. It never refuses an event.
func (m *Machine) Handle(ev tichu.Event) {
	before := m.mode

	switch e := ev.(type) {
	case tichu.GameMessage:
		m.sink.Log(e.Message)
	case tichu.TurnMessage:
		m.sink.Log(e.Message)
	case tichu.ErrorMessage:
		m.sink.Error(e.Message)
	case tichu.UpdateHand:
		exchanging := len(m.sel.Targets()) > 0
		m.sel.ReplaceHand(e.Hand)
		m.showHand()
		if exchanging {
			m.sink.Log("New hand, the exchange was reset.")
		}
		if m.mode == PassingPhase {
			m.showPassing()
		}
	case tichu.LastPlayed:
		m.lastPlayed = append([]tichu.Card(nil), e.Cards...)
		m.sink.LastPlayed(m.lastPlayed)
	case tichu.YourTurn:
		if e.YourTurn {
			m.sink.Log("It's your turn!")
			m.turn(MyTurn)
		} else {
			m.sink.Log("Waiting for other players...")
			m.turn(OpponentTurn)
		}
	case tichu.TurnUpdate:
		if e.Current == e.You {
			m.banner = "Your turn!"
			m.turn(MyTurn)
		} else {
			m.banner = fmt.Sprintf("Waiting for %s...", e.Current)
			m.turn(OpponentTurn)
		}
	case tichu.ChooseDragonRecipient:
		m.dragonRecipients = append([]string(nil), e.Recipients...)
		m.enter(AwaitingDragonRecipient)
	case tichu.AskWish:
		m.enter(AwaitingWish)
	case tichu.ChooseGrandTichu:
		m.enter(AwaitingGrandTichuChoice)
	case tichu.CallGrandTichu:
		m.enter(AwaitingGrandTichuChoice)
	case tichu.StartPassing:
		m.sel.StartExchange(e.Cards, e.Targets)
		m.enter(PassingPhase)
	case tichu.RoundOver:
		m.scores = e.Scores
		m.roundPoints = e.RoundPoints
		m.mode = RoundOver
		m.resume = Idle
		m.under = nil
		m.deferred = nil
		m.dragonRecipients = nil
		m.played = false
		m.sink.Scores(m.scores, m.roundPoints)
		m.sink.Prompt(Prompt{Kind: PromptRoundOver})
		m.controls()
	default:
		m.log.Warn().Msgf("unhandled event: %#v", ev)
		return
	}

	m.log.Debug().Str("event", ev.EventName()).Stringer("from", before).Stringer("to", m.mode).Msg("handled")
}

// turn applies a turn change. An open prompt stays open and the change
// takes effect once it is answered.
func (m *Machine) turn(to Mode) {
	if m.mode.Prompt() || m.mode == RoundOver {
		m.resume = to
	} else {
		m.mode = to
	}
	m.controls()
}

// enter opens a prompt on top of any open ones. A prompt that is already
// open somewhere moves to the top rather than opening twice.
func (m *Machine) enter(p Mode) {
	if m.mode == RoundOver {
		m.deferred = append(modeListWithout(m.deferred, p), p)
		return
	}
	switch {
	case m.mode == p:
	case m.mode.Prompt():
		m.under = append(modeListWithout(m.under, p), m.mode)
	default:
		m.resume = m.mode
	}
	m.mode = p
	m.showPrompt()
	m.controls()
}

// leave closes the current prompt, going back to the one beneath or to
// play.
func (m *Machine) leave() {
	if n := len(m.under); n > 0 {
		m.mode = m.under[n-1]
		m.under = m.under[:n-1]
		m.showPrompt()
	} else {
		m.mode = m.resume
		m.sink.Prompt(Prompt{Kind: PromptNone})
	}
	m.controls()
}

// pending says if a prompt is open or waiting, at any depth.
func (m *Machine) pending(p Mode) bool {
	return m.mode == p || modeListContains(m.under, p) || modeListContains(m.deferred, p)
}

// prompts lists the open and waiting prompts beneath the current mode.
func (m *Machine) prompts() []Mode {
	var out []Mode
	out = append(out, m.under...)
	out = append(out, m.deferred...)
	return out
}

func modeListContains(l []Mode, m Mode) bool {
	for _, x := range l {
		if x == m {
			return true
		}
	}
	return false
}

func modeListWithout(l []Mode, m Mode) []Mode {
	var out []Mode
	for _, x := range l {
		if x != m {
			out = append(out, x)
		}
	}
	return out
}

func (m *Machine) controls() {
	m.sink.Turn(m.banner, m.mode == MyTurn)
	m.sink.MainPanel(m.mode != PassingPhase)
}

func (m *Machine) showPrompt() {
	switch m.mode {
	case AwaitingGrandTichuChoice:
		m.sink.Prompt(Prompt{Kind: PromptGrandTichu})
	case AwaitingDragonRecipient:
		m.sink.Prompt(Prompt{Kind: PromptDragon, Recipients: append([]string(nil), m.dragonRecipients...)})
	case AwaitingWish:
		m.sink.Prompt(Prompt{Kind: PromptWish, Ranks: append([]string(nil), tichu.WishRanks...)})
	case PassingPhase:
		m.sink.Prompt(Prompt{Kind: PromptPassing})
		m.showPassing()
	}
}

func (m *Machine) showHand() {
	m.sink.Hand(m.sel.Hand(), m.sel.Selected())
}

func (m *Machine) passingView() PassingView {
	targets := m.sel.Targets()
	return PassingView{
		Pool:        m.sel.Pool(),
		Targets:     targets,
		Assignments: m.sel.Assignments(),
		Complete:    m.sel.IsComplete(targets),
	}
}

func (m *Machine) showPassing() {
	m.sink.Passing(m.passingView())
}

// fail reports a refused action to the player.
func (m *Machine) fail(err error) error {
	m.log.Debug().Err(err).Stringer("mode", m.mode).Msg("refused")
	m.sink.Error(err.Error())
	return err
}

// Join asks to join the game, optionally in a team.
func (m *Machine) Join(name, team string) error {
	cmd := tichu.Join{Name: strings.TrimSpace(name), Team: strings.ToUpper(strings.TrimSpace(team))}
	if err := m.emit.Emit(m, cmd); err != nil {
		return m.fail(err)
	}
	m.joined = true
	m.name = cmd.Name
	m.team = cmd.Team
	m.sink.GameView()
	return nil
}

// Toggle selects or unselects a card in the hand.
func (m *Machine) Toggle(c tichu.Card) error {
	if err := m.sel.Toggle(c); err != nil {
		return m.fail(fmt.Errorf("select %s: %w", c, err))
	}
	m.showHand()
	return nil
}

// PlayCards plays whatever is selected.
func (m *Machine) PlayCards() error {
	cmd := tichu.PlayCards{Cards: m.sel.Selected()}
	if err := m.emit.Emit(m, cmd); err != nil {
		return m.fail(err)
	}
	m.sel.ClearSelection()
	m.played = true
	m.showHand()
	return nil
}

// PlayMove plays a move typed as text.
func (m *Machine) PlayMove(move string) error {
	cmd := tichu.PlayMove{Move: strings.TrimSpace(move)}
	if err := m.emit.Emit(m, cmd); err != nil {
		return m.fail(err)
	}
	m.sel.ClearSelection()
	m.played = true
	m.showHand()
	return nil
}

func (m *Machine) Pass() error {
	if err := m.emit.Emit(m, tichu.Pass{}); err != nil {
		return m.fail(err)
	}
	m.sel.ClearSelection()
	m.showHand()
	return nil
}

func (m *Machine) CallTichu() error {
	if err := m.emit.Emit(m, tichu.TichuCall{Choice: true}); err != nil {
		return m.fail(err)
	}
	return nil
}

func (m *Machine) GrandTichu(choice bool) error {
	if err := m.emit.Emit(m, tichu.GrandTichuChoice{Choice: choice}); err != nil {
		return m.fail(err)
	}
	m.leave()
	return nil
}

// Wish answers the wish prompt. Input is matched without regard to case.
func (m *Machine) Wish(rank string) error {
	wish, err := tichu.ParseWish(rank)
	if err != nil {
		wish = rank
	}
	if err := m.emit.Emit(m, tichu.WishCard{Wish: wish}); err != nil {
		return m.fail(err)
	}
	m.leave()
	return nil
}

func (m *Machine) ChooseDragonRecipient(name string) error {
	cmd := tichu.DragonRecipientSelected{Recipient: strings.TrimSpace(name)}
	if err := m.emit.Emit(m, cmd); err != nil {
		return m.fail(err)
	}
	m.dragonRecipients = nil
	m.leave()
	return nil
}

// Assign gives an exchange card to a target.
func (m *Machine) Assign(recipient, cardID string) error {
	if m.mode != PassingPhase {
		return m.fail(fmt.Errorf("assign: %w", tichu.ErrNotNow))
	}
	if err := m.sel.Assign(recipient, cardID); err != nil {
		return m.fail(fmt.Errorf("assign %s to %s: %w", cardID, recipient, err))
	}
	m.showPassing()
	return nil
}

// Unassign takes back a target's exchange card.
func (m *Machine) Unassign(recipient string) error {
	if m.mode != PassingPhase {
		return m.fail(fmt.Errorf("unassign: %w", tichu.ErrNotNow))
	}
	if err := m.sel.Unassign(recipient); err != nil {
		return m.fail(fmt.Errorf("unassign %s: %w", recipient, err))
	}
	m.showPassing()
	return nil
}

// PassCards sends the exchange, once every target has a card.
func (m *Machine) PassCards() error {
	cmd := tichu.PassCards{Assignments: m.sel.Assignments()}
	if err := m.emit.Emit(m, cmd); err != nil {
		return m.fail(err)
	}
	m.sel.clearExchange()
	m.leave()
	return nil
}

// ReadyForNextRound closes the scores. Prompts that came in meanwhile open
// now, the latest on top.
func (m *Machine) ReadyForNextRound() error {
	if err := m.emit.Emit(m, tichu.ReadyForNextRound{}); err != nil {
		return m.fail(err)
	}
	deferred := m.deferred
	m.deferred = nil
	m.leave()
	for _, p := range deferred {
		m.enter(p)
	}
	return nil
}

// Snapshot copies out the state for display elsewhere.
func (m *Machine) Snapshot() *Snapshot {
	s := &Snapshot{
		Mode:             m.mode,
		Resume:           m.resume,
		Pending:          m.prompts(),
		Name:             m.name,
		Team:             m.team,
		Joined:           m.joined,
		Banner:           m.banner,
		MovesEnabled:     m.mode == MyTurn,
		Hand:             m.sel.Hand(),
		Selected:         m.sel.Selected(),
		LastPlayed:       append([]tichu.Card(nil), m.lastPlayed...),
		DragonRecipients: append([]string(nil), m.dragonRecipients...),
		Scores:           m.scores,
		RoundPoints:      m.roundPoints,
		CanCallTichu:     m.emit.check(m, tichu.TichuCall{Choice: true}) == nil,
	}
	if m.pending(PassingPhase) {
		v := m.passingView()
		s.Passing = &v
	}
	return s
}
