package client

import (
	"sync"

	"github.com/undeconstructed/gotichu/tichu"
)

type sent struct {
	name    string
	payload interface{}
}

type recSender struct {
	mu   sync.Mutex
	sent []sent
}

func (r *recSender) Send(name string, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{name, payload})
}

func (r *recSender) all() []sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sent(nil), r.sent...)
}

func (r *recSender) last() sent {
	all := r.all()
	if len(all) == 0 {
		return sent{}
	}
	return all[len(all)-1]
}

type recSink struct {
	gameView     bool
	hand         []tichu.Card
	selected     []tichu.Card
	lastPlayed   []tichu.Card
	banner       string
	movesEnabled bool
	mainPanel    bool
	prompts      []Prompt
	passing      *PassingView
	total        tichu.TeamPoints
	round        tichu.TeamPoints
	logs         []string
	errors       []string
}

func newRecSink() *recSink {
	return &recSink{mainPanel: true}
}

func (s *recSink) GameView() { s.gameView = true }
func (s *recSink) Hand(hand []tichu.Card, selected []tichu.Card) {
	s.hand, s.selected = hand, selected
}
func (s *recSink) LastPlayed(cards []tichu.Card) { s.lastPlayed = cards }
func (s *recSink) Turn(banner string, movesEnabled bool) {
	s.banner, s.movesEnabled = banner, movesEnabled
}
func (s *recSink) Prompt(p Prompt)        { s.prompts = append(s.prompts, p) }
func (s *recSink) Passing(v PassingView)  { s.passing = &v }
func (s *recSink) MainPanel(enabled bool) { s.mainPanel = enabled }
func (s *recSink) Log(text string)        { s.logs = append(s.logs, text) }
func (s *recSink) Error(text string)      { s.errors = append(s.errors, text) }
func (s *recSink) Scores(total tichu.TeamPoints, round tichu.TeamPoints) {
	s.total, s.round = total, round
}

func (s *recSink) lastPrompt() PromptKind {
	if len(s.prompts) == 0 {
		return PromptNone
	}
	return s.prompts[len(s.prompts)-1].Kind
}

func newTestMachine() (*Machine, *recSender, *recSink) {
	out := &recSender{}
	sink := newRecSink()
	return NewMachine(out, sink), out, sink
}
