package game

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/lox/pokerengine/poker"
	"github.com/stretchr/testify/require"
)

// request is one call to a test decider.
type request struct {
	player string
	phase  string
	legal  []ValidAction
}

// scriptDecider plays scripted actions per player, then checks or calls.
type scriptDecider struct {
	mu       sync.Mutex
	scripts  map[string][]PlayerAction
	discards map[string][]poker.Card
	errs     map[string]error
	requests []request
}

func newScript() *scriptDecider {
	return &scriptDecider{
		scripts:  map[string][]PlayerAction{},
		discards: map[string][]poker.Card{},
		errs:     map[string]error{},
	}
}

func (s *scriptDecider) then(name string, kind ActionKind, amount ...int) *scriptDecider {
	a := PlayerAction{Player: name, Kind: kind}
	if len(amount) > 0 {
		a.Amount = amount[0]
	}
	s.scripts[name] = append(s.scripts[name], a)
	return s
}

func (s *scriptDecider) RequestAction(player PlayerView, snap Snapshot, legal []ValidAction) (PlayerAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, request{player: player.Name, phase: snap.Phase, legal: legal})
	if err := s.errs[player.Name]; err != nil {
		return PlayerAction{}, err
	}
	if queue := s.scripts[player.Name]; len(queue) > 0 {
		s.scripts[player.Name] = queue[1:]
		return queue[0], nil
	}
	if Allows(legal, Check) {
		return PlayerAction{Kind: Check}, nil
	}
	return PlayerAction{Kind: Call}, nil
}

func (s *scriptDecider) RequestDiscard(player PlayerView, _ Snapshot) ([]poker.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.errs[player.Name]; err != nil {
		return nil, err
	}
	return s.discards[player.Name], nil
}

// requestsFor returns the requests made to name, in order.
func (s *scriptDecider) requestsFor(name string) []request {
	var out []request
	for _, r := range s.requests {
		if r.player == name {
			out = append(out, r)
		}
	}
	return out
}

func kinds(legal []ValidAction) []ActionKind {
	out := make([]ActionKind, len(legal))
	for i, v := range legal {
		out[i] = v.Kind
	}
	return out
}

// randomDecider picks uniformly among legal actions with a seeded RNG.
type randomDecider struct {
	rng *rand.Rand
}

func (r *randomDecider) RequestAction(_ PlayerView, _ Snapshot, legal []ValidAction) (PlayerAction, error) {
	v := legal[r.rng.IntN(len(legal))]
	amount := v.Min
	if v.Max > v.Min {
		amount += r.rng.IntN(v.Max - v.Min + 1)
	}
	return PlayerAction{Kind: v.Kind, Amount: amount}, nil
}

func (r *randomDecider) RequestDiscard(player PlayerView, _ Snapshot) ([]poker.Card, error) {
	var out []poker.Card
	for _, c := range player.HoleCards {
		if r.rng.IntN(3) == 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

// recorder is an observer that logs every event as a line of text.
type recorder struct {
	prefix string
	log    *[]string
}

func newRecorder() *recorder {
	return &recorder{log: new([]string)}
}

func (r *recorder) add(format string, args ...any) {
	*r.log = append(*r.log, r.prefix+fmt.Sprintf(format, args...))
}

func (r *recorder) OnGameStarted(snap Snapshot) { r.add("start %d", len(snap.Players)) }
func (r *recorder) OnPhaseStart(phase string) { r.add("phase %s", phase) }
func (r *recorder) OnPlayerAction(a PlayerAction) { r.add("action %s", a) }
func (r *recorder) OnDealHoleCards(p PlayerView, n int) { r.add("hole %s %d", p.Name, n) }
func (r *recorder) OnDealCommunity(cards []poker.Card) {
	r.add("board %s", poker.FormatCards(cards))
}
func (r *recorder) OnPotUpdate(total int) { r.add("pot %d", total) }
func (r *recorder) OnShowdown(ranks map[string]poker.HandRank) {
	r.add("showdown %d", len(ranks))
}
func (r *recorder) OnHandEnded(winnings map[string]int) { r.add("ended %v", winnings) }
func (r *recorder) OnPlayerTimeout(p PlayerView) { r.add("timeout %s", p.Name) }

func (r *recorder) lines() []string { return *r.log }

// memoryStore is an in-memory Store.
type memoryStore struct {
	chips map[string]int
	hands []*HandHistory
	saves int
	err   error
}

func (m *memoryStore) SavePlayerChips(players []PlayerView) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.chips = make(map[string]int, len(players))
	for _, p := range players {
		m.chips[p.Name] = p.Chips
	}
	return nil
}

func (m *memoryStore) LoadPlayerChips() (map[string]int, error) {
	return m.chips, nil
}

func (m *memoryStore) LogHand(h *HandHistory) error {
	m.hands = append(m.hands, h)
	return nil
}

// seats builds seats sharing one decider.
func seats(d Decider, chips map[string]int, names ...string) []Seat {
	out := make([]Seat, len(names))
	for i, n := range names {
		out[i] = Seat{Name: n, Chips: chips[n], Decider: d}
	}
	return out
}

func newTestEngine(t *testing.T, mode GameMode, s []Seat, opts ...Option) *Engine {
	t.Helper()
	n := 0
	opts = append([]Option{WithHandIDs(func() string { n++; return fmt.Sprintf("hand-%d", n) })}, opts...)
	e, err := NewEngine(mode, s, opts...)
	require.NoError(t, err)
	return e
}

func holdem(small, big int) Holdem {
	return Holdem{Blinds{Small: small, Big: big}}
}
