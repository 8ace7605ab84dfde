package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/pokerengine/internal/randutil"
	"github.com/lox/pokerengine/poker"
)

// Seat configures one player for NewEngine.
type Seat struct {
	Name    string
	Chips   int
	Decider Decider
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The engine logs nothing by default.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithObserver registers observers in order.
func WithObserver(obs ...Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, obs...) }
}

// WithStore persists chips and hand histories.
func WithStore(s Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithDeck replaces the shuffled deck, e.g. with a poker.NewOrderedDeck in tests.
func WithDeck(d *poker.Deck) Option {
	return func(e *Engine) { e.deck = d }
}

// WithSeed shuffles with a deterministic RNG.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.deck = poker.NewDeck(randutil.New(seed)) }
}

// WithClock sets the clock used to timestamp hands.
func WithClock(c quartz.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithButton sets the starting button seat.
func WithButton(seat int) Option {
	return func(e *Engine) { e.button = seat }
}

// WithHandIDs overrides hand ID generation.
func WithHandIDs(next func() string) Option {
	return func(e *Engine) { e.newID = next }
}

// Engine runs hands of one GameMode at one table. It is not safe for concurrent use; run one
// engine per goroutine.
type Engine struct {
	mode      GameMode
	structure BettingStructure
	table     *Table
	deciders  map[string]Decider
	pots      *PotManager
	deck      *poker.Deck
	ctx       GameContext
	observers observers
	store     Store
	logger    *log.Logger
	clock     quartz.Clock
	newID     func() string
	button    int
	hands     int

	log     *log.Logger
	history *HandHistory
}

// SessionResult summarises RunSession.
type SessionResult struct {
	Hands int
	Chips map[string]int
}

// NewEngine seats players in the given order.
func NewEngine(mode GameMode, seats []Seat, opts ...Option) (*Engine, error) {
	if mode == nil {
		return nil, errors.New("game mode is required")
	}
	e := &Engine{
		mode:      mode,
		structure: mode.BettingStructure(),
		deciders:  make(map[string]Decider, len(seats)),
		logger:    log.New(io.Discard),
		clock:     quartz.NewReal(),
		newID:     newHandID,
	}
	for _, opt := range opts {
		opt(e)
	}

	players := make([]*Player, len(seats))
	for i, s := range seats {
		if s.Decider == nil {
			return nil, fmt.Errorf("seat %d (%s) has no decider", i, s.Name)
		}
		players[i] = NewPlayer(i, s.Name, s.Chips)
		e.deciders[s.Name] = s.Decider
	}
	table, err := NewTable(players, e.button)
	if err != nil {
		return nil, err
	}
	e.table = table
	if e.deck == nil {
		e.deck = poker.NewDeck(randutil.New(e.clock.Now().UnixNano()))
	}
	e.pots = NewPotManager(nil)
	e.logger = e.logger.WithPrefix("engine")
	e.log = e.logger
	return e, nil
}

func newHandID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Subscribe registers an observer after construction.
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

// Mode returns the variant being played.
func (e *Engine) Mode() GameMode { return e.mode }

// Button returns the current button seat.
func (e *Engine) Button() int { return e.table.Button() }

// Players returns copies of all seated players.
func (e *Engine) Players() []PlayerView {
	views := make([]PlayerView, 0, e.table.Len())
	for _, p := range e.table.Players() {
		views = append(views, p.View())
	}
	return views
}

// Chips returns every player's stack by name.
func (e *Engine) Chips() map[string]int {
	chips := make(map[string]int, e.table.Len())
	for _, p := range e.table.Players() {
		chips[p.Name] = p.Chips
	}
	return chips
}

// RunSession plays hands and moves the button until fewer than two players have chips, maxHands
// hands have been played (0 means no limit) or ctx is done. Cancellation is only checked between
// hands.
func (e *Engine) RunSession(ctx context.Context, maxHands int) (SessionResult, error) {
	if e.store != nil {
		saved, err := e.store.LoadPlayerChips()
		if err != nil {
			return SessionResult{}, fmt.Errorf("loading chips: %w", err)
		}
		for name, chips := range saved {
			if p, ok := e.table.Lookup(name); ok && chips >= 0 {
				p.Chips = chips
			}
		}
	}

	played := 0
	for e.table.WithChips() >= 2 && (maxHands <= 0 || played < maxHands) {
		if err := ctx.Err(); err != nil {
			return e.sessionResult(played), err
		}
		if _, err := e.PlayHand(); err != nil {
			return e.sessionResult(played), fmt.Errorf("hand %d: %w", e.hands, err)
		}
		played++
		e.table.AdvanceButton()
	}
	e.logger.Info("Session complete", "hands", played, "remaining", e.table.WithChips())
	return e.sessionResult(played), nil
}

func (e *Engine) sessionResult(played int) SessionResult {
	return SessionResult{Hands: played, Chips: e.Chips()}
}

// PlayHand plays one hand from forced bets to payout. The button is not moved.
func (e *Engine) PlayHand() (*HandHistory, error) {
	dealt := e.table.PrepareHand()
	if dealt < 2 {
		return nil, ErrNotEnoughPlayers
	}
	e.hands++
	id := e.newID()
	e.log = e.logger.With("hand", id)
	startTotal := e.table.TotalChips()

	names := make([]string, 0, e.table.Len())
	for _, p := range e.table.Players() {
		names = append(names, p.Name)
	}
	e.deck.Reset()
	e.pots.Reset(names)
	e.ctx.reset(id, e.mode.Name())
	e.history = newHandHistory(id, e.mode.Name(), e.hands, e.clock.Now(), e.table)

	e.log.Debug("Starting hand", "number", e.hands, "button", e.table.Button(), "players", dealt)
	e.observers.notify(func(o Observer) { o.OnGameStarted(e.snapshot()) })

	if err := e.mode.ExecuteForcedBets(e.table, e.pots, &e.ctx); err != nil {
		return nil, fmt.Errorf("forced bets: %w", err)
	}
	e.ctx.Pot = e.pots.Total()
	e.history.recordForcedBets(e.table, e.pots, &e.ctx)
	e.notifyPot()

	first := true
	for _, phase := range e.mode.Phases() {
		if e.inHand() <= 1 {
			break
		}
		if err := e.executePhase(phase, first); err != nil {
			return nil, err
		}
		if phase.Betting {
			first = false
		}
		if phase.Showdown {
			break
		}
	}

	var (
		res Resolution
		err error
	)
	if e.inHand() <= 1 {
		res, err = e.resolveWalk()
	} else {
		res, err = e.resolveShowdown()
	}
	if err != nil {
		return nil, err
	}
	return e.payout(res, startTotal)
}

func (e *Engine) executePhase(phase PhaseConfig, first bool) error {
	e.ctx.Phase = phase.Name
	e.log.Debug("Phase", "name", phase.Name)
	e.observers.notify(func(o Observer) { o.OnPhaseStart(phase.Name) })

	if phase.HoleCards > 0 {
		if err := e.dealHoleCards(phase.HoleCards); err != nil {
			return err
		}
	}
	if phase.CommunityCards > 0 {
		if err := e.dealCommunity(phase.CommunityCards); err != nil {
			return err
		}
	}
	if phase.Draw {
		if err := e.drawRound(); err != nil {
			return err
		}
	}
	if phase.Betting {
		if !first {
			e.resetStreet()
		}
		return e.bettingRound(first)
	}
	return nil
}

// seatsFromButton returns the players in the hand starting left of the button.
func (e *Engine) seatsFromButton() []*Player {
	var out []*Player
	for i := 1; i <= e.table.Len(); i++ {
		if p := e.table.Player(e.table.Button() + i); p.InHand() {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) dealHoleCards(count int) error {
	for _, p := range e.seatsFromButton() {
		cards, err := e.deck.DealN(count)
		if err != nil {
			return fmt.Errorf("dealing hole cards to %s: %w", p.Name, err)
		}
		p.HoleCards = append(p.HoleCards, cards...)
		e.history.add(HistoryEvent{Kind: EventDealHole, Phase: e.ctx.Phase, Player: p.Name, Cards: cards})
		view := p.publicView()
		e.observers.notify(func(o Observer) { o.OnDealHoleCards(view, count) })
	}
	return nil
}

func (e *Engine) dealCommunity(count int) error {
	cards, err := e.deck.DealN(count)
	if err != nil {
		return fmt.Errorf("dealing %s: %w", e.ctx.Phase, err)
	}
	e.ctx.Community = append(e.ctx.Community, cards...)
	e.history.add(HistoryEvent{Kind: EventDealBoard, Phase: e.ctx.Phase, Cards: cards})
	e.log.Debug("Board", "cards", poker.FormatCards(e.ctx.Community))
	e.observers.notify(func(o Observer) { o.OnDealCommunity(slices.Clone(cards)) })
	return nil
}

func (e *Engine) drawRound() error {
	for _, p := range e.seatsFromButton() {
		requested, err := e.deciders[p.Name].RequestDiscard(p.View(), e.snapshot())
		switch {
		case errors.Is(err, ErrDecisionTimeout):
			e.log.Warn("Discard timed out, standing pat", "player", p.Name)
			view := p.publicView()
			e.observers.notify(func(o Observer) { o.OnPlayerTimeout(view) })
			continue
		case err != nil:
			return fmt.Errorf("requesting discards from %s: %w", p.Name, err)
		}

		kept, discarded := splitDiscards(p.HoleCards, requested)
		if len(discarded) == 0 {
			continue
		}
		drawn, err := e.deck.DealN(len(discarded))
		if err != nil {
			return fmt.Errorf("drawing for %s: %w", p.Name, err)
		}
		p.HoleCards = append(kept, drawn...)
		e.history.add(HistoryEvent{Kind: EventDraw, Phase: e.ctx.Phase, Player: p.Name, Cards: drawn, Discarded: discarded})
		e.log.Debug("Draw", "player", p.Name, "cards", len(drawn))
	}
	return nil
}

// splitDiscards separates hole into kept cards and the requested discards it actually holds.
func splitDiscards(hole, requested []poker.Card) (kept, discarded []poker.Card) {
	kept = make([]poker.Card, 0, len(hole))
	for _, c := range hole {
		if slices.Contains(requested, c) {
			discarded = append(discarded, c)
		} else {
			kept = append(kept, c)
		}
	}
	return kept, discarded
}

func (e *Engine) resetStreet() {
	for _, p := range e.table.Players() {
		p.Bet = 0
	}
	e.ctx.CurrentBet = 0
	e.ctx.MinRaise = e.ctx.BigBlind
}

func (e *Engine) bettingRound(first bool) error {
	canAct, owes := 0, false
	for _, p := range e.table.Players() {
		if p.CanAct() {
			canAct++
			owes = owes || p.Bet < e.ctx.CurrentBet
		}
	}
	if canAct == 0 || (canAct < 2 && !owes) {
		e.log.Debug("Betting skipped", "phase", e.ctx.Phase, "can_act", canAct)
		return nil
	}

	start := e.table.Button()
	if first {
		if _, bb, ok := e.table.BlindSeats(); ok {
			start = bb
		}
	}

	acted := make(map[string]bool)
	pos, ok := e.table.NextActive(start)
	for ok {
		p := e.table.Player(pos)
		e.ctx.Actor = pos

		legal := e.structure.LegalActions(p.View(), &e.ctx)
		if acted[p.Name] && p.Bet < e.ctx.CurrentBet {
			// Only a short all-in moved the bet since this player acted.
			legal = slices.DeleteFunc(legal, func(v ValidAction) bool { return v.Kind != Fold && v.Kind != Call })
		}

		action, err := e.requestAction(p, legal)
		if err != nil {
			return err
		}
		reopened, err := e.apply(p, action)
		if err != nil {
			return err
		}
		if reopened {
			clear(acted)
		}
		acted[p.Name] = true

		if e.inHand() <= 1 || e.bettingClosed(acted) {
			break
		}
		pos, ok = e.table.NextActive(pos)
	}
	e.ctx.Actor = -1
	return nil
}

func (e *Engine) requestAction(p *Player, legal []ValidAction) (PlayerAction, error) {
	action, err := e.deciders[p.Name].RequestAction(p.View(), e.snapshot(), slices.Clone(legal))
	switch {
	case errors.Is(err, ErrDecisionTimeout):
		e.log.Warn("Decision timed out, folding", "player", p.Name)
		view := p.publicView()
		e.observers.notify(func(o Observer) { o.OnPlayerTimeout(view) })
		return PlayerAction{Player: p.Name, Kind: Fold}, nil
	case err != nil:
		return PlayerAction{}, fmt.Errorf("requesting action from %s: %w", p.Name, err)
	}

	action.Player = p.Name
	if !Allows(legal, action.Kind) {
		e.log.Warn("Illegal action, folding", "player", p.Name, "action", action.Kind)
		action = PlayerAction{Player: p.Name, Kind: Fold}
	}
	return action, nil
}

// apply commits action for p and reports whether it was a full raise.
func (e *Engine) apply(p *Player, action PlayerAction) (bool, error) {
	switch action.Kind {
	case Fold:
		p.Folded = true
		e.pots.Fold(p.Name)
		action.Amount = p.Bet
		e.record(action)
		return false, nil
	case Check:
		action.Amount = p.Bet
	case Call:
		action.Amount = min(e.ctx.CurrentBet, p.Bet+p.Chips)
	case AllIn:
		action.Amount = p.Bet + p.Chips
	}
	if err := e.structure.ValidateAction(action, p.View(), &e.ctx); err != nil {
		e.log.Error("Rejected action", "player", p.Name, "err", err)
		return false, err
	}

	paid := p.pay(action.Amount - p.Bet)
	p.Bet += paid
	e.pots.Add(p.Name, paid)
	if p.AllIn {
		action.Kind = AllIn
	}

	// A full raise is measured against the last full-raise increment, not NoLimit.MinRaise: an
	// all-in that raises by at least the previous increment reopens action even when a declared
	// raise of the same size would be below the sizing minimum.
	reopened := false
	if p.Bet > e.ctx.CurrentBet {
		if inc := p.Bet - e.ctx.CurrentBet; inc >= e.ctx.MinRaise {
			e.ctx.MinRaise = inc
			reopened = true
		}
		e.ctx.CurrentBet = p.Bet
	}
	e.ctx.Pot = e.pots.Total()

	e.record(action)
	if paid > 0 {
		e.notifyPot()
	}
	return reopened, nil
}

func (e *Engine) record(action PlayerAction) {
	e.log.Debug("Action", "player", action.Player, "action", action.Kind, "amount", action.Amount, "pot", e.ctx.Pot)
	e.history.add(HistoryEvent{Kind: EventAction, Phase: e.ctx.Phase, Player: action.Player, Action: action})
	e.observers.notify(func(o Observer) { o.OnPlayerAction(action) })
}

// bettingClosed reports whether everyone who can act has acted since the last full raise and
// matched the current bet.
func (e *Engine) bettingClosed(acted map[string]bool) bool {
	for _, p := range e.table.Players() {
		if p.CanAct() && (!acted[p.Name] || p.Bet != e.ctx.CurrentBet) {
			return false
		}
	}
	return true
}

func (e *Engine) inHand() int {
	n := 0
	for _, p := range e.table.Players() {
		if p.InHand() {
			n++
		}
	}
	return n
}

func (e *Engine) resolveWalk() (Resolution, error) {
	for _, p := range e.table.Players() {
		if p.InHand() {
			total := e.pots.Total()
			e.log.Debug("Walk", "winner", p.Name, "pot", total)
			return Resolution{Winnings: map[string]int{p.Name: total}}, nil
		}
	}
	return Resolution{}, ErrNoActivePlayers
}

func (e *Engine) resolveShowdown() (Resolution, error) {
	evaluator := e.mode.Evaluator()
	ranks := make(map[string]poker.HandRank)
	for _, p := range e.table.Players() {
		if !p.InHand() {
			continue
		}
		rank, err := evaluator.Evaluate(p.HoleCards, e.ctx.Community)
		if err != nil {
			return Resolution{}, fmt.Errorf("evaluating %s: %w", p.Name, err)
		}
		ranks[p.Name] = rank
		e.history.add(HistoryEvent{Kind: EventShow, Phase: "Showdown", Player: p.Name, Cards: p.HoleCards})
	}
	if len(ranks) == 0 {
		return Resolution{}, ErrNoActivePlayers
	}
	e.history.Showdown = true
	e.history.Ranks = ranks
	e.observers.notify(func(o Observer) { o.OnShowdown(maps.Clone(ranks)) })

	res, err := e.pots.ResolvePots(ranks)
	if err != nil {
		e.log.Error("Pot resolution failed", "err", err)
		return Resolution{}, err
	}
	if res.Unclaimed > 0 {
		e.log.Warn("Pot left unclaimed", "chips", res.Unclaimed)
	}
	return res, nil
}

func (e *Engine) payout(res Resolution, startTotal int) (*HandHistory, error) {
	for name, amount := range res.Winnings {
		if p, ok := e.table.Lookup(name); ok {
			p.Chips += amount
		}
	}
	if got := e.table.TotalChips() + res.Unclaimed; got != startTotal {
		e.log.Error("Chips not conserved", "start", startTotal, "end", got)
		return nil, fmt.Errorf("%w: started with %d, ended with %d", ErrChipConservation, startTotal, got)
	}

	h := e.history
	h.Board = slices.Clone(e.ctx.Community)
	h.Winnings = maps.Clone(res.Winnings)
	h.Unclaimed = res.Unclaimed
	for _, p := range e.table.Players() {
		h.FinishingStacks = append(h.FinishingStacks, p.Chips)
	}
	e.log.Info("Hand complete", "number", h.Number, "pot", h.TotalPot(), "winners", winnerNames(res.Winnings), "showdown", h.Showdown)
	e.observers.notify(func(o Observer) { o.OnHandEnded(maps.Clone(res.Winnings)) })

	if e.store != nil {
		if err := e.store.SavePlayerChips(e.Players()); err != nil {
			return h, fmt.Errorf("saving chips: %w", err)
		}
		if err := e.store.LogHand(h); err != nil {
			return h, fmt.Errorf("logging hand: %w", err)
		}
	}
	return h, nil
}

func winnerNames(winnings map[string]int) []string {
	names := slices.Collect(maps.Keys(winnings))
	slices.Sort(names)
	return names
}

func (e *Engine) notifyPot() {
	total := e.ctx.Pot
	e.observers.notify(func(o Observer) { o.OnPotUpdate(total) })
}

func (e *Engine) snapshot() Snapshot {
	return newSnapshot(&e.ctx, e.table)
}
