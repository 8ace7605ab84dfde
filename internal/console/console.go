// Package console prints hand events for people watching a session.
package console

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/poker"
	"github.com/muesli/termenv"
)

type styles struct {
	header lipgloss.Style
	phase  lipgloss.Style
	action lipgloss.Style
	pot    lipgloss.Style
	win    lipgloss.Style
	warn   lipgloss.Style
	red    lipgloss.Style
	black  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1),
		phase:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4")),
		action: r.NewStyle().Foreground(lipgloss.Color("#FAFAFA")),
		pot:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		win:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("11")),
		red:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		black:  r.NewStyle().Bold(true),
	}
}

// Printer is a game.Observer that writes a running commentary.
type Printer struct {
	game.BaseObserver

	w      io.Writer
	styles styles
	pot    int
}

var _ game.Observer = (*Printer)(nil)

// Option configures a Printer.
type Option func(*Printer, *lipgloss.Renderer)

// WithColorProfile forces a colour profile, e.g. termenv.Ascii to disable colour.
func WithColorProfile(p termenv.Profile) Option {
	return func(_ *Printer, r *lipgloss.Renderer) { r.SetColorProfile(p) }
}

// New creates a Printer writing to w. Colour follows what w supports.
func New(w io.Writer, opts ...Option) *Printer {
	r := lipgloss.NewRenderer(w)
	p := &Printer{w: w}
	for _, opt := range opts {
		opt(p, r)
	}
	p.styles = newStyles(r)
	return p
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *Printer) OnGameStarted(snap game.Snapshot) {
	p.pot = 0
	button := ""
	if snap.Button >= 0 && snap.Button < len(snap.Players) {
		button = snap.Players[snap.Button].Name
	}
	p.println(p.styles.header.Render(fmt.Sprintf("Hand %s  %s  button %s", snap.HandID, snap.Variant, button)))
	for _, pl := range snap.Players {
		line := fmt.Sprintf("  %-12s %s", pl.Name, chips(pl.Chips))
		if pl.SittingOut {
			line += " (sitting out)"
		}
		p.println(line)
	}
}

func (p *Printer) OnPhaseStart(phase string) {
	p.println(p.styles.phase.Render("*** " + strings.ToUpper(phase) + " ***"))
}

func (p *Printer) OnDealCommunity(cards []poker.Card) {
	p.println("Board: " + p.cards(cards))
}

func (p *Printer) OnPlayerAction(a game.PlayerAction) {
	p.println(p.styles.action.Render(FormatAction(a)))
}

func (p *Printer) OnPotUpdate(total int) {
	if total == p.pot {
		return
	}
	p.pot = total
	p.println(p.styles.pot.Render("  pot " + chips(total)))
}

func (p *Printer) OnShowdown(ranks map[string]poker.HandRank) {
	p.println(p.styles.phase.Render("*** SHOWDOWN ***"))
	for _, name := range sortedKeys(ranks) {
		p.println(fmt.Sprintf("%s shows %s", name, ranks[name]))
	}
}

func (p *Printer) OnHandEnded(winnings map[string]int) {
	for _, name := range sortedKeys(winnings) {
		p.println(p.styles.win.Render(fmt.Sprintf("%s wins %s", name, chips(winnings[name]))))
	}
	p.println("")
}

func (p *Printer) OnPlayerTimeout(player game.PlayerView) {
	p.println(p.styles.warn.Render(player.Name + " timed out"))
}

// Revealing returns a game.Store that prints the hole cards of each hand once it is logged, then
// passes every call on to inner. inner may be nil.
func (p *Printer) Revealing(inner game.Store) game.Store {
	return &revealer{printer: p, inner: inner}
}

// Reveal prints the cards each player was dealt and drew during h.
func (p *Printer) Reveal(h *game.HandHistory) {
	for _, ev := range h.Events {
		switch ev.Kind {
		case game.EventDealHole:
			p.println(fmt.Sprintf("Dealt to %s [%s]", ev.Player, p.cards(ev.Cards)))
		case game.EventDraw:
			p.println(fmt.Sprintf("%s discarded [%s] and drew [%s]", ev.Player, p.cards(ev.Discarded), p.cards(ev.Cards)))
		}
	}
	p.println("")
}

type revealer struct {
	printer *Printer
	inner   game.Store
}

func (r *revealer) SavePlayerChips(players []game.PlayerView) error {
	if r.inner == nil {
		return nil
	}
	return r.inner.SavePlayerChips(players)
}

func (r *revealer) LoadPlayerChips() (map[string]int, error) {
	if r.inner == nil {
		return nil, nil
	}
	return r.inner.LoadPlayerChips()
}

func (r *revealer) LogHand(h *game.HandHistory) error {
	r.printer.Reveal(h)
	if r.inner == nil {
		return nil
	}
	return r.inner.LogHand(h)
}

func (p *Printer) cards(cs []poker.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		style := p.styles.black
		if c.Suit.IsRed() {
			style = p.styles.red
		}
		parts[i] = style.Render(c.Pretty())
	}
	return strings.Join(parts, " ")
}

// FormatAction describes an action in words, e.g. "alice raises to 60".
func FormatAction(a game.PlayerAction) string {
	switch a.Kind {
	case game.Fold:
		return a.Player + " folds"
	case game.Check:
		return a.Player + " checks"
	case game.Call:
		return fmt.Sprintf("%s calls %s", a.Player, chips(a.Amount))
	case game.Bet:
		return fmt.Sprintf("%s bets %s", a.Player, chips(a.Amount))
	case game.Raise:
		return fmt.Sprintf("%s raises to %s", a.Player, chips(a.Amount))
	case game.AllIn:
		return fmt.Sprintf("%s is all-in for %s", a.Player, chips(a.Amount))
	}
	return a.String()
}

func chips(n int) string {
	return humanize.Comma(int64(n))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
