package game

import (
	"errors"
	"fmt"
)

// Table owns the seat ring and the dealer button. All modular seat arithmetic lives here.
type Table struct {
	players []*Player
	button  int
}

// NewTable seats players in order. The button starts at the given seat.
func NewTable(players []*Player, button int) (*Table, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("table needs at least 2 players, got %d", len(players))
	}
	if button < 0 || button >= len(players) {
		return nil, fmt.Errorf("button %d out of range", button)
	}
	seen := make(map[string]bool, len(players))
	for i, p := range players {
		if p == nil {
			return nil, errors.New("nil player")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate player name %q", p.Name)
		}
		if p.Chips < 0 {
			return nil, fmt.Errorf("player %q has negative chips", p.Name)
		}
		seen[p.Name] = true
		p.Seat = i
	}
	return &Table{players: players, button: button}, nil
}

// Len returns the number of seats.
func (t *Table) Len() int { return len(t.players) }

// Button returns the seat holding the dealer button.
func (t *Table) Button() int { return t.button }

// Player returns the player in seat.
func (t *Table) Player(seat int) *Player { return t.players[t.wrap(seat)] }

// Players returns all seated players in seat order.
func (t *Table) Players() []*Player { return t.players }

// Lookup finds a player by name.
func (t *Table) Lookup(name string) (*Player, bool) {
	for _, p := range t.players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// AdvanceButton moves the button one seat clockwise.
func (t *Table) AdvanceButton() {
	t.button = t.wrap(t.button + 1)
}

// PrepareHand resets per-hand player state. Players without chips sit out.
// It returns the number of players dealt in.
func (t *Table) PrepareHand() int {
	n := 0
	for _, p := range t.players {
		p.resetForHand()
		if !p.SittingOut {
			n++
		}
	}
	return n
}

// DealtIn returns the number of seats that are not sitting out.
func (t *Table) DealtIn() int {
	n := 0
	for _, p := range t.players {
		if !p.SittingOut {
			n++
		}
	}
	return n
}

// WithChips returns the number of players holding chips.
func (t *Table) WithChips() int {
	n := 0
	for _, p := range t.players {
		if p.Chips > 0 {
			n++
		}
	}
	return n
}

// TotalChips returns the sum of all stacks.
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.players {
		total += p.Chips
	}
	return total
}

// BlindSeats returns the small and big blind seats for the current hand. Only dealt-in seats are
// counted; a button on a sitting-out seat passes to the next dealt-in seat. Heads-up the button
// posts the small blind.
func (t *Table) BlindSeats() (sb, bb int, ok bool) {
	dealer, ok := t.dealer()
	if !ok {
		return -1, -1, false
	}
	if t.DealtIn() == 2 {
		bb, _ = t.NextDealt(dealer)
		return dealer, bb, true
	}
	sb, _ = t.NextDealt(dealer)
	bb, _ = t.NextDealt(sb)
	return sb, bb, true
}

// dealer returns the effective button: the button seat if dealt in, else the next dealt-in seat.
func (t *Table) dealer() (int, bool) {
	if !t.players[t.button].SittingOut {
		return t.button, true
	}
	return t.NextDealt(t.button)
}

// NextDealt returns the first seat after pos that is dealt into the hand.
func (t *Table) NextDealt(pos int) (int, bool) {
	return t.next(pos, func(p *Player) bool { return !p.SittingOut })
}

// NextInHand returns the first seat after pos that has not folded.
func (t *Table) NextInHand(pos int) (int, bool) {
	return t.next(pos, (*Player).InHand)
}

// NextActive returns the first seat after pos that can still act, or -1 and false if none.
// pos itself is never returned.
func (t *Table) NextActive(pos int) (int, bool) {
	return t.next(pos, (*Player).CanAct)
}

func (t *Table) next(pos int, match func(*Player) bool) (int, bool) {
	for i := 1; i < len(t.players); i++ {
		seat := t.wrap(pos + i)
		if match(t.players[seat]) {
			return seat, true
		}
	}
	return -1, false
}

func (t *Table) wrap(seat int) int {
	n := len(t.players)
	return ((seat % n) + n) % n
}
