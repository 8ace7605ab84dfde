package game

import (
	"slices"

	"github.com/lox/pokerengine/poker"
)

// Player is a seated player. Chips persist across hands; the rest is reset each hand.
type Player struct {
	Seat       int
	Name       string
	Chips      int
	HoleCards  []poker.Card
	Folded     bool
	AllIn      bool
	SittingOut bool
	Bet        int // contribution this street
}

// NewPlayer creates a player with the given stack.
func NewPlayer(seat int, name string, chips int) *Player {
	return &Player{Seat: seat, Name: name, Chips: chips}
}

// CanAct returns true if the player can still make betting decisions this hand.
func (p *Player) CanAct() bool {
	return !p.Folded && !p.AllIn && !p.SittingOut
}

// InHand returns true if the player was dealt in and has not folded.
func (p *Player) InHand() bool {
	return !p.Folded && !p.SittingOut
}

// pay moves up to amount from the stack and returns what was actually paid.
func (p *Player) pay(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	if amount < 0 {
		amount = 0
	}
	p.Chips -= amount
	if p.Chips == 0 && amount > 0 {
		p.AllIn = true
	}
	return amount
}

func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.Folded = false
	p.AllIn = false
	p.Bet = 0
	p.SittingOut = p.Chips <= 0
}

// View returns a copy of the player including hole cards.
func (p *Player) View() PlayerView {
	return PlayerView{
		Seat:       p.Seat,
		Name:       p.Name,
		Chips:      p.Chips,
		Bet:        p.Bet,
		HoleCards:  slices.Clone(p.HoleCards),
		Folded:     p.Folded,
		AllIn:      p.AllIn,
		SittingOut: p.SittingOut,
	}
}

// publicView is View without hole cards, for anything other than the player's own decider.
func (p *Player) publicView() PlayerView {
	v := p.View()
	v.HoleCards = nil
	return v
}

// PlayerView is an immutable copy of a Player handed to collaborators.
type PlayerView struct {
	Seat       int
	Name       string
	Chips      int
	Bet        int
	HoleCards  []poker.Card
	Folded     bool
	AllIn      bool
	SittingOut bool
}

// CanAct mirrors Player.CanAct.
func (v PlayerView) CanAct() bool {
	return !v.Folded && !v.AllIn && !v.SittingOut
}

// ToCall returns the chips needed to match currentBet, capped at the stack.
func (v PlayerView) ToCall(currentBet int) int {
	return min(max(currentBet-v.Bet, 0), v.Chips)
}
