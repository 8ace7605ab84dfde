package game

import "github.com/lox/pokerengine/poker"

// Observer receives hand events. Calls are synchronous, in registration order, after the state
// change they describe. Observers only ever see copies, and never a player's hole cards: those
// are in the HandHistory given to the Store.
type Observer interface {
	OnGameStarted(snap Snapshot)
	OnPhaseStart(phase string)
	OnPlayerAction(action PlayerAction)
	OnDealHoleCards(player PlayerView, count int)
	OnDealCommunity(cards []poker.Card)
	OnPotUpdate(total int)
	OnShowdown(ranks map[string]poker.HandRank)
	OnHandEnded(winnings map[string]int)
	OnPlayerTimeout(player PlayerView)
}

// BaseObserver implements Observer with no-ops. Embed it to handle only some events.
type BaseObserver struct{}

func (BaseObserver) OnGameStarted(Snapshot) {}
func (BaseObserver) OnPhaseStart(string) {}
func (BaseObserver) OnPlayerAction(PlayerAction) {}
func (BaseObserver) OnDealHoleCards(PlayerView, int) {}
func (BaseObserver) OnDealCommunity([]poker.Card) {}
func (BaseObserver) OnPotUpdate(int) {}
func (BaseObserver) OnShowdown(map[string]poker.HandRank) {}
func (BaseObserver) OnHandEnded(map[string]int) {}
func (BaseObserver) OnPlayerTimeout(PlayerView) {}

// observers is the ordered subscriber list.
type observers []Observer

func (obs observers) notify(fn func(Observer)) {
	for _, o := range obs {
		fn(o)
	}
}
