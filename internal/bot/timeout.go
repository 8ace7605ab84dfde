package bot

import (
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/poker"
)

// Timeout bounds how long a decider may think. When the limit passes first it returns
// game.ErrDecisionTimeout; the wrapped decider's late answer is dropped.
type Timeout struct {
	decider game.Decider
	limit   time.Duration
	clock   quartz.Clock
}

var _ game.Decider = (*Timeout)(nil)

// NewTimeout wraps decider. A nil clock uses the real one.
func NewTimeout(decider game.Decider, limit time.Duration, clock quartz.Clock) *Timeout {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Timeout{decider: decider, limit: limit, clock: clock}
}

type outcome[T any] struct {
	value T
	err   error
}

func (t *Timeout) RequestAction(player game.PlayerView, snap game.Snapshot, legal []game.ValidAction) (game.PlayerAction, error) {
	return race(t, player.Name, func() (game.PlayerAction, error) {
		return t.decider.RequestAction(player, snap, legal)
	})
}

func (t *Timeout) RequestDiscard(player game.PlayerView, snap game.Snapshot) ([]poker.Card, error) {
	return race(t, player.Name, func() ([]poker.Card, error) {
		return t.decider.RequestDiscard(player, snap)
	})
}

func race[T any](t *Timeout, name string, decide func() (T, error)) (T, error) {
	expired := make(chan struct{})
	timer := t.clock.AfterFunc(t.limit, func() {
		close(expired)
	})
	defer timer.Stop()

	done := make(chan outcome[T], 1)
	go func() {
		v, err := decide()
		done <- outcome[T]{v, err}
	}()

	select {
	case o := <-done:
		return o.value, o.err
	case <-expired:
		var zero T
		return zero, fmt.Errorf("%s after %s: %w", name, t.limit, game.ErrDecisionTimeout)
	}
}
