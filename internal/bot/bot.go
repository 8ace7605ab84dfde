// Package bot provides game.Decider implementations used by the CLI, the simulator and tests.
package bot

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/pokerengine/internal/game"
)

// Strategies lists the strategy names accepted by New.
var Strategies = []string{"call", "fold", "random", "scripted", "tight"}

// Options carries what a strategy may need.
type Options struct {
	Rand   *rand.Rand
	Logger *log.Logger
	Script []game.PlayerAction // scripted only
}

// New builds the decider for a strategy name.
func New(strategy string, opts Options) (game.Decider, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	switch strings.ToLower(strategy) {
	case "call":
		return NewCaller(), nil
	case "fold":
		return NewFolder(), nil
	case "random":
		if opts.Rand == nil {
			return nil, fmt.Errorf("strategy %q needs a random source", strategy)
		}
		return NewRandom(opts.Rand), nil
	case "scripted":
		return NewScripted(opts.Script...), nil
	case "tight":
		return NewTight(opts.Logger), nil
	}
	return nil, fmt.Errorf("unknown strategy %q", strategy)
}

// choose returns the first preferred kind that is legal, priced at its minimum.
func choose(legal []game.ValidAction, preferred ...game.ActionKind) game.PlayerAction {
	for _, kind := range preferred {
		if v, ok := game.Find(legal, kind); ok {
			return game.PlayerAction{Kind: kind, Amount: v.Min}
		}
	}
	return game.PlayerAction{Kind: game.Fold}
}
