package bot

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/poker"
)

// Scripted replays a fixed list of actions, then checks or calls. An action that is not legal
// when its turn comes is still returned; the engine folds it.
type Scripted struct {
	mu     sync.Mutex
	script []game.PlayerAction
}

func NewScripted(actions ...game.PlayerAction) *Scripted {
	return &Scripted{script: actions}
}

func (s *Scripted) RequestAction(_ game.PlayerView, _ game.Snapshot, legal []game.ValidAction) (game.PlayerAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.script) == 0 {
		return choose(legal, game.Check, game.Call), nil
	}
	next := s.script[0]
	s.script = s.script[1:]
	return next, nil
}

func (*Scripted) RequestDiscard(game.PlayerView, game.Snapshot) ([]poker.Card, error) {
	return nil, nil
}

// Remaining returns the number of scripted actions not yet played.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.script)
}

// ParseScript parses actions such as "call", "raise 40" or "allin".
func ParseScript(lines []string) ([]game.PlayerAction, error) {
	actions := make([]game.PlayerAction, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || len(fields) > 2 {
			return nil, fmt.Errorf("invalid scripted action %q", line)
		}
		kind, err := game.ParseActionKind(fields[0])
		if err != nil {
			return nil, err
		}
		a := game.PlayerAction{Kind: kind}
		if len(fields) == 2 {
			if a.Amount, err = strconv.Atoi(fields[1]); err != nil {
				return nil, fmt.Errorf("invalid amount in %q: %w", line, err)
			}
		}
		actions = append(actions, a)
	}
	return actions, nil
}
