// Package config loads session configuration from HCL files with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"
	"github.com/lox/pokerengine/internal/bot"
	"github.com/lox/pokerengine/internal/game"
)

// EnvPrefix prefixes every environment override, e.g. POKER_SESSION_BIG_BLIND.
const EnvPrefix = "POKER"

// StoreKinds lists the accepted store kinds.
var StoreKinds = []string{"none", "file", "sqlite"}

// Config is a complete session configuration.
type Config struct {
	Session SessionConfig
	Players []PlayerConfig
	Store   StoreConfig
	Log     LogConfig
}

// SessionConfig describes the game being played.
type SessionConfig struct {
	Variant         string `hcl:"variant,optional"`
	SmallBlind      int    `hcl:"small_blind,optional" split_words:"true"`
	BigBlind        int    `hcl:"big_blind,optional" split_words:"true"`
	Ante            int    `hcl:"ante,optional"`
	StartingChips   int    `hcl:"starting_chips,optional" split_words:"true"`
	Seed            int64  `hcl:"seed,optional"`
	MaxHands        int    `hcl:"max_hands,optional" split_words:"true"`
	DecisionTimeout string `hcl:"decision_timeout,optional" split_words:"true"`
}

// PlayerConfig seats one bot.
type PlayerConfig struct {
	Name     string   `hcl:"name,label"`
	Strategy string   `hcl:"strategy,optional"`
	Chips    int      `hcl:"chips,optional"`
	Script   []string `hcl:"script,optional"`
}

// StoreConfig selects where chips and hands are kept.
type StoreConfig struct {
	Kind  string `hcl:"kind,optional"`
	Path  string `hcl:"path,optional"`
	Table string `hcl:"table,optional"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `hcl:"level,optional"`
}

type file struct {
	Session *SessionConfig `hcl:"session,block"`
	Players []PlayerConfig `hcl:"player,block"`
	Store   *StoreConfig   `hcl:"store,block"`
	Log     *LogConfig     `hcl:"log,block"`
}

// Default returns the configuration used when no file is given: four bots playing hold'em.
func Default() *Config {
	cfg := &Config{
		Players: []PlayerConfig{
			{Name: "alice", Strategy: "tight"},
			{Name: "bob", Strategy: "random"},
			{Name: "carol", Strategy: "call"},
			{Name: "dave", Strategy: "tight"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads filename, applies defaults and environment overrides. A missing file yields the
// default configuration.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		return cfg, cfg.applyEnv()
	}
	if err != nil {
		return nil, err
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diagnostics(diags))
	}

	cfg := &Config{Players: raw.Players}
	if raw.Session != nil {
		cfg.Session = *raw.Session
	}
	if raw.Store != nil {
		cfg.Store = *raw.Store
	}
	if raw.Log != nil {
		cfg.Log = *raw.Log
	}
	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func diagnostics(diags hcl.Diagnostics) string {
	msgs := make([]string, 0, len(diags))
	for _, d := range diags {
		msgs = append(msgs, d.Error())
	}
	return strings.Join(msgs, "; ")
}

func (c *Config) applyDefaults() {
	s := &c.Session
	if s.Variant == "" {
		s.Variant = "holdem"
	}
	if s.SmallBlind == 0 {
		s.SmallBlind = 5
	}
	if s.BigBlind == 0 {
		s.BigBlind = 2 * s.SmallBlind
	}
	if s.StartingChips == 0 {
		s.StartingChips = 100 * s.BigBlind
	}
	if s.MaxHands == 0 {
		s.MaxHands = 100
	}

	for i := range c.Players {
		p := &c.Players[i]
		if p.Strategy == "" {
			p.Strategy = "call"
		}
		if p.Chips == 0 {
			p.Chips = s.StartingChips
		}
	}

	if c.Store.Kind == "" {
		c.Store.Kind = "none"
	}
	if c.Store.Table == "" {
		c.Store.Table = "default"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// applyEnv overrides settings from POKER_SESSION_*, POKER_STORE_* and POKER_LOG_*.
func (c *Config) applyEnv() error {
	sections := []struct {
		prefix string
		spec   any
	}{
		{EnvPrefix + "_SESSION", &c.Session},
		{EnvPrefix + "_STORE", &c.Store},
		{EnvPrefix + "_LOG", &c.Log},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.spec); err != nil {
			return fmt.Errorf("environment overrides: %w", err)
		}
	}
	return nil
}

// Validate checks the configuration is playable.
func (c *Config) Validate() error {
	if n := len(c.Players); n < 2 || n > 10 {
		return fmt.Errorf("need 2 to 10 players, got %d", n)
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	if c.Session.StartingChips <= 0 {
		return errors.New("starting chips must be positive")
	}
	if c.Session.MaxHands < 0 {
		return errors.New("max hands must not be negative")
	}
	if _, err := c.DecisionTimeout(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if !slices.Contains(bot.Strategies, p.Strategy) {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
		if p.Chips < 0 {
			return fmt.Errorf("player %s: chips must not be negative", p.Name)
		}
		if _, err := bot.ParseScript(p.Script); err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
	}

	if !slices.Contains(StoreKinds, c.Store.Kind) {
		return fmt.Errorf("invalid store kind %s", c.Store.Kind)
	}
	if c.Store.Kind != "none" && c.Store.Path == "" {
		return fmt.Errorf("store %s needs a path", c.Store.Kind)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %s", c.Log.Level)
	}
	return nil
}

// Blinds returns the forced bets of the session.
func (c *Config) Blinds() game.Blinds {
	return game.Blinds{Small: c.Session.SmallBlind, Big: c.Session.BigBlind, Ante: c.Session.Ante}
}

// Mode returns the configured variant.
func (c *Config) Mode() (game.GameMode, error) {
	return game.NewMode(c.Session.Variant, c.Blinds())
}

// DecisionTimeout returns the per-decision limit, zero when unset.
func (c *Config) DecisionTimeout() (time.Duration, error) {
	if c.Session.DecisionTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Session.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid decision timeout: %w", err)
	}
	if d < 0 {
		return 0, errors.New("decision timeout must not be negative")
	}
	return d, nil
}
