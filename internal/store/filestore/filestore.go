// Package filestore persists chip balances and hand histories as plain files.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/lox/pokerengine/internal/fileutil"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/internal/phh"
)

const (
	ChipsFile = "chips.toml"
	HandsFile = "hands.phhs"
)

type chipsDocument struct {
	Chips map[string]int `toml:"chips"`
}

// Store implements game.Store on a directory.
type Store struct {
	dir    string
	table  string
	logger *log.Logger

	mu      sync.Mutex
	section int
}

var _ game.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithTable sets the table name written into each hand.
func WithTable(name string) Option {
	return func(s *Store) { s.table = name }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Open creates dir if needed and resumes section numbering from an existing hands file.
func Open(dir string, opts ...Option) (*Store, error) {
	s := &Store{dir: dir, table: "default", logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create dir: %w", err)
	}
	hands, err := s.Hands()
	if err != nil {
		return nil, err
	}
	s.section = len(hands)
	s.logger.Debug("Opened file store", "dir", dir, "hands", s.section)
	return s, nil
}

// SavePlayerChips replaces the chip file with the given balances.
func (s *Store) SavePlayerChips(players []game.PlayerView) error {
	doc := chipsDocument{Chips: make(map[string]int, len(players))}
	for _, p := range players {
		doc.Chips[p.Name] = p.Chips
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fileutil.WriteAtomic(filepath.Join(s.dir, ChipsFile), 0o644, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(doc)
	})
}

// LoadPlayerChips returns the saved balances, or an empty map when nothing was saved yet.
func (s *Store) LoadPlayerChips() (map[string]int, error) {
	var doc chipsDocument
	_, err := toml.DecodeFile(filepath.Join(s.dir, ChipsFile), &doc)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: read chips: %w", err)
	}
	if doc.Chips == nil {
		doc.Chips = map[string]int{}
	}
	return doc.Chips, nil
}

// LogHand appends the hand to the session file as the next numbered section.
func (s *Store) LogHand(h *game.HandHistory) error {
	hand := phh.FromGame(h, s.table)

	s.mu.Lock()
	defer s.mu.Unlock()
	section := s.section + 1
	err := fileutil.Append(filepath.Join(s.dir, HandsFile), 0o644, func(w io.Writer) error {
		return phh.WriteSection(w, section, hand)
	})
	if err != nil {
		return fmt.Errorf("filestore: append hand: %w", err)
	}
	s.section = section
	return nil
}

// Hands reads back every logged hand in order.
func (s *Store) Hands() ([]phh.HandHistory, error) {
	f, err := os.Open(filepath.Join(s.dir, HandsFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return phh.DecodeSections(f)
}
