// Package sqlstore persists chip balances and hand summaries in SQLite.
package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lox/pokerengine/internal/game"
	"github.com/lox/pokerengine/internal/phh"
	"github.com/lox/pokerengine/poker"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const schema = `
CREATE TABLE IF NOT EXISTS chips (
	name    TEXT PRIMARY KEY,
	chips   INTEGER NOT NULL,
	updated TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS hands (
	id        TEXT PRIMARY KEY,
	number    INTEGER NOT NULL,
	variant   TEXT NOT NULL,
	started   TIMESTAMP NOT NULL,
	button    INTEGER NOT NULL,
	board     TEXT NOT NULL,
	pot       INTEGER NOT NULL,
	unclaimed INTEGER NOT NULL,
	showdown  BOOLEAN NOT NULL,
	phh       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	hand_id   TEXT NOT NULL REFERENCES hands(id),
	player    TEXT NOT NULL,
	starting  INTEGER NOT NULL,
	finishing INTEGER NOT NULL,
	won       INTEGER NOT NULL,
	PRIMARY KEY (hand_id, player)
);`

// Store implements game.Store on a SQLite database.
type Store struct {
	db    *sqlx.DB
	table string
	now   func() time.Time
}

var _ game.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithTable sets the table name written into each encoded hand.
func WithTable(name string) Option {
	return func(s *Store) { s.table = name }
}

// HandSummary is a row of the hands table.
type HandSummary struct {
	ID        string    `db:"id"`
	Number    int       `db:"number"`
	Variant   string    `db:"variant"`
	Started   time.Time `db:"started"`
	Button    int       `db:"button"`
	Board     string    `db:"board"`
	Pot       int       `db:"pot"`
	Unclaimed int       `db:"unclaimed"`
	Showdown  bool      `db:"showdown"`
	PHH       string    `db:"phh"`
}

// PlayerTotal aggregates a player's results over every logged hand.
type PlayerTotal struct {
	Player string `db:"player"`
	Hands  int    `db:"hands"`
	Net    int    `db:"net"`
	Won    int    `db:"won"`
}

type result struct {
	HandID    string `db:"hand_id"`
	Player    string `db:"player"`
	Starting  int    `db:"starting"`
	Finishing int    `db:"finishing"`
	Won       int    `db:"won"`
}

// Open connects to dsn (a file path or ":memory:") and creates the schema.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", dsn, err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: create schema: %w", err)
	}
	s := &Store{db: db, table: "default", now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePlayerChips upserts every player's balance.
func (s *Store) SavePlayerChips(players []game.PlayerView) error {
	const query = `
INSERT INTO chips (name, chips, updated) VALUES (?, ?, ?)
ON CONFLICT (name) DO UPDATE SET chips = excluded.chips, updated = excluded.updated`

	ctx := context.Background()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := s.now().UTC()
	for _, p := range players {
		if _, err := tx.ExecContext(ctx, query, p.Name, p.Chips, now); err != nil {
			return fmt.Errorf("sqlstore: save chips for %s: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// LoadPlayerChips returns every saved balance.
func (s *Store) LoadPlayerChips() (map[string]int, error) {
	const query = `SELECT name, chips FROM chips`

	var rows []struct {
		Name  string `db:"name"`
		Chips int    `db:"chips"`
	}
	if err := s.db.SelectContext(context.Background(), &rows, query); err != nil {
		return nil, fmt.Errorf("sqlstore: load chips: %w", err)
	}
	chips := make(map[string]int, len(rows))
	for _, r := range rows {
		chips[r.Name] = r.Chips
	}
	return chips, nil
}

// LogHand stores the hand summary, its PHH encoding and one result row per dealt-in player.
func (s *Store) LogHand(h *game.HandHistory) error {
	const insertHand = `
INSERT INTO hands (id, number, variant, started, button, board, pot, unclaimed, showdown, phh)
VALUES (:id, :number, :variant, :started, :button, :board, :pot, :unclaimed, :showdown, :phh)`
	const insertResult = `
INSERT INTO results (hand_id, player, starting, finishing, won)
VALUES (:hand_id, :player, :starting, :finishing, :won)`

	encoded, err := phh.EncodeToBytes(phh.FromGame(h, s.table))
	if err != nil {
		return fmt.Errorf("sqlstore: encode hand: %w", err)
	}
	summary := HandSummary{
		ID:        h.ID,
		Number:    h.Number,
		Variant:   h.Variant,
		Started:   h.Started.UTC(),
		Button:    h.Button,
		Board:     poker.FormatCards(h.Board),
		Pot:       h.TotalPot(),
		Unclaimed: h.Unclaimed,
		Showdown:  h.Showdown,
		PHH:       string(encoded),
	}

	ctx := context.Background()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertHand, summary); err != nil {
		return fmt.Errorf("sqlstore: insert hand %s: %w", h.ID, err)
	}
	for i, name := range h.Players {
		if h.StartingStacks[i] == 0 {
			continue
		}
		r := result{
			HandID:    h.ID,
			Player:    name,
			Starting:  h.StartingStacks[i],
			Finishing: h.FinishingStacks[i],
			Won:       h.Winnings[name],
		}
		if _, err := tx.NamedExecContext(ctx, insertResult, r); err != nil {
			return fmt.Errorf("sqlstore: insert result for %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// Hands returns the most recent hands, newest first. A limit of zero returns all.
func (s *Store) Hands(ctx context.Context, limit int) ([]HandSummary, error) {
	query := `SELECT id, number, variant, started, button, board, pot, unclaimed, showdown, phh
FROM hands ORDER BY started DESC, number DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	var hands []HandSummary
	if err := s.db.SelectContext(ctx, &hands, query, args...); err != nil {
		return nil, fmt.Errorf("sqlstore: list hands: %w", err)
	}
	return hands, nil
}

// Totals aggregates results per player, best net first.
func (s *Store) Totals(ctx context.Context) ([]PlayerTotal, error) {
	const query = `
SELECT player, COUNT(*) AS hands, SUM(finishing - starting) AS net, SUM(won) AS won
FROM results
GROUP BY player
ORDER BY net DESC, player`

	var totals []PlayerTotal
	if err := s.db.SelectContext(ctx, &totals, query); err != nil {
		return nil, fmt.Errorf("sqlstore: totals: %w", err)
	}
	return totals, nil
}
