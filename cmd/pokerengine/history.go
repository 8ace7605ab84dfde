package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/pokerengine/internal/phh"
	"github.com/lox/pokerengine/internal/store/filestore"
	"github.com/lox/pokerengine/internal/store/sqlstore"
	"github.com/muesli/termenv"
)

// HistoryCmd lists stored hands and per-player totals.
type HistoryCmd struct {
	Kind  string `enum:"file,sqlite" default:"file" help:"Store kind (file or sqlite)"`
	Path  string `arg:"" type:"path" help:"Store directory (file) or database (sqlite)"`
	Limit int    `default:"20" help:"Most recent hands to list (0 for all)"`
}

// handRow is one listed hand, whichever store it came from.
type handRow struct {
	Number  int
	ID      string
	Variant string
	Pot     int
	Winners []string
}

type totalRow struct {
	Player string
	Hands  int
	Net    int
}

func (c *HistoryCmd) Run(g *Globals) error {
	ctx, cancel := signalContext()
	defer cancel()

	var (
		hands  []handRow
		totals []totalRow
		err    error
	)
	switch c.Kind {
	case "sqlite":
		hands, totals, err = c.fromSQLite(ctx)
	default:
		hands, totals, err = c.fromFiles()
	}
	if err != nil {
		return err
	}
	return writeHistory(os.Stdout, hands, totals, g.profile())
}

func (c *HistoryCmd) fromFiles() ([]handRow, []totalRow, error) {
	if _, err := os.Stat(c.Path); err != nil {
		return nil, nil, err
	}
	s, err := filestore.Open(c.Path)
	if err != nil {
		return nil, nil, err
	}
	all, err := s.Hands()
	if err != nil {
		return nil, nil, err
	}
	hands, totals := summariseFileHands(all, c.Limit)
	return hands, totals, nil
}

// summariseFileHands lists the newest limit hands first and totals every hand.
func summariseFileHands(all []phh.HandHistory, limit int) ([]handRow, []totalRow) {
	net := map[string]*totalRow{}
	for _, h := range all {
		for name, n := range h.Net() {
			t, ok := net[name]
			if !ok {
				t = &totalRow{Player: name}
				net[name] = t
			}
			t.Hands++
			t.Net += n
		}
	}

	recent := slices.Clone(all)
	slices.Reverse(recent)
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	rows := make([]handRow, 0, len(recent))
	for _, h := range recent {
		row := handRow{Number: h.Number, ID: h.HandID, Variant: h.Game, Pot: h.Unclaimed, Winners: h.Winners()}
		for _, won := range h.Winnings {
			row.Pot += won
		}
		rows = append(rows, row)
	}

	totals := make([]totalRow, 0, len(net))
	for _, name := range slices.Sorted(maps.Keys(net)) {
		totals = append(totals, *net[name])
	}
	slices.SortStableFunc(totals, func(a, b totalRow) int { return b.Net - a.Net })
	return rows, totals
}

func (c *HistoryCmd) fromSQLite(ctx context.Context) ([]handRow, []totalRow, error) {
	if _, err := os.Stat(c.Path); err != nil {
		return nil, nil, err
	}
	s, err := sqlstore.Open(ctx, c.Path)
	if err != nil {
		return nil, nil, err
	}
	defer s.Close()

	summaries, err := s.Hands(ctx, c.Limit)
	if err != nil {
		return nil, nil, err
	}
	hands := make([]handRow, 0, len(summaries))
	for _, h := range summaries {
		row := handRow{Number: h.Number, ID: h.ID, Variant: h.Variant, Pot: h.Pot}
		decoded, err := phh.Decode(strings.NewReader(h.PHH))
		if err != nil {
			return nil, nil, fmt.Errorf("hand %s: %w", h.ID, err)
		}
		row.Winners = decoded.Winners()
		hands = append(hands, row)
	}

	pt, err := s.Totals(ctx)
	if err != nil {
		return nil, nil, err
	}
	totals := make([]totalRow, len(pt))
	for i, t := range pt {
		totals[i] = totalRow{Player: t.Player, Hands: t.Hands, Net: t.Net}
	}
	return hands, totals, nil
}

func writeHistory(w io.Writer, hands []handRow, totals []totalRow, profile termenv.Profile) error {
	if len(hands) == 0 {
		_, err := fmt.Fprintln(w, "No hands recorded")
		return err
	}

	rows := make([][]string, 0, len(hands))
	for _, h := range hands {
		rows = append(rows, []string{strconv.Itoa(h.Number), h.ID, h.Variant, chips(h.Pot), strings.Join(h.Winners, ", ")})
	}
	fmt.Fprintln(w, renderTable(profile, []string{"#", "HAND", "VARIANT", "POT", "WINNERS"}, rows))

	rows = rows[:0]
	for _, t := range totals {
		rows = append(rows, []string{t.Player, chips(t.Hands), chips(t.Net)})
	}
	_, err := fmt.Fprintln(w, renderTable(profile, []string{"PLAYER", "HANDS", "NET"}, rows))
	return err
}
