package phh

import "time"

// HandHistory represents a single poker hand encoded in PHH format. Fields prefixed with an
// underscore are user-defined PHH fields.
type HandHistory struct {
	Variant           string   `toml:"variant"`
	Table             string   `toml:"table,omitempty"`
	SeatCount         int      `toml:"seat_count,omitempty"`
	Seats             []int    `toml:"seats,omitempty"`
	Antes             []int    `toml:"antes"`
	BlindsOrStraddles []int    `toml:"blinds_or_straddles"`
	MinBet            int      `toml:"min_bet"`
	StartingStacks    []int    `toml:"starting_stacks"`
	FinishingStacks   []int    `toml:"finishing_stacks,omitempty"`
	Winnings          []int    `toml:"winnings,omitempty"`
	Actions           []string `toml:"actions"`
	Players           []string `toml:"players,omitempty"`
	HandID            string   `toml:"hand"`
	Time              string   `toml:"time,omitempty"`
	TimeZone          string   `toml:"time_zone,omitempty"`
	Day               int      `toml:"day,omitempty"`
	Month             int      `toml:"month,omitempty"`
	Year              int      `toml:"year,omitempty"`

	Game      string `toml:"_game,omitempty"`
	Number    int    `toml:"_number,omitempty"`
	Unclaimed int    `toml:"_unclaimed,omitempty"`

	Timestamp time.Time `toml:"-"`
}

// Net returns each player's chip change, keyed by name.
func (h HandHistory) Net() map[string]int {
	net := make(map[string]int, len(h.Players))
	for i, name := range h.Players {
		if i < len(h.StartingStacks) && i < len(h.FinishingStacks) {
			net[name] = h.FinishingStacks[i] - h.StartingStacks[i]
		}
	}
	return net
}

// Winners returns the players who collected chips.
func (h HandHistory) Winners() []string {
	var names []string
	for i, won := range h.Winnings {
		if won > 0 && i < len(h.Players) {
			names = append(names, h.Players[i])
		}
	}
	return names
}

// variantCodes maps engine variant names onto PHH variant codes. Omaha and draw are played
// no-limit here, which PHH has no standard code for.
var variantCodes = map[string]string{
	"holdem": "NT",
	"omaha":  "NO",
	"draw":   "ND",
}

// VariantCode returns the PHH variant code for an engine variant name.
func VariantCode(name string) string {
	if code, ok := variantCodes[name]; ok {
		return code
	}
	return name
}
