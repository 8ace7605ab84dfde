package phh

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lox/pokerengine/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return errors.New("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a single hand written by Encode.
func Decode(r io.Reader) (*HandHistory, error) {
	var hand HandHistory
	if _, err := toml.NewDecoder(r).Decode(&hand); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}
	return &hand, nil
}

// WriteSection writes hand as a numbered section of a .phhs session file.
func WriteSection(w io.Writer, section int, hand *HandHistory) error {
	if _, err := fmt.Fprintf(w, "[%d]\n", section); err != nil {
		return err
	}
	if err := Encode(w, hand); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// DecodeSections reads every hand of a .phhs session file in section order.
func DecodeSections(r io.Reader) ([]HandHistory, error) {
	sections := make(map[string]HandHistory)
	if _, err := toml.NewDecoder(r).Decode(&sections); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}

	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareSectionKeys)

	hands := make([]HandHistory, 0, len(keys))
	for _, k := range keys {
		hand := sections[k]
		if hand.HandID == "" {
			hand.HandID = k
		}
		hands = append(hands, hand)
	}
	return hands, nil
}

func compareSectionKeys(a, b string) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai - bi
	}
	return strings.Compare(a, b)
}

// FormatAction converts an engine action to a PHH action string. streetBet is the highest
// contribution on the street before the action; an all-in at or below it is a call.
func FormatAction(position int, action game.PlayerAction, streetBet int) string {
	player := fmt.Sprintf("p%d", position)
	switch action.Kind {
	case game.Fold:
		return player + " f"
	case game.Check, game.Call:
		return player + " cc"
	case game.AllIn:
		if action.Amount <= streetBet {
			return player + " cc"
		}
	}
	return fmt.Sprintf("%s cbr %d", player, action.Amount)
}
