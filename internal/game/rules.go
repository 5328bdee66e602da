// internal/game/rules.go
package game

import (
	"fmt"

	"github.com/leighton-lakez/reverse/internal/models"
)

// Rules holds the tunable parts of a game.
type Rules struct {
	HandSize     int          `json:"handSize"`     // cards dealt to each player; default 7
	DefaultColor models.Color `json:"defaultColor"` // active color when the first discard is a wild
	FreshDraws   bool         `json:"freshDraws"`   // draws manufacture new cards instead of depleting the deck
}

// DefaultRules returns the standard configuration.
func DefaultRules() Rules {
	return Rules{
		HandSize:     7,
		DefaultColor: models.Red,
		FreshDraws:   false,
	}
}

// Update will update the rules with the new values provided.
// Keys that are absent or nil are ignored and the old value persists.
// On error rules is left untouched.
func (rules *Rules) Update(newRules map[string]interface{}) error {
	var ok bool
	var err error
	next := *rules

	assignBool := func(field *bool, key string) error {
		if val, exists := newRules[key]; exists && val != nil {
			var b bool
			if b, ok = val.(bool); !ok {
				return fmt.Errorf("invalid type for %s", key)
			}
			*field = b
		}
		return nil
	}

	assignInt := func(field *int, key string, minVal, maxVal int) error {
		if val, exists := newRules[key]; exists && val != nil {
			var n int
			// JSON numbers decode as float64
			switch v := val.(type) {
			case float64:
				n = int(v)
			case int:
				n = v
			default:
				return fmt.Errorf("invalid type for %s", key)
			}
			if n < minVal || n > maxVal {
				return fmt.Errorf("%s must be between %d and %d", key, minVal, maxVal)
			}
			*field = n
		}
		return nil
	}

	if err = assignInt(&next.HandSize, "handSize", 1, 20); err != nil {
		return err
	}
	if err = assignBool(&next.FreshDraws, "freshDraws"); err != nil {
		return err
	}
	if val, exists := newRules["defaultColor"]; exists && val != nil {
		s, isString := val.(string)
		if !isString {
			return fmt.Errorf("invalid type for defaultColor")
		}
		c, err := models.ParseColor(s)
		if err != nil {
			return err
		}
		next.DefaultColor = c
	}
	*rules = next
	return nil
}

// ParseRules applies a map of overrides to a copy of current.
func ParseRules(overrides map[string]interface{}, current Rules) (Rules, error) {
	rules := current
	if err := rules.Update(overrides); err != nil {
		return current, err
	}
	return rules, nil
}

// Direction is the rotation order of turns.
type Direction string

const (
	Forward  Direction = "forward"
	Reversed Direction = "reversed"
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Reversed {
		return Forward
	}
	return Reversed
}

// CanPlay reports whether card may be played on top of top while currentColor is active.
// A value match is legal across colors.
func CanPlay(card, top models.Card, currentColor models.Color) bool {
	return card.Color == models.Wild ||
		card.Color == currentColor ||
		card.Value == top.Value
}

// NextTurnIndex returns the seat one step away from current in the given direction.
func NextTurnIndex(current int, direction Direction, playerCount int) int {
	step := 1
	if direction == Reversed {
		step = -1
	}
	return (current + step + playerCount) % playerCount
}

// Effect names the side effect a played card had.
type Effect string

const (
	EffectNone    Effect = ""
	EffectSkip    Effect = "skip"
	EffectReverse Effect = "reverse"
	EffectDraw2   Effect = "draw2"
	EffectWild    Effect = "wild"
	EffectWild4   Effect = "wild4"
)

// Outcome describes what a play or draw did, for notifications.
type Outcome struct {
	Seat     int          // seat that acted
	Card     *models.Card // card played; nil for a draw
	Effect   Effect
	Victim   int // seat that was skipped or forced to draw; -1 if none
	Drawn    int // cards drawn by the victim, or by the actor on a draw
	Next     int // seat whose turn it is now
	GameOver bool
}

// ResolveEffect applies card's effect to s and advances the turn. The card must already be
// on the discard pile and the active color already set.
func ResolveEffect(card models.Card, s *State) Outcome {
	n := s.PlayerCount()
	out := Outcome{Seat: s.TurnIndex, Card: &card, Victim: -1}
	next := NextTurnIndex(s.TurnIndex, s.Direction, n)

	switch card.Value {
	case models.Reverse:
		out.Effect = EffectReverse
		s.Direction = s.Direction.Toggle()
		if n == 2 {
			// two players: the opponent is skipped and the same player goes again
			out.Victim = next
		} else {
			s.TurnIndex = NextTurnIndex(s.TurnIndex, s.Direction, n)
		}
	case models.Skip:
		out.Effect = EffectSkip
		out.Victim = next
		s.TurnIndex = NextTurnIndex(next, s.Direction, n)
	case models.Draw2:
		out.Effect = EffectDraw2
		out.Victim = next
		out.Drawn = len(s.drawInto(next, 2))
		s.TurnIndex = NextTurnIndex(next, s.Direction, n)
	case models.Wild4:
		out.Effect = EffectWild4
		out.Victim = next
		out.Drawn = len(s.drawInto(next, 4))
		s.TurnIndex = NextTurnIndex(next, s.Direction, n)
	case models.WildV:
		out.Effect = EffectWild
		s.TurnIndex = next
	default:
		s.TurnIndex = next
	}
	out.Next = s.TurnIndex
	return out
}
