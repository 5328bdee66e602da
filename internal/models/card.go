// internal/models/card.go
package models

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Color is the color of a card, or the active color of a game.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Wild   Color = "wild"
)

// Colors lists the four concrete colors in their canonical order.
// Any tie-break over colors uses this order.
var Colors = []Color{Red, Blue, Green, Yellow}

// IsConcrete reports whether c is one of the four playable colors (not wild, not empty).
func (c Color) IsConcrete() bool {
	switch c {
	case Red, Blue, Green, Yellow:
		return true
	}
	return false
}

// ParseColor accepts a concrete color name.
func ParseColor(s string) (Color, error) {
	c := Color(s)
	if !c.IsConcrete() {
		return "", fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}

// Value is the face value of a card: "0"-"9" or one of the action values.
type Value string

const (
	Skip    Value = "skip"
	Reverse Value = "reverse"
	Draw2   Value = "draw2"
	WildV   Value = "wild"
	Wild4   Value = "wild4"
)

// NumberValue returns the Value for a digit 0-9.
func NumberValue(n int) Value {
	return Value(strconv.Itoa(n))
}

// IsNumber reports whether v is one of "0".."9".
func (v Value) IsNumber() bool {
	return len(v) == 1 && v[0] >= '0' && v[0] <= '9'
}

// Card is a single immutable UNO card.
type Card struct {
	ID    uuid.UUID `json:"id"`
	Color Color     `json:"color"`
	Value Value     `json:"value"`
}

// NewCard builds a card with a fresh random ID.
func NewCard(color Color, value Value) Card {
	return Card{ID: uuid.New(), Color: color, Value: value}
}

// IsWild is true for wild and wild4.
func (c Card) IsWild() bool {
	return c.Value == WildV || c.Value == Wild4
}

// IsAction is true for the cards bots treat as aggressive plays.
func (c Card) IsAction() bool {
	switch c.Value {
	case Skip, Reverse, Draw2, Wild4:
		return true
	}
	return false
}

// Rank is the numeric face value; action and wild cards rank 0.
func (c Card) Rank() int {
	if !c.Value.IsNumber() {
		return 0
	}
	return int(c.Value[0] - '0')
}

func (c Card) String() string {
	if c.IsWild() {
		return string(c.Value)
	}
	return fmt.Sprintf("%s %s", c.Color, c.Value)
}
