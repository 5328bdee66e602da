// cmd/uno/render.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leighton-lakez/reverse/internal/game"
	"github.com/leighton-lakez/reverse/internal/models"
)

type command struct {
	name  string
	index int // 1-based position in the hand, for play
	color models.Color
}

// parseCommand understands: play <n> [color], draw, restart, hand, quit.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, fmt.Errorf("commands: play <n> [color], draw, restart, hand, quit")
	}
	cmd := command{name: fields[0]}
	switch cmd.name {
	case "draw", "restart", "hand", "quit":
		return cmd, nil
	case "play":
		if len(fields) < 2 {
			return command{}, fmt.Errorf("usage: play <n> [color]")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return command{}, fmt.Errorf("invalid card number %q", fields[1])
		}
		cmd.index = n
		if len(fields) > 2 {
			c, err := models.ParseColor(fields[2])
			if err != nil {
				return command{}, err
			}
			cmd.color = c
		}
		return cmd, nil
	}
	return command{}, fmt.Errorf("unknown command %q", cmd.name)
}

// pick returns the card the play command refers to.
func (c command) pick(hand []models.Card) (models.Card, error) {
	if c.index > len(hand) {
		return models.Card{}, fmt.Errorf("you only have %d cards", len(hand))
	}
	card := hand[c.index-1]
	if card.IsWild() && c.color == "" {
		return models.Card{}, fmt.Errorf("name a color: play %d red|blue|green|yellow", c.index)
	}
	return card, nil
}

func ownHand(v game.View, playerID string) []models.Card {
	for _, p := range v.Players {
		if p.PlayerID == playerID {
			return p.Hand
		}
	}
	return nil
}

func printView(v game.View) {
	fmt.Printf("Top: %s   Color: %s   Deck: %d   Direction: %s\n", v.DiscardTop, v.CurrentColor, v.DeckSize, v.Direction)
	for _, p := range v.Players {
		marker := " "
		if p.IsCurrentTurn {
			marker = ">"
		}
		fmt.Printf("%s %-8s %2d cards\n", marker, p.PlayerID, p.HandSize)
		for i, c := range p.Hand {
			fmt.Printf("    %2d) %s\n", i+1, c)
		}
	}
	if v.Winner != "" {
		fmt.Printf("Winner: %s\n", v.Winner)
	}
}

func printEvent(ev game.GameEvent) {
	switch ev.Type {
	case game.EventCardPlayed:
		fmt.Printf("* %s played %s\n", ev.Player, ev.Card)
	case game.EventCardDrawn:
		fmt.Printf("* %s drew %d\n", ev.Player, ev.Count)
	case game.EventSkip:
		fmt.Printf("* %s is skipped\n", ev.Target)
	case game.EventReverse:
		fmt.Printf("* %s reversed the direction\n", ev.Player)
	case game.EventDrawTwo, game.EventWildDrawFour:
		fmt.Printf("* %s draws %d and is skipped\n", ev.Target, ev.Count)
	case game.EventPlayerTurn:
		fmt.Printf("* %s to move\n", ev.Player)
	case game.EventGameOver:
		fmt.Printf("* game over, %s wins\n", ev.Player)
	default:
		if ev.Message != "" {
			fmt.Printf("* %s\n", ev.Message)
		}
	}
}

func prompt() { fmt.Print("> ") }
