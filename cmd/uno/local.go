// cmd/uno/local.go
package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/leighton-lakez/reverse/internal/bot"
	"github.com/leighton-lakez/reverse/internal/game"
	"github.com/sirupsen/logrus"
)

// playLocal runs a game against bots until the user quits or stdin ends.
func playLocal(in *bufio.Scanner, logger *logrus.Logger, rules game.Rules, d bot.Difficulty, delay time.Duration, players int) error {
	brain, err := bot.NewBrain(d, nil)
	if err != nil {
		return err
	}
	g := game.NewLocalGame(game.LocalOptions{
		Rules:    rules,
		BotDelay: delay,
		Logger:   logger,
		BotTurn:  bot.LocalTurn(brain),
		OnEvent:  printEvent,
	})
	defer g.Stop()
	if err := g.Start(players); err != nil {
		return err
	}
	printView(g.Snapshot())

	for prompt(); in.Scan(); prompt() {
		cmd, err := parseCommand(in.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}
		switch cmd.name {
		case "quit":
			return nil
		case "hand":
			printView(g.Snapshot())
		case "restart":
			if err := g.Restart(); err != nil {
				fmt.Println(err)
				continue
			}
			printView(g.Snapshot())
		case "draw":
			if err := g.DrawCard(); err != nil {
				fmt.Println(err)
			}
		case "play":
			hand := ownHand(g.Snapshot(), game.HumanID)
			card, err := cmd.pick(hand)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := g.PlayCard(card.ID, cmd.color); err != nil {
				fmt.Println(err)
			}
		}
	}
	return in.Err()
}
