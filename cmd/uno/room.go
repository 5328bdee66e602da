// cmd/uno/room.go
package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/leighton-lakez/reverse/internal/multiplayer"
)

// roomLoop reads commands for a two-player session. restart is not available in rooms.
func roomLoop(ctx context.Context, in *bufio.Scanner, sess *multiplayer.Session) error {
	fmt.Printf("Joined room %s as %s. Type 'hand' once the game is dealt.\n", sess.Code(), sess.PlayerID())
	for prompt(); in.Scan(); prompt() {
		if ctx.Err() != nil {
			return nil
		}
		cmd, err := parseCommand(in.Text())
		if err != nil {
			fmt.Println(err)
			continue
		}
		switch cmd.name {
		case "quit":
			return nil
		case "restart":
			fmt.Println("restart is only available in local games")
		case "hand":
			showRoom(sess)
		case "draw":
			if err := sess.DrawCard(ctx); err != nil {
				fmt.Println(err)
			}
		case "play":
			view, err := sess.View()
			if err != nil {
				fmt.Println(err)
				continue
			}
			card, err := cmd.pick(ownHand(view, sess.PlayerID()))
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := sess.PlayCard(ctx, card.ID, cmd.color); err != nil {
				fmt.Println(err)
			}
		}
	}
	return in.Err()
}

func showRoom(sess *multiplayer.Session) {
	rm := sess.Room()
	if rm.Status != models.StatusPlaying && rm.Status != models.StatusFinished {
		fmt.Printf("room %s is %s\n", rm.RoomCode, rm.Status)
		return
	}
	view, err := sess.View()
	if err != nil {
		fmt.Println(err)
		return
	}
	printView(view)
}
