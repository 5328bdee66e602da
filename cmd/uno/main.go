// cmd/uno/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/leighton-lakez/reverse/internal/bot"
	"github.com/leighton-lakez/reverse/internal/config"
	"github.com/leighton-lakez/reverse/internal/game"
	"github.com/leighton-lakez/reverse/internal/multiplayer"
	"github.com/leighton-lakez/reverse/internal/room"
	"github.com/leighton-lakez/reverse/internal/store"
	"github.com/sirupsen/logrus"
)

func main() {
	players := flag.Int("players", 2, "number of players in a local game, you included (2-4)")
	difficulty := flag.String("difficulty", "medium", "bot difficulty: easy, medium or hard")
	hostGuest := flag.String("host", "", "create a two-player room and invite this guest id")
	joinCode := flag.String("join", "", "join the two-player room with this code")
	playerID := flag.String("id", "", "your player id in a room (default: a random id)")
	handSize := flag.Int("hand", 0, "cards dealt to each player (default 7, or UNO_HAND_SIZE)")
	flag.Parse()

	cfg := config.Load()
	logger := cfg.NewLogger()
	logger.SetOutput(os.Stderr)
	if logger.GetLevel() > logrus.WarnLevel {
		logger.SetLevel(logrus.WarnLevel)
	}

	rules, err := gameRules(cfg, *handSize)
	exitOn(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	in := bufio.NewScanner(os.Stdin)

	if *hostGuest != "" || *joinCode != "" {
		id := *playerID
		if id == "" {
			id = uuid.NewString()
		}
		err := playRoom(ctx, in, cfg, logger, rules, id, *hostGuest, *joinCode)
		ev, fallback := roomFallback(err, *joinCode)
		if !fallback {
			exitOn(err)
			return
		}
		printEvent(ev)
	}

	d, err := bot.ParseDifficulty(*difficulty)
	exitOn(err)
	exitOn(playLocal(in, logger, rules, d, cfg.BotDelay, *players))
}

// gameRules layers the -hand flag over the rule overrides from the environment.
func gameRules(cfg *config.Config, handSize int) (game.Rules, error) {
	overrides := cfg.RuleOverrides()
	if handSize != 0 {
		overrides["handSize"] = handSize
	}
	rules, err := game.ParseRules(overrides, game.DefaultRules())
	if err != nil {
		return rules, fmt.Errorf("invalid game rules: %w", err)
	}
	return rules, nil
}

// roomFallback decides whether a failed attempt to join code continues as a local game.
// Only a room that does not exist falls back; the returned event tells the user.
func roomFallback(err error, code string) (game.GameEvent, bool) {
	if code == "" || !errors.Is(err, multiplayer.ErrRoomNotFound) {
		return game.GameEvent{}, false
	}
	return game.GameEvent{
		Type:    game.EventRoomFallback,
		Message: fmt.Sprintf("room %s not found, starting a local game", code),
	}, true
}

// playRoom hosts or joins a two-player room over Redis.
func playRoom(ctx context.Context, in *bufio.Scanner, cfg *config.Config, logger *logrus.Logger, rules game.Rules, id, guestID, code string) error {
	rdb, err := store.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()
	st := store.NewRedisStore(rdb, cfg.RoomTTL, logger)

	opts := multiplayer.Options{Rules: rules, Logger: logger, OnEvent: printEvent}
	var sess *multiplayer.Session
	if guestID != "" {
		svc := room.NewService(st, nil, nil, cfg.InviteBaseURL, logger)
		code, err = svc.CreateRoom(ctx, id, guestID)
		if err != nil {
			return err
		}
		fmt.Printf("Room %s created. Share this link: %s\n", code, svc.JoinLink(code))
		fmt.Printf("Your guest joins with: uno -join %s -id %s\n", code, guestID)
		sess, err = multiplayer.Host(ctx, st, code, id, opts)
	} else {
		sess, err = multiplayer.Join(ctx, st, code, id, opts)
	}
	if err != nil {
		return err
	}
	defer sess.Close()
	return roomLoop(ctx, in, sess)
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "uno:", err)
		os.Exit(1)
	}
}
