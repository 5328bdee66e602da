// cmd/server/main.go
package main

import (
	"context"
	"net/http"

	"github.com/leighton-lakez/reverse/internal/auth"
	"github.com/leighton-lakez/reverse/internal/config"
	"github.com/leighton-lakez/reverse/internal/database"
	"github.com/leighton-lakez/reverse/internal/handlers"
	"github.com/leighton-lakez/reverse/internal/middleware"
	"github.com/leighton-lakez/reverse/internal/room"
	"github.com/leighton-lakez/reverse/internal/store"
)

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger()
	ctx := context.Background()

	if err := auth.Init(cfg.TokenExpireTime); err != nil {
		logger.WithError(err).Fatal("failed to initialize auth")
	}

	rdb, err := store.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to redis")
	}
	defer rdb.Close()
	rooms := store.NewRedisStore(rdb, cfg.RoomTTL, logger)

	// invitations and display names need Postgres; rooms work without it
	var inviter room.Inviter
	var users room.UserLookup
	if err := database.ConnectDB(ctx, cfg.PostgresURL(), logger); err != nil {
		logger.WithError(err).Warn("running without database; invitations disabled")
	} else {
		defer database.DB.Close()
		inviter, users = database.Messenger{}, database.UserDirectory{}
	}
	svc := room.NewService(rooms, inviter, users, cfg.InviteBaseURL, logger)

	mux := http.NewServeMux()
	logged := middleware.LogMiddleware(logger)

	// user endpoints
	if database.DB != nil {
		mux.Handle("/user/guest", logged(handlers.GuestHandler(logger, database.CreateUser)))
	}

	// room endpoints
	mux.Handle("/room/create", logged(handlers.CreateRoomHandler(logger, svc)))
	mux.Handle("/room/ws/", logged(handlers.RoomWSHandler(logger, rooms)))
	mux.Handle("/room/", logged(handlers.GetRoomHandler(rooms)))

	addr := ":" + cfg.Port
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.WithError(err).Fatal("server exited")
	}
}
