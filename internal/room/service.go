// internal/room/service.go
package room

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"sync"
	"time"

	"github.com/leighton-lakez/reverse/internal/game"
	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/leighton-lakez/reverse/internal/store"
	"github.com/sirupsen/logrus"
)

// createAttempts bounds retries when a generated code is already taken.
const createAttempts = 3

// Inviter delivers the out-of-band invitation text to a user.
type Inviter interface {
	SendInvite(ctx context.Context, fromID, toID, text string) error
}

// InviterFunc adapts a function to Inviter.
type InviterFunc func(ctx context.Context, fromID, toID, text string) error

func (f InviterFunc) SendInvite(ctx context.Context, fromID, toID, text string) error {
	return f(ctx, fromID, toID, text)
}

// UserLookup resolves a user id to a display name.
type UserLookup interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// Service creates rooms and sends the invitations for them.
type Service struct {
	Store       store.Store
	Inviter     Inviter    // optional
	Users       UserLookup // optional; ids are used as names without it
	JoinBaseURL string
	Logger      *logrus.Logger

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewService wires a room service. inviter and users may be nil.
func NewService(st store.Store, inviter Inviter, users UserLookup, joinBaseURL string, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Service{
		Store:       st,
		Inviter:     inviter,
		Users:       users,
		JoinBaseURL: joinBaseURL,
		Logger:      logger,
		rng:         game.NewRand(),
		now:         time.Now,
	}
}

// CreateRoom writes a fresh waiting room hosted by hostID and invites guestID to it.
// A failed invitation is logged; the room exists regardless.
func (s *Service) CreateRoom(ctx context.Context, hostID, guestID string) (string, error) {
	var code string
	for attempt := 0; ; attempt++ {
		code = s.newCode()
		err := s.Store.Create(ctx, &models.Room{
			RoomCode:  code,
			HostID:    hostID,
			InvitedID: guestID,
			Status:    models.StatusWaiting,
		})
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrExists) || attempt+1 >= createAttempts {
			return "", fmt.Errorf("failed to create room: %w", err)
		}
	}

	log := s.Logger.WithFields(logrus.Fields{"room": code, "host": hostID, "guest": guestID})
	log.Info("room created")

	if s.Inviter != nil && guestID != "" {
		text := fmt.Sprintf("%s invited you to play UNO: %s", s.displayName(ctx, hostID), s.JoinLink(code))
		if err := s.Inviter.SendInvite(ctx, hostID, guestID, text); err != nil {
			log.WithError(err).Warn("failed to send room invitation")
		}
	}
	return code, nil
}

// JoinLink is the reference embedded in invitations: the base URL with a room query parameter.
func (s *Service) JoinLink(code string) string {
	u, err := url.Parse(s.JoinBaseURL)
	if err != nil || s.JoinBaseURL == "" {
		return "?room=" + url.QueryEscape(code)
	}
	q := u.Query()
	q.Set("room", code)
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *Service) displayName(ctx context.Context, userID string) string {
	if s.Users == nil {
		return userID
	}
	name, err := s.Users.DisplayName(ctx, userID)
	if err != nil || name == "" {
		s.Logger.WithError(err).WithField("user", userID).Debug("display name lookup failed")
		return userID
	}
	return name
}

func (s *Service) newCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng == nil {
		s.rng = game.NewRand()
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	return NewCode(now(), s.rng)
}
