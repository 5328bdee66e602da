// internal/multiplayer/session.go
package multiplayer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/leighton-lakez/reverse/internal/game"
	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/leighton-lakez/reverse/internal/store"
	"github.com/sirupsen/logrus"
)

// MaxRetries bounds how often a move is re-merged after a version conflict.
const MaxRetries = 3

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomUnavailable = errors.New("room is not waiting for a guest")
	ErrNotHost         = errors.New("only the host can open this room")
	ErrNotPlaying      = errors.New("game is not in progress")
	ErrMovePending     = errors.New("previous move is still being written")
	ErrStaleTurn       = errors.New("the room moved on; it is no longer your turn")
)

// Options configures a Session. Zero values get defaults.
type Options struct {
	Rules  game.Rules
	Rand   *rand.Rand
	Logger *logrus.Logger

	// OnChange receives a copy of the mirror after every accepted change.
	OnChange func(room *models.Room)
	// OnEvent receives toast-style notifications.
	OnEvent func(ev game.GameEvent)
}

// Session is one player's view of a two-player room. It keeps a local mirror of the shared
// record, writes this player's moves into the record and folds remote changes back in.
type Session struct {
	Mu sync.Mutex

	store    store.Store
	code     string
	playerID string
	isHost   bool

	mirror  *models.Room
	pending bool // a local move is being written; the player may not move again
	dealing bool

	ctx    context.Context
	cancel context.CancelFunc
	sub    store.Subscription

	rules    game.Rules
	rng      *rand.Rand
	logger   *logrus.Logger
	onChange func(room *models.Room)
	onEvent  func(ev game.GameEvent)
}

func newSession(ctx context.Context, st store.Store, code, playerID string, isHost bool, opts Options) *Session {
	s := &Session{
		store:    st,
		code:     code,
		playerID: playerID,
		isHost:   isHost,
		rules:    opts.Rules,
		rng:      opts.Rand,
		logger:   opts.Logger,
		onChange: opts.OnChange,
		onEvent:  opts.OnEvent,
	}
	if s.rules == (game.Rules{}) {
		s.rules = game.DefaultRules()
	}
	if s.rng == nil {
		s.rng = game.NewRand()
	}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	return s
}

// Host opens an existing room as its host and waits for the guest. If the guest is already
// there the host deals immediately.
func Host(ctx context.Context, st store.Store, code, hostID string, opts Options) (*Session, error) {
	room, err := st.Get(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if room.HostID != hostID {
		return nil, ErrNotHost
	}

	s := newSession(ctx, st, code, hostID, true, opts)
	s.mirror = room
	if err := s.subscribe(); err != nil {
		return nil, err
	}
	s.log().Info("hosting room")
	if room.Status == models.StatusReady {
		s.deal()
	}
	return s, nil
}

// Join enters a waiting room as its guest and signals readiness. The host deals in response.
func Join(ctx context.Context, st store.Store, code, guestID string, opts Options) (*Session, error) {
	room, err := st.Get(ctx, code)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if room.HostID == guestID {
		return nil, fmt.Errorf("%w: host cannot join as guest", ErrRoomUnavailable)
	}
	if room.InvitedID != "" && room.InvitedID != guestID {
		return nil, fmt.Errorf("%w: the invitation is for another player", ErrRoomUnavailable)
	}

	s := newSession(ctx, st, code, guestID, false, opts)
	s.mirror = room
	if err := s.subscribe(); err != nil {
		return nil, err
	}

	ready := models.StatusReady
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if room.Status != models.StatusWaiting {
			s.Close()
			return nil, ErrRoomUnavailable
		}
		updated, err := st.Update(ctx, code, room.Version, models.RoomPatch{GuestID: &guestID, Status: &ready})
		if err == nil {
			s.log().Info("joined room")
			s.reconcile(updated, false)
			return s, nil
		}
		if !errors.Is(err, store.ErrVersionConflict) {
			s.Close()
			return nil, fmt.Errorf("failed to join room %s: %w", code, err)
		}
		if room, err = st.Get(ctx, code); err != nil {
			s.Close()
			return nil, err
		}
	}
	s.Close()
	return nil, fmt.Errorf("failed to join room %s: %w", code, store.ErrVersionConflict)
}

func (s *Session) subscribe() error {
	sub, err := s.store.Subscribe(s.ctx, s.code, func(room *models.Room) {
		s.reconcile(room, false)
	})
	if err != nil {
		s.cancel()
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("failed to subscribe to room %s: %w", s.code, err)
	}
	s.sub = sub
	return nil
}

// Close stops the change feed. The room record is left as is.
func (s *Session) Close() {
	s.cancel()
	if s.sub != nil {
		_ = s.sub.Close()
	}
}

func (s *Session) Code() string     { return s.code }
func (s *Session) PlayerID() string { return s.playerID }
func (s *Session) IsHost() bool     { return s.isHost }

// Room returns a copy of the mirror.
func (s *Session) Room() *models.Room {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.mirror.Clone()
}

// MyTurn reports whether this player may move now.
func (s *Session) MyTurn() bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.myTurnUnsafe()
}

func (s *Session) myTurnUnsafe() bool {
	return !s.pending &&
		s.mirror.Status == models.StatusPlaying &&
		s.mirror.GameState != nil &&
		s.mirror.GameState.CurrentTurn == s.playerID
}

// View returns this player's view of the game; opponent cards are hidden.
func (s *Session) View() (game.View, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	st, err := s.stateUnsafe(s.mirror)
	if err != nil {
		return game.View{}, err
	}
	if s.mirror.WinnerID != nil {
		st.Winner = *s.mirror.WinnerID
	}
	return st.ViewFor(s.playerID), nil
}

// stateUnsafe rebuilds an engine state from a record, host in seat 0.
func (s *Session) stateUnsafe(room *models.Room) (*game.State, error) {
	if room.GameState == nil {
		return nil, ErrNotPlaying
	}
	st, err := game.FromRecord(room.GameState, []string{room.HostID, room.GuestID}, s.rules)
	if err != nil {
		return nil, err
	}
	st.SetRand(s.rng)
	return st, nil
}

func (s *Session) log() *logrus.Entry {
	return s.logger.WithFields(logrus.Fields{"room": s.code, "player": s.playerID})
}

func (s *Session) fire(ev game.GameEvent) {
	if s.onEvent != nil {
		s.onEvent(ev)
	}
}

func (s *Session) notify(room *models.Room) {
	if s.onChange != nil {
		s.onChange(room)
	}
}

// PlayCard plays a card from this player's hand. chosen is required for wild cards.
func (s *Session) PlayCard(ctx context.Context, cardID uuid.UUID, chosen models.Color) error {
	return s.move(ctx, func(st *game.State, seat int) (game.Outcome, error) {
		return st.Play(seat, cardID, chosen)
	})
}

// DrawCard draws one card and forfeits the play.
func (s *Session) DrawCard(ctx context.Context) error {
	return s.move(ctx, func(st *game.State, seat int) (game.Outcome, error) {
		return st.Draw(seat)
	})
}
