// internal/multiplayer/sync.go
package multiplayer

import (
	"context"
	"errors"
	"fmt"

	"github.com/leighton-lakez/reverse/internal/game"
	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/leighton-lakez/reverse/internal/store"
	"github.com/sirupsen/logrus"
)

// moveFunc applies one player action to an engine state.
type moveFunc func(st *game.State, seat int) (game.Outcome, error)

// move runs the move protocol: validate and apply on the mirror, then merge the same action
// into a freshly read record and write it back conditioned on that record's version.
func (s *Session) move(ctx context.Context, fn moveFunc) error {
	s.Mu.Lock()
	if s.mirror.Status != models.StatusPlaying || s.mirror.GameState == nil {
		s.Mu.Unlock()
		return ErrNotPlaying
	}
	if s.pending {
		s.Mu.Unlock()
		return ErrMovePending
	}
	if s.mirror.GameState.CurrentTurn != s.playerID {
		s.Mu.Unlock()
		return game.ErrNotYourTurn
	}
	st, err := s.stateUnsafe(s.mirror)
	if err != nil {
		s.Mu.Unlock()
		return err
	}
	seat := st.Seat(s.playerID)
	out, err := fn(st, seat)
	if err != nil {
		s.Mu.Unlock()
		s.fire(game.GameEvent{Type: game.EventMoveRejected, Player: s.playerID, Message: err.Error()})
		return err
	}

	// optimistic local apply
	s.mirror.GameState = st.ToRecord()
	if out.GameOver {
		s.mirror.Status = models.StatusFinished
		winner := s.playerID
		s.mirror.WinnerID = &winner
	}
	s.pending = true
	events := game.EventsFor(st, out)
	optimistic := s.mirror.Clone()
	s.Mu.Unlock()

	for _, ev := range events {
		s.fire(ev)
	}
	s.notify(optimistic)

	err = s.commit(ctx, fn)

	s.Mu.Lock()
	s.pending = false
	s.Mu.Unlock()
	if err != nil && !errors.Is(err, ErrStaleTurn) {
		s.log().WithError(err).Error("failed to write move to room")
		s.fire(game.GameEvent{Type: game.EventSyncFailed, Player: s.playerID, Message: err.Error()})
	}
	return err
}

// commit re-reads the record, re-applies fn and writes it with the version read. A version
// conflict restarts the cycle, up to MaxRetries times.
func (s *Session) commit(ctx context.Context, fn moveFunc) error {
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		room, err := s.store.Get(ctx, s.code)
		if err != nil {
			return fmt.Errorf("failed to re-read room: %w", err)
		}
		if room.Status != models.StatusPlaying || room.GameState == nil || room.GameState.CurrentTurn != s.playerID {
			s.log().WithField("version", room.Version).Warn("move abandoned, record says it is not our turn")
			s.reconcile(room, true)
			return ErrStaleTurn
		}

		s.Mu.Lock()
		st, err := s.stateUnsafe(room)
		var out game.Outcome
		if err == nil {
			out, err = fn(st, st.Seat(s.playerID))
		}
		s.Mu.Unlock()
		if err != nil {
			s.reconcile(room, true)
			return fmt.Errorf("move no longer applies to the room: %w", err)
		}

		patch := models.RoomPatch{GameState: st.ToRecord()}
		if out.GameOver {
			finished := models.StatusFinished
			winner := s.playerID
			patch.Status = &finished
			patch.WinnerID = &winner
		}

		updated, err := s.store.Update(ctx, s.code, room.Version, patch)
		if errors.Is(err, store.ErrVersionConflict) {
			s.log().WithFields(logrus.Fields{"attempt": attempt + 1, "version": room.Version}).Debug("version conflict, retrying move")
			continue
		}
		if err != nil {
			return err
		}
		s.reconcile(updated, true)
		return nil
	}
	return fmt.Errorf("gave up after %d retries: %w", MaxRetries, store.ErrVersionConflict)
}

// reconcile replaces the mirror wholesale with room. Notifications not newer than the
// mirror are dropped unless force is set, which is used when the mirror holds an
// optimistic move that must be replaced by what the record says.
func (s *Session) reconcile(room *models.Room, force bool) {
	s.Mu.Lock()
	prev := s.mirror
	if !force && prev != nil && room.Version <= prev.Version {
		s.Mu.Unlock()
		s.log().WithField("version", room.Version).Debug("dropping stale room change")
		return
	}
	s.mirror = room.Clone()
	events := s.remoteEventsUnsafe(prev, s.mirror)
	shouldDeal := s.isHost && s.mirror.Status == models.StatusReady && !s.dealing
	snapshot := s.mirror.Clone()
	s.Mu.Unlock()

	for _, ev := range events {
		s.fire(ev)
	}
	s.notify(snapshot)
	if shouldDeal {
		s.deal()
	}
}

// remoteEventsUnsafe describes what the opponent did between prev and next.
// Assumes lock is held.
func (s *Session) remoteEventsUnsafe(prev, next *models.Room) []game.GameEvent {
	var evs []game.GameEvent
	if prev == nil || next.GameState == nil {
		return nil
	}
	opponent := next.Opponent(s.playerID)
	if prev.GameState != nil && prev.GameState.CurrentTurn == opponent {
		top := lastCard(next.GameState.DiscardPile)
		prevTop := lastCard(prev.GameState.DiscardPile)
		switch {
		case top != nil && (prevTop == nil || top.ID != prevTop.ID):
			evs = append(evs, game.GameEvent{Type: game.EventCardPlayed, Player: opponent, Card: top, Color: next.GameState.CurrentColor})
		case len(next.GameState.PlayerHands[opponent]) > len(prev.GameState.PlayerHands[opponent]):
			evs = append(evs, game.GameEvent{Type: game.EventCardDrawn, Player: opponent, Count: 1})
		}
	}
	if next.Status == models.StatusFinished && prev.Status != models.StatusFinished {
		winner := ""
		if next.WinnerID != nil {
			winner = *next.WinnerID
		}
		return append(evs, game.GameEvent{Type: game.EventGameOver, Player: winner})
	}
	if next.Status == models.StatusPlaying &&
		(prev.GameState == nil || prev.GameState.CurrentTurn != next.GameState.CurrentTurn || prev.Status != models.StatusPlaying) {
		evs = append(evs, game.GameEvent{Type: game.EventPlayerTurn, Player: next.GameState.CurrentTurn})
	}
	return evs
}

func lastCard(pile []models.Card) *models.Card {
	if len(pile) == 0 {
		return nil
	}
	c := pile[len(pile)-1]
	return &c
}

// deal is the host's half of the handshake: on seeing ready it deals, writes the full game
// state and flips the room to playing. Only the host ever deals.
func (s *Session) deal() {
	s.Mu.Lock()
	if !s.isHost || s.dealing {
		s.Mu.Unlock()
		return
	}
	s.dealing = true
	s.Mu.Unlock()
	defer func() {
		s.Mu.Lock()
		s.dealing = false
		s.Mu.Unlock()
	}()

	playing := models.StatusPlaying
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		room, err := s.store.Get(s.ctx, s.code)
		if err != nil {
			s.log().WithError(err).Error("failed to read room before dealing")
			return
		}
		if room.Status != models.StatusReady {
			return
		}

		s.Mu.Lock()
		st, err := game.NewState([]string{room.HostID, room.GuestID}, s.rules, s.rng)
		s.Mu.Unlock()
		if err != nil {
			s.log().WithError(err).Error("failed to deal")
			return
		}

		updated, err := s.store.Update(s.ctx, s.code, room.Version, models.RoomPatch{
			GameState: st.ToRecord(),
			Status:    &playing,
		})
		if errors.Is(err, store.ErrVersionConflict) {
			continue
		}
		if err != nil {
			s.log().WithError(err).Error("failed to write dealt game")
			s.fire(game.GameEvent{Type: game.EventSyncFailed, Player: s.playerID, Message: err.Error()})
			return
		}
		s.log().WithField("top", st.Top().String()).Info("dealt room game")
		s.reconcile(updated, false)
		return
	}
}
