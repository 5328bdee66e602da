// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ConnectRedis opens a client and pings it.
func ConnectRedis(ctx context.Context, addr string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// RedisStore keeps each room as a JSON document under uno:room:<code> and publishes
// every accepted write on uno:room:<code>:changes.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRedisStore wraps rdb. ttl is applied on every write; zero disables expiry.
func NewRedisStore(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *RedisStore {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RedisStore{rdb: rdb, ttl: ttl, logger: logger}
}

func roomKey(code string) string { return "uno:room:" + code }
func changesChannel(code string) string { return "uno:room:" + code + ":changes" }

func (s *RedisStore) Create(ctx context.Context, room *models.Room) error {
	stored := room.Clone()
	stored.Version = 1
	stored.UpdatedAt = time.Now()
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, roomKey(room.RoomCode), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create room %s: %w", room.RoomCode, err)
	}
	if !ok {
		return ErrExists
	}
	room.Version = stored.Version
	room.UpdatedAt = stored.UpdatedAt
	return nil
}

func (s *RedisStore) Get(ctx context.Context, code string) (*models.Room, error) {
	data, err := s.rdb.Get(ctx, roomKey(code)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read room %s: %w", code, err)
	}
	return decodeRoom(data)
}

// Update applies patch inside WATCH/MULTI so the version check and the write are atomic.
// A concurrent write between the two surfaces as ErrVersionConflict.
func (s *RedisStore) Update(ctx context.Context, code string, version int64, patch models.RoomPatch) (*models.Room, error) {
	key := roomKey(code)
	var updated *models.Room

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		room, err := decodeRoom(data)
		if err != nil {
			return err
		}
		if room.Version != version {
			return ErrVersionConflict
		}
		if err := room.Apply(patch, time.Now()); err != nil {
			return err
		}
		out, err := json.Marshal(room)
		if err != nil {
			return fmt.Errorf("failed to marshal room: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			pipe.Publish(ctx, changesChannel(code), out)
			return nil
		})
		if err != nil {
			return err
		}
		updated = room
		return nil
	}

	err := s.rdb.Watch(ctx, txf, key)
	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, redis.TxFailedErr):
		return nil, ErrVersionConflict
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrVersionConflict), errors.Is(err, models.ErrIllegalTransition):
		return nil, err
	default:
		return nil, fmt.Errorf("failed to update room %s: %w", code, err)
	}
}

// Subscribe listens on the room's change channel until ctx ends or Close is called.
func (s *RedisStore) Subscribe(ctx context.Context, code string, fn ChangeFunc) (Subscription, error) {
	if _, err := s.Get(ctx, code); err != nil {
		return nil, err
	}
	pubsub := s.rdb.Subscribe(ctx, changesChannel(code))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to room %s: %w", code, err)
	}

	sub := &redisSub{pubsub: pubsub, done: make(chan struct{})}
	ch := pubsub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case <-sub.done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				room, err := decodeRoom([]byte(msg.Payload))
				if err != nil {
					s.logger.WithError(err).WithField("room", code).Warn("dropping undecodable room change")
					continue
				}
				fn(room)
			}
		}
	}()
	return sub, nil
}

type redisSub struct {
	pubsub *redis.PubSub
	done   chan struct{}
	once   sync.Once
}

func (s *redisSub) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}

func decodeRoom(data []byte) (*models.Room, error) {
	var room models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	return &room, nil
}
