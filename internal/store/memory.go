// internal/store/memory.go
package store

import (
	"context"
	"sync"
	"time"

	"github.com/leighton-lakez/reverse/internal/models"
)

// MemoryStore keeps rooms in process memory. It backs tests and single-binary demos.
type MemoryStore struct {
	Mu sync.Mutex

	rooms  map[string]*models.Room
	subs   map[string]map[int]*memorySub
	nextID int
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*models.Room),
		subs:  make(map[string]map[int]*memorySub),
		now:   time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, room *models.Room) error {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if _, ok := m.rooms[room.RoomCode]; ok {
		return ErrExists
	}
	stored := room.Clone()
	stored.Version = 1
	stored.UpdatedAt = m.now()
	m.rooms[room.RoomCode] = stored
	room.Version = stored.Version
	room.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *MemoryStore) Get(_ context.Context, code string) (*models.Room, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	room, ok := m.rooms[code]
	if !ok {
		return nil, ErrNotFound
	}
	return room.Clone(), nil
}

func (m *MemoryStore) Update(_ context.Context, code string, version int64, patch models.RoomPatch) (*models.Room, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	room, ok := m.rooms[code]
	if !ok {
		return nil, ErrNotFound
	}
	if room.Version != version {
		return nil, ErrVersionConflict
	}
	next := room.Clone()
	if err := next.Apply(patch, m.now()); err != nil {
		return nil, err
	}
	m.rooms[code] = next
	m.publishUnsafe(code, next)
	return next.Clone(), nil
}

// publishUnsafe queues a copy of room for every subscriber of code. Assumes lock is held.
func (m *MemoryStore) publishUnsafe(code string, room *models.Room) {
	for _, sub := range m.subs[code] {
		sub.push(room.Clone())
	}
}

func (m *MemoryStore) Subscribe(ctx context.Context, code string, fn ChangeFunc) (Subscription, error) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	if _, ok := m.rooms[code]; !ok {
		return nil, ErrNotFound
	}
	m.nextID++
	sub := &memorySub{
		id:     m.nextID,
		code:   code,
		store:  m,
		signal: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	if m.subs[code] == nil {
		m.subs[code] = make(map[int]*memorySub)
	}
	m.subs[code][sub.id] = sub
	go sub.run(ctx, fn)
	return sub, nil
}

func (m *MemoryStore) unsubscribe(code string, id int) {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	delete(m.subs[code], id)
	if len(m.subs[code]) == 0 {
		delete(m.subs, code)
	}
}

// memorySub delivers changes on its own goroutine so a slow or re-entrant callback never
// blocks a writer.
type memorySub struct {
	id    int
	code  string
	store *MemoryStore

	mu     sync.Mutex
	queue  []*models.Room
	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

func (s *memorySub) push(room *models.Room) {
	s.mu.Lock()
	s.queue = append(s.queue, room)
	s.mu.Unlock()
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *memorySub) run(ctx context.Context, fn ChangeFunc) {
	defer s.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-s.signal:
		}
		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()
		for _, room := range batch {
			select {
			case <-s.done:
				return
			default:
			}
			fn(room)
		}
	}
}

func (s *memorySub) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.store.unsubscribe(s.code, s.id)
	})
	return nil
}
