// internal/store/memory_test.go
package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/leighton-lakez/reverse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoom(code string) *models.Room {
	return &models.Room{RoomCode: code, HostID: "host", Status: models.StatusWaiting}
}

func statusPtr(s models.RoomStatus) *models.RoomStatus { return &s }
func strPtr(s string) *string { return &s }

func TestMemoryStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	room := newRoom("abc")
	require.NoError(t, s.Create(ctx, room))
	assert.Equal(t, int64(1), room.Version)
	assert.ErrorIs(t, s.Create(ctx, newRoom("abc")), ErrExists)

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, got.Status)

	_, err = s.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_VersionedUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Create(ctx, newRoom("abc")))

	updated, err := s.Update(ctx, "abc", 1, models.RoomPatch{GuestID: strPtr("guest"), Status: statusPtr(models.StatusReady)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, "guest", updated.GuestID)

	_, err = s.Update(ctx, "abc", 1, models.RoomPatch{Status: statusPtr(models.StatusPlaying)})
	assert.ErrorIs(t, err, ErrVersionConflict)

	_, err = s.Update(ctx, "abc", 2, models.RoomPatch{Status: statusPtr(models.StatusFinished)})
	assert.ErrorIs(t, err, models.ErrIllegalTransition)
	got, _ := s.Get(ctx, "abc")
	assert.Equal(t, int64(2), got.Version, "rejected patch leaves the record alone")

	_, err = s.Update(ctx, "missing", 1, models.RoomPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Create(ctx, newRoom("abc")))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	got.HostID = "mallory"

	again, _ := s.Get(ctx, "abc")
	assert.Equal(t, "host", again.HostID)
}

func TestMemoryStore_SubscribeDeliversInOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Create(ctx, newRoom("abc")))

	var mu sync.Mutex
	var versions []int64
	sub, err := s.Subscribe(ctx, "abc", func(r *models.Room) {
		mu.Lock()
		defer mu.Unlock()
		versions = append(versions, r.Version)
	})
	require.NoError(t, err)

	_, err = s.Update(ctx, "abc", 1, models.RoomPatch{GuestID: strPtr("g"), Status: statusPtr(models.StatusReady)})
	require.NoError(t, err)
	_, err = s.Update(ctx, "abc", 2, models.RoomPatch{Status: statusPtr(models.StatusPlaying)})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(versions) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int64{2, 3}, versions)

	require.NoError(t, sub.Close())
	_, err = s.Update(ctx, "abc", 3, models.RoomPatch{WinnerID: strPtr("g")})
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	assert.Len(t, versions, 2, "closed subscription receives nothing")
	mu.Unlock()

	_, err = s.Subscribe(ctx, "missing", func(*models.Room) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_CallbackMayWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewMemoryStore()
	require.NoError(t, s.Create(ctx, newRoom("abc")))

	done := make(chan struct{})
	_, err := s.Subscribe(ctx, "abc", func(r *models.Room) {
		if r.Status == models.StatusReady {
			_, err := s.Update(ctx, "abc", r.Version, models.RoomPatch{Status: statusPtr(models.StatusPlaying)})
			assert.NoError(t, err)
			close(done)
		}
	})
	require.NoError(t, err)

	_, err = s.Update(ctx, "abc", 1, models.RoomPatch{Status: statusPtr(models.StatusReady)})
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback never ran")
	}
	got, _ := s.Get(ctx, "abc")
	assert.Equal(t, models.StatusPlaying, got.Status)
}
