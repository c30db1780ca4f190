package service

import (
	"context"
	"coursehub_backend/internal/util"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySessionStore SessionStore 的内存假实现，测试不依赖Redis
type memorySessionStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{data: make(map[string][]byte)}
}

func (s *memorySessionStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return data, nil
}

func (s *memorySessionStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memorySessionStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func TestInitSessionCreatesAndReuses(t *testing.T) {
	svc := NewGuestSessionService(newMemorySessionStore())
	ctx := context.Background()

	created, err := svc.InitSession(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, created.SessionID)
	assert.Empty(t, created.PreviewedCourses)
	assert.WithinDuration(t, time.Now(), created.CreatedAt, time.Second)

	// 带已有ID重复初始化，拿回同一个会话
	again, err := svc.InitSession(ctx, created.SessionID)
	require.NoError(t, err)
	assert.Equal(t, created.SessionID, again.SessionID)
}

func TestInitSessionUnknownIDCreatesFresh(t *testing.T) {
	svc := NewGuestSessionService(newMemorySessionStore())

	session, err := svc.InitSession(context.Background(), "does-not-exist")
	require.NoError(t, err)
	assert.NotEqual(t, "does-not-exist", session.SessionID)
}

func TestTrackPreviewDedupKeepsOrder(t *testing.T) {
	svc := NewGuestSessionService(newMemorySessionStore())
	ctx := context.Background()

	session, err := svc.InitSession(ctx, "")
	require.NoError(t, err)

	_, err = svc.TrackPreview(ctx, session.SessionID, 11)
	require.NoError(t, err)
	_, err = svc.TrackPreview(ctx, session.SessionID, 11)
	require.NoError(t, err)
	updated, err := svc.TrackPreview(ctx, session.SessionID, 22)
	require.NoError(t, err)

	assert.Equal(t, []uint{11, 22}, updated.PreviewedCourses)
}

func TestClearSession(t *testing.T) {
	store := newMemorySessionStore()
	svc := NewGuestSessionService(store)
	ctx := context.Background()

	session, err := svc.InitSession(ctx, "")
	require.NoError(t, err)

	require.NoError(t, svc.ClearSession(ctx, session.SessionID))

	_, err = store.Get(ctx, util.GuestSessionKeyPrefix+session.SessionID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	// 清空ID也是安全的no-op
	assert.NoError(t, svc.ClearSession(ctx, ""))
}
