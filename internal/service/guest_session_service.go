package service

import (
	"context"
	"coursehub_backend/internal/model"
	"coursehub_backend/internal/util"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// 游客会话保留30天，写入时刷新
const guestSessionTTL = 30 * 24 * time.Hour

// SessionStore 游客会话的KV存取，生产用Redis，测试用内存假实现
type SessionStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisSessionStore SessionStore 的 Redis 实现
type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	return data, err
}

func (s *RedisSessionStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.Client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisSessionStore) Del(ctx context.Context, key string) error {
	return s.Client.Del(ctx, key).Err()
}

// GuestSessionService 匿名游客的预览轨迹记录
// 纯记录用途：任何鉴权判定都不读这里的数据，丢了也不影响访问结果
// 多标签页并发写按最后写入为准
type GuestSessionService struct {
	Store SessionStore
}

func NewGuestSessionService(store SessionStore) *GuestSessionService {
	return &GuestSessionService{Store: store}
}

func sessionKey(sessionID string) string {
	return util.GuestSessionKeyPrefix + sessionID
}

// InitSession 传入已有会话ID则原样返回该会话（幂等），否则生成新会话并落库
func (s *GuestSessionService) InitSession(ctx context.Context, sessionID string) (*model.GuestSession, error) {
	if sessionID != "" {
		data, err := s.Store.Get(ctx, sessionKey(sessionID))
		if err == nil {
			var session model.GuestSession
			if err := json.Unmarshal(data, &session); err == nil {
				return &session, nil
			}
			// 损坏的会话数据当作不存在，重建
		} else if err != util.ErrSessionNotFound {
			return nil, err
		}
	}

	session := &model.GuestSession{
		SessionID:        uuid.New().String(),
		CreatedAt:        time.Now(),
		PreviewedCourses: []uint{},
	}

	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// TrackPreview 幂等追加预览过的课程，保持首次预览的顺序
func (s *GuestSessionService) TrackPreview(ctx context.Context, sessionID string, courseID uint) (*model.GuestSession, error) {
	session, err := s.InitSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for _, id := range session.PreviewedCourses {
		if id == courseID {
			return session, nil
		}
	}

	session.PreviewedCourses = append(session.PreviewedCourses, courseID)
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *GuestSessionService) ClearSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.Store.Del(ctx, sessionKey(sessionID))
}

func (s *GuestSessionService) save(ctx context.Context, session *model.GuestSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Store.Set(ctx, sessionKey(session.SessionID), data, guestSessionTTL)
}
