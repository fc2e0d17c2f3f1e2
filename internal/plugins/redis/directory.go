package redis

import (
	"context"
	"strings"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

const presencePrefix = "presence:"

// RedisDirectoryStore keeps one string key per registered user. Plain SET/GET/
// DEL give the single-key atomicity the directory relies on; nothing here is
// transactional across keys.
type RedisDirectoryStore struct {
	rdb *redis.Client
}

func NewRedisDirectoryStore(rdb *redis.Client) *RedisDirectoryStore {
	return &RedisDirectoryStore{
		rdb: rdb,
	}
}

func (s *RedisDirectoryStore) Set(ctx context.Context, userID, connID string) error {
	return s.rdb.Set(ctx, presencePrefix+userID, connID, 0).Err()
}

func (s *RedisDirectoryStore) Get(ctx context.Context, userID string) (string, error) {
	connID, err := s.rdb.Get(ctx, presencePrefix+userID).Result()
	if err == redis.Nil {
		return "", domain.ErrEntryNotFound
	}
	if err != nil {
		return "", err
	}
	return connID, nil
}

func (s *RedisDirectoryStore) Del(ctx context.Context, userID string) error {
	return s.rdb.Del(ctx, presencePrefix+userID).Err()
}

func (s *RedisDirectoryStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := s.rdb.Keys(ctx, presencePrefix+"*").Result()
	if err != nil {
		return nil, err
	}
	users := make([]string, 0, len(keys))
	for _, key := range keys {
		users = append(users, strings.TrimPrefix(key, presencePrefix))
	}
	return users, nil
}
