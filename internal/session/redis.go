package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/and161185/gas2door/internal/model"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "gas2door:session:"

type RedisStore struct {
	client *redis.Client
	codec  *Codec
	ttl    time.Duration
}

func NewRedisStore(ctx context.Context, addr, password string, db int, codec *Codec, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisStore{client: client, codec: codec, ttl: ttl}, nil
}

func (r *RedisStore) Load(ctx context.Context, key string) (*model.Session, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return r.codec.Decode(data)
}

// Save refreshes the TTL, so an active visitor never expires.
func (r *RedisStore) Save(ctx context.Context, key string, s *model.Session) error {
	data, err := r.codec.Encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
