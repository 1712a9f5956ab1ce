package websession

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"todoWeb/internal/config"
	"todoWeb/internal/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "todoweb:session:"

// RedisStore хранит сессии в Redis в виде JSON; срок жизни ключа совпадает с ExpiresAt.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		logger.Error("WebSession: Ошибка подключения к Redis", err, zap.String("addr", cfg.Addr))
		return nil, fmt.Errorf("подключение к redis: %w", err)
	}

	logger.Info("WebSession: Подключение к Redis установлено", zap.String("addr", cfg.Addr))
	return NewRedisStoreFromClient(client), nil
}

func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		now:    time.Now,
	}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		logger.Error("WebSession: Ошибка чтения из Redis", err)
		return nil, fmt.Errorf("чтение сессии: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("декодирование сессии: %w", err)
	}
	if s.Expired(r.now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return r.Delete(ctx, s.ID)
		}
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("кодирование сессии: %w", err)
	}

	if err := r.client.Set(ctx, keyPrefix+s.ID, data, ttl).Err(); err != nil {
		logger.Error("WebSession: Ошибка записи в Redis", err)
		return fmt.Errorf("запись сессии: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("удаление сессии: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
