// Package session implementa el registro de sesiones revocables (jti del JWT).
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Ideas-api/internal/application/ports"
	"github.com/jhoicas/Ideas-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

var _ ports.SessionStore = (*RedisStore)(nil)

const keyPrefix = "ideas:session:"

type sessionData struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisStore sesiones en Redis con TTL igual a la expiración del token.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore conecta con REDIS_URL y verifica la conexión.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return &RedisStore{client: client, prefix: keyPrefix}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Save guarda la sesión hasta su expiración.
func (s *RedisStore) Save(ctx context.Context, sess ports.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%w: sesión ya expirada", domain.ErrValidation)
	}
	raw, err := json.Marshal(sessionData{UserID: sess.UserID, CreatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("serializar sesión: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w: %w", domain.ErrStore, err)
	}
	return nil
}

// Exists informa si la sesión sigue vigente.
func (s *RedisStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("consultar sesión: %w: %w", domain.ErrStore, err)
	}
	return n > 0, nil
}

// Revoke elimina la sesión. Revocar una sesión inexistente no es error.
func (s *RedisStore) Revoke(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("revocar sesión: %w: %w", domain.ErrStore, err)
	}
	return nil
}

// Ping verifica que Redis responda.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close cierra la conexión.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
