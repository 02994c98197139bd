package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-studio/internal/shared/storage/kv"
)

const maxUpdateAttempts = 5

// RedisStore keeps sessions as JSON values with a sliding TTL.
// Updates use WATCH/MULTI so concurrent writers never lose a field replacement.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(principal string) string {
	return kv.Key("session", principal)
}

func (s *RedisStore) Get(ctx context.Context, principal string) (Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(principal)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("redis get session: %w", err)
	}
	return decodeSession(raw)
}

func (s *RedisStore) Update(ctx context.Context, principal string, fn func(*Session, bool) error) (Session, error) {
	key := sessionKey(principal)
	var out Session
	txf := func(tx *redis.Tx) error {
		var (
			current Session
			found   bool
		)
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return fmt.Errorf("redis get session: %w", err)
		default:
			if current, err = decodeSession(raw); err != nil {
				return err
			}
			found = true
		}
		if err := fn(&current, found); err != nil {
			return err
		}
		encoded, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.ttl)
			return nil
		})
		if err == nil {
			out = current
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return Session{}, err
		}
		return out, nil
	}
	return Session{}, fmt.Errorf("redis update session: %w", redis.TxFailedErr)
}

func (s *RedisStore) Delete(ctx context.Context, principal string) error {
	return s.client.Del(ctx, sessionKey(principal)).Err()
}

func decodeSession(raw []byte) (Session, error) {
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}

var _ Store = (*RedisStore)(nil)
