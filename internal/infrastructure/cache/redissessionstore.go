package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clinicplace/console/internal/shared/logger"
)

// RedisSessionStore implements SessionStore with one hash per session for
// fields, a counter key for the load sequence and a list for flashes.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisSessionStore creates a Redis-backed session store. Every write
// refreshes the session's TTL.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisSessionStore{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RedisSessionStore) fieldsKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *RedisSessionStore) seqKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + ":seq"
}

func (s *RedisSessionStore) flashKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + ":flash"
}

// Begin increments the session's load sequence.
func (s *RedisSessionStore) Begin(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, ErrEmptySessionID
	}

	key := s.seqKey(sessionID)
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin session load: %w", err)
	}
	return incr.Val(), nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID, field string) ([]byte, bool, error) {
	if sessionID == "" {
		return nil, false, ErrEmptySessionID
	}

	data, err := s.client.HGet(ctx, s.fieldsKey(sessionID), field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get session field %s: %w", field, err)
	}
	return data, true, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sessionID string, fields map[string][]byte) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	if len(fields) == 0 {
		return nil
	}

	key := s.fieldsKey(sessionID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, hashValues(fields)...)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session fields: %w", err)
	}
	return nil
}

// SetIfCurrent writes fields under WATCH on the sequence key. It reports
// false without writing when the sequence moved past seq, including when a
// concurrent Begin lands between the check and the write.
func (s *RedisSessionStore) SetIfCurrent(ctx context.Context, sessionID string, seq int64, fields map[string][]byte) (bool, error) {
	if sessionID == "" {
		return false, ErrEmptySessionID
	}

	seqKey := s.seqKey(sessionID)
	key := s.fieldsKey(sessionID)
	current := true

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		latest, err := tx.Get(ctx, seqKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if latest != seq {
			current = false
			return nil
		}
		if len(fields) == 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, hashValues(fields)...)
			pipe.Expire(ctx, key, s.ttl)
			return nil
		})
		return err
	}, seqKey)

	if errors.Is(err, redis.TxFailedErr) {
		s.logger.Debugw("session load superseded during save", "seq", seq)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to save session fields: %w", err)
	}
	return current, nil
}

func (s *RedisSessionStore) PushFlash(ctx context.Context, sessionID string, flash Flash) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}

	data, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("failed to marshal flash: %w", err)
	}

	key := s.flashKey(sessionID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, data)
		pipe.LTrim(ctx, key, -maxFlashes, -1)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push flash: %w", err)
	}
	return nil
}

// PopFlashes returns and clears the queued flashes in push order.
func (s *RedisSessionStore) PopFlashes(ctx context.Context, sessionID string) ([]Flash, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	key := s.flashKey(sessionID)
	var lrange *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		lrange = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pop flashes: %w", err)
	}

	flashes := make([]Flash, 0, len(lrange.Val()))
	for _, raw := range lrange.Val() {
		var f Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			s.logger.Warnw("dropping malformed flash", "error", err)
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

func hashValues(fields map[string][]byte) []interface{} {
	values := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		values = append(values, k, v)
	}
	return values
}
