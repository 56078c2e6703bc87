package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/multicurrency_ledger/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "ledger:idempotency:"
	inFlightMarker    = "in-flight"
	// reservationTTL bounds how long a crashed request can hold its key.
	reservationTTL = time.Minute
)

// IdempotencyStore keeps replayable responses in Redis for a fixed TTL.
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewIdempotencyStore creates a store whose entries expire after ttl.
func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

var _ middleware.IdempotencyStore = (*IdempotencyStore)(nil)

// Reserve claims key with SETNX of an in-flight marker.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, *middleware.CachedResponse, error) {
	ok, err := s.client.SetNX(ctx, idempotencyPrefix+key, inFlightMarker, reservationTTL).Result()
	if err != nil {
		return false, nil, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return true, nil, nil
	}

	raw, err := s.client.Get(ctx, idempotencyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) || (err == nil && string(raw) == inFlightMarker) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, fmt.Errorf("idempotency get: %w", err)
	}

	var resp middleware.CachedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return false, nil, fmt.Errorf("idempotency decode: %w", err)
	}
	return false, &resp, nil
}

// Save replaces the in-flight marker with resp for the full TTL.
func (s *IdempotencyStore) Save(ctx context.Context, key string, resp middleware.CachedResponse) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	if err := s.client.Set(ctx, idempotencyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency save: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyPrefix+key).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}
