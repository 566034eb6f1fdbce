package casestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vetgate/internal/backend"
	"vetgate/pkg/platform/sentinel"
)

// Redis key prefix for embedded case payloads
const casePayloadKeyPrefix = "case:payload:"

// RedisStore is a Redis-backed payload cache for deployments where more than
// one instance may bootstrap the same case.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Find(ctx context.Context, subjectID string) (*backend.CasePayload, error) {
	raw, err := s.client.Get(ctx, casePayloadKeyPrefix+subjectID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("case payload %s: %w", subjectID, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find case payload: %w", err)
	}
	var payload backend.CasePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode case payload: %w", err)
	}
	return &payload, nil
}

func (s *RedisStore) Save(ctx context.Context, subjectID string, payload *backend.CasePayload) error {
	if payload == nil {
		return fmt.Errorf("case payload is required")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode case payload: %w", err)
	}
	if err := s.client.Set(ctx, casePayloadKeyPrefix+subjectID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save case payload: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, subjectID string) error {
	if err := s.client.Del(ctx, casePayloadKeyPrefix+subjectID).Err(); err != nil {
		return fmt.Errorf("delete case payload: %w", err)
	}
	return nil
}
