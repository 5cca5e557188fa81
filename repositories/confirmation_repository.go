package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"storefront-api/models"

	"github.com/redis/go-redis/v9"
)

// ErrConfirmationNotFound means the payload expired or was already consumed.
var ErrConfirmationNotFound = errors.New("order confirmation not found")

// ConfirmationStore holds the short-lived order confirmation payload the
// confirmation page reads exactly once after checkout.
type ConfirmationStore interface {
	Put(ctx context.Context, requestID string, result *models.OrderResult) error
	Consume(ctx context.Context, requestID string) (*models.OrderResult, error)
}

type RedisConfirmationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisConfirmationStore(client *redis.Client, ttl time.Duration) *RedisConfirmationStore {
	return &RedisConfirmationStore{client: client, ttl: ttl}
}

func (s *RedisConfirmationStore) key(requestID string) string {
	return "confirmation:" + requestID
}

func (s *RedisConfirmationStore) Put(ctx context.Context, requestID string, result *models.OrderResult) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(requestID), encoded, s.ttl).Err()
}

func (s *RedisConfirmationStore) Consume(ctx context.Context, requestID string) (*models.OrderResult, error) {
	raw, err := s.client.GetDel(ctx, s.key(requestID)).Result()
	if err == redis.Nil {
		return nil, ErrConfirmationNotFound
	}
	if err != nil {
		return nil, err
	}

	var result models.OrderResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, ErrConfirmationNotFound
	}
	return &result, nil
}

type memoryConfirmation struct {
	result    *models.OrderResult
	expiresAt time.Time
}

type MemoryConfirmationStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryConfirmation
}

func NewMemoryConfirmationStore(ttl time.Duration) *MemoryConfirmationStore {
	return &MemoryConfirmationStore{ttl: ttl, entries: make(map[string]memoryConfirmation)}
}

func (s *MemoryConfirmationStore) Put(ctx context.Context, requestID string, result *models.OrderResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[requestID] = memoryConfirmation{result: result, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryConfirmationStore) Consume(ctx context.Context, requestID string) (*models.OrderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[requestID]
	if !ok {
		return nil, ErrConfirmationNotFound
	}
	delete(s.entries, requestID)

	if time.Now().After(entry.expiresAt) {
		return nil, ErrConfirmationNotFound
	}
	return entry.result, nil
}

// NewConfirmationStore picks Redis when connected, memory otherwise.
func NewConfirmationStore(ttl time.Duration) ConfirmationStore {
	if models.RedisClient != nil {
		return NewRedisConfirmationStore(models.RedisClient, ttl)
	}
	return NewMemoryConfirmationStore(ttl)
}
