package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"

	"github.com/tombowditch/pasty-go/internal/paste"
)

const keyPrefix = "pasty_"

// RedisStore implements Store using Redis. Pastes are stored as JSON.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a new Redis-backed store and verifies connectivity.
// A zero ttl keeps pastes forever.
func NewRedis(addr, password string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping().Result(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
	}, nil
}

// Close closes the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Get retrieves a paste by ID.
func (s *RedisStore) Get(id string) (*paste.Paste, error) {
	val, err := s.client.Get(keyPrefix + id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var p paste.Paste
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, fmt.Errorf("decoding paste %s: %w", id, err)
	}
	return &p, nil
}

// Create stores a paste using SetNX (atomic set-if-not-exists).
// Returns true if the paste was created, false if the ID already exists.
func (s *RedisStore) Create(p *paste.Paste) (bool, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return false, fmt.Errorf("encoding paste: %w", err)
	}
	return s.client.SetNX(keyPrefix+p.ID, data, s.ttl).Result()
}

// Update overwrites a paste with SetXX, carrying over the remaining TTL.
func (s *RedisStore) Update(p *paste.Paste) error {
	key := keyPrefix + p.ID

	ttl, err := s.client.TTL(key).Result()
	if err != nil {
		return err
	}
	// -2 means the key is missing, -1 means it has no expiry.
	if ttl == -2 {
		return ErrNotFound
	}
	if ttl < 0 {
		ttl = 0
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding paste: %w", err)
	}
	ok, err := s.client.SetXX(key, data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Delete removes a paste.
func (s *RedisStore) Delete(id string) error {
	n, err := s.client.Del(keyPrefix + id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
