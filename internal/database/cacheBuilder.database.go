package database

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const (
	defaultCacheTTL     = time.Hour
	defaultCacheTimeout = 5 * time.Second
)

type KeyType interface {
	string | uuid.UUID
}

// CacheBuilder is a fluent helper for JSON values in valkey. Values are
// marshalled on the way in and unmarshalled on the way out, keys may be
// strings or UUIDs, and every command runs under a bounded timeout.
type CacheBuilder struct {
	cache valkey.Client
	key   string
	value string
	ttl   time.Duration
	ctx   context.Context
	err   error
}

func NewCacheBuilder[K KeyType](cache valkey.Client, key K) *CacheBuilder {
	cb := &CacheBuilder{
		cache: cache,
		ttl:   defaultCacheTTL,
		ctx:   context.Background(),
	}

	switch k := any(key).(type) {
	case string:
		cb.key = k
	case uuid.UUID:
		cb.key = k.String()
	}

	return cb
}

func (cb *CacheBuilder) WithStruct(value any) *CacheBuilder {
	bytes, err := json.Marshal(value)
	if err != nil {
		cb.err = fmt.Errorf("failed to marshal cache value: %w", err)
		return cb
	}

	cb.value = string(bytes)
	return cb
}

func (cb *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	cb.ttl = ttl
	return cb
}

func (cb *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	cb.ctx = ctx
	return cb
}

func (cb *CacheBuilder) Set() error {
	if cb.err != nil {
		return cb.err
	}
	if cb.key == "" || cb.value == "" {
		return fmt.Errorf("cache set requires a key and a value")
	}

	ctx, cancel := context.WithTimeout(cb.ctx, defaultCacheTimeout)
	defer cancel()

	return cb.cache.Do(ctx, cb.cache.B().Set().Key(cb.key).Value(cb.value).Ex(cb.ttl).Build()).
		Error()
}

// Get unmarshals the cached value into result. A missing key reports
// (false, nil) rather than an error.
func (cb *CacheBuilder) Get(result any) (bool, error) {
	if cb.err != nil {
		return false, cb.err
	}
	if cb.key == "" {
		return false, fmt.Errorf("cache get requires a key")
	}

	ctx, cancel := context.WithTimeout(cb.ctx, defaultCacheTimeout)
	defer cancel()

	data, err := cb.cache.Do(ctx, cb.cache.B().Get().Key(cb.key).Build()).ToString()
	if err != nil {
		if isKeyNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	if data == "" {
		return false, nil
	}

	if err := json.Unmarshal([]byte(data), result); err != nil {
		return false, err
	}

	return true, nil
}

func (cb *CacheBuilder) Delete() error {
	if cb.err != nil {
		return cb.err
	}

	ctx, cancel := context.WithTimeout(cb.ctx, defaultCacheTimeout)
	defer cancel()

	return cb.cache.Do(ctx, cb.cache.B().Del().Key(cb.key).Build()).Error()
}

func isKeyNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	return valkey.IsValkeyNil(err) ||
		strings.Contains(err.Error(), "key not found")
}
