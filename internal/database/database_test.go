package database

import (
	"errors"
	"testing"

	"linkfolio/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 0, GENERAL_CACHE_INDEX)
	assert.Equal(t, 1, SESSION_CACHE_INDEX)
	assert.Equal(t, 2, USER_CACHE_INDEX)
}

func TestDB_StructCreation(t *testing.T) {
	log := logger.New("test")

	db := &DB{log: log}

	assert.NotNil(t, db)
	assert.Nil(t, db.SQL)
}

func TestNewCacheBuilder_StringKey(t *testing.T) {
	cb := NewCacheBuilder[string](nil, "session:abc")

	assert.Equal(t, "session:abc", cb.key)
}

func TestNewCacheBuilder_UUIDKey(t *testing.T) {
	id := uuid.New()
	cb := NewCacheBuilder[uuid.UUID](nil, id)

	assert.Equal(t, id.String(), cb.key)
}

func TestCacheBuilder_WithStruct_MarshalError(t *testing.T) {
	cb := NewCacheBuilder[string](nil, "key").WithStruct(make(chan int))

	assert.Error(t, cb.err)
	assert.Error(t, cb.Set())
}

func TestIsKeyNotFoundError(t *testing.T) {
	assert.False(t, isKeyNotFoundError(nil))
	assert.False(t, isKeyNotFoundError(assert.AnError))
	assert.True(t, isKeyNotFoundError(errors.New("key not found")))
}
