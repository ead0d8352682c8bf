package database

import (
	"fmt"

	"linkfolio/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

type CacheClient valkey.Client

type Cache struct {
	General CacheClient
	Session CacheClient
	User    CacheClient
}

// Valkey database indexes provide logical separation per cache category
const (
	// GENERAL_CACHE_INDEX (DB 0) - miscellaneous cache operations
	GENERAL_CACHE_INDEX = iota

	// SESSION_CACHE_INDEX (DB 1) - opaque session tokens
	SESSION_CACHE_INDEX

	// USER_CACHE_INDEX (DB 2) - user rows keyed by id and session lookups
	USER_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := logger.New("database").Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Errorf("failed to initialize cache database", "address or port is empty")
	}

	initAddress := []string{fmt.Sprintf("%s:%d", address, port)}

	var cacheDB Cache
	var err error

	cacheDB.General, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    GENERAL_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Session, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    SESSION_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create session valkey client", err)
	}

	cacheDB.User, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    USER_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create user valkey client", err)
	}

	s.Cache = cacheDB
	log.Info("cache database initialized")

	return nil
}
