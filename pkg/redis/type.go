package redis

import (
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	MaxRetries      int
	MinIdleConns    int
	PoolSize        int
	PoolTimeout     time.Duration
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

type redisImpl struct {
	client *goredis.Client
}

func (c RedisConfig) validate() error {
	switch {
	case c.Host == "":
		return ErrHostRequired
	case c.Port <= 0 || c.Port > maxPort:
		return ErrInvalidPort
	case c.DB < 0 || c.DB > maxDB:
		return ErrInvalidDB
	}
	return nil
}
