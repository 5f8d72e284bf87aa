package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"realtime-srv/internal/realtime"
	"realtime-srv/pkg/log"
	pkgRedis "realtime-srv/pkg/redis"
)

// Subscriber relays events other platform services publish on Redis.
type Subscriber interface {
	Start() error
	Shutdown(ctx context.Context) error
}

type subscriber struct {
	redis  pkgRedis.IRedis
	uc     realtime.UseCase
	logger log.Logger

	// Lifecycle fields
	pubsub *redis.PubSub
	wg     sync.WaitGroup
	quit   chan struct{}
	once   sync.Once
}

func New(redis pkgRedis.IRedis, uc realtime.UseCase, logger log.Logger) Subscriber {
	return &subscriber{
		redis:  redis,
		uc:     uc,
		logger: logger,
		quit:   make(chan struct{}),
	}
}
