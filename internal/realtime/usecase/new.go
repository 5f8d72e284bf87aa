package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"realtime-srv/internal/alert"
	"realtime-srv/internal/chat"
	"realtime-srv/internal/model"
	"realtime-srv/internal/notification"
	"realtime-srv/internal/realtime"
	"realtime-srv/pkg/log"
)

const (
	defaultQueueSize      = 1024
	defaultSendBuffer     = 256
	defaultPingInterval   = 25 * time.Second
	defaultPongWait       = 60 * time.Second
	defaultWriteWait      = 10 * time.Second
	defaultMaxMessageSize = 64 << 10
	defaultEventRate      = 20
	defaultEventBurst     = 40
	defaultArchiveTimeout = 5 * time.Second
	alertTimeout          = 15 * time.Second
)

// Config tunes the hub and its connections. Zero values fall back to defaults.
type Config struct {
	MaxConnections   int
	SendBufferSize   int
	PingInterval     time.Duration
	PongWait         time.Duration
	WriteWait        time.Duration
	MaxMessageSize   int64
	EventRate        float64
	EventBurst       int
	MaxMessageLength int
	ArchiveTimeout   time.Duration
}

func (c *Config) applyDefaults() {
	if c.SendBufferSize <= 0 {
		c.SendBufferSize = defaultSendBuffer
	}
	if c.PongWait <= 0 {
		c.PongWait = defaultPongWait
	}
	if c.PingInterval <= 0 {
		c.PingInterval = defaultPingInterval
	}
	// Pings must arrive before the peer's read deadline expires.
	if c.PingInterval >= c.PongWait {
		c.PingInterval = c.PongWait * 9 / 10
	}
	if c.WriteWait <= 0 {
		c.WriteWait = defaultWriteWait
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = defaultMaxMessageSize
	}
	if c.EventRate <= 0 {
		c.EventRate = defaultEventRate
	}
	if c.EventBurst <= 0 {
		c.EventBurst = defaultEventBurst
	}
	if c.ArchiveTimeout <= 0 {
		c.ArchiveTimeout = defaultArchiveTimeout
	}
}

// Deps are the optional collaborators. Nil members are skipped.
type Deps struct {
	Notifications notification.UseCase
	Archive       chat.UseCase
	Alert         alert.UseCase
	Metrics       *Metrics
}

type implUseCase struct {
	hub       *Hub
	l         log.Logger
	cfg       Config
	connOpts  connectionOptions
	notifUC   notification.UseCase
	archiveUC chat.UseCase
	alertUC   alert.UseCase
	metrics   *Metrics
	now       func() time.Time
}

var _ realtime.UseCase = &implUseCase{}

// New creates the realtime service. Call Run before registering connections.
func New(l log.Logger, cfg Config, deps Deps) realtime.UseCase {
	return newUseCase(l, cfg, deps, time.Now)
}

func newUseCase(l log.Logger, cfg Config, deps Deps, now func() time.Time) *implUseCase {
	cfg.applyDefaults()

	metrics := deps.Metrics
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}

	hub := newHub(l, metrics, hubOptions{
		maxConnections: cfg.MaxConnections,
		maxMessageLen:  cfg.MaxMessageLength,
		queueSize:      defaultQueueSize,
		now:            now,
		newID:          uuid.NewString,
	})

	uc := &implUseCase{
		hub: hub,
		l:   l,
		cfg: cfg,
		connOpts: connectionOptions{
			pongWait:       cfg.PongWait,
			pingPeriod:     cfg.PingInterval,
			writeWait:      cfg.WriteWait,
			maxMessageSize: cfg.MaxMessageSize,
			sendBuffer:     cfg.SendBufferSize,
			eventRate:      cfg.EventRate,
			eventBurst:     cfg.EventBurst,
		},
		notifUC:   deps.Notifications,
		archiveUC: deps.Archive,
		alertUC:   deps.Alert,
		metrics:   metrics,
		now:       now,
	}
	if uc.archiveUC != nil {
		hub.onMessage = uc.archive
	}
	return uc
}

func (uc *implUseCase) Run() {
	uc.hub.Run()
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	return uc.hub.Shutdown(ctx)
}

func (uc *implUseCase) Register(ctx context.Context, input realtime.RegisterInput) error {
	if input.Conn == nil {
		return realtime.ErrInvalidPayload
	}

	conn := newConnection(uuid.NewString(), uc.hub, input.Conn, uc.connOpts, uc.l)

	// Once queued, registration must complete so the session is never orphaned.
	var regErr error
	if err := uc.hub.call(context.Background(), func() {
		regErr = uc.hub.register(conn, input.Token)
	}); err != nil {
		conn.reject(websocket.CloseGoingAway, "server shutting down")
		return err
	}
	if regErr != nil {
		conn.reject(websocket.CloseTryAgainLater, regErr.Error())
		return regErr
	}

	conn.Start()
	return nil
}

func (uc *implUseCase) Disconnect(ctx context.Context, socketID string) error {
	var found bool
	err := uc.hub.call(ctx, func() {
		_, found = uc.hub.reg.get(socketID)
		uc.hub.disconnect(socketID)
	})
	if err != nil {
		return err
	}
	if !found {
		return realtime.ErrConnectionNotFound
	}
	return nil
}

func (uc *implUseCase) GetPresence(ctx context.Context) (realtime.Presence, error) {
	var p realtime.Presence
	if err := uc.hub.call(ctx, func() { p = uc.hub.presence() }); err != nil {
		return realtime.Presence{}, err
	}
	return p, nil
}

func (uc *implUseCase) GetUserBySocketID(ctx context.Context, socketID string) (realtime.Identity, error) {
	var (
		id     realtime.Identity
		lookup error
	)
	if err := uc.hub.call(ctx, func() { id, lookup = uc.hub.identityOf(socketID) }); err != nil {
		return realtime.Identity{}, err
	}
	return id, lookup
}

// archive runs off the loop for every finalized chat message.
func (uc *implUseCase) archive(msg model.ChatMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), uc.cfg.ArchiveTimeout)
	defer cancel()

	if err := uc.archiveUC.Save(ctx, msg); err != nil {
		uc.metrics.archiveFailures.Inc()
		uc.l.Warnf(ctx, "internal.realtime.usecase.archive: message %s in room %s: %v", msg.ID, msg.RoomID, err)
	}
}
