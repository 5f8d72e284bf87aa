package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"realtime-srv/internal/realtime"
	"realtime-srv/pkg/log"
)

type connectionOptions struct {
	pongWait       time.Duration
	pingPeriod     time.Duration
	writeWait      time.Duration
	maxMessageSize int64
	sendBuffer     int
	eventRate      float64
	eventBurst     int
}

// Connection is one websocket client. It implements Peer.
type Connection struct {
	id   string
	hub  *Hub
	conn *websocket.Conn

	// Buffered channel of outbound frames
	send chan []byte

	limiter *rate.Limiter
	opts    connectionOptions
	logger  log.Logger
	// logCtx carries the socket id for every log line of this connection
	logCtx context.Context

	// Done signal
	done      chan struct{}
	closeOnce sync.Once
}

func newConnection(id string, hub *Hub, conn *websocket.Conn, opts connectionOptions, logger log.Logger) *Connection {
	return &Connection{
		id:      id,
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, opts.sendBuffer),
		limiter: rate.NewLimiter(rate.Limit(opts.eventRate), opts.eventBurst),
		opts:    opts,
		logger:  logger,
		logCtx:  log.WithFields(context.Background(), logger, log.FieldSocketID, id),
		done:    make(chan struct{}),
	}
}

func (c *Connection) ID() string {
	return c.id
}

// Send never blocks. A full buffer or a closed connection drops the frame.
func (c *Connection) Send(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Close signals the write pump to send a close frame and release the socket.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// Start starts the connection's read and write pumps
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// reject closes a connection that was never registered.
func (c *Connection) reject(code int, reason string) {
	deadline := time.Now().Add(c.opts.writeWait)
	_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
	_ = c.conn.Close()
}

// readPump pumps events from the websocket connection to the hub.
//
// There is at most one reader per connection, so events of one connection
// reach the hub in the order they were received.
func (c *Connection) readPump() {
	defer func() {
		c.hub.enqueue(func() { c.hub.disconnect(c.id) })
		c.Close()
	}()

	c.conn.SetReadLimit(c.opts.maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.opts.pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Errorf(c.logCtx, "WebSocket read error: %v", err)
			}
			return
		}

		if !c.limiter.Allow() {
			c.hub.metrics.eventsRejected.WithLabelValues(rejectReason(realtime.ErrRateLimited)).Inc()
			c.replyError(realtime.EventError, realtime.ErrRateLimited)
			continue
		}

		var env realtime.Envelope
		if err := json.Unmarshal(message, &env); err != nil || env.Event == "" {
			c.hub.metrics.eventsRejected.WithLabelValues(rejectReason(realtime.ErrInvalidPayload)).Inc()
			c.replyError(realtime.EventError, realtime.ErrInvalidPayload)
			continue
		}

		if !c.hub.enqueue(func() { c.hub.route(c.id, env) }) {
			return
		}
	}
}

func (c *Connection) replyError(event string, err error) {
	frame, encErr := encodeFrame(event, realtime.ErrorPayload{Error: err.Error()})
	if encErr != nil {
		return
	}
	c.Send(frame)
}

// writePump pumps frames from the send buffer to the websocket connection.
// It is the only writer of the connection. Every frame is one text message.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.opts.pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Debugf(c.logCtx, "WebSocket write error: %v", err)
				c.Close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}

		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(c.opts.writeWait))
			return
		}
	}
}
