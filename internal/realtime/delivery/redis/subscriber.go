package redis

import (
	"context"
	"fmt"
)

const (
	channelPrefix    = "realtime:"
	userChannel      = channelPrefix + "user:"
	citizenChannel   = channelPrefix + "citizen:"
	roomChannel      = channelPrefix + "room:"
	broadcastChannel = channelPrefix + "broadcast"
)

var patterns = []string{
	userChannel + "*",
	citizenChannel + "*",
	roomChannel + "*",
	broadcastChannel,
}

func (s *subscriber) Start() error {
	ctx := context.Background()

	s.pubsub = s.redis.PSubscribe(ctx, patterns...)

	// Wait for confirmation that subscription is created
	if _, err := s.pubsub.Receive(ctx); err != nil {
		_ = s.pubsub.Close()
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	s.wg.Add(1)
	go s.listen(ctx)

	s.logger.Infof(ctx, "Redis subscriber started on channels: %v", patterns)
	return nil
}

func (s *subscriber) listen(ctx context.Context) {
	defer s.wg.Done()

	ch := s.pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				s.logger.Warnf(ctx, "redis pubsub channel closed")
				return
			}
			s.handleMessage(ctx, msg.Channel, msg.Payload)
		case <-s.quit:
			return
		}
	}
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	s.once.Do(func() { close(s.quit) })
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Errorf(ctx, "failed to close pubsub: %v", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Infof(ctx, "Redis subscriber stopped")
	return nil
}
