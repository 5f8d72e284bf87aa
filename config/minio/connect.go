package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"realtime-srv/config"
	miniopkg "realtime-srv/pkg/minio"
)

const (
	// defaultConnectTimeout is the maximum time to wait for initial connection
	defaultConnectTimeout = 5 * time.Second
	defaultMaxRetries     = 3
)

var (
	instance miniopkg.MinIO
	mu       sync.Mutex
)

// Connect creates the archive client, verifies it and makes sure the bucket exists.
// Retries with exponential backoff.
func Connect(ctx context.Context, cfg config.MinIOConfig) (miniopkg.MinIO, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	impl, err := miniopkg.New(miniopkg.Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		UseSSL:    cfg.UseSSL,
		Region:    cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	var lastErr error
	for i := 0; i < defaultMaxRetries; i++ {
		connectCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
		lastErr = impl.EnsureBucket(connectCtx, cfg.Bucket)
		cancel()
		if lastErr == nil {
			instance = impl
			return instance, nil
		}

		backoff := time.Duration(1<<uint(i)) * time.Second
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("failed to connect after %d retries: %w", defaultMaxRetries, lastErr)
}

// Disconnect releases the shared client.
func Disconnect() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}
