package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Run starts the HTTP server and all background services, then blocks until
// a shutdown signal or a server failure:
//  1. Map HTTP handlers and routes
//  2. Start the realtime hub and the Redis subscriber
//  3. Start HTTP server
//  4. Wait for shutdown signal, then stop subscriber, hub and HTTP server in that order
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		srv.l.Errorf(ctx, "Failed to map handlers: %v", err)
		return err
	}

	go srv.realtimeUC.Run()
	srv.l.Info(ctx, "Realtime hub started")

	if err := srv.subscriber.Start(); err != nil {
		srv.l.Errorf(ctx, "Failed to start Redis subscriber: %v", err)
		_ = srv.realtimeUC.Shutdown(ctx)
		return err
	}

	srv.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", srv.host, srv.port),
		Handler:           srv.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	srv.l.Infof(ctx, "HTTP server started on %s", srv.server.Addr)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	var runErr error
	select {
	case sig := <-ch:
		srv.l.Infof(ctx, "Received signal %s, stopping realtime service...", sig)
	case runErr = <-serveErr:
		srv.l.Errorf(ctx, "HTTP server error: %v", runErr)
	}

	srv.shutdown()
	return runErr
}

func (srv *HTTPServer) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
	defer cancel()

	if err := srv.subscriber.Shutdown(ctx); err != nil {
		srv.l.Errorf(ctx, "Redis subscriber shutdown error: %v", err)
	}
	if err := srv.realtimeUC.Shutdown(ctx); err != nil {
		srv.l.Errorf(ctx, "Realtime hub shutdown error: %v", err)
	}
	if err := srv.server.Shutdown(ctx); err != nil {
		srv.l.Errorf(ctx, "HTTP server shutdown error: %v", err)
	}
	srv.l.Info(ctx, "Realtime service stopped")
}
