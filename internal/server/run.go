package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Grace period for the requests in flight on shutdown
const shutdownTimeout = 5 * time.Second

// Run makes the HTTP server listen and serve until the context is done,
// then gracefully shuts it down.
func (s *Server) Run(ctx context.Context) error {

	errCh := make(chan error, 1)

	go func() {
		log.Printf("Health server running on: http://%s", s.HttpServer.Addr)
		// If the HTTP server was shut down ListenAndServe will return ErrServerClosed
		errCh <- s.HttpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server error; %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down the health server...")

	// Give the server some time to finish the requests it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.HttpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("health server forced to shutdown; %w", err)
	}

	log.Println("Health server stopped.")
	return nil
}
