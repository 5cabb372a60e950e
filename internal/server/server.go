package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vlatan/transcript-bot/internal/config"
	"github.com/vlatan/transcript-bot/internal/drivers/rdb"
)

type Server struct {
	config     *config.Config
	rdb        *rdb.Service
	HttpServer *http.Server
}

// New creates the health check server.
// The Redis service is optional.
func New(cfg *config.Config, rdb *rdb.Service) *Server {

	s := &Server{
		config: cfg,
		rdb:    rdb,
	}

	s.HttpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Routes registers the routes and wraps them with the middlewares
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.HomeHandler)
	mux.HandleFunc("GET /health", s.HealthHandler)
	return Chain(s.RecoverPanic, s.AddHeaders, s.Compress)(mux)
}
