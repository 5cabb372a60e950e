package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vlatan/transcript-bot/internal/config"
	"github.com/vlatan/transcript-bot/internal/drivers/rdb"
)

func TestHomeHandler(t *testing.T) {

	srv := New(&config.Config{Port: 8080}, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"home", http.MethodGet, "/", http.StatusOK, homeText},
		{"home head", http.MethodHead, "/", http.StatusOK, ""},
		{"wrong method", http.MethodPost, "/", http.StatusMethodNotAllowed, ""},
		{"any other path", http.MethodGet, "/nope", http.StatusOK, homeText},
		{"nested path", http.MethodGet, "/some/probe/path", http.StatusOK, homeText},
		{"other path wrong method", http.MethodPost, "/nope", http.StatusMethodNotAllowed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			srv.Routes().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantStatus)
			}

			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("got body %q, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHealthHandler(t *testing.T) {

	// Nothing listens on this port
	unreachable := &rdb.Service{Client: redis.NewClient(&redis.Options{
		Addr:       "127.0.0.1:1",
		MaxRetries: -1,
	})}
	t.Cleanup(func() { unreachable.Close() })

	tests := []struct {
		name        string
		rdb         *rdb.Service
		wantRedis   bool
		redisStatus string
	}{
		{"without redis", nil, false, ""},
		{"redis down", unreachable, true, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(&config.Config{Port: 8080}, tt.rdb)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			srv.Routes().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
			}

			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("got content type %q, want %q", ct, "application/json")
			}

			var data struct {
				Status       string         `json:"status"`
				ServerStatus map[string]any `json:"server_status"`
				RedisStatus  map[string]any `json:"redis_status"`
			}

			if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
				t.Fatalf("failed to decode the response; %v", err)
			}

			if data.Status != "ok" {
				t.Errorf("got status %q, want %q", data.Status, "ok")
			}

			if len(data.ServerStatus) == 0 {
				t.Error("got empty server status")
			}

			if (data.RedisStatus != nil) != tt.wantRedis {
				t.Fatalf("got redis status %v, want present = %t", data.RedisStatus, tt.wantRedis)
			}

			if tt.wantRedis && data.RedisStatus["status"] != tt.redisStatus {
				t.Errorf("got redis status %v, want %q", data.RedisStatus["status"], tt.redisStatus)
			}
		})
	}
}

func TestRun(t *testing.T) {

	t.Run("stops with context", func(t *testing.T) {
		srv := New(&config.Config{Host: "127.0.0.1", Port: 8080}, nil)
		srv.HttpServer.Addr = "127.0.0.1:0"

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx) }()

		cancel()

		select {
		case err := <-done:
			if err != nil {
				t.Errorf("got error = %v, want nil", err)
			}
		case <-time.After(10 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("invalid address", func(t *testing.T) {
		srv := New(&config.Config{Host: "127.0.0.1", Port: 8080}, nil)
		srv.HttpServer.Addr = "127.0.0.1:99999"

		if err := srv.Run(context.Background()); err == nil {
			t.Error("got nil error, want error")
		}
	})
}
