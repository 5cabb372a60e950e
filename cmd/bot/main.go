package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vlatan/transcript-bot/internal/bot"
	"github.com/vlatan/transcript-bot/internal/config"
	"github.com/vlatan/transcript-bot/internal/drivers/rdb"
	"github.com/vlatan/transcript-bot/internal/integrations/yt"
	"github.com/vlatan/transcript-bot/internal/server"
	"github.com/vlatan/transcript-bot/internal/transcripts"
	"golang.org/x/sync/errgroup"
)

func main() {

	// Valid only for local runs
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded; %v", err)
	}

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config; %v", err)
	}

	// Listen for interruption signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A non-zero exit lets the host restart the process
	if err := run(ctx, cfg); err != nil {
		stop()
		log.Fatal(err)
	}

	log.Println("Graceful shutdown complete.")
}

// run wires the services and runs the bot and the health server
// until the context is done or one of them fails
func run(ctx context.Context, cfg *config.Config) (err error) {

	// Create Redis service, used only as a title cache
	var redisService *rdb.Service
	if cfg.RedisEnabled() {
		redisService, err = rdb.New(cfg)
		if err != nil {
			return fmt.Errorf("couldn't create Redis service; %w", err)
		}
	}

	defer func() {
		log.Println("Closing Redis connections...")
		err = errors.Join(err, redisService.Close())
	}()

	// Create YouTube service
	ytService, err := yt.New(ctx, cfg, redisService)
	if err != nil {
		return fmt.Errorf("couldn't create YouTube service; %w", err)
	}

	transcriptsService := transcripts.New(ytService, ytService, cfg.Languages)

	telegramBot, err := bot.New(cfg, transcriptsService)
	if err != nil {
		return fmt.Errorf("couldn't create the bot; %w", err)
	}

	healthServer := server.New(cfg, redisService)

	// Either task failing stops the other one
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return telegramBot.Run(ctx) })
	g.Go(func() error { return healthServer.Run(ctx) })

	return g.Wait()
}
