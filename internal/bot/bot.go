package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vlatan/transcript-bot/internal/config"
	"github.com/vlatan/transcript-bot/internal/models"
	"github.com/vlatan/transcript-bot/internal/utils"
	"golang.org/x/time/rate"
)

// Seconds the Telegram server holds a long poll open
const pollTimeout = 60

// Sender is the part of the Telegram API the bot talks through
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Extractor produces the transcript document of a video
type Extractor interface {
	Extract(ctx context.Context, videoID string) (*models.Document, error)
}

type Bot struct {
	config      *config.Config
	api         *tgbotapi.BotAPI
	sender      Sender
	transcripts Extractor
	limiter     *rate.Limiter
	retry       *utils.RetryConfig
	wg          sync.WaitGroup
}

// New creates the Telegram bot, verifying the token with the API
func New(cfg *config.Config, transcripts Extractor) (*Bot, error) {

	if cfg == nil {
		return nil, errors.New("unable to create the bot with nil config")
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram client; %w", err)
	}

	api.Debug = cfg.Debug
	log.Printf("Authorized on Telegram account @%s", api.Self.UserName)

	b := newBot(cfg, api, transcripts)
	b.api = api
	return b, nil
}

func newBot(cfg *config.Config, sender Sender, transcripts Extractor) *Bot {
	return &Bot{
		config:      cfg,
		sender:      sender,
		transcripts: transcripts,
		limiter: rate.NewLimiter(
			rate.Limit(cfg.TelegramRateLimit),
			max(cfg.TelegramRateBurst, 1),
		),
		retry: &utils.RetryConfig{
			MaxRetries: cfg.TelegramMaxRetries,
			Delay:      time.Second,
			MaxJitter:  time.Second,
			MaxDelay:   cfg.TelegramMaxRetryWait,
			RetryAfter: floodWait,
			Retryable:  func(err error) bool { _, ok := floodWait(err); return ok },
		},
	}
}

// Run long-polls the updates and handles each in its own goroutine.
// Blocks until the context is done, then waits for the running handlers.
func (b *Bot) Run(ctx context.Context) error {

	if b.api == nil {
		return errors.New("no Telegram client to receive updates from")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)

	log.Println("Bot is polling for updates...")

	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping the bot, waiting for running handlers...")
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			log.Println("Bot stopped.")
			return nil

		case update, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return errors.New("telegram updates channel closed")
			}
			b.dispatch(ctx, update)
		}
	}
}

// Handle the update in a separate goroutine.
// A shutdown does not cancel the handler, the request timeout does.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.config.RequestTimeout)
		defer cancel()
		b.HandleUpdate(ctx, update)
	}()
}

// Wait for a send slot and send.
// Retried while Telegram flood control rejects it.
func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, error) {
	return utils.Retry(ctx, b.retry, func() (tgbotapi.Message, error) {
		if err := b.limiter.Wait(ctx); err != nil {
			return tgbotapi.Message{}, err
		}
		return b.sender.Send(c)
	})
}

// Wait for a send slot and make a request, with no message in the response
func (b *Bot) request(ctx context.Context, c tgbotapi.Chattable) error {
	_, err := utils.Retry(ctx, b.retry, func() (*tgbotapi.APIResponse, error) {
		if err := b.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return b.sender.Request(c)
	})
	return err
}

// The wait Telegram asks for when flood control kicks in
func floodWait(err error) (time.Duration, bool) {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
		return time.Duration(apiErr.RetryAfter) * time.Second, true
	}
	return 0, false
}
