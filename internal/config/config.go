package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Languages is an ordered list of caption language codes
type Languages []string

type Config struct {
	// Running localy or not
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Telegram
	TelegramBotToken  string        `env:"TELEGRAM_BOT_TOKEN"`
	TelegramRateLimit float64       `env:"TELEGRAM_RATE_LIMIT" envDefault:"20"`
	TelegramRateBurst int           `env:"TELEGRAM_RATE_BURST" envDefault:"5"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"2m"`

	// Retries of the sends rejected by the Telegram flood control
	TelegramMaxRetries   int           `env:"TELEGRAM_MAX_RETRIES" envDefault:"3"`
	TelegramMaxRetryWait time.Duration `env:"TELEGRAM_MAX_RETRY_WAIT" envDefault:"30s"`

	// Captions, tried in this order before the automatic track
	Languages      Languages     `env:"LANGUAGES" envDefault:"hi,hi-IN,en,en-US,en-GB"`
	CaptionTimeout time.Duration `env:"CAPTION_TIMEOUT" envDefault:"30s"`

	// Video metadata
	YouTubeAPIKey string        `env:"YOUTUBE_API_KEY"`
	OEmbedURL     string        `env:"OEMBED_URL" envDefault:"https://www.youtube.com/oembed"`
	TitleTimeout  time.Duration `env:"TITLE_TIMEOUT" envDefault:"10s"`

	// Redis, optional title cache
	RedisHost         string        `env:"REDIS_HOST"`
	RedisPort         int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	TitleCacheTimeout time.Duration `env:"TITLE_CACHE_TIMEOUT" envDefault:"86400s"`

	// Health check server host and port
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"8080"`
}

// New creates new config object
func New() *Config {

	// Parse the config from the environment
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}

	return &cfg
}

// Validate checks if the config has everything the bot needs to run
func (c *Config) Validate() error {

	if c.TelegramBotToken == "" {
		return errors.New("no TELEGRAM_BOT_TOKEN defined in env")
	}

	if c.TelegramRateLimit <= 0 {
		return fmt.Errorf("invalid TELEGRAM_RATE_LIMIT defined in env: %v", c.TelegramRateLimit)
	}

	if len(c.Languages) == 0 {
		return errors.New("empty LANGUAGES list defined in env")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT defined in env: %d", c.Port)
	}

	return nil
}

// RedisEnabled reports whether a Redis host was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// It's called by the env library to decode the comma separated language codes.
func (l *Languages) UnmarshalText(text []byte) error {

	var langs Languages
	for code := range strings.SplitSeq(string(text), ",") {
		if code = strings.TrimSpace(code); code != "" {
			langs = append(langs, code)
		}
	}

	if len(langs) == 0 {
		return errors.New("error decoding the languages; no language codes")
	}

	*l = langs
	return nil
}
