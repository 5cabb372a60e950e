package yt

import (
	"context"
	"net/http"

	ytplayer "github.com/kkdai/youtube/v2"
	"github.com/vlatan/transcript-bot/internal/config"
	"github.com/vlatan/transcript-bot/internal/drivers/rdb"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

type Service struct {
	config  *config.Config
	youtube *youtube.Service // nil if no API key, titles come from oEmbed
	player  *ytplayer.Client
	http    *http.Client
	rdb     *rdb.Service // nil if Redis is not configured
}

// Create new YouTube service.
// The Data API is used only if an API key is configured.
func New(ctx context.Context, config *config.Config, rdb *rdb.Service) (*Service, error) {

	httpClient := &http.Client{Timeout: config.CaptionTimeout}

	s := &Service{
		config: config,
		player: &ytplayer.Client{HTTPClient: httpClient},
		http:   httpClient,
		rdb:    rdb,
	}

	if config.YouTubeAPIKey == "" {
		return s, nil
	}

	var co option.ClientOption = option.WithAPIKey(config.YouTubeAPIKey)
	youtube, err := youtube.NewService(ctx, co)
	if err != nil {
		return nil, err
	}

	s.youtube = youtube
	return s, nil
}
