package yt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/vlatan/transcript-bot/internal/drivers/rdb"
)

// VideoTitle gets the title of a video.
// Titles are cached in Redis if Redis is configured.
func (s *Service) VideoTitle(ctx context.Context, videoID string) (string, error) {
	return rdb.GetCachedData(
		ctx,
		s.rdb,
		"title:"+videoID,
		s.config.TitleCacheTimeout,
		func() (string, error) {
			return s.fetchTitle(ctx, videoID)
		},
	)
}

// Fetch the title from the Data API if available, otherwise from oEmbed
func (s *Service) fetchTitle(ctx context.Context, videoID string) (string, error) {

	ctx, cancel := context.WithTimeout(ctx, s.config.TitleTimeout)
	defer cancel()

	if s.youtube != nil {
		return s.dataAPITitle(ctx, videoID)
	}

	return s.oEmbedTitle(ctx, videoID)
}

// Get the video title from the YouTube Data API
func (s *Service) dataAPITitle(ctx context.Context, videoID string) (string, error) {

	part := []string{"snippet"}
	response, err := s.youtube.Videos.List(part).Id(videoID).Context(ctx).Do()
	if err != nil {
		msg := "unable to get a response from YouTube"
		log.Printf("%s: %v", msg, err)
		return "", errors.New(msg)
	}

	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return "", ErrVideoNotFound
	}

	title := response.Items[0].Snippet.Title
	if title == "" {
		return "", fmt.Errorf("video '%s' has an empty title", videoID)
	}

	return title, nil
}

// Get the video title from the public oEmbed endpoint
func (s *Service) oEmbedTitle(ctx context.Context, videoID string) (string, error) {

	query := url.Values{}
	query.Set("url", "https://www.youtube.com/watch?v="+videoID)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.OEmbedURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch oEmbed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oEmbed for video '%s' returned status code %d", videoID, resp.StatusCode)
	}

	var data struct {
		Title string `json:"title"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode oEmbed data: %w", err)
	}

	if data.Title == "" {
		return "", fmt.Errorf("oEmbed for video '%s' has no title", videoID)
	}

	return data.Title, nil
}
