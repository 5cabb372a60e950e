package transcripts

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/vlatan/transcript-bot/internal/models"
)

// TitleService looks up video titles
type TitleService interface {
	VideoTitle(ctx context.Context, videoID string) (string, error)
}

// Service runs the whole pipeline for a single video
type Service struct {
	resolver *Resolver
	titles   TitleService
	now      func() time.Time
}

// New creates transcripts service
func New(captions CaptionService, titles TitleService, languages []string) *Service {
	return &Service{
		resolver: NewResolver(captions, languages),
		titles:   titles,
		now:      time.Now,
	}
}

// Extract resolves the transcript of a video and renders it as a document.
// Returns *NoTranscriptError, with the available tracks attached,
// if no caption track could be fetched.
func (s *Service) Extract(ctx context.Context, videoID string) (*models.Document, error) {

	track, err := s.resolver.Resolve(ctx, videoID)
	if err != nil {
		var noTranscript *NoTranscriptError
		if errors.As(err, &noTranscript) {
			noTranscript.Available = s.resolver.Available(ctx, videoID)
		}
		return nil, err
	}

	title := s.Title(ctx, videoID)
	return FormatDocument(track, videoID, title, track.Label, s.now()), nil
}

// Title gets the video title, never failing.
// Falls back to Video_<id> if the lookup fails.
func (s *Service) Title(ctx context.Context, videoID string) string {

	fallback := "Video_" + videoID
	if s.titles == nil {
		return fallback
	}

	title, err := s.titles.VideoTitle(ctx, videoID)
	if err != nil || title == "" {
		log.Printf("Failed to get the title of video '%s', using fallback: %v", videoID, err)
		return fallback
	}

	return title
}
