package transcripts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/vlatan/transcript-bot/internal/models"
)

// CaptionService lists and fetches the caption tracks of a video
type CaptionService interface {
	ListTracks(ctx context.Context, videoID string) ([]models.TrackInfo, error)
	FetchTrack(ctx context.Context, track models.TrackInfo) ([]models.Entry, error)
}

// NoTranscriptError is returned when every language in the priority list
// and the automatic track failed. Available is informational only.
type NoTranscriptError struct {
	VideoID   string
	Reason    string
	Available []models.TrackInfo
}

func (e *NoTranscriptError) Error() string {
	return fmt.Sprintf("no transcript available for video '%s': %s", e.VideoID, e.Reason)
}

type Resolver struct {
	captions  CaptionService
	languages []string
}

// NewResolver creates a resolver trying the languages in the given order
func NewResolver(captions CaptionService, languages []string) *Resolver {
	return &Resolver{
		captions:  captions,
		languages: languages,
	}
}

// Resolve finds the best caption track of a video.
// The priority languages are tried in order, the first successful fetch wins.
// If none succeeds the automatic track is tried once, labeled AutoDetected.
// Per-language failures are absorbed, only a cancelled context stops the loop.
func (r *Resolver) Resolve(ctx context.Context, videoID string) (*models.Track, error) {

	tracks, err := r.captions.ListTracks(ctx, videoID)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &NoTranscriptError{VideoID: videoID, Reason: err.Error()}
	}

	lastErr := fmt.Errorf("no transcript found for languages %v", r.languages)
	attempted := make(map[string]bool)

	for _, lang := range r.languages {

		track, ok := pickLanguage(tracks, lang)
		if !ok {
			continue
		}

		attempted[track.URL] = true
		entries, err := r.captions.FetchTrack(ctx, track)
		if err == nil {
			return &models.Track{TrackInfo: track, Label: lang, Entries: entries}, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		log.Printf("Failed to fetch the '%s' track of video '%s': %v", lang, videoID, err)
		lastErr = err
	}

	// One last attempt with the automatic track
	track, ok := pickAutomatic(tracks, attempted)
	if !ok {
		return nil, &NoTranscriptError{VideoID: videoID, Reason: lastErr.Error()}
	}

	entries, err := r.captions.FetchTrack(ctx, track)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &NoTranscriptError{VideoID: videoID, Reason: err.Error()}
	}

	return &models.Track{TrackInfo: track, Label: models.AutoDetected, Entries: entries}, nil
}

// Available lists the caption tracks of a video on best-effort basis.
// It never affects the resolution, errors result in an empty list.
func (r *Resolver) Available(ctx context.Context, videoID string) []models.TrackInfo {
	tracks, err := r.captions.ListTracks(ctx, videoID)
	if err != nil {
		return nil
	}
	return tracks
}

// Summary renders up to limit tracks, one per line
func Summary(tracks []models.TrackInfo, limit int) string {

	if limit >= 0 && len(tracks) > limit {
		tracks = tracks[:limit]
	}

	lines := make([]string, len(tracks))
	for i, t := range tracks {
		lines[i] = fmt.Sprintf("• %s (%s) - %s", t.DisplayLanguage(), t.LanguageCode, t.Kind())
	}

	return strings.Join(lines, "\n")
}

// Pick the track of the exact language code,
// a manual one is preferred to a generated one.
func pickLanguage(tracks []models.TrackInfo, lang string) (models.TrackInfo, bool) {

	var generated *models.TrackInfo
	for i, t := range tracks {
		if t.LanguageCode != lang {
			continue
		}

		if !t.Generated {
			return t, true
		}

		if generated == nil {
			generated = &tracks[i]
		}
	}

	if generated != nil {
		return *generated, true
	}

	return models.TrackInfo{}, false
}

// Pick the automatic track. Tracks not attempted yet come first,
// a generated one before the first listed one.
// When every track was attempted the first generated track is picked,
// or else the first track the service listed.
func pickAutomatic(tracks []models.TrackInfo, attempted map[string]bool) (models.TrackInfo, bool) {

	var untried []models.TrackInfo
	for _, t := range tracks {
		if !attempted[t.URL] {
			untried = append(untried, t)
		}
	}

	if len(untried) > 0 {
		tracks = untried
	}

	if len(tracks) == 0 {
		return models.TrackInfo{}, false
	}

	for _, t := range tracks {
		if t.Generated {
			return t, true
		}
	}

	return tracks[0], true
}

// IsNoTranscript reports whether the error means no transcript could be resolved
func IsNoTranscript(err error) bool {
	var target *NoTranscriptError
	return errors.As(err, &target)
}
