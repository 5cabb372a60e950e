package yt

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strconv"

	ytplayer "github.com/kkdai/youtube/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/vlatan/transcript-bot/internal/models"
)

// Max size of a timedtext document
const maxTimedTextSize = 8 << 20

// Strips every HTML tag from the caption text
var stripTags = bluemonday.StrictPolicy()

// Timedtext XML as served on the caption track base URL
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Text     string `xml:",chardata"`
		Start    string `xml:"start,attr"`
		Duration string `xml:"dur,attr"`
	} `xml:"text"`
}

// ListTracks lists all the caption tracks of a video,
// manual and auto-generated, with a single player request.
func (s *Service) ListTracks(ctx context.Context, videoID string) ([]models.TrackInfo, error) {

	video, err := s.player.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, classifyPlayerError(videoID, err)
	}

	tracks := trackInfos(video.CaptionTracks)
	if len(tracks) == 0 {
		return nil, ErrTranscriptsDisabled
	}

	return tracks, nil
}

// FetchTrack downloads and parses the entries of a caption track
func (s *Service) FetchTrack(ctx context.Context, track models.TrackInfo) ([]models.Entry, error) {

	if track.URL == "" {
		return nil, fmt.Errorf("%w: no URL for language '%s'", ErrTrackNotFound, track.LanguageCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept-Language", "en-US")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch the '%s' captions: %w", track.LanguageCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: language '%s'", ErrTrackNotFound, track.LanguageCode)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"failed to fetch the '%s' captions; received status code %d",
			track.LanguageCode, resp.StatusCode,
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTimedTextSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read the '%s' captions: %w", track.LanguageCode, err)
	}

	entries, err := parseTimedText(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the '%s' captions: %w", track.LanguageCode, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: language '%s' has no entries", ErrTrackNotFound, track.LanguageCode)
	}

	return entries, nil
}

// Convert the player caption tracks to our track info.
// Tracks of kind "asr" are generated by speech recognition.
func trackInfos(captionTracks []ytplayer.CaptionTrack) []models.TrackInfo {
	tracks := make([]models.TrackInfo, 0, len(captionTracks))
	for _, ct := range captionTracks {
		tracks = append(tracks, models.TrackInfo{
			LanguageCode: ct.LanguageCode,
			Language:     ct.Name.SimpleText,
			Generated:    ct.Kind == "asr",
			Translatable: ct.IsTranslatable,
			URL:          ct.BaseURL,
		})
	}
	return tracks
}

// Parse the timedtext XML into entries, keeping the order
func parseTimedText(data []byte) ([]models.Entry, error) {

	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, err
	}

	entries := make([]models.Entry, 0, len(tt.Texts))
	for _, text := range tt.Texts {

		start, err := strconv.ParseFloat(text.Start, 64)
		if err != nil {
			start = 0
		}

		duration, err := strconv.ParseFloat(text.Duration, 64)
		if err != nil {
			duration = 0
		}

		entries = append(entries, models.Entry{
			Start:    max(start, 0),
			Duration: max(duration, 0),
			Text:     cleanText(text.Text),
		})
	}

	return entries, nil
}

// Caption text is HTML escaped once more inside the XML,
// and may carry formatting tags such as <font> or <i>.
func cleanText(text string) string {
	text = html.UnescapeString(text)
	text = stripTags.Sanitize(text)
	return html.UnescapeString(text)
}
