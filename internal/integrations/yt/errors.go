package yt

import (
	"errors"
	"fmt"

	ytplayer "github.com/kkdai/youtube/v2"
)

var (
	ErrVideoUnavailable    = errors.New("this video is unavailable")
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrTrackNotFound       = errors.New("caption track not found")
	ErrVideoNotFound       = errors.New("could not fetch a result from YouTube")
)

// Separate the videos YouTube refuses to serve
// from the failures worth trying again.
func classifyPlayerError(videoID string, err error) error {

	var statusErr *ytplayer.ErrPlayabiltyStatus
	switch {
	case errors.Is(err, ytplayer.ErrVideoPrivate),
		errors.Is(err, ytplayer.ErrLoginRequired),
		errors.Is(err, ytplayer.ErrNotPlayableInEmbed),
		errors.As(err, &statusErr):
		return fmt.Errorf("%w: %v", ErrVideoUnavailable, err)
	}

	return fmt.Errorf("unable to get the player data of video '%s': %w", videoID, err)
}
