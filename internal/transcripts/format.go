package transcripts

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vlatan/transcript-bot/internal/models"
)

const separatorWidth = 60

// Anything but letters, marks, digits, underscore, whitespace and hyphen
var unsafeFilenameChars = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\p{Z}-]`)

// Runs of hyphens and whitespace
var filenameSpacing = regexp.MustCompile(`[-\s\p{Z}]+`)

// FormatTimestamp renders seconds as MM:SS, or HH:MM:SS if over an hour.
// Fractions are truncated, the hours are not wrapped.
func FormatTimestamp(seconds float64) string {

	total := int64(max(seconds, 0))
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}

	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatBody renders one "[timestamp] text" line per entry, in order
func FormatBody(entries []models.Entry) string {
	var sb strings.Builder
	for _, entry := range entries {
		sb.WriteString("[")
		sb.WriteString(FormatTimestamp(entry.Start))
		sb.WriteString("] ")
		sb.WriteString(strings.TrimSpace(entry.Text))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Filename derives a filesystem safe file name from the video title
func Filename(title, videoID string, now time.Time) string {
	safeTitle := unsafeFilenameChars.ReplaceAllString(title, "")
	safeTitle = filenameSpacing.ReplaceAllString(safeTitle, "_")
	return fmt.Sprintf("%s_%s_%s.txt", safeTitle, videoID, now.Format("20060102"))
}

// FormatDocument renders the header and the timestamped body of a transcript
func FormatDocument(track *models.Track, videoID, title, language string, now time.Time) *models.Document {

	if language == "" {
		language = "Unknown"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Transcript for: %s\n", title)
	fmt.Fprintf(&sb, "Video ID: %s\n", videoID)
	fmt.Fprintf(&sb, "Language: %s\n", language)
	fmt.Fprintf(&sb, "Extracted on: %s\n", now.Format(time.DateTime))
	sb.WriteString(strings.Repeat("=", separatorWidth))
	sb.WriteString("\n\n")

	if track != nil {
		sb.WriteString(FormatBody(track.Entries))
	}

	return &models.Document{
		VideoID:  videoID,
		Title:    title,
		Language: language,
		Content:  []byte(sb.String()),
		Filename: Filename(title, videoID, now),
	}
}
