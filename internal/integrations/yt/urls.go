package yt

import "regexp"

// Video ID patterns, tried in order.
// The host part is case-insensitive, the ID keeps its case.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(
		`(?i:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|m\.youtube\.com/watch\?v=)([^&?#\s]+)`,
	),
	regexp.MustCompile(`(?i:youtube\.com/watch\?).*v=([^&?#\s]+)`),
}

var youTubeHost = regexp.MustCompile(`(?i)(https?://)?(www\.)?(youtube\.com|youtu\.be|m\.youtube\.com)`)

// ExtractVideoID extracts the video ID from a text containing a YouTube link.
// Returns empty string if no link shape matches.
func ExtractVideoID(text string) string {
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			return match[1]
		}
	}
	return ""
}

// IsYouTubeURL reports whether the text mentions a YouTube host at all.
// It's looser than ExtractVideoID.
func IsYouTubeURL(text string) bool {
	return youTubeHost.MatchString(text)
}
