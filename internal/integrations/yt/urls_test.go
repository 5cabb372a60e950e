package yt

import "testing"

func TestExtractVideoID(t *testing.T) {

	tests := []struct {
		name, input, expected string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url without www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed url", "https://youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"v url", "https://youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile url", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"generic query form", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"trailing ampersand", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"trailing question mark", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
		{"trailing hash", "https://youtu.be/dQw4w9WgXcQ#comments", "dQw4w9WgXcQ"},
		{"trailing newline", "https://youtu.be/dQw4w9WgXcQ\nthanks", "dQw4w9WgXcQ"},
		{"trailing words", "look https://youtu.be/dQw4w9WgXcQ please", "dQw4w9WgXcQ"},
		{"upper case host", "HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"id case preserved", "https://youtu.be/AbCdEf_-123", "AbCdEf_-123"},
		{"no scheme", "youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"not youtube", "https://vimeo.com/12345", ""},
		{"plain text", "hello there", ""},
		{"youtube without id", "https://www.youtube.com/", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.input); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsYouTubeURL(t *testing.T) {

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", true},
		{"mobile url", "m.youtube.com/watch?v=x", true},
		{"host only", "youtube.com", true},
		{"upper case", "YOUTUBE.COM/channel/x", true},
		{"not youtube", "https://vimeo.com/12345", false},
		{"plain text", "send me a transcript", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsYouTubeURL(tt.input); got != tt.expected {
				t.Errorf("got %t, want %t", got, tt.expected)
			}
		})
	}
}
