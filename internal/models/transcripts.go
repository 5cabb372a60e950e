package models

// AutoDetected is the language label of the automatic fallback track
const AutoDetected = "auto-detected"

// Entry is one timed caption segment
type Entry struct {
	Start    float64 `json:"start"` // seconds from the video start
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// TrackInfo describes one caption track available on a video
type TrackInfo struct {
	LanguageCode string `json:"language_code"`
	Language     string `json:"language"`
	Generated    bool   `json:"is_generated"`
	Translatable bool   `json:"is_translatable"`
	URL          string `json:"-"` // where the track entries are fetched from
}

// Kind returns a human readable track kind
func (ti TrackInfo) Kind() string {
	if ti.Generated {
		return "Auto-generated"
	}
	return "Manual"
}

// DisplayLanguage returns the language name,
// or the code if the service provided no name
func (ti TrackInfo) DisplayLanguage() string {
	if ti.Language == "" {
		return ti.LanguageCode
	}
	return ti.Language
}

// Track is a resolved caption track with its entries.
// Label is the language the track was resolved by,
// a priority language code or AutoDetected.
type Track struct {
	TrackInfo
	Label   string
	Entries []Entry
}

// Document is a rendered transcript ready for delivery
type Document struct {
	VideoID  string
	Title    string
	Language string
	Content  []byte
	Filename string
}
