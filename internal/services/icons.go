package services

import "strings"

// DefaultIconBaseURL hosts the fallback file-type icons.
const DefaultIconBaseURL = "https://a-v2.sndcdn.com/assets/icons"

var extensionIcons = map[string]string{
	"mp3":  "mp3",
	"wav":  "wav",
	"aiff": "aiff",
	"aif":  "aiff",
	"flac": "audio",
	"ogg":  "audio",
	"m4a":  "audio",
	"aac":  "audio",
	"mp2":  "audio",
	"wma":  "audio",
}

// ExtensionIcons implements [IconResolver] with 32px icons named after the file type.
type ExtensionIcons struct {
	BaseURL string
}

// IconForExtension returns "{base}/f/{name}-32.png" for ext, with or without a leading dot.
func (e ExtensionIcons) IconForExtension(ext string) string {
	base := strings.TrimRight(e.BaseURL, "/")
	if base == "" {
		base = DefaultIconBaseURL
	}

	name, ok := extensionIcons[strings.ToLower(strings.TrimPrefix(ext, "."))]
	if !ok {
		name = "unknown"
	}
	return base + "/f/" + name + "-32.png"
}
