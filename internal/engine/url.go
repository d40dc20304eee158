package engine

import (
	"regexp"
	"strings"
)

var watchPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// CleanURL strips playlist parameters and trailing query noise so the
// engine always resolves a single video instead of a whole playlist.
func CleanURL(raw string) string {
	if raw == "" {
		return raw
	}
	if id := ExtractVideoID(raw); id != "" {
		return "https://www.youtube.com/watch?v=" + id
	}
	if i := strings.IndexByte(raw, '&'); i >= 0 {
		return raw[:i]
	}
	return raw
}

// ExtractVideoID returns the video id embedded in a YouTube URL, or "".
func ExtractVideoID(raw string) string {
	for _, re := range watchPatterns {
		if m := re.FindStringSubmatch(raw); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}
