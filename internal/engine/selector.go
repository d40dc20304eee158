package engine

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// audio bitrate tiers accepted by the API; anything else resolves to 192
var audioBitrates = map[string]string{
	"128":  "128",
	"192":  "192",
	"256":  "256",
	"320":  "320",
	"best": "192",
}

// AudioBitrate resolves a requested quality tier to a kbps value.
func AudioBitrate(quality string) string {
	if v, ok := audioBitrates[quality]; ok {
		return v
	}
	return "192"
}

// FormatSelector builds the yt-dlp format expression for a video download.
// The fallback order is deliberate: constrained container+height, any
// container at the height, best under the height, best in container,
// absolute best. It trades exact-match fidelity for never coming up empty.
func FormatSelector(container, quality string) string {
	if quality == "" || quality == "best" {
		return "bestvideo+bestaudio/best"
	}
	height := parseHeight(quality)
	if height <= 0 {
		return "bestvideo+bestaudio/best"
	}
	switch container {
	case "mp4":
		return fmt.Sprintf(
			"bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=%d]+bestaudio/best[height<=%d][ext=mp4]/best[ext=mp4]/best",
			height, height, height)
	case "mkv":
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]/best", height, height)
	default:
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best", height)
	}
}

// NormalizeExtension rewrites the produced filename to carry the requested
// output extension. The engine reports the pre-postprocessing name, while
// the file on disk ends up with the transcoded one.
func NormalizeExtension(path, formatType, fileFormat string) string {
	ext := strings.ToLower(fileFormat)
	if strings.EqualFold(formatType, "audio") {
		if ext != "wav" {
			ext = "mp3"
		}
	} else if ext == "" {
		ext = "mp4"
	}
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	return stem + "." + ext
}

// parseHeight pulls the pixel height out of labels like "1080p" or "720p60".
func parseHeight(q string) int {
	if strings.EqualFold(q, "4k") {
		return 2160
	}
	digits := ""
	for _, c := range q {
		if c >= '0' && c <= '9' {
			digits += string(c)
		} else if digits != "" {
			break
		}
	}
	if digits == "" {
		return 0
	}
	val, _ := strconv.Atoi(digits)
	return val
}
