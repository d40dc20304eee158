package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAudioBitrate(t *testing.T) {
	assert.Equal(t, "128", AudioBitrate("128"))
	assert.Equal(t, "320", AudioBitrate("320"))
	assert.Equal(t, "192", AudioBitrate("best"))

	// unrecognized tiers resolve to the default, never an error
	assert.Equal(t, "192", AudioBitrate("999"))
	assert.Equal(t, "192", AudioBitrate(""))
}

func TestFormatSelector_Best(t *testing.T) {
	assert.Equal(t, "bestvideo+bestaudio/best", FormatSelector("mp4", "best"))
	assert.Equal(t, "bestvideo+bestaudio/best", FormatSelector("mkv", ""))
}

func TestFormatSelector_MP4FallbackChain(t *testing.T) {
	got := FormatSelector("mp4", "1080p")
	want := "bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/bestvideo[height<=1080]+bestaudio/best[height<=1080][ext=mp4]/best[ext=mp4]/best"
	assert.Equal(t, want, got)
}

func TestFormatSelector_MKV(t *testing.T) {
	got := FormatSelector("mkv", "720p")
	assert.Equal(t, "bestvideo[height<=720]+bestaudio/best[height<=720]/best", got)
}

func TestFormatSelector_OtherContainer(t *testing.T) {
	got := FormatSelector("webm", "480p")
	assert.Equal(t, "bestvideo[height<=480]+bestaudio/best", got)
}

func TestFormatSelector_HeightNeverExceedsRequest(t *testing.T) {
	// requesting 1080p constrains every selection step to height<=1080,
	// so a 720p-max source yields a selection at or below 720
	got := FormatSelector("mp4", "1080p")
	assert.NotContains(t, got, "height<=1440")
	assert.Contains(t, got, "height<=1080")
	// chain always terminates in an unconstrained best
	assert.Regexp(t, `/best$`, got)
}

func TestFormatSelector_UnparsableQualityFallsBackToBest(t *testing.T) {
	assert.Equal(t, "bestvideo+bestaudio/best", FormatSelector("mp4", "ultra"))
}

func TestParseHeight(t *testing.T) {
	assert.Equal(t, 1080, parseHeight("1080p"))
	assert.Equal(t, 720, parseHeight("720p60"))
	assert.Equal(t, 2160, parseHeight("4k"))
	assert.Equal(t, 0, parseHeight("best"))
}

func TestNormalizeExtension(t *testing.T) {
	assert.Equal(t, "/tmp/a.mp3", NormalizeExtension("/tmp/a.webm", "audio", "mp3"))
	assert.Equal(t, "/tmp/a.wav", NormalizeExtension("/tmp/a.webm", "audio", "wav"))
	// audio formats other than wav are forced to mp3
	assert.Equal(t, "/tmp/a.mp3", NormalizeExtension("/tmp/a.webm", "audio", "ogg"))
	assert.Equal(t, "/tmp/a.mp4", NormalizeExtension("/tmp/a.mkv", "video", "mp4"))
	assert.Equal(t, "/tmp/a.mkv", NormalizeExtension("/tmp/a.mkv", "video", "mkv"))
	assert.Equal(t, "/tmp/a.mp4", NormalizeExtension("/tmp/a", "video", ""))
}
