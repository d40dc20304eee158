package engine

import "strings"

// humanizeError maps raw engine failures to messages safe to store on the
// job and show to a client. Raw messages can leak local paths.
func humanizeError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "permission denied"):
		return "Storage permission denied. Please contact system administrator."
	case strings.Contains(msg, "no space left"):
		return "Disk space exhausted. Cannot complete download."
	case strings.Contains(msg, "ffmpeg"):
		return "Media processing error (FFmpeg failed). Please try again."
	case strings.Contains(msg, "cipher") || strings.Contains(msg, "signature"):
		return "YouTube restricted access to this video (Cipher/Signature error)."
	case strings.Contains(msg, "403"):
		return "Access forbidden. YouTube might be throttling the server IP."
	case strings.Contains(msg, "Unsupported URL") || strings.Contains(msg, "is not a valid URL"):
		return "This URL is not supported."
	case strings.Contains(msg, "Video unavailable"):
		return "This video is unavailable."
	default:
		return "An unexpected technical error occurred during processing."
	}
}
