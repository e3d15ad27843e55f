package validation

import "strings"

// MaxImageSize is the largest image accepted by record forms.
const MaxImageSize int64 = 5 * 1024 * 1024

var imageContentTypes = map[string]bool{ //nolint:gochecknoglobals // read-only lookup
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/heic": true,
}

// Image returns an error message when the upload is not an accepted image type
// or exceeds MaxImageSize, and an empty string otherwise.
func Image(contentType string, size int64) string {
	if !imageContentTypes[strings.ToLower(strings.TrimSpace(contentType))] {
		return "Invalid file type."
	}
	if size > MaxImageSize {
		return "File exceeds 5MB."
	}
	return ""
}
