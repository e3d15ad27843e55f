package console

import (
	"encoding/base64"
	"fmt"
	"io"

	apperrors "github.com/onebus/fleet-console/internal/errors"
	"github.com/onebus/fleet-console/internal/validation"
)

// EncodeImage checks an uploaded image and returns its base64 form, the
// representation record payloads carry in their image field.
func EncodeImage(r io.Reader, contentType string, size int64) (string, error) {
	if msg := validation.Image(contentType, size); msg != "" {
		return "", apperrors.ValidationField("image", msg)
	}
	data, err := io.ReadAll(io.LimitReader(r, validation.MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > validation.MaxImageSize {
		return "", apperrors.ValidationField("image", "File exceeds 5MB.")
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
