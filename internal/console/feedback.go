package console

import (
	"errors"

	apperrors "github.com/onebus/fleet-console/internal/errors"
	"github.com/onebus/fleet-console/internal/fleetapi"
)

// FeedbackMessage returns the text shown after a failed mutation: the
// backend's own message when it sent one, the message of a local validation
// failure, and fallback otherwise.
func FeedbackMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *fleetapi.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.UserMessage(); msg != "" {
			return msg
		}
		return fallback
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeValidation && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
