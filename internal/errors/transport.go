package errors

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// MapTransportError maps a failure from an HTTP round trip to an AppError.
//   - context.Canceled → Canceled
//   - context.DeadlineExceeded or a net timeout → Timeout
//   - anything else → Transport
//
// Errors that already carry an AppError are returned unchanged.
func MapTransportError(err error, op string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return Wrap(err, ErrCodeCanceled, op+" canceled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, ErrCodeTimeout, op+" timed out")
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Wrap(err, ErrCodeTimeout, op+" timed out")
	}
	return Wrap(err, ErrCodeTransport, op+" failed")
}

// CodeForStatus returns the error code describing a non-2xx HTTP status.
func CodeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeValidation
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeRemote
	}
}
