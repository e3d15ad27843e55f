// Package errors turns errors into low-cardinality metric tag values.
package errors

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"

	apperrors "github.com/onebus/fleet-console/internal/errors"
)

// Classify returns the error_class tag for err: the AppError code when there
// is one, canceled or timeout for bare context errors, and otherwise the
// innermost error's type as pkg_type.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case apperrors.GetCode(err) != "":
		return string(apperrors.GetCode(err))
	case goerrors.Is(err, context.Canceled):
		return string(apperrors.ErrCodeCanceled)
	case goerrors.Is(err, context.DeadlineExceeded):
		return string(apperrors.ErrCodeTimeout)
	}

	for next := goerrors.Unwrap(err); next != nil; next = goerrors.Unwrap(next) {
		err = next
	}
	name := strings.TrimLeft(fmt.Sprintf("%T", err), "*")
	return strings.ToLower(strings.ReplaceAll(name, ".", "_"))
}
