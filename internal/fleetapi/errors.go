package fleetapi

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/onebus/fleet-console/internal/errors"
)

// errorBody is the backend's error payload.
type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Field   string `json:"field,omitempty"`
		Message string `json:"message"`
	} `json:"errors"`
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status   int
	Method   string
	Path     string
	Message  string
	Messages []string
	Fields   map[string]string
}

func (e *APIError) Error() string {
	msg := e.UserMessage()
	if msg == "" {
		msg = "no message"
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, msg)
}

// Unwrap exposes the matching application error so errors.As and the IsX
// helpers of the errors package see the status class.
func (e *APIError) Unwrap() error {
	return &apperrors.AppError{Code: apperrors.CodeForStatus(e.Status), Message: e.UserMessage()}
}

// UserMessage returns the server's message, or its per-error messages joined,
// or "" when the server sent neither.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.Join(e.Messages, " ")
}

func newAPIError(status int, method, path string, body []byte) *APIError {
	e := &APIError{Status: status, Method: method, Path: path}
	var eb errorBody
	if len(body) == 0 || json.Unmarshal(body, &eb) != nil {
		return e
	}
	e.Message = strings.TrimSpace(eb.Message)
	for _, item := range eb.Errors {
		m := strings.TrimSpace(item.Message)
		if m == "" {
			continue
		}
		e.Messages = append(e.Messages, m)
		if item.Field != "" {
			if e.Fields == nil {
				e.Fields = make(map[string]string)
			}
			e.Fields[item.Field] = m
		}
	}
	return e
}
