package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
)

// errorEnvelope is the server's error body shape. A top-level message wins;
// otherwise the first entry of the per-field validation map is used.
type errorEnvelope struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// firstError extracts the most useful message from an error payload,
// falling back to the given text when the payload carries none.
func firstError(payload []byte, fallback string) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return fallback
	}

	if envelope.Message != "" {
		return envelope.Message
	}

	fields := make([]string, 0, len(envelope.Errors))
	for field := range envelope.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		if msgs := envelope.Errors[field]; len(msgs) > 0 && msgs[0] != "" {
			return msgs[0]
		}
	}

	return fallback
}

// FieldErrors extracts the per-field validation messages from an error
// payload, one message per field. Missing or malformed payloads yield nil.
func FieldErrors(payload []byte) map[string]string {
	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil
	}
	if len(envelope.Errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(envelope.Errors))
	for field, msgs := range envelope.Errors {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}

// suspensionMessage pulls the server's message out of a 423 body. A body
// that is not JSON or carries no message yields "".
func suspensionMessage(body io.Reader) string {
	payload, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return ""
	}
	var envelope errorEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

// RequestError is a non-2xx API response outside the interceptor statuses.
type RequestError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *RequestError) Error() string {
	return e.Message
}

// newStatusError drains the response body and builds a RequestError from
// its error envelope.
func newStatusError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	return &RequestError{
		StatusCode: resp.StatusCode,
		Message:    firstError(payload, fmt.Sprintf("request failed with status %d", resp.StatusCode)),
		Fields:     FieldErrors(payload),
	}
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound
}

// IsValidation reports whether err is a 422 validation response.
func IsValidation(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusUnprocessableEntity
}
