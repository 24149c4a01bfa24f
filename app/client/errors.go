package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// TransportError covers network failures and non-2xx statuses.
type TransportError struct {
	Method string
	Path   string
	Status int // 0 when the request never got a response
	Msg    string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Msg)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AppError is a 2xx answer whose body carries an "error" field.
type AppError struct {
	Path string
	Msg  string
}

func (e *AppError) Error() string {
	return e.Msg
}

// Message picks the text a widget should show for err: the server's own
// message when there is one, fallback otherwise.
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	var tErr *TransportError
	if errors.As(err, &tErr) && tErr.Msg != "" {
		return tErr.Msg
	}
	return fallback
}

type errorEnvelope struct {
	Error *string `json:"error"`
}

// errorField extracts {"error": "..."} from an object body. Arrays and
// non-JSON bodies never carry one.
func errorField(body []byte) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", false
	}
	var env errorEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Error == nil {
		return "", false
	}
	return *env.Error, true
}
