package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// messagePaths are tried in order against a JSON error body.
var messagePaths = []string{"$.detail", "$.message", "$.error"}

// HTTPError is a non-2xx answer from the service.
type HTTPError struct {
	Status  int
	Method  string
	Path    string
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d - %s", e.Status, e.Message)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status
	}
	return 0
}

func newHTTPError(method, path string, status int, body []byte) *HTTPError {
	msg := bodyMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "unexpected status"
	}
	return &HTTPError{Status: status, Method: method, Path: path, Message: msg}
}

func bodyMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return ""
	}

	for _, expr := range messagePaths {
		v, err := jsonpath.Get(expr, doc)
		if err != nil || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s
			}
		default:
			b, err := json.Marshal(t)
			if err == nil {
				return string(b)
			}
		}
	}
	return ""
}
