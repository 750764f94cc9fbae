package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/aalvaropc/libris/internal/domain"
)

// Request is a transport-level description of one API call.
// Body is already encoded; ContentType applies only when Body is non-empty.
type Request struct {
	Method      string
	URL         string
	Headers     map[string]string
	Body        []byte
	ContentType string
}

// BuildRequest builds an HTTP request from a Request.
func BuildRequest(ctx context.Context, spec Request) (*http.Request, error) {
	if strings.TrimSpace(spec.URL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidRequest,
			Err:  domain.ErrInvalidRequest,
		}
	}

	method := strings.ToUpper(strings.TrimSpace(spec.Method))
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	case "":
		method = http.MethodGet
	default:
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidRequest,
			Path: spec.URL,
			Err:  domain.ErrInvalidRequest,
		}
	}

	var body io.Reader = http.NoBody
	if len(spec.Body) > 0 {
		body = bytes.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, spec.URL, body)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidRequest,
			Path: spec.URL,
			Err:  err,
		}
	}

	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	if len(spec.Body) > 0 && spec.ContentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", spec.ContentType)
	}

	return req, nil
}
