package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aalvaropc/libris/internal/domain"
)

func TestBuildRequestJSONBody(t *testing.T) {
	assert := func(r *http.Request, body []byte) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected method POST, got %s", r.Method)
		}
		if r.URL.Path != "/books/" {
			t.Fatalf("expected path /books/, got %s", r.URL.Path)
		}
		if r.Header.Get("X-Test") != "yes" {
			t.Fatalf("expected header X-Test")
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected content-type json, got %s", ct)
		}
		if string(body) != `{"title":"Dune"}` {
			t.Fatalf("unexpected body %q", body)
		}
	}

	runRequest(t, Request{
		Method:      "post",
		Headers:     map[string]string{"X-Test": "yes"},
		Body:        []byte(`{"title":"Dune"}`),
		ContentType: "application/json",
	}, "/books/", assert)
}

func TestBuildRequestWithoutBody(t *testing.T) {
	assert := func(r *http.Request, body []byte) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected default GET, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "" {
			t.Fatalf("expected no content-type on empty body")
		}
		if len(body) != 0 {
			t.Fatalf("expected empty body")
		}
	}

	runRequest(t, Request{ContentType: "application/json"}, "/users/", assert)
}

func TestBuildRequestRejectsBadInput(t *testing.T) {
	if _, err := BuildRequest(context.Background(), Request{Method: "GET"}); !domain.IsKind(err, domain.KindInvalidRequest) {
		t.Fatalf("expected invalid request for empty url, got %v", err)
	}
	if _, err := BuildRequest(context.Background(), Request{Method: "TRACE", URL: "http://x/"}); !domain.IsKind(err, domain.KindInvalidRequest) {
		t.Fatalf("expected invalid request for unsupported method, got %v", err)
	}
}

func runRequest(t *testing.T, spec Request, path string, assert func(*http.Request, []byte)) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("failed reading body: %v", err)
		}
		assert(r, body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	spec.URL = server.URL + path

	req, err := BuildRequest(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("failed request: %v", err)
	}
	resp.Body.Close()
}
