package apiclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/aalvaropc/libris/internal/domain"
	"github.com/aalvaropc/libris/internal/infra/httpclient"
	"github.com/aalvaropc/libris/internal/ports"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const contentTypeJSON = "application/json"

// Client talks to the library REST service.
type Client struct {
	base    *url.URL
	exec    *httpclient.Executor
	tokens  ports.TokenSource
	limiter *rate.Limiter
	log     *slog.Logger
}

var _ ports.LibraryAPI = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.exec = httpclient.NewExecutor(httpclient.WithClient(c), httpclient.WithTimeout(c.Timeout))
	}
}

// WithTokenSource attaches `Authorization: Bearer <token>` when the source yields one.
func WithTokenSource(ts ports.TokenSource) Option {
	return func(cl *Client) { cl.tokens = ts }
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(cl *Client) {
		if rps <= 0 {
			cl.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		cl.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}

// New returns a client for baseURL. A missing trailing slash is added so
// relative endpoint paths resolve under it.
func New(baseURL string, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		if err == nil {
			err = fmt.Errorf("base url %q must be absolute", raw)
		}
		return nil, &domain.OpError{
			Op:   "apiclient.new",
			Kind: domain.KindInvalidConfig,
			Path: raw,
			Err:  err,
		}
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		base: u,
		exec: httpclient.NewExecutor(),
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromConfig wires transport, timeout and rate limit from the api section.
func NewFromConfig(cfg domain.APIConfig, opts ...Option) (*Client, error) {
	hc := httpclient.New(httpclient.FromAPI(cfg))
	base := []Option{
		WithHTTPClient(hc),
		WithRateLimit(cfg.RateLimit, cfg.Burst),
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}

// BaseURL returns the resolved service root.
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: path, Err: err}
		}
	}

	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &domain.OpError{Op: op, Kind: domain.KindInvalidRequest, Path: path, Err: err}
		}
		body = b
	}

	reqID := uuid.NewString()
	headers := map[string]string{
		"Accept":       contentTypeJSON,
		"X-Request-ID": reqID,
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			c.log.Warn("apiclient.token.unavailable", "op", op, "error", err)
		} else if tok != "" {
			headers["Authorization"] = "Bearer " + tok
		}
	}

	target := c.base.ResolveReference(&url.URL{Path: path})
	req, err := httpclient.BuildRequest(ctx, httpclient.Request{
		Method:      method,
		URL:         target.String(),
		Headers:     headers,
		Body:        body,
		ContentType: contentTypeJSON,
	})
	if err != nil {
		return err
	}

	res, err := c.exec.Do(ctx, req)
	if err != nil {
		c.log.Warn("apiclient.request.failed",
			"op", op, "method", method, "path", path, "request_id", reqID,
			"duration_ms", res.Duration.Milliseconds(), "error", err,
		)
		return &domain.OpError{Op: op, Kind: domain.KindExecution, Path: path, Err: err}
	}

	c.log.Debug("apiclient.request",
		"op", op, "method", method, "path", path, "request_id", reqID,
		"status", res.Status, "duration_ms", res.Duration.Milliseconds(),
	)

	if res.Status < 200 || res.Status > 299 {
		return &domain.OpError{
			Op:   op,
			Kind: domain.KindHTTP,
			Path: path,
			Err:  newHTTPError(method, path, res.Status, res.BodyBytes),
		}
	}

	if out == nil || len(res.BodyBytes) == 0 {
		return nil
	}
	if res.Truncated {
		return &domain.OpError{Op: op, Kind: domain.KindInvalidResponse, Path: path, Err: fmt.Errorf("response body exceeds %d bytes", len(res.BodyBytes))}
	}
	if err := json.Unmarshal(res.BodyBytes, out); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindInvalidResponse, Path: path, Err: err}
	}
	return nil
}

func itemPath(collection string, id int) string {
	return fmt.Sprintf("%s/%d", collection, id)
}
