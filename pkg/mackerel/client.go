package mackerel

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/config"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/metrics"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/version"
)

// APIPrefix is prepended to every request path.
const APIPrefix = "/api/v0"

// maxErrorBody bounds how much of a failed response is kept for the error message.
const maxErrorBody = 4096

// Client talks to the Mackerel API. It is safe for concurrent use.
type Client struct {
	base       *url.URL
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

var _ api.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, e.g. to inject a stub transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Client from cfg. The config must have been validated.
func NewClient(cfg *config.Config, logger *zap.SugaredLogger, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "can't parse base URL %q", cfg.BaseURL)
	}

	c := &Client{
		base:       base,
		apiKey:     cfg.APIKey,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Do implements api.Client.
func (c *Client) Do(ctx context.Context, r api.Request) (json.RawMessage, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstream(r.Method, 0)
		c.logger.Debugw("Upstream request failed", "method", r.Method, "path", r.Path, "error", err)

		return nil, &api.Error{
			Kind:    api.KindUpstream,
			Message: "request to Mackerel API failed: " + describeTransportError(ctx, err),
			Err:     err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordUpstream(r.Method, resp.StatusCode)
	c.logger.Debugw("Upstream request finished",
		"method", r.Method, "path", r.Path, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, statusError(resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &api.Error{
			Kind:    api.KindUpstream,
			Status:  resp.StatusCode,
			Message: "can't read response body: " + describeTransportError(ctx, err),
			Err:     err,
		}
	}

	return body, nil
}

func (c *Client) newRequest(ctx context.Context, r api.Request) (*http.Request, error) {
	// r.Path is already escaped.
	target := c.base.String() + APIPrefix + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		raw, err := json.Marshal(r.Body)
		if err != nil {
			return nil, &api.Error{Kind: api.KindInternal, Message: "can't encode request body", Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, &api.Error{Kind: api.KindInternal, Message: "can't build request", Err: err}
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func describeTransportError(ctx context.Context, err error) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return "timed out: " + err.Error()
	}

	return err.Error()
}
