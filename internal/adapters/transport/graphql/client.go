package graphql

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/olusolaa/api-contract-oracle/internal/adapters/ratelimit"
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
)

const (
	DefaultTimeout = 30 * time.Second
	// TokenValue is the session value that overrides the configured token.
	TokenValue = "token"
)

type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
	RPS      int
	Headers  map[string]string
}

type request struct {
	Query string `json:"query"`
}

// Client posts rendered GraphQL documents to one endpoint.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *ratelimit.Limiter
	logger  ports.Logger
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func NewClient(cfg Config, logger ports.Logger, opts ...Option) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation, "transport endpoint is required", "Set transport.endpoint in the configuration.")
	}
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for GraphQL client")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	c := &Client{
		cfg:     cfg,
		http:    &http.Client{},
		limiter: ratelimit.New(cfg.RPS, logger),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Send posts {"query": body} and returns the raw response. Non-2xx statuses
// are returned as responses, not errors; the oracle judges the body.
func (c *Client) Send(ctx context.Context, tc domain.TestCaseContext, body string) (domain.Response, error) {
	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(request{Query: body})
	if err != nil {
		return domain.Response{}, errors.Wrap(err, errors.CodeInternal, "failed to encode GraphQL request")
	}

	if err := c.limiter.Wait(ctx, c.logger); err != nil {
		return domain.Response{}, errors.Wrap(err, errors.CodeTimeout, "rate limiter wait aborted")
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Response{}, errors.Wrap(err, errors.CodeTransportError, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	if token := c.token(tc); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", tc.RunID+"/"+tc.CaseID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Response{}, errors.Wrap(err, errors.CodeTimeout,
				fmt.Sprintf("request for case %s timed out after %s", tc.CaseID, c.cfg.Timeout))
		}
		return domain.Response{}, errors.Wrap(err, errors.CodeTransportError,
			fmt.Sprintf("request for case %s failed", tc.CaseID))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Response{}, errors.Wrap(err, errors.CodeTransportError, "failed to read response body")
	}
	elapsed := time.Since(start)
	c.logger.Debugf(ctx, "Case %s: HTTP %d in %s (%d bytes)", tc.CaseID, resp.StatusCode, elapsed, len(data))

	return domain.Response{StatusCode: resp.StatusCode, Body: data, Duration: elapsed}, nil
}

func (c *Client) token(tc domain.TestCaseContext) string {
	if v, ok := tc.Value(TokenValue); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return c.cfg.Token
}
