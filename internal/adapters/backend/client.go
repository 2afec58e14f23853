// Package backend is the typed client for the remote profile API.
//
// Each call is a single HTTP round trip: no retries and no caching.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/skillcard/internal/domain/model"
	"github.com/okian/skillcard/pkg/logger"
	"github.com/okian/skillcard/pkg/metrics"
)

// Operation names used in errors, logs and metrics.
const (
	OpLogin      = "login"
	OpGetProfile = "get_profile"
	OpRegister   = "register"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

const defaultUserAgent = "skillcard/1.0"

// Client calls the remote profile API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    logger.Logger
}

// New creates a client rooted at baseURL, e.g. "http://localhost:8001".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:   u,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Login posts credentials to /login and returns the server payload.
func (c *Client) Login(ctx context.Context, creds model.LoginCredentials) (model.LoginResult, error) {
	var res model.LoginResult
	err := c.do(ctx, OpLogin, http.MethodPost, "/login", creds, func(body []byte) error {
		res.Raw = json.RawMessage(body)
		if len(bytes.TrimSpace(body)) > 0 {
			// The payload is opaque; only pick up "message" when it is an object.
			_ = json.Unmarshal(body, &res)
		}
		return nil
	})
	if err != nil {
		return model.LoginResult{}, err
	}
	return res, nil
}

// GetProfile fetches /profile/{username}. A 404 matches ErrNotFound.
func (c *Client) GetProfile(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := c.do(ctx, OpGetProfile, http.MethodGet, "/profile/"+url.PathEscape(username), nil, func(body []byte) error {
		return json.Unmarshal(body, &u)
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Register posts a new account to /register. Any 2xx is success; otherwise
// the returned *StatusError carries the server "detail" when present.
func (c *Client) Register(ctx context.Context, req model.RegistrationRequest) error {
	return c.do(ctx, OpRegister, http.MethodPost, "/register", req, nil)
}

// do performs one request and hands the body of a 2xx response to decode.
// Each call records exactly one upstream outcome.
func (c *Client) do(ctx context.Context, op, method, path string, payload any, decode func([]byte) error) error {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reqBody = bytes.NewReader(b)
	}

	// path arrives already escaped.
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	latencyMs := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordUpstreamCall(op, metrics.OutcomeTransport, latencyMs)
		c.logger.Warn(ctx, "backend request failed",
			logger.String("op", op),
			logger.Error(err),
		)
		return fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{Op: op, StatusCode: resp.StatusCode, Detail: parseDetail(body)}
		outcome := metrics.OutcomeRejected
		if errors.Is(se, ErrNotFound) {
			outcome = metrics.OutcomeNotFound
		}
		metrics.RecordUpstreamCall(op, outcome, latencyMs)
		c.logger.Debug(ctx, "backend rejected request",
			logger.String("op", op),
			logger.Int("status", resp.StatusCode),
			logger.String("detail", se.Detail),
		)
		return se
	}

	if readErr != nil {
		metrics.RecordUpstreamCall(op, metrics.OutcomeTransport, latencyMs)
		return fmt.Errorf("%s: read body: %w: %w", op, ErrTransport, readErr)
	}

	if decode != nil {
		if err := decode(body); err != nil {
			metrics.RecordUpstreamCall(op, metrics.OutcomeDecode, latencyMs)
			c.logger.Warn(ctx, "backend response undecodable",
				logger.String("op", op),
				logger.Error(err),
			)
			return fmt.Errorf("%s: %w: %w", op, ErrDecode, err)
		}
	}

	metrics.RecordUpstreamCall(op, metrics.OutcomeSuccess, latencyMs)
	c.logger.Debug(ctx, "backend request ok",
		logger.String("op", op),
		logger.Int("status", resp.StatusCode),
		logger.Float64("latency_ms", latencyMs),
	)
	return nil
}

// parseDetail extracts a string "detail" field; anything else counts as absent.
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}
