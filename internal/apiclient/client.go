package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenCookie is the cookie the browser session keeps its bearer token in.
const TokenCookie = "auth_token"

var ErrInvalidResponseFormat = errors.New("invalid response format")

type RequestFailedError struct {
	StatusCode int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type TokenSource interface {
	Token() (string, bool)
}

// StaticToken always yields the same token. The empty string means no token.
type StaticToken string

func (s StaticToken) Token() (string, bool) {
	return string(s), s != ""
}

// CookieTokenSource reads the session token from an incoming request.
type CookieTokenSource struct {
	Request *http.Request
}

func (s CookieTokenSource) Token() (string, bool) {
	if s.Request == nil {
		return "", false
	}
	cookie, err := s.Request.Cookie(TokenCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     StaticToken(""),
		logger:     logger,
	}
}

// WithTokenSource returns a copy of c that authenticates with tokens.
func (c *Client) WithTokenSource(tokens TokenSource) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

// Fetch GETs endpoint and returns the item list from whichever envelope the
// server used.
func Fetch[T any](ctx context.Context, c *Client, endpoint string) ([]T, error) {
	logger := c.logger.With(zap.String("endpoint", endpoint))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		logger.Error("api request failed", zap.Error(err))
		return nil, err
	}

	decoded, err := Decode(body)
	if err != nil {
		logger.Error("api response is not valid JSON", zap.Error(err))
		return nil, err
	}
	if decoded.Shape == ShapeUnrecognized {
		logger.Error("unexpected api response shape", zap.ByteString("body", decoded.Raw))
		return nil, ErrInvalidResponseFormat
	}

	items := []T{}
	if err := json.Unmarshal(decoded.Items, &items); err != nil {
		logger.Error("decoding api items failed", zap.String("shape", decoded.Shape.String()), zap.Error(err))
		return nil, fmt.Errorf("decoding items from %s: %w", endpoint, err)
	}

	return items, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestFailedError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return body, nil
}
