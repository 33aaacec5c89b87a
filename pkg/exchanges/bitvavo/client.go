// Package bitvavo is a typed client for the Bitvavo v2 REST API.
//
// A Client built without credentials sends every request unsigned; it is up
// to the exchange to reject private endpoints. With credentials, every
// request carries the access key, timestamp and HMAC signature headers.
package bitvavo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"bitvavo-api/pkg/crypto"
	"bitvavo-api/pkg/exchanges/common"
)

const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.bitvavo.com"

	apiPrefix      = "/v2/"
	defaultTimeout = 10 * time.Second
)

// Logger receives one line per request. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...any)
}

// Config holds connection settings and optional credentials.
type Config struct {
	// APIKey and APISecret must both be set or both be empty. New takes
	// ownership of the buffers and Close wipes them.
	APIKey    crypto.Secret
	APISecret crypto.Secret

	BaseURL    string       // defaults to DefaultBaseURL
	HTTPClient *http.Client // defaults to a client with a 10s timeout
	Logger     Logger       // nil disables request logging
}

// Client talks to the exchange. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      *credentials
	timeSync   *common.TimeSync
	logger     Logger
	validate   *validator.Validate
	now        func() time.Time
}

// New validates the credentials and builds a client. Invalid credentials
// fail here with ErrInvalidCredentials, before any request is possible.
func New(cfg Config) (*Client, error) {
	creds, err := newCredentials(cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	c := &Client{
		baseURL:    base,
		httpClient: httpClient,
		creds:      creds,
		logger:     cfg.Logger,
		validate:   newValidator(),
		now:        time.Now,
	}
	c.timeSync = common.NewTimeSync(c.Time)
	return c, nil
}

// Signed reports whether requests carry authentication headers.
func (c *Client) Signed() bool {
	return c.creds != nil
}

// Close wipes the credentials. Later calls on a credentialed client fail
// with ErrClientClosed; an unsigned client is unaffected.
func (c *Client) Close() error {
	if c.creds != nil {
		c.creds.wipe()
	}
	return nil
}

// SyncTime measures the offset between the exchange clock and the local
// clock. Signed requests use the adjusted clock afterwards.
func (c *Client) SyncTime(ctx context.Context) error {
	if err := c.timeSync.Sync(ctx); err != nil {
		return err
	}
	c.logf("[BITVAVO] time sync: offset=%dms", c.timeSync.Offset())
	return nil
}

// timestamp returns epoch milliseconds, server-adjusted once synced.
func (c *Client) timestamp() int64 {
	if c.timeSync != nil && c.timeSync.Offset() != 0 {
		return c.timeSync.Now()
	}
	return c.now().UnixMilli()
}

// do performs exactly one request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, path string, q *query, payload, out any) error {
	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return &CodecError{Err: err}
		}
		body = b
	}

	target := apiPrefix + path + q.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+target, reader)
	if err != nil {
		return fmt.Errorf("bitvavo: build request %s %s: %w", method, target, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if err := c.creds.sign(req, c.timestamp(), target, body); err != nil {
			return err
		}
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logf("[BITVAVO] %s %s | error | %v", method, target, time.Since(start))
		return &TransportError{Method: method, Path: target, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return &TransportError{Method: method, Path: target, Err: err}
	}
	c.logf("[BITVAVO] %s %s | %d | %v", method, target, res.StatusCode, time.Since(start))

	return decodeResponse(res.StatusCode, raw, out)
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// get is the common GET-and-decode path of the read endpoints.
func get[T any](ctx context.Context, c *Client, path string, q *query) (T, error) {
	var out T
	if err := c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// post validates payload and sends it as a JSON body.
func post[T any](ctx context.Context, c *Client, path string, payload any) (T, error) {
	var zero T
	if err := c.validate.Struct(payload); err != nil {
		return zero, &ValidationError{Err: err}
	}
	var out T
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &out); err != nil {
		return zero, err
	}
	return out, nil
}
