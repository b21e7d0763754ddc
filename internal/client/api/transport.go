package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenSource yields the current bearer token. It is consulted on every
// request, so a token set between two calls applies to the second one.
type TokenSource interface {
	Get() (string, bool)
}

// Observer receives one notification per exchange. Status is 0 when no
// response was received.
type Observer interface {
	ObserveRequest(operation, method string, status int, elapsed time.Duration)
}

// Config is the explicit configuration of a Transport.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     *zerolog.Logger
	Observer   Observer
	UserAgent  string
}

// Transport executes descriptors against one API base URL.
type Transport struct {
	baseURL   string
	client    *http.Client
	tokens    TokenSource
	log       zerolog.Logger
	observer  Observer
	userAgent string
}

func NewTransport(cfg Config) (*Transport, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	t := &Transport{
		baseURL:   cfg.BaseURL,
		client:    cfg.HTTPClient,
		tokens:    cfg.Tokens,
		log:       zerolog.Nop(),
		observer:  cfg.Observer,
		userAgent: cfg.UserAgent,
	}
	if t.client == nil {
		t.client = http.DefaultClient
	}
	if cfg.Logger != nil {
		t.log = *cfg.Logger
	}
	return t, nil
}

func (t *Transport) BaseURL() string { return t.baseURL }

// Execute runs d and decodes a 2xx body into T. A string T accepts a
// non-JSON body verbatim.
func Execute[T any](ctx context.Context, t *Transport, d Descriptor) (T, error) {
	var out T
	status, body, err := t.do(ctx, d)
	if err != nil {
		return out, err
	}
	if s, ok := any(&out).(*string); ok {
		if json.Unmarshal(body, s) != nil {
			*s = string(body)
		}
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &DecodeError{Operation: d.Operation, Status: status, Body: body, Err: err}
	}
	return out, nil
}

// do sends the request and returns the status and body of a 2xx response.
func (t *Transport) do(ctx context.Context, d Descriptor) (int, []byte, error) {
	u, err := d.buildURL(t.baseURL)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", d.Operation, err)
	}
	body, contentType, err := d.encodeBody()
	if err != nil {
		return 0, nil, fmt.Errorf("%s: %w", d.Operation, err)
	}
	req, err := http.NewRequestWithContext(ctx, d.Method, u, body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", d.Operation, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if t.tokens != nil {
		if tok, ok := t.tokens.Get(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.observe(d, 0, start)
		t.log.Warn().Err(err).Str("op", d.Operation).Str("request_id", reqID).Msg("request failed")
		return 0, nil, &TransportError{Operation: d.Operation, Method: d.Method, URL: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	t.observe(d, resp.StatusCode, start)
	if err != nil {
		return 0, nil, &TransportError{Operation: d.Operation, Method: d.Method, URL: u, Err: fmt.Errorf("read body: %w", err)}
	}

	lvl := zerolog.DebugLevel
	if resp.StatusCode >= http.StatusMultipleChoices {
		lvl = zerolog.WarnLevel
	}
	t.log.WithLevel(lvl).Str("op", d.Operation).
		Str("method", d.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", reqID).
		Msg("api exchange")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, nil, newError(d, u, resp.StatusCode, raw)
	}
	return resp.StatusCode, raw, nil
}

func (t *Transport) observe(d Descriptor, status int, start time.Time) {
	if t.observer != nil {
		t.observer.ObserveRequest(d.Operation, d.Method, status, time.Since(start))
	}
}

// IsCanceled reports whether err came from a cancelled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, ErrCanceled)
}
