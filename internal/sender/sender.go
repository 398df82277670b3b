// Package sender delivers replies through the Messenger Send API.
package sender

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

	"posterbot/internal/messenger"
)

// DefaultGraphAPIURL is the Graph API base the Send API lives under.
const DefaultGraphAPIURL = "https://graph.facebook.com/v2.6"

// DefaultTimeout bounds a single Send API call.
const DefaultTimeout = 5 * time.Second

// maxErrorBody caps how much of an error response is kept for logs.
const maxErrorBody = 4 << 10

// Sender sends one outbound message.
type Sender interface {
	Send(ctx context.Context, msg *messenger.OutboundMessage) error
}

// SendError is returned when the Send API answers with a non-2xx status.
type SendError struct {
	Status int
	Body   string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send api returned status %d: %s", e.Status, e.Body)
}

// Config configures a Client.
type Config struct {
	GraphAPIURL     string
	PageAccessToken string
	Timeout         time.Duration
}

// Client is the HTTP Send API client.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewHTTPClient returns the shared HTTP client used for outbound calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// New creates a Send API client. A nil httpClient gets one bounded by
// cfg.Timeout.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = NewHTTPClient(cfg.Timeout)
	}
	base := cfg.GraphAPIURL
	if base == "" {
		base = DefaultGraphAPIURL
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(base, "/") + "/me/messages",
		token:      cfg.PageAccessToken,
	}
}

// Send posts msg to the Send API. It does not retry.
func (c *Client) Send(ctx context.Context, msg *messenger.OutboundMessage) error {
	if msg == nil {
		return errors.New("nil message")
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	body, err := json.Marshal(msg.Request())
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	endpoint := c.endpoint + "?" + url.Values{"access_token": {c.token}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send api request: %w", redact(err, c.token))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &SendError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// redact strips the access token out of transport errors, which embed the
// request URL. The original error stays reachable through Unwrap.
func redact(err error, token string) error {
	if token == "" {
		return err
	}
	msg := err.Error()
	clean := strings.ReplaceAll(msg, url.QueryEscape(token), "REDACTED")
	clean = strings.ReplaceAll(clean, token, "REDACTED")
	if clean == msg {
		return err
	}
	return &redactedError{msg: clean, err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }

func (e *redactedError) Unwrap() error { return e.err }
