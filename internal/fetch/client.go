// Package fetch talks to the remote list endpoint.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mitchellh/ioprogress"

	"github.com/idilsaglam/fetchlist/internal/model"
)

// DefaultEndpoint is where the list lives unless configured otherwise.
const DefaultEndpoint = "https://fetch-hiring.s3.amazonaws.com/hiring.json"

// Fetcher returns the raw, unsanitized list. A nil error means success,
// possibly with zero items.
type Fetcher interface {
	Fetch(ctx context.Context) ([]model.ListableItem, error)
}

// StatusError is returned when the endpoint answers outside 2xx.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error: %s\n(Error code %d)", e.Body, e.Code)
}

// Client fetches the list over HTTP.
type Client struct {
	url      string
	c        *http.Client
	progress io.Writer
}

type Option func(*Client)

// WithHTTPClient swaps the transport, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.c = hc }
}

// WithProgress draws download progress on w while the body is read.
func WithProgress(w io.Writer) Option {
	return func(c *Client) { c.progress = w }
}

func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{url: endpoint, c: http.DefaultClient}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Endpoint returns the URL the client requests.
func (c *Client) Endpoint() string { return c.url }

func (c *Client) Fetch(ctx context.Context) ([]model.ListableItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", c.url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		body := strings.TrimSpace(string(b))
		if err != nil {
			body = strings.TrimSpace(body + " (read body: " + err.Error() + ")")
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: body}
	}

	var body io.Reader = resp.Body
	if c.progress != nil {
		body = &ioprogress.Reader{
			Reader: resp.Body,
			Size:   resp.ContentLength,
			DrawFunc: ioprogress.DrawTerminalf(c.progress, func(progress, total int64) string {
				return fmt.Sprintf("Downloading [%s]: %s", ioprogress.DrawTextFormatBytes(progress, total), c.url)
			}),
		}
	}

	// A literal null decodes to a nil slice, treated as an empty list.
	var items []model.ListableItem
	if err := json.NewDecoder(body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", c.url, err)
	}
	if items == nil {
		items = []model.ListableItem{}
	}
	return items, nil
}
