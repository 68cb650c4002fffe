package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent identifies patternsfeed to the sites it scrapes.
const DefaultUserAgent = "patternsfeed/1.0 (blog to feed bridge)"

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a response body is read.
const DefaultMaxBodySize int64 = 10 << 20

var (
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrEmptyBody        = errors.New("empty response body")
	ErrBodyTooLarge     = errors.New("response body too large")
)

// Fetcher retrieves web pages and parses them as HTML.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// NewFetcher creates a fetcher. A nil client gets a default one with
// DefaultTimeout, and an empty user agent becomes DefaultUserAgent.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:      client,
		userAgent:   userAgent,
		maxBodySize: DefaultMaxBodySize,
	}
}

// Fetch performs a GET on url and parses the body as HTML. Any non-200
// status, a blank body or a body larger than DefaultMaxBodySize is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.maxBodySize)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	return ParseHTML(bytes.NewReader(body))
}
