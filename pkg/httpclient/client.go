package httpclient

import (
	"net/http"
	"time"
)

// ClientType represents the type of HTTP client configuration
type ClientType string

const (
	// BrowserClient uses browser-like headers to avoid 406 (Not Acceptable) errors
	// Used for sites that require browser-like User-Agent and headers
	BrowserClient ClientType = "browser"

	// PlainClient uses simple headers (like curl) to avoid 403 (Forbidden) errors
	// from CDNs that block browser-like User-Agents on non-browser TLS stacks
	PlainClient ClientType = "plain"

	// DefaultClient uses Go's default headers. Good enough for JSON APIs
	// that authenticate per request
	DefaultClient ClientType = ""
)

// HTTPClient wraps an http.Client with a header profile and an optional
// pacing rule: a fixed minimum delay between consecutive outbound requests.
// Pacing is client-wide, not per-URL, so a listing call and the transcript
// page calls that follow it share the same spacing.
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
	pacer      *Pacer
}

// NewClient creates a new HTTP client with the specified type and no pacing.
func NewClient(clientType ClientType) *HTTPClient {
	client := &http.Client{
		Timeout: 30 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &HTTPClient{
		client:     client,
		clientType: clientType,
	}
}

// NewPacedClient creates a client that waits at least delay between
// consecutive requests. A delay of 0 disables pacing.
func NewPacedClient(clientType ClientType, delay time.Duration) *HTTPClient {
	c := NewClient(clientType)
	if delay > 0 {
		c.pacer = NewPacer(delay)
	}
	return c
}

// SetPacer replaces the client's pacer. Used by tests to inject a fake clock.
func (c *HTTPClient) SetPacer(p *Pacer) {
	c.pacer = p
}

// Do executes an HTTP request with the appropriate headers for the client type
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if c.pacer != nil {
		c.pacer.Wait()
	}
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		// Browser-like headers to avoid 406 (Not Acceptable) errors
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Connection", "keep-alive")
		req.Header.Set("Upgrade-Insecure-Requests", "1")

	case PlainClient:
		// Simple headers like curl; some CDNs allow simple tools but block
		// browser-like User-Agents coming from non-browser TLS stacks
		req.Header.Set("User-Agent", "curl/8.7.1")

	default:
		// Default: use Go's default User-Agent
	}
}
