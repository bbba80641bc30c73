// Package webhook posts generation and regeneration requests to the external workflow service.
// The service performs all content generation; this package only moves JSON across HTTP.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonathan/landing-generator/internal/schemas"
	"github.com/jonathan/landing-generator/internal/types"
)

// DefaultUserAgent is the user agent string for webhook requests.
const DefaultUserAgent = "LandingGenerator/1.0"

// Error represents a failed webhook call: transport failure, non-OK status or unusable body.
type Error struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("webhook error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("webhook error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the webhook client.
type Options struct {
	// Timeout of a single call. Zero means no client-side timeout.
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns the defaults: no timeout, no extra headers.
func DefaultOptions() *Options {
	return &Options{
		UserAgent: DefaultUserAgent,
	}
}

// Client calls the generation and regeneration webhooks.
type Client struct {
	http          *resty.Client
	generateURL   string
	regenerateURL string
}

// NewClient creates a webhook client for the two endpoints.
func NewClient(generateURL, regenerateURL string, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}

	httpClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		httpClient.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	for key, value := range opts.Headers {
		httpClient.SetHeader(key, value)
	}

	return &Client{
		http:          httpClient,
		generateURL:   generateURL,
		regenerateURL: regenerateURL,
	}
}

// Generate posts the collected form data and returns the session document from the response.
// The response must contain a secciones object; nothing else is checked.
func (c *Client) Generate(ctx context.Context, req types.GenerationRequest) (*types.Document, error) {
	body, err := c.post(ctx, c.generateURL, req)
	if err != nil {
		return nil, err
	}

	if err := schemas.Validate(schemas.GenerationResponse, body); err != nil {
		return nil, &Error{URL: c.generateURL, StatusCode: http.StatusOK, Message: "unexpected response shape", Cause: err}
	}

	var doc types.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &Error{URL: c.generateURL, StatusCode: http.StatusOK, Message: "failed to decode document", Cause: err}
	}
	if doc.Secciones == nil {
		doc.Secciones = map[string]*types.SectionState{}
	}

	return &doc, nil
}

// Regenerate posts a regeneration instruction for one section and returns the new content.
func (c *Client) Regenerate(ctx context.Context, req types.RegenerationRequest) (string, error) {
	body, err := c.post(ctx, c.regenerateURL, req)
	if err != nil {
		return "", err
	}

	if err := schemas.Validate(schemas.RegenerationResponse, body); err != nil {
		return "", &Error{URL: c.regenerateURL, StatusCode: http.StatusOK, Message: "unexpected response shape", Cause: err}
	}

	var resp types.RegenerationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &Error{URL: c.regenerateURL, StatusCode: http.StatusOK, Message: "failed to decode response", Cause: err}
	}

	return resp.NuevoContenido, nil
}

// post sends one JSON request. There are no retries: failures surface to the caller.
func (c *Client) post(ctx context.Context, url string, payload any) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &Error{URL: url, Message: "webhook URL not configured"}
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(url)
	if err != nil {
		log.Printf("[webhook] POST %s failed after %v: %v", url, time.Since(start), err)
		return nil, &Error{URL: url, Message: "HTTP request failed", Cause: err}
	}

	log.Printf("[webhook] POST %s -> %d in %v", url, resp.StatusCode(), time.Since(start))

	if !resp.IsSuccess() {
		return nil, &Error{
			URL:        url,
			StatusCode: resp.StatusCode(),
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode()),
		}
	}

	return resp.Body(), nil
}
