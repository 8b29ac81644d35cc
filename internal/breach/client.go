package breach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultUserAgent = "Email-Breach-Checker"

// ErrUnreachable covers transport failures and timeouts: the upstream never
// produced a response.
var ErrUnreachable = errors.New("no response from breach checking service")

// StatusError is an HTTP error response from the upstream service.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API Error: %d - %s", e.Status, http.StatusText(e.Status))
}

// Client wraps the third-party breach-analytics API. One attempt per lookup,
// bounded by the client timeout; there is no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Analytics fetches the breach report for an email and returns the upstream
// JSON payload unmodified.
func (c *Client) Analytics(ctx context.Context, email string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/breach-analytics?email=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return json.RawMessage(body), nil
}
