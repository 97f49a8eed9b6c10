// Package jobtracker talks to a legacy Hadoop JobTracker: it fetches the
// HTML status pages over plain HTTP and extracts operational metrics from
// their fixed markup.
package jobtracker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"jtcheck/pkg/log"
)

const (
	// DefaultPort is the JobTracker's standard HTTP status port.
	DefaultPort = 50030

	statusPagePath   = "/jobtracker.jsp"
	machinesPagePath = "/machines.jsp?type=active"

	userAgent = "check-jobtracker monitoring plugin"
)

// Client fetches status pages from a single JobTracker.
type Client struct {
	baseURL string
	client  *retryablehttp.Client
	timeout time.Duration
}

// NewClient creates a client for the JobTracker at host:port. Every page
// fetch is bounded by timeout.
func NewClient(host string, port int, timeout time.Duration) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", host, port),
		client:  newHTTPClient(timeout),
		timeout: timeout,
	}
}

// newHTTPClient builds the underlying HTTP client. Retries are pinned to
// zero: a failed probe must report the failure, not paper over it.
func newHTTPClient(timeout time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.HTTPClient.Timeout = timeout
	client.Logger = nil // Disable retryablehttp logging

	return client
}

// StatusPage fetches the main status page (jobtracker.jsp), used by the
// cluster summary and heap usage checks.
func (c *Client) StatusPage(ctx context.Context) (string, error) {
	return c.fetch(ctx, statusPagePath)
}

// ActiveMachinesPage fetches the active machines page, used by the node
// list check.
func (c *Client) ActiveMachinesPage(ctx context.Context) (string, error) {
	return c.fetch(ctx, machinesPagePath)
}

// fetch performs the single synchronous GET of a run.
func (c *Client) fetch(ctx context.Context, path string) (string, error) {
	url := c.baseURL + path

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: building request for %s: %w", ErrConnection, url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %w", ErrConnection, url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("url", url).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: GET %s returned %s", ErrConnection, url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrConnection, url, err)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("%w: GET %s", ErrEmptyResponse, url)
	}

	log.Debug().Str("url", url).Int("bytes", len(body)).Msg("Fetched status page")

	return string(body), nil
}
