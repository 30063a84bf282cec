// Package fetcher downloads monthly street-crime CSV drops from the police
// open-data archive with retries and rate limiting.
package fetcher

import (
	"context"
	"io"
	"math"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the HTTP fetcher.
type Options struct {
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	RequestsPerSec float64
}

// Client downloads archive files over HTTP.
type Client struct {
	client  *http.Client
	opts    Options
	limiter *rate.Limiter
}

// New creates a Client with the given options.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "crimescope/1.0"
	}
	if opts.RequestsPerSec <= 0 {
		opts.RequestsPerSec = 2
	}
	return &Client{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		opts:    opts,
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSec), 1),
	}
}

// Download fetches url and returns the response body. The caller must
// close it.
func (c *Client) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: build request %s", url)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, eris.Errorf("fetcher: GET %s: status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// DownloadToFile fetches url and writes it to path. Returns bytes written.
func (c *Client) DownloadToFile(ctx context.Context, url, path string) (int64, error) {
	body, err := c.Download(ctx, url)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, eris.Wrapf(err, "fetcher: mkdir for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, eris.Wrapf(err, "fetcher: create %s", path)
	}
	defer f.Close()

	n, err := io.Copy(f, body)
	if err != nil {
		return n, eris.Wrapf(err, "fetcher: write %s", path)
	}
	return n, nil
}

func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < c.opts.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetcher: rate limiter wait")
		}

		resp, err := c.client.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			zap.L().Warn("fetcher: request failed, retrying",
				zap.String("url", req.URL.String()),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("fetcher: GET %s: status %d", req.URL, resp.StatusCode)
			c.backoff(ctx, attempt)
			continue
		}

		return resp, nil
	}
	return nil, eris.Wrapf(lastErr, "fetcher: giving up after %d attempts", c.opts.MaxRetries)
}

// backoff sleeps with exponential backoff and jitter, respecting ctx.
func (c *Client) backoff(ctx context.Context, attempt int) {
	delay := time.Duration(math.Pow(2, float64(attempt))) * time.Second
	delay += time.Duration(rand.Int63n(int64(500 * time.Millisecond)))
	select {
	case <-time.After(delay):
	case <-ctx.Done():
	}
}
