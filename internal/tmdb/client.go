package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"flixd/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxErrorBodySize caps how much of an error response body is read back
// for diagnostics.
const maxErrorBodySize = 16 * 1024 // 16KB

// ErrNotFound marks an unambiguous upstream 404. Callers treat it as
// "skip this entity", never as a fatal run error.
var ErrNotFound = errors.New("tmdb: resource not found")

// Client is the TMDB API client. All requests carry the API key, pass
// through a shared rate limiter, and retry transient failures with
// bounded exponential backoff (full jitter, Retry-After honored).
//
// Safe for concurrent use.
type Client struct {
	baseURL        string
	apiKey         string
	http           *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
	log            *zap.Logger
}

func NewClient(cfg utils.TMDBConfig, log *zap.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:        rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		log:            log.With(zap.String("client", "tmdb")),
	}
}

// get performs one API call: rate-limit wait, request, bounded retries,
// JSON decode into result. Transport errors and non-2xx statuses are
// retried, except 404 which returns ErrNotFound immediately.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())

	var lastErr error
	var serverDelay time.Duration

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.waitBackoff(ctx, attempt, serverDelay, lastErr); err != nil {
				return err
			}
			serverDelay = 0
		}

		// Block until the request budget allows another call
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("request %s: %w", path, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			_ = resp.Body.Close()
			return fmt.Errorf("%s: %w", path, ErrNotFound)

		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			err := json.NewDecoder(resp.Body).Decode(result)
			_ = resp.Body.Close()
			if err != nil {
				// A body that does not match the schema is a fetch
				// failure, not something a retry can fix
				return fmt.Errorf("decode %s response: %w", path, err)
			}
			return nil

		default:
			body := readBodyForError(resp.Body)
			if resp.StatusCode == http.StatusTooManyRequests {
				serverDelay, _ = retryAfter(resp)
			}
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", path, c.maxRetries+1, lastErr)
}

// waitBackoff sleeps before a retry: an exponentially growing ceiling
// with full jitter (first retry up to retryBaseDelay, doubling each
// attempt), or the server's Retry-After value when it asked for more.
func (c *Client) waitBackoff(ctx context.Context, attempt int, serverDelay time.Duration, lastErr error) error {
	ceiling := c.retryBaseDelay * time.Duration(1<<uint(attempt-1))
	delay := time.Duration(rand.Int63n(int64(ceiling) + 1))
	if serverDelay > delay {
		delay = serverDelay
	}

	c.log.Debug("Retrying upstream request",
		zap.Int("attempt", attempt),
		zap.Duration("delay", delay),
		zap.Error(lastErr),
	)

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryAfter parses a Retry-After header given in seconds (RFC 6585).
func retryAfter(resp *http.Response) (time.Duration, bool) {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v + "s")
	if err != nil {
		return 0, false
	}
	return d, true
}

// readBodyForError reads at most maxErrorBodySize of a response body
// for error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("... (truncated)")...)
	}
	return body
}
