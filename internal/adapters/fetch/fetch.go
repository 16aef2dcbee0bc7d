// Package fetch downloads published sheet exports over HTTP.
//
// All sheets are requested concurrently with no dependency between them.
// A failed fetch resolves to empty text rather than propagating; there is
// no retry policy, a manual reload is the only recovery path.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/ryanmford/apexspeedrun/pkg/logger"
	"github.com/ryanmford/apexspeedrun/pkg/metrics"
)

// Default fetch configuration constants.
const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "apexspeedrun-dashboard/1.0"
)

// Sheet names one source table and where to fetch it.
type Sheet struct {
	Name string
	URL  string
}

// Fetcher downloads sheet text.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       logger.Logger
}

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each individual sheet fetch.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithClient replaces the underlying HTTP client.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithUserAgent sets the User-Agent header on sheet requests.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithLogger sets a custom logger for the fetcher.
func WithLogger(log logger.Logger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// New constructs a Fetcher with default configuration.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll requests every sheet concurrently and waits for all to settle.
// A sheet that fails resolves to empty text; the caller decides how much
// emptiness it can tolerate.
func (f *Fetcher) FetchAll(ctx context.Context, sheets []Sheet) map[string]string {
	out := make(map[string]string, len(sheets))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, sheet := range sheets {
		wg.Add(1)
		go func(s Sheet) {
			defer wg.Done()
			text, err := f.fetchOne(ctx, s)
			if err != nil {
				metrics.RecordSheetFailed(s.Name)
				metrics.RecordErrorByComponent("fetch", "sheet_fetch")
				if f.log != nil {
					f.log.Warn(ctx, "sheet fetch failed; substituting empty text",
						logger.String("sheet", s.Name),
						logger.Error(err),
					)
				}
				text = ""
			}
			mu.Lock()
			out[s.Name] = text
			mu.Unlock()
		}(sheet)
	}

	wg.Wait()
	return out
}

func (f *Fetcher) fetchOne(ctx context.Context, s Sheet) (string, error) {
	if s.URL == "" {
		return "", nil
	}
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d for %s", ErrFetch, resp.StatusCode, s.Name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}

	metrics.RecordSheetFetched(s.Name, len(body), float64(time.Since(start).Milliseconds()))
	return string(body), nil
}
