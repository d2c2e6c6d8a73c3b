// SPDX-License-Identifier: MIT

package mapdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/planb/internal/metrics"
)

// Fetcher defaults.
const (
	DefaultEndpoint = "https://esi.evetech.net/latest"
	DefaultRate     = 20.0
	DefaultWorkers  = 20
	DefaultRetries  = 5
	DefaultBackoff  = 5 * time.Second
)

// Fetcher downloads a full dump from ESI: the system list, every system, and
// every stargate of every system.
type Fetcher struct {
	client   *http.Client
	endpoint string
	limiter  *rate.Limiter
	workers  int
	retries  int
	backoff  time.Duration
	log      *slog.Logger
}

// FetchOption configures NewFetcher.
type FetchOption func(*Fetcher)

// WithEndpoint sets the API base URL (scheme, host and version path).
func WithEndpoint(url string) FetchOption {
	return func(f *Fetcher) { f.endpoint = strings.TrimRight(url, "/") }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) FetchOption {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithRate caps requests per second across all workers; rps ≤ 0 disables
// the cap.
func WithRate(rps float64) FetchOption {
	return func(f *Fetcher) {
		if rps <= 0 {
			f.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		f.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithWorkers sets the number of concurrent system fetches.
func WithWorkers(n int) FetchOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.workers = n
		}
	}
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) FetchOption {
	return func(f *Fetcher) {
		if n >= 0 {
			f.retries = n
		}
	}
}

// WithBackoff sets the first retry delay; it doubles per attempt.
func WithBackoff(d time.Duration) FetchOption {
	return func(f *Fetcher) { f.backoff = d }
}

// WithFetchLogger sets the progress logger.
func WithFetchLogger(l *slog.Logger) FetchOption {
	return func(f *Fetcher) {
		if l != nil {
			f.log = l
		}
	}
}

// NewFetcher returns a Fetcher with the defaults above.
func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: DefaultEndpoint,
		limiter:  rate.NewLimiter(rate.Limit(DefaultRate), 1),
		workers:  DefaultWorkers,
		retries:  DefaultRetries,
		backoff:  DefaultBackoff,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch downloads the universe. The first failing system aborts the rest.
func (f *Fetcher) Fetch(ctx context.Context) (*Dump, error) {
	var ids []int64
	if err := f.get(ctx, "universe/systems", &ids); err != nil {
		return nil, err
	}
	f.log.InfoContext(ctx, "fetching universe", "systems", len(ids), "endpoint", f.endpoint)

	d := &Dump{
		Systems:   make(map[string]System, len(ids)),
		Stargates: make(map[string]Stargate, 2*len(ids)),
	}
	var (
		mu   sync.Mutex
		done atomic.Int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for _, id := range ids {
		g.Go(func() error {
			sys, gates, err := f.system(gctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			d.Systems[strconv.FormatInt(id, 10)] = sys
			for gid, gate := range gates {
				d.Stargates[gid] = gate
			}
			mu.Unlock()
			if n := done.Add(1); n%500 == 0 {
				f.log.InfoContext(gctx, "fetch progress", "done", n, "total", len(ids))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	f.log.InfoContext(ctx, "universe fetched", "systems", len(d.Systems), "stargates", len(d.Stargates))

	return d, nil
}

// system fetches one system and its stargates.
func (f *Fetcher) system(ctx context.Context, id int64) (System, map[string]Stargate, error) {
	var sys System
	if err := f.get(ctx, "universe/systems/"+strconv.FormatInt(id, 10), &sys); err != nil {
		return System{}, nil, err
	}
	f.log.DebugContext(ctx, "system", "id", id, "name", sys.Name)

	gates := make(map[string]Stargate, len(sys.Stargates))
	for _, gid := range sys.Stargates {
		key := strconv.FormatInt(gid, 10)
		var gate Stargate
		if err := f.get(ctx, "universe/stargates/"+key, &gate); err != nil {
			return System{}, nil, err
		}
		gates[key] = gate
	}

	return sys, gates, nil
}

// statusError is a non-200 upstream answer.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.url, e.code)
}

// retryable reports whether another attempt may succeed.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code == http.StatusTooManyRequests || se.code >= 500
	}

	return true
}

// get decodes GET endpoint/path/ into v, retrying transient failures.
func (f *Fetcher) get(ctx context.Context, path string, v any) error {
	url := f.endpoint + "/" + path + "/"
	var err error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			delay := f.backoff << (attempt - 1)
			f.log.WarnContext(ctx, "retrying", "url", url, "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if werr := f.limiter.Wait(ctx); werr != nil {
			return werr
		}
		err = f.once(ctx, url, v)
		metrics.ObserveFetch(err)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !retryable(err) {
			break
		}
	}

	return fmt.Errorf("%w: %w", ErrFetch, err)
}

func (f *Fetcher) once(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &statusError{code: resp.StatusCode, url: url}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: decode: %w", url, err)
	}

	return nil
}
