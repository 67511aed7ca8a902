// Package fetcher retrieves HTML documents from a site that intermittently
// blocks automated requests. One logical fetch is a retry loop: cooperative
// delay, proxy selection, HTTP GET, response classification, then either a
// parsed document or escalation via backoff or proxy rotation.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/akimerslys/hltv-go/config"
	"github.com/akimerslys/hltv-go/document"
	"github.com/akimerslys/hltv-go/models"
	"github.com/akimerslys/hltv-go/proxypool"
)

// Fetcher orchestrates resilient fetches. It is safe for concurrent use;
// the proxy pool is the only shared mutable state and every pool access is
// serialized behind the pool's lock.
type Fetcher struct {
	mu     sync.RWMutex
	cfg    *config.Config
	pool   proxypool.Pool
	parser *document.Parser
	log    *slog.Logger

	// test seams; production values set in New
	newClient func(proxy string, timeout time.Duration) httpDoer
	sleep     func(ctx context.Context, d time.Duration) error
}

// New creates a Fetcher from cfg. A nil cfg loads configuration from the
// environment. The proxy pool is built from ProxyFile when set, else from
// ProxyList.
func New(cfg *config.Config) (*Fetcher, error) {
	if cfg == nil {
		cfg = config.Load()
	}
	f := &Fetcher{
		cfg:       cfg,
		parser:    document.NewParser(0),
		log:       slog.Default(),
		newClient: newClient,
		sleep:     sleepCtx,
	}
	if err := f.rebuildPool(); err != nil {
		return nil, err
	}
	f.applyLogLevel()
	return f, nil
}

// Reconfigure applies a partial configuration update: only fields opts
// explicitly supplies overwrite the prior value. Changing the proxy source
// rebuilds the pool; fetches already in flight keep using the pool they
// started with.
func (f *Fetcher) Reconfigure(opts config.Options) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg.Apply(opts)
	if opts.ProxyFile != "" || opts.ProxyList != nil {
		if err := f.rebuildPool(); err != nil {
			return err
		}
	}
	f.applyLogLevel()
	return nil
}

// Config returns a copy of the current configuration.
func (f *Fetcher) Config() config.Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return *f.cfg
}

// Pool exposes the proxy pool, mainly for inspection in tests.
func (f *Fetcher) Pool() proxypool.Pool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pool
}

// rebuildPool constructs the proxy pool from the current config.
// Caller must hold f.mu (or be the constructor).
func (f *Fetcher) rebuildPool() error {
	switch {
	case f.cfg.ProxyFile != "":
		pool, err := proxypool.NewFilePool(f.cfg.ProxyFile)
		if err != nil {
			return models.NewFetchError(models.ErrCodeConfiguration,
				"loading proxy file", err)
		}
		f.pool = pool
	default:
		f.pool = proxypool.NewMemoryPool(f.cfg.ProxyList)
	}
	return nil
}

func (f *Fetcher) applyLogLevel() {
	if f.cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	} else {
		slog.SetLogLoggerLevel(slog.LevelInfo)
	}
}

// snapshot is the per-fetch view of the configuration. A Reconfigure during
// a running fetch affects only subsequent calls.
type snapshot struct {
	maxDelay      time.Duration
	timeout       time.Duration
	useProxy      bool
	proxyProtocol string
	proxyOneTime  bool
	maxRetries    int
}

func (f *Fetcher) snapshot() (snapshot, proxypool.Pool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return snapshot{
		maxDelay:      time.Duration(f.cfg.MaxDelay) * time.Second,
		timeout:       time.Duration(f.cfg.Timeout) * time.Second,
		useProxy:      f.cfg.UseProxy,
		proxyProtocol: f.cfg.ProxyProtocol,
		proxyOneTime:  f.cfg.ProxyOneTime,
		maxRetries:    f.cfg.MaxRetries,
	}, f.pool
}

// Fetch retrieves pageURL and returns its parsed document. Retryable
// failures (transport errors, 403/404, challenge pages) never surface to the
// caller: the loop escalates the delay in direct mode, or rotates the proxy
// pool with the delay reset to zero in proxy mode, and tries again. With
// MaxRetries at its default of 0 the loop is unbounded and terminates only
// on success or ctx cancellation. An empty pool while proxy mode is enabled
// is a fatal configuration error, returned immediately.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*document.Document, error) {
	cfg, pool := f.snapshot()
	bo := newLinearBackOff(cfg.maxDelay)
	var delay time.Duration

	for attempt := 1; ; attempt++ {
		if cfg.maxRetries > 0 && attempt > cfg.maxRetries {
			return nil, models.NewFetchError(models.ErrCodeRetriesExhausted,
				fmt.Sprintf("no usable document for %s after %d attempts", pageURL, cfg.maxRetries), nil)
		}

		var proxy string
		if cfg.useProxy {
			head, err := pool.Peek()
			if err != nil {
				return nil, err
			}
			proxy = head
		}

		if err := f.sleep(ctx, delay); err != nil {
			return nil, err
		}

		doc, out, detail, err := f.attempt(ctx, pageURL, proxy, cfg)
		if err != nil {
			return nil, err
		}
		if out == outcomeSuccess {
			f.log.Info("fetched", "url", pageURL, "attempt", attempt, "proxy", proxy != "")
			return doc, nil
		}

		f.log.Debug("attempt failed", "url", pageURL, "attempt", attempt,
			"outcome", out.String(), "detail", detail)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if cfg.useProxy {
			if cfg.proxyOneTime {
				if err := pool.Remove(proxy); err != nil {
					f.log.Warn("removing proxy", "proxy", proxy, "error", err)
				}
			} else {
				if err := pool.Rotate(proxy); err != nil {
					f.log.Warn("rotating proxy", "proxy", proxy, "error", err)
				}
			}
			bo.Reset()
			delay = 0
			if head, err := pool.Peek(); err == nil {
				f.log.Info("switched proxy", "next", head)
			}
		} else {
			delay = bo.NextBackOff()
			f.log.Info("retrying", "url", pageURL, "delay", delay)
		}
	}
}

// attempt performs one HTTP GET and classifies the result. A non-nil error
// is terminal (context cancellation or an unbuildable markup tree); every
// other failure comes back as a retryable outcome.
func (f *Fetcher) attempt(ctx context.Context, pageURL, proxy string, cfg snapshot) (*document.Document, outcome, string, error) {
	requestProxy := proxy
	if requestProxy != "" && cfg.proxyProtocol != "" && !strings.Contains(requestProxy, "://") {
		requestProxy = cfg.proxyProtocol + "://" + requestProxy
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, "", models.NewFetchError(models.ErrCodeConfiguration,
			"building request", err)
	}
	req.Header.Set("referer", "https://www.hltv.org/stats")
	req.Header.Set("user-agent", userAgent)
	req.Header.Set("hltvTimeZone", "UTC")

	client := f.newClient(requestProxy, cfg.timeout)
	resp, err := client.Do(req)
	if err != nil {
		return nil, outcomeTransport, transportKind(err), nil
	}
	defer resp.Body.Close()
	f.log.Debug("response", "url", pageURL, "status", resp.StatusCode)

	if retryableStatus(resp.StatusCode) {
		return nil, outcomeRetryableStatus, strconv.Itoa(resp.StatusCode), nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, outcomeTransport, transportKind(err), nil
	}

	doc, err := f.parser.Parse(ctx, body)
	if err != nil {
		return nil, 0, "", err
	}
	if IsChallenge(doc) {
		return nil, outcomeChallenge, "", nil
	}
	return doc, outcomeSuccess, "", nil
}

// sleepCtx suspends the calling goroutine for d without blocking other
// concurrent fetches.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
