package fetcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/akimerslys/hltv-go/config"
	"github.com/akimerslys/hltv-go/models"
	"github.com/akimerslys/hltv-go/proxypool"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (fn doerFunc) Do(req *http.Request) (*http.Response, error) { return fn(req) }

const goodPage = `<html><body><h1 class="headline">ok</h1></body></html>`

const challengePage = `<html><body>
	<div id="challenge-error-title">Enable JavaScript and cookies to continue</div>
</body></html>`

func htmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// newTestFetcher builds a Fetcher whose transport and clock are stubbed.
// responses are consumed one per attempt; sleeps are recorded.
func newTestFetcher(t *testing.T, cfg *config.Config, doer httpDoer) (*Fetcher, *[]time.Duration) {
	t.Helper()
	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var slept []time.Duration
	f.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	f.newClient = func(proxy string, timeout time.Duration) httpDoer {
		return doer
	}
	return f, &slept
}

func TestFetch_DelayEscalation(t *testing.T) {
	responses := []*http.Response{
		htmlResponse(http.StatusForbidden, ""),
		htmlResponse(http.StatusForbidden, ""),
		htmlResponse(http.StatusOK, goodPage),
	}
	var calls int
	f, slept := newTestFetcher(t, &config.Config{MaxDelay: 15, Timeout: 5},
		doerFunc(func(req *http.Request) (*http.Response, error) {
			resp := responses[calls]
			calls++
			return resp, nil
		}))

	doc, err := f.Fetch(context.Background(), "https://www.hltv.org/matches")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls != 3 {
		t.Errorf("got %d requests, want 3", calls)
	}
	want := []time.Duration{0, time.Second, 2 * time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("got %d sleeps %v, want %v", len(*slept), *slept, want)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("sleep %d = %v, want %v", i, (*slept)[i], d)
		}
	}
	if el := doc.Find("h1.headline"); el == nil || el.Text() != "ok" {
		t.Error("successful fetch did not return the parsed document")
	}
}

func TestFetch_RequestHeaders(t *testing.T) {
	var got http.Header
	f, _ := newTestFetcher(t, &config.Config{MaxDelay: 15, Timeout: 5},
		doerFunc(func(req *http.Request) (*http.Response, error) {
			got = req.Header
			return htmlResponse(http.StatusOK, goodPage), nil
		}))

	if _, err := f.Fetch(context.Background(), "https://www.hltv.org/results"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got.Get("referer") != "https://www.hltv.org/stats" {
		t.Errorf("referer = %q", got.Get("referer"))
	}
	if got.Get("user-agent") != userAgent {
		t.Errorf("user-agent = %q", got.Get("user-agent"))
	}
	if got.Get("hltvTimeZone") != "UTC" {
		t.Errorf("hltvTimeZone = %q", got.Get("hltvTimeZone"))
	}
}

func TestFetch_ProxyRotation(t *testing.T) {
	cfg := &config.Config{
		MaxDelay:  15,
		Timeout:   5,
		UseProxy:  true,
		ProxyList: []string{"http://p1:8080", "http://p2:8080", "http://p3:8080"},
	}
	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var slept []time.Duration
	f.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	f.newClient = func(proxy string, timeout time.Duration) httpDoer {
		return doerFunc(func(req *http.Request) (*http.Response, error) {
			if proxy != "http://p3:8080" {
				return nil, &net.OpError{Op: "dial", Err: errors.New("connection refused")}
			}
			return htmlResponse(http.StatusOK, goodPage), nil
		})
	}

	if _, err := f.Fetch(context.Background(), "https://www.hltv.org/matches"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	got := f.Pool().(*proxypool.MemoryPool).Endpoints()
	want := []string{"http://p3:8080", "http://p1:8080", "http://p2:8080"}
	if len(got) != len(want) {
		t.Fatalf("pool = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pool = %v, want %v", got, want)
		}
	}
	for i, d := range slept {
		if d != 0 {
			t.Errorf("sleep %d = %v, want 0 in proxy mode", i, d)
		}
	}
}

func TestFetch_ProxyOneTime(t *testing.T) {
	cfg := &config.Config{
		MaxDelay:     15,
		Timeout:      5,
		UseProxy:     true,
		ProxyOneTime: true,
		ProxyList:    []string{"http://p1:8080", "http://p2:8080"},
	}
	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	f.newClient = func(proxy string, timeout time.Duration) httpDoer {
		return doerFunc(func(req *http.Request) (*http.Response, error) {
			if proxy == "http://p1:8080" {
				return nil, io.ErrUnexpectedEOF
			}
			return htmlResponse(http.StatusOK, goodPage), nil
		})
	}

	if _, err := f.Fetch(context.Background(), "https://www.hltv.org/matches"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got := f.Pool().Len(); got != 1 {
		t.Errorf("pool length = %d, want 1 after failed proxy was removed", got)
	}
}

func TestFetch_ProxyProtocolPrefix(t *testing.T) {
	cfg := &config.Config{
		MaxDelay:      15,
		Timeout:       5,
		UseProxy:      true,
		ProxyProtocol: "socks5",
		ProxyList:     []string{"10.0.0.1:1080"},
	}
	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	f.sleep = func(ctx context.Context, d time.Duration) error { return ctx.Err() }
	var gotProxy string
	f.newClient = func(proxy string, timeout time.Duration) httpDoer {
		gotProxy = proxy
		return doerFunc(func(req *http.Request) (*http.Response, error) {
			return htmlResponse(http.StatusOK, goodPage), nil
		})
	}

	if _, err := f.Fetch(context.Background(), "https://www.hltv.org/matches"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotProxy != "socks5://10.0.0.1:1080" {
		t.Errorf("proxy passed to client = %q, want socks5 prefixed", gotProxy)
	}
}

func TestFetch_ChallengePageRetried(t *testing.T) {
	responses := []*http.Response{
		htmlResponse(http.StatusOK, challengePage),
		htmlResponse(http.StatusOK, goodPage),
	}
	var calls int
	f, slept := newTestFetcher(t, &config.Config{MaxDelay: 15, Timeout: 5},
		doerFunc(func(req *http.Request) (*http.Response, error) {
			resp := responses[calls]
			calls++
			return resp, nil
		}))

	doc, err := f.Fetch(context.Background(), "https://www.hltv.org/matches")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls != 2 {
		t.Errorf("got %d requests, want 2", calls)
	}
	if len(*slept) != 2 || (*slept)[1] != time.Second {
		t.Errorf("sleeps = %v, want [0s 1s]", *slept)
	}
	if doc.Find("#challenge-error-title") != nil {
		t.Error("a challenge page was returned as success")
	}
}

func TestFetch_EmptyPoolInProxyMode(t *testing.T) {
	var calls int
	f, slept := newTestFetcher(t, &config.Config{MaxDelay: 15, Timeout: 5, UseProxy: true},
		doerFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			return htmlResponse(http.StatusOK, goodPage), nil
		}))

	_, err := f.Fetch(context.Background(), "https://www.hltv.org/matches")
	var ferr *models.FetchError
	if !errors.As(err, &ferr) || ferr.Code != models.ErrCodeConfiguration {
		t.Fatalf("err = %v, want configuration error", err)
	}
	if calls != 0 || len(*slept) != 0 {
		t.Error("empty pool error must be returned before any delay or request")
	}
}

func TestFetch_MaxRetriesExhausted(t *testing.T) {
	var calls int
	f, _ := newTestFetcher(t, &config.Config{MaxDelay: 15, Timeout: 5, MaxRetries: 2},
		doerFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			return htmlResponse(http.StatusForbidden, ""), nil
		}))

	_, err := f.Fetch(context.Background(), "https://www.hltv.org/matches")
	var ferr *models.FetchError
	if !errors.As(err, &ferr) || ferr.Code != models.ErrCodeRetriesExhausted {
		t.Fatalf("err = %v, want retries exhausted", err)
	}
	if calls != 2 {
		t.Errorf("got %d requests, want exactly 2", calls)
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f, _ := newTestFetcher(t, &config.Config{MaxDelay: 15, Timeout: 5},
		doerFunc(func(req *http.Request) (*http.Response, error) {
			cancel()
			return htmlResponse(http.StatusForbidden, ""), nil
		}))

	if _, err := f.Fetch(ctx, "https://www.hltv.org/matches"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestReconfigure_PartialUpdate(t *testing.T) {
	f, err := New(&config.Config{MaxDelay: 15, Timeout: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := f.Reconfigure(config.Options{MaxDelay: 30}); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	got := f.Config()
	if got.MaxDelay != 30 {
		t.Errorf("MaxDelay = %d, want 30", got.MaxDelay)
	}
	if got.Timeout != 5 {
		t.Errorf("Timeout = %d, want 5 preserved", got.Timeout)
	}
}

func TestReconfigure_RebuildsPool(t *testing.T) {
	f, err := New(&config.Config{MaxDelay: 15, Timeout: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := f.Reconfigure(config.Options{ProxyList: []string{"http://p1:8080"}}); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	if got := f.Pool().Len(); got != 1 {
		t.Errorf("pool length = %d, want 1", got)
	}
}

func TestReconfigure_LogLevel(t *testing.T) {
	t.Cleanup(func() { slog.SetLogLoggerLevel(slog.LevelInfo) })

	f, err := New(&config.Config{MaxDelay: 15, Timeout: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	on, off := true, false
	if err := f.Reconfigure(config.Options{Debug: &on}); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	if prev := slog.SetLogLoggerLevel(slog.LevelDebug); prev != slog.LevelDebug {
		t.Errorf("level after enabling debug = %v, want %v", prev, slog.LevelDebug)
	}

	if err := f.Reconfigure(config.Options{Debug: &off}); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	if prev := slog.SetLogLoggerLevel(slog.LevelInfo); prev != slog.LevelInfo {
		t.Errorf("level after disabling debug = %v, want %v", prev, slog.LevelInfo)
	}
}

func TestRetryableStatus(t *testing.T) {
	for _, code := range []int{http.StatusForbidden, http.StatusNotFound} {
		if !retryableStatus(code) {
			t.Errorf("status %d should be retryable", code)
		}
	}
	for _, code := range []int{http.StatusOK, http.StatusInternalServerError, http.StatusTooManyRequests} {
		if retryableStatus(code) {
			t.Errorf("status %d should not be retryable", code)
		}
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "deadline exceeded" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestTransportKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{timeoutErr{}, "timeout"},
		{&net.OpError{Op: "dial", Err: errors.New("refused")}, "connect"},
		{&net.OpError{Op: "read", Err: errors.New("reset")}, "socket"},
		{io.ErrUnexpectedEOF, "disconnect"},
		{errors.New("something else"), "transport"},
	}
	for _, tc := range cases {
		if got := transportKind(tc.err); got != tc.want {
			t.Errorf("transportKind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
