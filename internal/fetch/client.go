package fetch

import (
	"context"
	"net/http/cookiejar"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/batu-os/eksiscraper/internal/topic"
)

// userAgent mimics a current desktop Chrome. The exact string matters
// less than being consistent with the TLS fingerprint the bypass
// transport presents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// browserHeaders is the fixed header set sent with every request.
// Accept-Encoding is deliberately absent: setting it manually would
// disable the transport's automatic gzip decompression.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7",
	"Cache-Control":             "no-cache",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"Upgrade-Insecure-Requests": "1",
	"DNT":                       "1",
}

// Client is a browser-impersonating HTTP client with built-in request
// pacing. All page retrievals for one scrape session go through a single
// Client so the courtesy delay applies across pages and retries alike.
type Client struct {
	// http is the underlying resty client with the bypass transport.
	http *resty.Client

	// limiter paces successive requests. Burst 1 means the first
	// request of a session goes out immediately and every later one
	// waits out the configured delay.
	limiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*clientSettings)

type clientSettings struct {
	timeout time.Duration
	delay   time.Duration
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(s *clientSettings) {
		s.timeout = timeout
	}
}

// WithDelay sets the courtesy delay between successive requests.
// A zero delay disables pacing entirely (useful in tests).
func WithDelay(delay time.Duration) ClientOption {
	return func(s *clientSettings) {
		s.delay = delay
	}
}

// NewClient creates a Client with the browser fingerprint installed.
//
// Design decision: We require no arguments and apply options because
// every production caller wants the same impersonation setup; only the
// timing knobs vary between CLI flags and tests.
func NewClient(opts ...ClientOption) *Client {
	settings := &clientSettings{
		timeout: 30 * time.Second,
		delay:   2 * time.Second,
	}
	for _, opt := range opts {
		opt(settings)
	}

	httpClient := resty.New()
	httpClient.SetTimeout(settings.timeout)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(topic.Domain, "www."+topic.Domain))

	// Cookie jar keeps any anti-bot cookies the site sets across pages.
	if jar, err := cookiejar.New(nil); err == nil {
		httpClient.SetCookieJar(jar)
	}

	// The bypass transport adjusts the TLS client hello and low-level
	// header ordering to match a real browser.
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeader("User-Agent", userAgent)
	for k, v := range browserHeaders {
		httpClient.SetHeader(k, v)
	}

	limit := rate.Inf
	if settings.delay > 0 {
		limit = rate.Every(settings.delay)
	}

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Get performs a single paced GET request. It blocks until the rate
// limiter grants a slot or the context is cancelled.
func (c *Client) Get(ctx context.Context, url string) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.http.R().SetContext(ctx).Get(url)
}
