package monitor

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// FetcherConfig controls the page fetcher.
type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
	// TLSInsecure skips certificate verification. The target site serves a
	// weak DH certificate that browsers accept but Go's TLS stack rejects.
	TLSInsecure bool
}

// CollyFetcher implements Fetcher using a Colly collector.
type CollyFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based Fetcher.
func NewCollyFetcher(cfg FetcherConfig, logger *zap.Logger) (*CollyFetcher, error) {
	if cfg.Timeout <= 0 {
		return nil, errors.New("fetcher timeout must be > 0")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	}
	if cfg.TLSInsecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402
	}
	base.WithTransport(transport)
	base.SetRequestTimeout(cfg.Timeout)

	return &CollyFetcher{baseCollector: base, logger: logger}, nil
}

// Fetch retrieves rawURL once. Failures are categorized as FetchError; there
// is no retry here, the next scheduled cycle is the retry.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{page: Page{
			URL:        rawURL,
			StatusCode: r.StatusCode,
			Body:       append([]byte{}, r.Body...),
		}})
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			err = fmt.Errorf("http status %d: %w", r.StatusCode, err)
		} else if err == nil {
			err = errors.New("unknown transport error")
		}
		send(fetchResult{err: err})
	})

	visitErr := collector.Visit(rawURL)
	collector.Wait()

	// The OnError hook carries the HTTP status when one was received, so its
	// result is preferred over the bare error Visit returns.
	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return Page{}, NewCycleError(CategoryFetch, err)
		}
		if res.err != nil {
			return Page{}, NewCycleError(CategoryFetch, res.err)
		}
		return res.page, nil
	default:
		if visitErr == nil {
			visitErr = errors.New("fetch produced no result")
		}
		return Page{}, NewCycleError(CategoryFetch, visitErr)
	}
}

type fetchResult struct {
	page Page
	err  error
}
