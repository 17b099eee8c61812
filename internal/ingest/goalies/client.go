package goalies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/ingest"
)

const (
	// SourceURL is the default starting-goalies page
	SourceURL = "https://www.dailyfaceoff.com/starting-goalies"

	// UserAgent for page requests
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval to prevent rate limiting
	MinRequestInterval = 2 * time.Second
)

// PageFetcher returns the rendered HTML of a page
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// HTTPFetcher reads server-rendered pages with a plain GET
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher on the shared upstream client
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: ingest.NewHTTPClient()}
}

// FetchPage implements PageFetcher
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", ingest.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ingest.StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}

// HeadlessFetcher renders JavaScript-built pages in headless Chrome
type HeadlessFetcher struct {
	mu          sync.Mutex
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
	log      *logrus.Entry
}

// NewHeadlessFetcher starts a Chrome allocator. Call Close to release it.
func NewHeadlessFetcher(log *logrus.Logger) *HeadlessFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &HeadlessFetcher{
		interval: MinRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
		log:      log.WithField("component", "goalies-headless"),
	}
}

// Close releases the browser allocator
func (f *HeadlessFetcher) Close() {
	if f.cancel != nil {
		f.cancel()
	}
}

// FetchPage implements PageFetcher. Requests are serialized and spaced by
// MinRequestInterval.
func (f *HeadlessFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.lastRequest.IsZero() {
		if wait := f.interval - time.Since(f.lastRequest); wait > 0 {
			f.log.Debugf("Rate limiting: waiting %v before next request", wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	defer func() { f.lastRequest = time.Now() }()

	browserCtx, cancel := chromedp.NewContext(f.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	// stop the browser tab when the caller gives up
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML(`html`, &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}
	if html == "" {
		return "", fmt.Errorf("empty HTML content returned")
	}
	return html, nil
}
