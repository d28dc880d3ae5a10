// Package fetch provides headless-browser scraping and HTML-to-text
// processing for job-search pages.
package fetch

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single page scrape, navigation included.
const DefaultTimeout = 30 * time.Second

// userAgents is the pool a session's user agent is drawn from. Job boards
// fingerprint obvious automation; rotating real agents keeps sessions boring.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 Version/15.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 Chrome/121.0.0.0 Safari/537.36",
}

// RandomUserAgent returns a user agent chosen uniformly from the pool.
func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// humanDelay returns a duration uniform in [2,4) seconds to emulate human
// dwell time before the page source is captured.
func humanDelay() time.Duration {
	return time.Duration(2000+rand.Intn(2000)) * time.Millisecond
}

// Scrape renders url in a dedicated headless browser session and returns the
// fully rendered page source. The session is always torn down, success or
// failure; sessions are never pooled, so one bad URL cannot corrupt another.
// Callers treat an error as "no content for this URL", not as fatal.
func Scrape(ctx context.Context, url string, timeout time.Duration, verbose bool) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if verbose {
		log.Printf("[SCRAPE] Opening %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-blink-features", "AutomationControlled"),
			chromedp.WindowSize(1920, 1080),
			chromedp.UserAgent(RandomUserAgent()),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(humanDelay()),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed for %s: %w", url, err)
	}

	if verbose {
		log.Printf("[SCRAPE] Rendered HTML: %d bytes", len(html))
	}

	return html, nil
}
