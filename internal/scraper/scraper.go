package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"synapse/internal/logger"
	"synapse/internal/models"

	"github.com/chromedp/chromedp"
)

// Scraper загружает страницы конкурентов в headless-браузере и извлекает
// маркетинговые сигналы: заголовок страницы, главный оффер, промо-фразы.
type Scraper struct {
	timeout time.Duration
}

func New() *Scraper {
	return &Scraper{timeout: 2 * time.Minute}
}

// newContext создаёт свежий контекст chromedp (один браузер, одна вкладка).
func (s *Scraper) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("log-level", "3"),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}
	return ctx, cancel
}

// FetchSignals загружает страницу конкурента и извлекает сигналы.
func (s *Scraper) FetchSignals(ctx context.Context, pageURL string) (*models.CompetitorSignal, error) {
	log := logger.Namespace("scraper").WithField("url", pageURL)
	log.Info("Scraping competitor page")

	cctx, cancel := s.newContext(ctx)
	defer cancel()

	cctx, cancelTimeout := context.WithTimeout(cctx, s.timeout)
	defer cancelTimeout()

	type pageData struct {
		Title    string   `json:"title"`
		Headline string   `json:"headline"`
		Offers   []string `json:"offers"`
	}
	var data pageData

	err := chromedp.Run(cctx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(4*time.Second), // give JS time to render
		chromedp.Evaluate(`
			(function() {
				var title = document.title || '';

				var h1 = document.querySelector('h1');
				var headline = h1 ? h1.innerText.trim() : '';

				var offers = [];
				var seen = {};
				var pattern = /(\d+\s?%\s?off|free\s+\w+|sale|discount|\$\d+|limited time|special offer|new member)/i;

				document.querySelectorAll('h2, h3, [class*="promo"], [class*="offer"], [class*="banner"], [class*="cta"]').forEach(function(el) {
					var t = el.innerText ? el.innerText.trim() : '';
					if (!t || t.length > 160) return;
					if (!pattern.test(t)) return;
					if (seen[t]) return;
					seen[t] = true;
					offers.push(t);
				});

				return {title: title, headline: headline, offers: offers.slice(0, 10)};
			})()
		`, &data),
	)
	if err != nil {
		return nil, fmt.Errorf("page extraction failed: %w", err)
	}

	signal := &models.CompetitorSignal{
		URL:       pageURL,
		Title:     strings.TrimSpace(data.Title),
		Headline:  strings.TrimSpace(data.Headline),
		Offers:    data.Offers,
		FetchedAt: time.Now(),
	}

	log.Infof("Extracted %d offers", len(signal.Offers))
	return signal, nil
}
