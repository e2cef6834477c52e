package airbnb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"airbnb-pricing/config"
	"airbnb-pricing/models"
	"airbnb-pricing/utils"
)

const (
	baseURL  = "https://www.airbnb.com"
	platform = "airbnb"
	// search results are paged in steps of 18 cards
	pageSize = 18
)

// roomTypeParams maps property types to Airbnb's room_types[] filter.
var roomTypeParams = map[models.PropertyType]string{
	models.EntireHome:  "Entire home/apt",
	models.PrivateRoom: "Private room",
	models.SharedRoom:  "Shared room",
	models.HotelRoom:   "Hotel room",
}

// Scraper collects comparable listings from Airbnb search results.
type Scraper struct {
	cfg        *config.Config
	logger     *utils.Logger
	pool       *utils.WorkerPool
	visitedURL *utils.Set[string]
	retry      *utils.RetryConfig

	mu       sync.Mutex
	listings []*models.RawListing
}

// New creates a ready-to-use Airbnb Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:        cfg,
		logger:     logger,
		pool:       utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visitedURL: utils.NewSet[string](),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Scrape loads PagesToScrape search pages for the city and property type
// concurrently and returns the deduplicated raw cards. Each call starts
// with an empty result set.
func (s *Scraper) Scrape(ctx context.Context, city models.City, pt models.PropertyType) ([]*models.RawListing, error) {
	s.reset()
	s.logger.Info("[airbnb] Starting scrape for %s (%s): %d pages, %d listings/page",
		city, pt, s.cfg.PagesToScrape, s.cfg.ListingsPerPage)

	chromeBin := s.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	s.logger.Debug("[airbnb] Using browser binary: %q", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// start the browser once so page tabs share it
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("airbnb: start browser: %w", err)
	}

	var (
		errMu    sync.Mutex
		firstErr error
	)
	for page := 0; page < s.cfg.PagesToScrape; page++ {
		pageURL := searchURL(city, pt, page)
		pageNum := page + 1
		err := s.pool.Submit(ctx, func() {
			cards, err := s.scrapePage(browserCtx, pageURL, pageNum)
			if err != nil {
				s.logger.Error("[airbnb] Page %d failed: %v", pageNum, err)
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
				return
			}
			fresh := s.collect(cards, time.Now())
			s.logger.Info("[airbnb] Page %d done: %d new comparables", pageNum, len(fresh))
		})
		if err != nil {
			break
		}
	}
	s.pool.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("[airbnb] Scrape complete: %d raw listings", len(s.listings))
	if len(s.listings) == 0 && firstErr != nil {
		return nil, firstErr
	}
	return append([]*models.RawListing(nil), s.listings...), nil
}

func (s *Scraper) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = nil
	s.visitedURL = utils.NewSet[string]()
}

// searchURL builds the search results URL for a 0-based page.
func searchURL(city models.City, pt models.PropertyType, page int) string {
	q := url.Values{}
	if rt, ok := roomTypeParams[pt]; ok {
		q.Add("room_types[]", rt)
	}
	if page > 0 {
		q.Set("items_offset", fmt.Sprint(page*pageSize))
	}
	u := baseURL + "/s/" + url.PathEscape(string(city)) + "/homes"
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

type cardData struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Location string `json:"location"`
	Rating   string `json:"rating"`
	URL      string `json:"url"`
}

// collect converts cards to RawListings, skipping URLs seen on earlier pages.
func (s *Scraper) collect(cards []cardData, at time.Time) []*models.RawListing {
	fresh := make([]*models.RawListing, 0, len(cards))
	for _, c := range cards {
		if c.URL == "" {
			continue
		}
		if !s.visitedURL.Add(c.URL) {
			s.logger.Debug("[airbnb] Skipping duplicate: %s", c.URL)
			continue
		}
		fresh = append(fresh, &models.RawListing{
			Title:     c.Title,
			RawPrice:  c.Price,
			Location:  c.Location,
			Rating:    c.Rating,
			URL:       c.URL,
			ScrapedAt: at,
			Platform:  platform,
		})
	}

	s.mu.Lock()
	s.listings = append(s.listings, fresh...)
	s.mu.Unlock()
	return fresh
}

// scrapePage loads one search results page in its own tab and extracts cards.
func (s *Scraper) scrapePage(browserCtx context.Context, pageURL string, pageNum int) ([]cardData, error) {
	var cards []cardData

	err := s.retry.Do(browserCtx, fmt.Sprintf("scrape-page-%d", pageNum), func(context.Context) error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(6*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(fmt.Sprintf(extractCardsJS, s.cfg.ListingsPerPage), &cards),
		)
		if err != nil {
			return fmt.Errorf("chromedp page scrape: %w", err)
		}
		s.logger.Debug("[airbnb] Page %d: found %d cards", pageNum, len(cards))
		return nil
	})
	return cards, err
}

// extractCardsJS takes the per-page card limit as its only verb.
const extractCardsJS = `
(function() {
	var results = [];
	var limit = %d;
	var selectors = [
		'[data-testid="card-container"]',
		'[itemprop="itemListElement"]',
		'div[data-testid="listing-card-wrapper"]'
	];
	var cards = [];
	for (var si = 0; si < selectors.length; si++) {
		cards = document.querySelectorAll(selectors[si]);
		if (cards.length > 0) break;
	}
	var seen = {};
	for (var i = 0; i < cards.length && results.length < limit; i++) {
		var card = cards[i];
		var linkEl = card.querySelector('a[href*="/rooms/"]');
		var url = linkEl ? linkEl.href.split('?')[0] : '';
		if (!url || seen[url]) continue;
		seen[url] = true;

		var titleEl = card.querySelector('[data-testid="listing-card-title"]');
		var subEl = card.querySelector('[data-testid="listing-card-subtitle"]');
		var priceEl = card.querySelector('[data-testid="price-availability-row"]');
		var price = '';
		if (priceEl) {
			var m = priceEl.innerText.match(/(€|CHF|\$|£)\s*[\d.,']+(\s*for\s*\d+\s*nights?)?/);
			price = m ? m[0] : priceEl.innerText.split('\n')[0];
		}
		var ratingEl = card.querySelector('[aria-label*="rating"]');
		var rating = '';
		if (ratingEl) {
			var rt = ratingEl.getAttribute('aria-label') || ratingEl.innerText || '';
			var rm = rt.match(/(\d\.\d+)/);
			rating = rm ? rm[1] : '';
		}
		results.push({
			title: titleEl ? titleEl.innerText.trim() : '',
			price: price,
			location: subEl ? subEl.innerText.trim() : '',
			rating: rating,
			url: url
		});
	}
	return results;
})()
`

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}
	for _, name := range []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
