package roster

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"roster-backend/models"
)

const (
	DefaultListingURL = "https://www.ufc.com/athletes/all?gender=All&search=&page="
	DefaultMaxPages   = 5
	DefaultUserAgent  = "roster-backend/1.0"
	DefaultTimeout    = 30 * time.Second
)

// FetcherConfig controls where and how far the fetcher pages.
type FetcherConfig struct {
	// ListingURL is the listing endpoint; the page number is appended to it.
	ListingURL string
	MaxPages   int
	UserAgent  string
	Timeout    time.Duration
}

// Fetcher walks a paginated athlete listing one page at a time.
type Fetcher struct {
	client *http.Client
	cfg    FetcherConfig
	log    zerolog.Logger
}

// NewFetcher creates a Fetcher, filling unset config fields with defaults.
func NewFetcher(cfg FetcherConfig, log zerolog.Logger) *Fetcher {
	if cfg.ListingURL == "" {
		cfg.ListingURL = DefaultListingURL
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Fetcher{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
		log:    log.With().Str("component", "fetcher").Logger(),
	}
}

// FetchAll requests pages 1..MaxPages and returns their entries in page order.
// It stops at the first page with no entries or a 404. Any other page failure
// aborts the whole fetch; entries from earlier pages are discarded.
func (f *Fetcher) FetchAll(ctx context.Context) ([]models.AthleteRecord, error) {
	var all []models.AthleteRecord

	for page := 1; page <= f.cfg.MaxPages; page++ {
		entries, err := f.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		f.log.Debug().Int("page", page).Int("entries", len(entries)).Msg("fetched listing page")

		if len(entries) == 0 {
			break
		}
		all = append(all, entries...)
	}

	if all == nil {
		all = []models.AthleteRecord{}
	}
	f.log.Info().Int("athletes", len(all)).Msg("scrape complete")
	return all, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, page int) ([]models.AthleteRecord, error) {
	url := f.cfg.ListingURL + strconv.Itoa(page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	// Some listings answer past-the-end pages with 404; that ends the walk
	// the same way an empty page does.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http %d for %s", resp.StatusCode, url)
	}

	return ParseListing(resp.Body)
}
