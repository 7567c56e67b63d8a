package hub

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"mod-manager/core/catalog"

	"go.uber.org/zap"
)

// PageParam is the query parameter selecting a listing page.
const PageParam = "pageNo"

// Adapter scrapes the hub into catalogs and resolves download links.
type Adapter struct {
	fetcher Fetcher
	logger  *zap.Logger
	now     func() time.Time
}

// NewAdapter creates a hub adapter on top of a fetcher (usually a PageCache over a Client).
func NewAdapter(fetcher Fetcher, logger *zap.Logger) *Adapter {
	return &Adapter{fetcher: fetcher, logger: logger, now: time.Now}
}

// Name returns the source name.
func (a *Adapter) Name() string {
	return "spt-hub"
}

// PageURL returns the listing URL of page n.
func PageURL(listingURL string, n int) (string, error) {
	u, err := url.Parse(listingURL)
	if err != nil {
		return "", fmt.Errorf("invalid listing url %q: %w", listingURL, err)
	}
	q := u.Query()
	q.Set(PageParam, strconv.Itoa(n))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchCatalog scrapes pages 1..pages. Scraping stops early at an empty page.
func (a *Adapter) FetchCatalog(ctx context.Context, listingURL string, pages int) (*catalog.Catalog, error) {
	if pages < 1 {
		pages = 1
	}

	c := catalog.New(a.now())
	for n := 1; n <= pages; n++ {
		pageURL, err := PageURL(listingURL, n)
		if err != nil {
			return nil, err
		}

		page, err := a.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		listings, err := ParseListing(page.Body, page.URL)
		if err != nil {
			return nil, err
		}
		if len(listings) == 0 {
			a.logger.Debug("Listing page is empty, stopping", zap.Int("page", n))
			break
		}

		added := 0
		for _, l := range listings {
			if c.Add(l.Name, l.Content) {
				added++
			}
		}
		a.logger.Info("Scraped listing page",
			zap.Int("page", n),
			zap.Int("cards", len(listings)),
			zap.Int("added", added))
	}

	return c, nil
}

// VersionLabel returns the version label of a listing card.
func (a *Adapter) VersionLabel(content string) (string, error) {
	return VersionLabel(content)
}

// ResolveDownload follows a listing card to its detail page, then to the
// download page, and returns the final download location.
func (a *Adapter) ResolveDownload(ctx context.Context, content string) (string, error) {
	detailURL, err := DetailLink(content)
	if err != nil {
		return "", err
	}

	detail, err := a.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return "", err
	}

	downloadURL, err := DownloadPageLink(detail)
	if err != nil {
		return "", fmt.Errorf("%s: %w", detailURL, err)
	}

	download, err := a.fetcher.Fetch(ctx, downloadURL)
	if err != nil {
		return "", err
	}

	return ExternalLink(download)
}

// NewDefault builds an adapter over a retrying client behind the page cache.
func NewDefault(cfg Config, logger *zap.Logger) *Adapter {
	return NewAdapter(NewPageCache(NewClient(cfg, logger), cfg.cacheTTL()), logger)
}
