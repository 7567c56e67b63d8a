package reconcile

import (
	"mod-manager/core/catalog"
	"mod-manager/core/manifest"
	"mod-manager/core/modlist"
	"mod-manager/core/version"
)

// Catalog sources reported on a plan.
const (
	CatalogFromCache  = "cache"
	CatalogFromScrape = "scrape"
)

// Session is the loaded state of a single run.
type Session struct {
	Manifest *manifest.Manifest
	List     *modlist.List
	Catalog  *catalog.Catalog
	Target   version.Target

	// CatalogSource is CatalogFromCache or CatalogFromScrape.
	CatalogSource string

	// Dirty is set by the resolution pass when persisted state changed.
	Dirty bool
}

// Fresh reports whether the catalog was scraped during this run.
func (s *Session) Fresh() bool {
	return s.CatalogSource == CatalogFromScrape
}
