package reconcile

import (
	"context"

	"mod-manager/core/catalog"
	"mod-manager/core/manifest"
	"mod-manager/core/modlist"
	"mod-manager/core/version"
)

// Source fetches catalog data from an upstream hub.
type Source interface {
	// Name returns the source name used in logs.
	Name() string

	// FetchCatalog scrapes the given number of listing pages starting at listingURL.
	// Duplicate names keep the first listing seen.
	FetchCatalog(ctx context.Context, listingURL string, pages int) (*catalog.Catalog, error)

	// VersionLabel extracts the compatibility label from a listing fragment.
	VersionLabel(content string) (string, error)

	// ResolveDownload follows a listing fragment to the final download URL.
	ResolveDownload(ctx context.Context, content string) (string, error)
}

// Installer reports whether a declared footprint is installed and current.
type Installer interface {
	Installed(inst manifest.Installation, target version.Target) bool
}

// Stores bundles the three persisted documents of a run.
type Stores struct {
	Manifest *manifest.Store
	ModList  *modlist.Store
	Catalog  *catalog.Store
}
