// Package reconcile aligns a user's mod list with a hub catalog and decides,
// per manifest entry, whether the mod is skipped, up to date or needs a
// download.
//
// A run has four steps:
//
//  1. Load: manifest, user list and target version; then the catalog, either
//     from the cache or scraped through a Source.
//  2. Resolve: each user list name is matched to the most similar catalog
//     name. Drifted names are corrected in place and missing hub entries are
//     created (or refreshed on request) from the listing's version label and
//     download link.
//  3. Persist: when resolution changed anything, the user list, manifest and
//     catalog are written back.
//  4. Evaluate: hub entries, then custom entries, in manifest order.
//
// # Evaluation
//
// Each entry passes through two currency gates before the installation check:
//
//	dependency gate  first dependency whose version misses the target -> skipped (outdated-dependency)
//	self gate        own version misses the target                    -> skipped (outdated-self)
//	installed        Installer reports installed and current          -> up_to_date
//	otherwise                                                         -> needs_download
//
// Options.IncludeOutdated disables both gates. A dependency that names no
// manifest entry is an UnknownDependencyError, reported before any entry is
// evaluated.
//
// # Usage
//
//	engine := reconcile.NewEngine(hubAdapter, auditor, reconcile.Stores{
//	    Manifest: manifest.NewStore(backend, "mods.json"),
//	    ModList:  modlist.NewStore(backend, "hubMods.txt"),
//	    Catalog:  catalog.NewStore(backend, "cache.json"),
//	}, log)
//
//	plan, err := engine.Run(ctx, reconcile.Options{Pages: 3})
package reconcile
