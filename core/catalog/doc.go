// Package catalog holds the mod listings scraped from the hub and the cache
// document they can be persisted to.
//
// An entry keeps the raw HTML fragment of its listing card. Everything else
// (detail link, version label) is derived from the fragment on demand, and the
// download URL, which costs two page fetches to resolve, is cached on the entry
// once known. Entries keep the order in which they were scraped.
//
// The cache is only invalidated explicitly (Store.Clear); its date records when
// the scrape happened.
package catalog
