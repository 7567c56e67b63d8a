// Package hub scrapes the SPT hub forum into a catalog.
//
// Three hops are involved per mod:
//
//  1. Listing pages (the manifest url with a pageNo query parameter) hold one
//     card per mod. The card's subject is the mod name and the card itself is
//     kept, serialized, as the catalog entry content.
//  2. The first link of a card leads to the detail page, whose download button
//     leads to the download page.
//  3. The download page either links out to an external host, redirects with
//     a meta refresh, or is the download itself.
//
// Requests go through Client, which applies a fixed timeout and retries
// transport errors, 429 and 5xx responses with exponential backoff. Pages are
// memoized by PageCache so repeated lookups within the TTL hit the network once.
package hub
