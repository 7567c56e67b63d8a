// Package status serves a read-only view of the manifest and run history.
//
// # Endpoints
//
//	GET /mods            every manifest entry, hub section first
//	GET /mods?q=brain    entries whose name fuzzily matches q, best first
//	GET /mods/:name      one entry by exact name, else the most similar name
//	GET /search?q=...    fuzzy manifest hits plus the closest cached catalog name
//	GET /runs?limit=N    recent runs (503 when history is disabled)
//	GET /runs/:id        one run with its per-mod results
//
// The manifest is re-read on every request, so the API always reflects the
// last completed sync.
package status
