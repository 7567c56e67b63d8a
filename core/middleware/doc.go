// Package middleware groups the fiber middleware of the status API.
//
// rayid tags each request with an X-Ray-ID (reusing the caller's, or a new
// uuid) and stores it in the request locals for logger.WithRayID. auth rejects
// requests without the configured X-API-Key; with no key configured it lets
// everything through. The serve command registers rayid first so rejected
// requests are still traceable.
package middleware
