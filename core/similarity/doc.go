// Package similarity implements the fuzzy name matching used to align a user's
// mod list with the names scraped from the hub catalog.
//
// Scores are bigram Dice coefficients in [0,1]. Resolve always returns the best
// candidate it saw; there is no minimum score, so weak matches are accepted and
// it is up to the caller to surface them.
package similarity
