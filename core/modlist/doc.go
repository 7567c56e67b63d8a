// Package modlist reads and writes the user's plain-text list of desired mods.
//
// One name per line. Blank lines and lines containing "#" are comments: they are
// skipped when names are enumerated but written back verbatim, in place, when
// the list is saved.
package modlist
