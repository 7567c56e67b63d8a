// Package manifest holds the durable record of known mods.
//
// A manifest has two sections evaluated with identical logic: hubMods, which
// the name-resolution pass creates and refreshes from the hub catalog, and
// customMods, which are maintained by hand. Each entry records the mod's
// compatibility version, its download link, the installation footprint that
// proves it is installed, and the names of the mods it depends on.
//
// Section key order is preserved on load and save; the reconciliation engine
// evaluates entries in that order.
package manifest
