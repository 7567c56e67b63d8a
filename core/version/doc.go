// Package version parses and compares SPT compatibility labels.
//
// A target is the platform baseline a mod must support, written as "SPT X.Y.Z"
// (a trailing ".x" minor token is read as ".0"). It is parsed once into a
// three-component tuple. Mod versions are free text ending in a dotted numeric
// suffix, e.g. "SPT 3.8.1" or "1.2-3.8.1"; only the part after the last "-" and
// the last whitespace-delimited token are significant.
//
// # Comparison
//
// A version satisfies a target when every overlapping component is greater than
// or equal to the target's component. Only the shorter of the two tuples bounds
// the comparison, so "SPT 3.8" satisfies "SPT 3.8.1".
//
// # Usage
//
//	target, err := version.ParseTarget("SPT 3.8.x")
//	ok, err := target.Satisfies("SPT 3.8.1")
package version
