// Package treecache memoizes tree.Build across repeated calls with
// identical inputs — the common case of a sub-stepped integrator that
// rebuilds its tree every few steps, or several solvers sharing one
// frozen configuration within a single step.
//
// The cache is content-addressed: its key is a structural hash of the
// sources, bounds, and config given to Build, not a caller-chosen
// string. Nothing in tree or eval depends on this package; it is an
// opt-in convenience layered on top.
package treecache
