// Package tree builds immutable octrees over a set of spatial.Body
// sources.
//
// A Tree is a flat arena of Nodes; children are addressed by index,
// never by pointer, so a built Tree is trivially shareable across
// goroutines and cheap to serialize (see the sibling persist
// package). Build is the only way to construct a Tree; once it
// returns, the Tree is read-only.
package tree
