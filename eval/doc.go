// Package eval implements the multipole-acceptance traversal over a
// *tree.Tree: for a target position and a caller-supplied pairwise
// kernel, it walks the tree depth-first, substituting whole subtrees
// with their pseudo-body wherever the opening criterion accepts them,
// and sums the kernel's contribution from every accepted node or
// visited leaf source.
//
// Evaluate never errors and never mutates the tree; it is safe to
// call concurrently, on the same *tree.Tree, from any number of
// goroutines.
package eval
