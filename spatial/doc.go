// Package spatial provides the primitives shared by the tree builder and
// field evaluator: a concrete 3-D vector type, the Body capability
// interface sources must satisfy, axis-aligned bounding cubes, and the
// Config value object that tunes the Barnes-Hut approximation.
//
// Nothing in this package knows about octrees or multipole acceptance;
// it is the vocabulary the tree and eval packages are built from.
package spatial
