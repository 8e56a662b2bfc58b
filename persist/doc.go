// Package persist implements a stable, self-contained binary encoding
// of a *tree.Tree: a fixed header, one fixed-width record per node in
// arena order, and a trailing variable-length section of leaf bodies
// addressed by offset and count from their owning node's record.
//
// This is an internal snapshot format (spec.md §6: "not a wire
// protocol"), not a schema meant to evolve gracefully — Decode
// rejects anything whose version byte does not match exactly.
// Encode/Decode never touch a file themselves; callers own whatever
// os.WriteFile/os.ReadFile or network transfer moves the bytes
// around.
package persist
