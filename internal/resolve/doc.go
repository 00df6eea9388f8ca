// Package resolve implements the core resolution engine: it turns a loaded
// alias configuration, a seed set of requested aliases and a profile stack
// into a single merged basis.
//
// Resolution walks the require-graph depth first from each seed, resolving
// every profile-conditional reference against the active profile stack,
// producing a post-order (dependency before dependent) alias sequence.
// Contributions of the closure are then folded into the basis in that
// order: dependency coordinates merge later-wins, paths union into a set.
// Downstream build backends rely on the ordering being reproducible, so
// the traversal never lets map iteration order leak into the output.
package resolve
