// Package widgets contains dumb render primitives.
//
// Allowed here:
// - stateless drawing/composition helpers (boxes, stacks, bar rankings, icon grid, popup overlay)
//
// Not allowed here:
// - key handling, filter state, or dataset logic
package widgets
