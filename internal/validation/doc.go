// Package validation enforces the invariants of a built curriculum before
// anything is written: every discovered content file must be represented in
// the tree, and every internal cross-reference must resolve to a represented
// identity. Both checks return classified, fatal errors.
package validation
