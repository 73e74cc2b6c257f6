// Package output persists an ordering run: the reordered PDF, the
// ordered image set, and the JSON manifest and confidence report. This
// is the only layer that touches run identifiers and timestamps; the
// engine itself stays deterministic.
package output
