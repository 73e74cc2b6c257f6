// Package order turns per-page number detections into ordering decisions:
// a candidate absolute position per page, then deterministic resolution of
// duplicate positions until every page holds a unique one.
//
// Both stages are pure: they consume their inputs unchanged and return new
// decision slices, so a cancelled run can simply be discarded.
package order
