// Package scheme infers the numbering scheme(s) a scanned document uses
// from the page-number candidates detected across all pages: Arabic body
// numbering, Roman front matter, hybrid or hierarchical section numbers,
// and the transitions between them.
//
// Detection is pure and deterministic: the same records always produce the
// same Analysis, with all iteration over fixed-order slices rather than
// maps.
package scheme
