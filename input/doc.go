// Package input materializes a scanned document for the ordering
// pipeline: it lists page images in natural filename order, decodes the
// common scan formats, and rasterizes PDF pages so OCR can run on them.
package input
