// Package model defines the input contract between OCR collaborators and the
// page-ordering engine: scanned pages, detected page-number candidates, and
// the geometry attached to them.
//
// Types in this package are plain data. They are created once by whatever
// produced the OCR results (the ocr package, a cache, or a test) and are
// never mutated by the engine.
package model
