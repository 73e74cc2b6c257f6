package input

import (
	"bytes"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// renderDPI is the rasterization resolution for OCR input. 300 DPI is
// the usual floor for reliable character recognition.
const renderDPI = 300

// PDFPageCount returns the number of pages in a PDF without rendering
// it.
func PDFPageCount(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages in %s: %w", path, err)
	}
	return count, nil
}

// RenderPDF rasterizes every page of a PDF to PNG bytes in document
// order. Page identities are "<stem>_page_NNN" so downstream output can
// trace a page back to its source.
func RenderPDF(path string) ([]RenderedPage, error) {
	count, err := PDFPageCount(path)
	if err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	pages := make([]RenderedPage, 0, count)
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, renderDPI)
		if err != nil {
			return nil, fmt.Errorf("rendering page %d of %s: %w", i+1, path, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encoding page %d of %s: %w", i+1, path, err)
		}
		pages = append(pages, RenderedPage{
			ID:    fmt.Sprintf("%s_page_%03d", stem(path), i+1),
			Index: i,
			PNG:   buf.Bytes(),
		})
	}
	return pages, nil
}

// RenderedPage is one rasterized PDF page ready for OCR.
type RenderedPage struct {
	ID    string
	Index int
	PNG   []byte
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
