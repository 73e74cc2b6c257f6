package model

// NumberType classifies a detected page-number candidate by notation.
type NumberType int

const (
	// Arabic is a plain decimal page number ("7", "154").
	Arabic NumberType = iota
	// Roman is a Roman numeral, upper or lower case ("iv", "XII").
	Roman
	// Hybrid combines words and numbers ("Chapter 3, Page 12").
	Hybrid
	// Hierarchical is a dotted section number ("2.4").
	Hierarchical
)

// NumberTypes lists all number types in a fixed order. Iterating this slice
// instead of a map keeps scheme detection deterministic.
var NumberTypes = []NumberType{Arabic, Roman, Hybrid, Hierarchical}

// String returns the lowercase name used in patterns and reports.
func (t NumberType) String() string {
	switch t {
	case Arabic:
		return "arabic"
	case Roman:
		return "roman"
	case Hybrid:
		return "hybrid"
	case Hierarchical:
		return "hierarchical"
	default:
		return "unknown"
	}
}

// BBox is the pixel bounding box of a detection within its page image.
type BBox struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsZero reports whether the box carries no position information, which is
// the case for candidates extracted from plain OCR text.
func (b BBox) IsZero() bool {
	return b == BBox{}
}

// NumberRecord is one detected page-number candidate on a page. A page may
// carry several records from different detection passes; records are
// immutable once produced.
type NumberRecord struct {
	// Text is the candidate exactly as recognized ("vii", "154").
	Text string

	// Type is the notation classification.
	Type NumberType

	// Value is the numeric interpretation of Text. Valid only when
	// HasValue is true; a record with a numeric Type but HasValue false
	// violates the input contract and is skipped by the engine.
	Value    int
	HasValue bool

	// Confidence is the detector's confidence in this candidate, 0-100.
	Confidence float64

	// Position is the bounding box of the candidate, zero if unknown.
	Position BBox

	// Context is the surrounding text the candidate was found in.
	Context string
}

// Page is one scanned page as the ordering engine receives it.
type Page struct {
	// ID identifies the page to the caller (usually the source filename).
	ID string

	// Index is the page's 0-based position in the original scan order.
	Index int

	// Text is the full OCR text of the page; may be empty.
	Text string

	// Numbers are the page-number candidates detected on this page,
	// in detection order.
	Numbers []NumberRecord

	// OCRConfidence is the OCR engine's overall quality signal for this
	// page, 0-100. Negative means unknown.
	OCRConfidence float64
}

// ValidNumbers returns the page's records that satisfy the input contract:
// a present numeric value and a non-negative confidence. Order is preserved.
func (p Page) ValidNumbers() []NumberRecord {
	var out []NumberRecord
	for _, n := range p.Numbers {
		if n.HasValue && n.Confidence >= 0 {
			out = append(out, n)
		}
	}
	return out
}

// HasNumbers reports whether the page has at least one usable record.
func (p Page) HasNumbers() bool {
	return len(p.ValidNumbers()) > 0
}

// WordCount returns the number of whitespace-separated words in the page
// text. Used by the confidence model's text-quality signal.
func (p Page) WordCount() int {
	if p.Text == "" {
		return 0
	}
	count := 0
	inWord := false
	for _, r := range p.Text {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			inWord = false
		default:
			if !inWord {
				count++
				inWord = true
			}
		}
	}
	return count
}
