package scheme

import (
	"github.com/tsawler/foliate/model"
)

// Scheme describes one detected numbering convention and its sequence
// statistics. A Scheme is derived once per number type during analysis and
// never mutated afterward.
type Scheme struct {
	// Type is the notation this scheme covers.
	Type model.NumberType

	// Pattern is a tag classifying the sequence shape, e.g.
	// "sequential_arabic", "arithmetic_roman_step_2", "roman_preface".
	Pattern string

	// Confidence is the scheme's own confidence score, 0-100.
	Confidence float64

	// StartNumber is the smallest detected value; valid when HasStart.
	StartNumber int
	HasStart    bool

	// Sequence holds the sorted unique numeric values detected.
	Sequence []int

	// Gaps are values missing from the covered range. Empty when the
	// range span exceeds the detector's MaxGapSpan guard.
	Gaps []int

	// Duplicates are values detected on more than one page.
	Duplicates []int

	// TotalPages is the page count of the analyzed document.
	TotalPages int
}

// Coverage returns the fraction of document pages the scheme's sequence
// accounts for.
func (s *Scheme) Coverage() float64 {
	if s == nil || s.TotalPages == 0 {
		return 0
	}
	return float64(len(s.Sequence)) / float64(s.TotalPages)
}

// TransitionKind classifies a change of numbering scheme between pages.
type TransitionKind int

const (
	RomanToArabic TransitionKind = iota
	ArabicToRoman
	HierarchicalChange
	MixedSchemeChange
)

// String returns the report tag for the transition kind.
func (k TransitionKind) String() string {
	switch k {
	case RomanToArabic:
		return "roman_to_arabic"
	case ArabicToRoman:
		return "arabic_to_roman"
	case HierarchicalChange:
		return "hierarchical_change"
	case MixedSchemeChange:
		return "mixed_scheme_change"
	default:
		return "unknown"
	}
}

// Transition records a scheme change observed while scanning pages in their
// original order, such as Roman front matter giving way to the Arabic body.
type Transition struct {
	// PageIndex is the 0-based index of the first page after the change.
	PageIndex int

	// FromTypes and ToTypes are the number types present before and
	// after, in model.NumberTypes order.
	FromTypes []model.NumberType
	ToTypes   []model.NumberType

	// Kind classifies the change.
	Kind TransitionKind
}

// SequenceAnalysis summarizes how complete and trustworthy the primary
// scheme's sequence is.
type SequenceAnalysis struct {
	// IsComplete is true when the sequence has no missing values.
	IsComplete bool

	// Missing are the values absent from the expected range.
	Missing []int

	// Extra are detected values outside the expected range.
	Extra []int

	// Quality is a 0-1 score combining scheme confidence with
	// missing/duplicate penalties.
	Quality float64

	// Recommendations are human-readable notes about sequence problems.
	Recommendations []string
}

// Analysis is the full result of scheme detection for one document.
type Analysis struct {
	// Primary is the selected dominant scheme, nil when no page produced
	// a numeric value. A nil Primary is a valid terminal state, not an
	// error; downstream stages fall back to scan order.
	Primary *Scheme

	// Alternatives are the remaining schemes in selection-score order.
	Alternatives []Scheme

	// Sequence analyzes the primary scheme's completeness.
	Sequence SequenceAnalysis

	// Transitions lists scheme changes in page order.
	Transitions []Transition

	TotalPages          int
	PagesWithNumbers    int
	PagesWithoutNumbers int

	// Confidence is the overall 0-100 confidence in the analysis.
	Confidence float64
}
