package scheme

import (
	"fmt"

	"github.com/tsawler/foliate/model"
)

// analyzeSequence evaluates the completeness and quality of the primary
// scheme's sequence and generates recommendations for the report.
func (d *Detector) analyzeSequence(primary *Scheme, totalPages int) SequenceAnalysis {
	if primary == nil {
		return SequenceAnalysis{
			Quality:         0,
			Recommendations: []string{"no clear numbering scheme detected"},
		}
	}

	missing := append([]int(nil), primary.Gaps...)

	quality := primary.Confidence / 100
	var recommendations []string

	if len(missing) > 0 && totalPages > 0 {
		quality *= 1 - float64(len(missing))/float64(totalPages)
		if quality < 0 {
			quality = 0
		}
		recommendations = append(recommendations, fmt.Sprintf("missing page numbers: %v", missing))
	}

	if len(primary.Duplicates) > 0 {
		quality *= 0.8
		recommendations = append(recommendations, fmt.Sprintf("duplicate page numbers found: %v", primary.Duplicates))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "numbering sequence appears complete")
	}

	return SequenceAnalysis{
		IsComplete:      len(missing) == 0,
		Missing:         missing,
		Quality:         quality,
		Recommendations: recommendations,
	}
}

// detectTransitions scans pages in original order and records a transition
// whenever the set of number types present changes from the previous page
// that had any. Pages without numbers neither trigger nor reset the scan.
func detectTransitions(perPage [][]model.NumberRecord) []Transition {
	var transitions []Transition
	var prev []model.NumberType

	for i, records := range perPage {
		current := typesPresent(records)

		if i > 0 && len(prev) > 0 && len(current) > 0 && !sameTypes(prev, current) {
			transitions = append(transitions, Transition{
				PageIndex: i,
				FromTypes: prev,
				ToTypes:   current,
				Kind:      classifyTransition(prev, current),
			})
		}

		if len(current) > 0 {
			prev = current
		}
	}
	return transitions
}

// typesPresent returns the distinct number types in records, ordered by
// model.NumberTypes for determinism.
func typesPresent(records []model.NumberRecord) []model.NumberType {
	seen := make(map[model.NumberType]bool, len(records))
	for _, rec := range records {
		seen[rec.Type] = true
	}
	var out []model.NumberType
	for _, t := range model.NumberTypes {
		if seen[t] {
			out = append(out, t)
		}
	}
	return out
}

func sameTypes(a, b []model.NumberType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func classifyTransition(from, to []model.NumberType) TransitionKind {
	switch {
	case containsType(from, model.Roman) && containsType(to, model.Arabic):
		return RomanToArabic
	case containsType(from, model.Arabic) && containsType(to, model.Roman):
		return ArabicToRoman
	case containsType(from, model.Hierarchical) || containsType(to, model.Hierarchical):
		return HierarchicalChange
	default:
		return MixedSchemeChange
	}
}

func containsType(types []model.NumberType, t model.NumberType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
