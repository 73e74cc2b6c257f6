package scheme

import (
	"fmt"
	"sort"

	"github.com/tsawler/foliate/model"
)

// Config holds the tunable weights for scheme detection.
type Config struct {
	// TypeConfidence is the base confidence (0-100) granted to a scheme
	// by its notation. Roman numerals rank highest: they are rarely
	// produced by OCR noise.
	TypeConfidence map[model.NumberType]float64

	// SelectionBonus is added to a scheme's selection score by notation
	// when choosing the primary scheme. Arabic body numbering is the
	// most common convention, so it gets the largest bonus.
	SelectionBonus map[model.NumberType]float64

	// RomanPrefaceMax is the largest Roman value still classified as
	// front-matter numbering ("roman_preface").
	RomanPrefaceMax int

	// MaxGapSpan caps the value range scanned for gaps. Spans beyond it
	// skip gap analysis instead of allocating an unbounded range.
	MaxGapSpan int
}

// DefaultConfig returns the default detection weights.
func DefaultConfig() Config {
	return Config{
		TypeConfidence: map[model.NumberType]float64{
			model.Arabic:       70,
			model.Roman:        80,
			model.Hybrid:       60,
			model.Hierarchical: 50,
		},
		SelectionBonus: map[model.NumberType]float64{
			model.Arabic:       15,
			model.Roman:        10,
			model.Hybrid:       5,
			model.Hierarchical: 5,
		},
		RomanPrefaceMax: 20,
		MaxGapSpan:      10000,
	}
}

// Detector infers numbering schemes from detected number records.
type Detector struct {
	config Config
}

// NewDetector creates a detector with default configuration.
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with custom weights.
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config}
}

// Analyze examines the number records of all pages and returns the detected
// schemes, the selected primary scheme, sequence statistics, and scheme
// transitions. When no page carries a numeric value the returned Analysis
// has a nil Primary and zero confidence.
func (d *Detector) Analyze(pages []model.Page) Analysis {
	perPage := make([][]model.NumberRecord, len(pages))
	withNumbers := 0
	total := 0
	for i, page := range pages {
		perPage[i] = page.ValidNumbers()
		if len(perPage[i]) > 0 {
			withNumbers++
			total += len(perPage[i])
		}
	}

	if total == 0 {
		return emptyAnalysis(len(pages))
	}

	schemes := d.detectSchemes(perPage)
	primary, alternatives := d.selectPrimary(schemes)
	sequence := d.analyzeSequence(primary, len(pages))
	transitions := detectTransitions(perPage)

	return Analysis{
		Primary:             primary,
		Alternatives:        alternatives,
		Sequence:            sequence,
		Transitions:         transitions,
		TotalPages:          len(pages),
		PagesWithNumbers:    withNumbers,
		PagesWithoutNumbers: len(pages) - withNumbers,
		Confidence:          overallConfidence(primary, sequence),
	}
}

// detectSchemes derives one scheme per number type that produced values,
// visiting types in fixed order.
func (d *Detector) detectSchemes(perPage [][]model.NumberRecord) []Scheme {
	byType := make(map[model.NumberType][]int)
	for _, records := range perPage {
		for _, rec := range records {
			byType[rec.Type] = append(byType[rec.Type], rec.Value)
		}
	}

	var schemes []Scheme
	for _, t := range model.NumberTypes {
		values := byType[t]
		if len(values) == 0 {
			continue
		}
		schemes = append(schemes, d.analyzeType(t, values, len(perPage)))
	}
	return schemes
}

// analyzeType builds the scheme for one notation from its raw values.
func (d *Detector) analyzeType(t model.NumberType, values []int, totalPages int) Scheme {
	counts := make(map[int]int)
	for _, v := range values {
		counts[v]++
	}
	unique := make([]int, 0, len(counts))
	for v := range counts {
		unique = append(unique, v)
	}
	sort.Ints(unique)

	minVal := unique[0]
	maxVal := unique[len(unique)-1]

	var gaps []int
	if maxVal-minVal+1 <= d.config.MaxGapSpan {
		for v := minVal; v <= maxVal; v++ {
			if counts[v] == 0 {
				gaps = append(gaps, v)
			}
		}
	}

	var duplicates []int
	for _, v := range unique {
		if counts[v] > 1 {
			duplicates = append(duplicates, v)
		}
	}

	return Scheme{
		Type:        t,
		Pattern:     d.classifyPattern(t, unique),
		Confidence:  d.sequenceConfidence(t, unique, counts),
		StartNumber: minVal,
		HasStart:    true,
		Sequence:    unique,
		Gaps:        gaps,
		Duplicates:  duplicates,
		TotalPages:  totalPages,
	}
}

// sequenceConfidence scores a value sequence 0-100. The formula is the
// single source of truth for scheme confidence: a per-type base, a
// completeness bonus, a consecutiveness bonus, a duplicate penalty, and a
// plausible-range bonus, clamped to [0,100].
func (d *Detector) sequenceConfidence(t model.NumberType, unique []int, counts map[int]int) float64 {
	confidence := d.config.TypeConfidence[t]

	minVal := unique[0]
	maxVal := unique[len(unique)-1]

	if len(unique) > 1 {
		expected := maxVal - minVal + 1
		confidence += 20 * float64(len(unique)) / float64(expected)

		consecutive := 0
		for i := 0; i < len(unique)-1; i++ {
			if unique[i+1]-unique[i] == 1 {
				consecutive++
			}
		}
		confidence += 15 * float64(consecutive) / float64(len(unique)-1)
	}

	duplicatePenalty := 0
	for _, v := range unique {
		if counts[v] > 1 {
			duplicatePenalty += counts[v] - 1
		}
	}
	confidence -= 5 * float64(duplicatePenalty)

	if minVal >= 1 && minVal <= 10 && maxVal <= 1000 {
		confidence += 10
	}

	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}

// classifyPattern tags the shape of the sorted unique value sequence.
func (d *Detector) classifyPattern(t model.NumberType, unique []int) string {
	if len(unique) == 1 {
		return fmt.Sprintf("single_%s", t)
	}

	sequential := true
	arithmetic := true
	step := unique[1] - unique[0]
	for i := 0; i < len(unique)-1; i++ {
		diff := unique[i+1] - unique[i]
		if diff != 1 {
			sequential = false
		}
		if diff != step {
			arithmetic = false
		}
	}
	if sequential {
		return fmt.Sprintf("sequential_%s", t)
	}
	if arithmetic {
		return fmt.Sprintf("arithmetic_%s_step_%d", t, step)
	}

	switch t {
	case model.Roman:
		if unique[len(unique)-1] <= d.config.RomanPrefaceMax {
			return "roman_preface"
		}
		return "roman_main"
	case model.Hierarchical:
		return "hierarchical_sections"
	case model.Hybrid:
		return "hybrid_format"
	}
	return fmt.Sprintf("irregular_%s", t)
}

// selectPrimary picks the dominant scheme by selection score: the scheme's
// own confidence plus coverage, start-at-one, and notation bonuses. Ties
// keep the first-encountered scheme, so selection is stable.
func (d *Detector) selectPrimary(schemes []Scheme) (*Scheme, []Scheme) {
	if len(schemes) == 0 {
		return nil, nil
	}

	score := func(s *Scheme) float64 {
		sc := s.Confidence + 20*s.Coverage()
		if s.HasStart && s.StartNumber == 1 {
			sc += 10
		}
		return sc + d.config.SelectionBonus[s.Type]
	}

	best := 0
	for i := range schemes {
		if score(&schemes[i]) > score(&schemes[best]) {
			best = i
		}
	}

	primary := schemes[best]
	alternatives := make([]Scheme, 0, len(schemes)-1)
	for i := range schemes {
		if i != best {
			alternatives = append(alternatives, schemes[i])
		}
	}
	sort.SliceStable(alternatives, func(i, j int) bool {
		return score(&alternatives[i]) > score(&alternatives[j])
	})
	return &primary, alternatives
}

// overallConfidence combines the primary scheme's confidence with sequence
// quality into the document-level 0-100 score.
func overallConfidence(primary *Scheme, sequence SequenceAnalysis) float64 {
	if primary == nil {
		return 0
	}
	confidence := primary.Confidence*0.6 + sequence.Quality*40
	if confidence > 100 {
		return 100
	}
	return confidence
}

// emptyAnalysis is the valid terminal state for a document where no page
// produced a numeric value.
func emptyAnalysis(totalPages int) Analysis {
	return Analysis{
		Primary: nil,
		Sequence: SequenceAnalysis{
			Quality:         0,
			Recommendations: []string{"no page numbers detected; ordering will fall back to scan order and content analysis"},
		},
		TotalPages:          totalPages,
		PagesWithoutNumbers: totalPages,
		Confidence:          0,
	}
}
