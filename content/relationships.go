package content

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/foliate/roman"
)

// RelationshipKind names the kind of evidence linking two pages.
type RelationshipKind string

const (
	// Continuation means page A's text runs on into page B.
	Continuation RelationshipKind = "continuation"

	// HeadingSequence means page B's heading directly follows page A's.
	HeadingSequence RelationshipKind = "heading_sequence"

	// PageReference means one page explicitly cites the other's number.
	PageReference RelationshipKind = "reference"

	// Similar means the pages share an unusually large vocabulary.
	Similar RelationshipKind = "similar"
)

// Relationship is content-derived evidence that PageB belongs near PageA.
// For Continuation and HeadingSequence, PageA precedes PageB.
type Relationship struct {
	PageA      int
	PageB      int
	Kind       RelationshipKind
	Confidence float64
	Evidence   string
}

// continuityWindow caps how many boundary words are compared.
const continuityWindow = 5

// AnalyzeRelationships derives relationships from every page pair. The
// result is ordered by (PageA pair position, kind) and is deterministic
// for a given input.
func AnalyzeRelationships(features []Features) []Relationship {
	var relationships []Relationship
	for i := 0; i < len(features); i++ {
		for j := i + 1; j < len(features); j++ {
			if rel, ok := textContinuity(features[i], features[j]); ok {
				relationships = append(relationships, rel)
			}
			if rel, ok := headingSequence(features[i], features[j]); ok {
				relationships = append(relationships, rel)
			}
			if rel, ok := crossReference(features[i], features[j]); ok {
				relationships = append(relationships, rel)
			}
			if rel, ok := similarity(features[i], features[j]); ok {
				relationships = append(relationships, rel)
			}
		}
	}
	return relationships
}

// textContinuity checks whether a's trailing words mirror b's leading
// words, or a ends mid-sentence. Word overlap contributes up to 0.6 and
// an unterminated final sentence adds 0.4; anything below 0.3 is noise.
func textContinuity(a, b Features) (Relationship, bool) {
	if len(a.LastWords) == 0 || len(b.FirstWords) == 0 {
		return Relationship{}, false
	}

	window := continuityWindow
	if len(a.LastWords) < window {
		window = len(a.LastWords)
	}
	if len(b.FirstWords) < window {
		window = len(b.FirstWords)
	}

	overlap := 0
	for i := 0; i < window; i++ {
		if a.LastWords[len(a.LastWords)-1-i] == b.FirstWords[i] {
			overlap++
		}
	}

	incomplete := false
	if len(a.Sentences) > 0 && len(b.Sentences) > 0 {
		last := strings.TrimSpace(a.Text)
		incomplete = last != "" && !strings.HasSuffix(last, ".") &&
			!strings.HasSuffix(last, "!") && !strings.HasSuffix(last, "?")
	}

	confidence := 0.0
	if overlap > 0 {
		confidence += float64(overlap) / float64(window) * 0.6
	}
	if incomplete {
		confidence += 0.4
	}
	if confidence < 0.3 {
		return Relationship{}, false
	}

	evidence := fmt.Sprintf("word overlap %d/%d", overlap, window)
	if incomplete {
		evidence += ", sentence continuation detected"
	}
	return Relationship{
		PageA:      a.Index,
		PageB:      b.Index,
		Kind:       Continuation,
		Confidence: confidence,
		Evidence:   evidence,
	}, true
}

// headingSequence looks for same-type headings whose numbers differ by
// exactly one.
func headingSequence(a, b Features) (Relationship, bool) {
	for _, ha := range a.Headings {
		for _, hb := range b.Headings {
			if ha.Type != hb.Type {
				continue
			}
			numA, okA := headingNumber(ha.Text)
			numB, okB := headingNumber(hb.Text)
			if okA && okB && numB == numA+1 {
				return Relationship{
					PageA:      a.Index,
					PageB:      b.Index,
					Kind:       HeadingSequence,
					Confidence: 0.8,
					Evidence:   fmt.Sprintf("sequential headings: %q then %q", ha.Text, hb.Text),
				}, true
			}
		}
	}
	return Relationship{}, false
}

// headingNumber pulls the first Arabic or Roman number out of a heading.
func headingNumber(text string) (int, bool) {
	if digits := digitsRe.FindString(text); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			return n, true
		}
	}
	for _, field := range strings.FieldsFunc(text, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	}) {
		if n, ok := roman.ToInt(field); ok {
			return n, true
		}
	}
	return 0, false
}

// crossReference checks whether either page cites the other's scan-order
// number.
func crossReference(a, b Features) (Relationship, bool) {
	for _, ref := range a.References {
		if ref.HasNumber && ref.Number == b.Index+1 {
			return Relationship{
				PageA:      a.Index,
				PageB:      b.Index,
				Kind:       PageReference,
				Confidence: 0.7,
				Evidence:   fmt.Sprintf("page %d references %q", a.Index+1, ref.Text),
			}, true
		}
	}
	for _, ref := range b.References {
		if ref.HasNumber && ref.Number == a.Index+1 {
			return Relationship{
				PageA:      b.Index,
				PageB:      a.Index,
				Kind:       PageReference,
				Confidence: 0.7,
				Evidence:   fmt.Sprintf("page %d references %q", b.Index+1, ref.Text),
			}, true
		}
	}
	return Relationship{}, false
}

// similarity computes Jaccard similarity over stopword-filtered
// vocabularies. Only overlaps of 0.3 and above count, capped at 0.6 so
// similarity alone never outranks direct evidence.
func similarity(a, b Features) (Relationship, bool) {
	wordsA := vocabulary(a.Text)
	wordsB := vocabulary(b.Text)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return Relationship{}, false
	}

	intersection := 0
	for w := range wordsA {
		if wordsB[w] {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	sim := float64(intersection) / float64(union)
	if sim < 0.3 {
		return Relationship{}, false
	}

	confidence := sim
	if confidence > 0.6 {
		confidence = 0.6
	}
	return Relationship{
		PageA:      a.Index,
		PageB:      b.Index,
		Kind:       Similar,
		Confidence: confidence,
		Evidence:   fmt.Sprintf("content similarity %.2f (%d common words)", sim, intersection),
	}, true
}

func vocabulary(text string) map[string]bool {
	words := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if !stopWords[w] {
			words[w] = true
		}
	}
	return words
}
