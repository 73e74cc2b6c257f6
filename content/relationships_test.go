package content

import (
	"testing"

	"github.com/tsawler/foliate/model"
)

func featuresFor(t *testing.T, pages ...model.Page) []Features {
	t.Helper()
	return ExtractFeatures(pages)
}

func findRelationship(rels []Relationship, kind RelationshipKind, pageA, pageB int) (Relationship, bool) {
	for _, rel := range rels {
		if rel.Kind == kind && rel.PageA == pageA && rel.PageB == pageB {
			return rel, true
		}
	}
	return Relationship{}, false
}

func TestTextContinuity_IncompleteSentence(t *testing.T) {
	// Page 0 stops mid-sentence; page 1 picks up with the same words.
	features := featuresFor(t,
		model.Page{Index: 0, Text: "The experiment measured voltage across the sample sample sample sample sample"},
		model.Page{Index: 1, Text: "sample sample sample sample sample and recorded the results."},
	)

	rels := AnalyzeRelationships(features)
	rel, ok := findRelationship(rels, Continuation, 0, 1)
	if !ok {
		t.Fatalf("no continuation relationship in %+v", rels)
	}
	// Full mirrored overlap (0.6) plus unterminated sentence (0.4).
	if rel.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", rel.Confidence)
	}
}

func TestTextContinuity_TerminatedTextIsWeaker(t *testing.T) {
	features := featuresFor(t,
		model.Page{Index: 0, Text: "Completely unrelated opening paragraph about geology."},
		model.Page{Index: 1, Text: "Another separate discussion concerning astronomy instead."},
	)

	rels := AnalyzeRelationships(features)
	if rel, ok := findRelationship(rels, Continuation, 0, 1); ok {
		t.Errorf("unexpected continuation %+v", rel)
	}
}

func TestHeadingSequence(t *testing.T) {
	features := featuresFor(t,
		model.Page{Index: 0, Text: "Chapter 3\nMaterial on methodology."},
		model.Page{Index: 1, Text: "Chapter 4\nMaterial on findings."},
	)

	rels := AnalyzeRelationships(features)
	rel, ok := findRelationship(rels, HeadingSequence, 0, 1)
	if !ok {
		t.Fatalf("no heading_sequence relationship in %+v", rels)
	}
	if rel.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", rel.Confidence)
	}
}

func TestHeadingSequence_DifferentTypesIgnored(t *testing.T) {
	features := featuresFor(t,
		model.Page{Index: 0, Text: "Chapter 3\nBody."},
		model.Page{Index: 1, Text: "Section 4\nBody."},
	)

	rels := AnalyzeRelationships(features)
	if rel, ok := findRelationship(rels, HeadingSequence, 0, 1); ok {
		t.Errorf("unexpected heading_sequence %+v", rel)
	}
}

func TestCrossReference(t *testing.T) {
	// Page 0 cites scan-order page 2.
	features := featuresFor(t,
		model.Page{Index: 0, Text: "The full derivation appears on page 2 of this report."},
		model.Page{Index: 1, Text: "Derivation details live here."},
	)

	rels := AnalyzeRelationships(features)
	rel, ok := findRelationship(rels, PageReference, 0, 1)
	if !ok {
		t.Fatalf("no reference relationship in %+v", rels)
	}
	if rel.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7", rel.Confidence)
	}
}

func TestSimilarity_CappedAtPointSix(t *testing.T) {
	text := "neutron flux calibration detector shielding dosimetry"
	features := featuresFor(t,
		model.Page{Index: 0, Text: text},
		model.Page{Index: 1, Text: text},
	)

	rels := AnalyzeRelationships(features)
	rel, ok := findRelationship(rels, Similar, 0, 1)
	if !ok {
		t.Fatalf("no similarity relationship in %+v", rels)
	}
	// Identical vocabulary gives Jaccard 1.0, capped at 0.6.
	if rel.Confidence != 0.6 {
		t.Errorf("confidence = %v, want 0.6", rel.Confidence)
	}
}

func TestSimilarity_BelowThresholdIgnored(t *testing.T) {
	features := featuresFor(t,
		model.Page{Index: 0, Text: "alpha beta gamma delta epsilon zeta"},
		model.Page{Index: 1, Text: "one two three four five six"},
	)

	rels := AnalyzeRelationships(features)
	if rel, ok := findRelationship(rels, Similar, 0, 1); ok {
		t.Errorf("unexpected similarity %+v", rel)
	}
}

func TestHeadingNumber_Roman(t *testing.T) {
	n, ok := headingNumber("IV. Discussion")
	if !ok || n != 4 {
		t.Errorf("headingNumber = %d/%v, want 4", n, ok)
	}
}
