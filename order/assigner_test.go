package order

import (
	"strings"
	"testing"

	"github.com/tsawler/foliate/model"
	"github.com/tsawler/foliate/scheme"
)

func numberedPage(id string, index int, typ model.NumberType, value int, confidence float64) model.Page {
	return model.Page{
		ID:    id,
		Index: index,
		Text:  "body text",
		Numbers: []model.NumberRecord{
			{Text: "n", Type: typ, Value: value, HasValue: true, Confidence: confidence},
		},
	}
}

func arabicScheme(totalPages int) *scheme.Scheme {
	return &scheme.Scheme{Type: model.Arabic, Confidence: 90, TotalPages: totalPages}
}

func TestAssign_PrimaryMatch(t *testing.T) {
	pages := []model.Page{numberedPage("a", 0, model.Arabic, 7, 85)}

	decisions := NewAssigner().Assign(pages, arabicScheme(10))
	if len(decisions) != 1 {
		t.Fatalf("decisions = %d, want 1", len(decisions))
	}
	d := decisions[0]
	if d.Position != 7 {
		t.Errorf("Position = %d, want 7", d.Position)
	}
	if d.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", d.Confidence)
	}
	if !strings.Contains(d.Reasoning, "arabic number") {
		t.Errorf("Reasoning = %q, want arabic number rationale", d.Reasoning)
	}
}

func TestAssign_ConfidenceCap(t *testing.T) {
	pages := []model.Page{numberedPage("a", 0, model.Arabic, 3, 99)}

	d := NewAssigner().Assign(pages, arabicScheme(10))[0]
	if d.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want cap 0.95", d.Confidence)
	}
}

func TestAssign_TypeMismatchCap(t *testing.T) {
	// A roman-only page against an arabic primary scheme.
	pages := []model.Page{numberedPage("a", 0, model.Roman, 4, 95)}

	d := NewAssigner().Assign(pages, arabicScheme(10))[0]
	if d.Position != 4 {
		t.Errorf("Position = %d, want 4", d.Position)
	}
	if d.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want mismatch cap 0.7", d.Confidence)
	}
	if !strings.Contains(d.Reasoning, "type differs from primary") {
		t.Errorf("Reasoning = %q, want mismatch rationale", d.Reasoning)
	}
}

func TestAssign_NoNumbersFallsBackToScanOrder(t *testing.T) {
	pages := []model.Page{
		numberedPage("a", 0, model.Arabic, 1, 85),
		{ID: "blank", Index: 1, Text: "unnumbered"},
	}

	decisions := NewAssigner().Assign(pages, arabicScheme(2))
	d := decisions[1]
	if d.Position != 2 {
		t.Errorf("Position = %d, want scan order 2", d.Position)
	}
	if d.Confidence != 0.1 {
		t.Errorf("Confidence = %v, want 0.1", d.Confidence)
	}
	if d.Reasoning != "no numbers detected" {
		t.Errorf("Reasoning = %q", d.Reasoning)
	}
}

func TestAssign_NilSchemeFallsBackEverywhere(t *testing.T) {
	pages := []model.Page{
		numberedPage("a", 0, model.Arabic, 9, 85),
		numberedPage("b", 1, model.Arabic, 3, 85),
	}

	decisions := NewAssigner().Assign(pages, nil)
	for i, d := range decisions {
		if d.Position != i+1 {
			t.Errorf("page %d: Position = %d, want %d", i, d.Position, i+1)
		}
		if d.Confidence != 0.1 {
			t.Errorf("page %d: Confidence = %v, want 0.1", i, d.Confidence)
		}
	}
}

func TestAssign_ContentsPageDetection(t *testing.T) {
	// A table of contents carries many distinct page references.
	page := model.Page{ID: "toc", Index: 1, Text: "Contents"}
	for _, v := range []int{5, 12, 27, 43, 61, 88} {
		page.Numbers = append(page.Numbers, model.NumberRecord{
			Text: "ref", Type: model.Arabic, Value: v, HasValue: true, Confidence: 85,
		})
	}

	d := NewAssigner().Assign([]model.Page{page}, arabicScheme(100))[0]
	if d.Position != 2 {
		t.Errorf("Position = %d, want scan order 2", d.Position)
	}
	if d.Confidence != 0.99 {
		t.Errorf("Confidence = %v, want 0.99", d.Confidence)
	}
	if !strings.Contains(d.Reasoning, "contents page detected") {
		t.Errorf("Reasoning = %q, want contents rationale", d.Reasoning)
	}
	if len(d.Numbers) != 0 {
		t.Errorf("contents page should not carry number records forward, got %d", len(d.Numbers))
	}
}

func TestAssign_OutlierRejection(t *testing.T) {
	config := DefaultAssignConfig()
	config.RejectOutliers = true
	assigner := NewAssignerWithConfig(config)

	// Page 1 of a 10-page scan claiming to be page 500.
	pages := []model.Page{numberedPage("a", 0, model.Arabic, 500, 90)}

	d := assigner.Assign(pages, arabicScheme(10))[0]
	if d.Position != 1 {
		t.Errorf("Position = %d, want scan order 1", d.Position)
	}
	if d.Confidence != 0.4 {
		t.Errorf("Confidence = %v, want 0.4", d.Confidence)
	}
	if !strings.Contains(d.Reasoning, "sequential placement") {
		t.Errorf("Reasoning = %q, want rejection rationale", d.Reasoning)
	}
}

func TestAssign_OutlierRejectionSkipsRoman(t *testing.T) {
	config := DefaultAssignConfig()
	config.RejectOutliers = true
	assigner := NewAssignerWithConfig(config)

	// Roman front matter legitimately restarts numbering, so it is exempt.
	pages := []model.Page{numberedPage("a", 0, model.Roman, 40, 90)}

	d := assigner.Assign(pages, &scheme.Scheme{Type: model.Roman, Confidence: 80, TotalPages: 5})[0]
	if d.Position != 40 {
		t.Errorf("Position = %d, want 40", d.Position)
	}
}

func TestAssign_AlternativesIncludeScanOrder(t *testing.T) {
	page := model.Page{
		ID:    "a",
		Index: 4,
		Numbers: []model.NumberRecord{
			{Text: "12", Type: model.Arabic, Value: 12, HasValue: true, Confidence: 90},
			{Text: "7", Type: model.Arabic, Value: 7, HasValue: true, Confidence: 60},
		},
	}

	d := NewAssigner().Assign([]model.Page{page}, arabicScheme(20))[0]
	if d.Position != 12 {
		t.Fatalf("Position = %d, want 12", d.Position)
	}
	// Other detected value 7 plus scan position 5, sorted.
	if len(d.Alternatives) != 2 || d.Alternatives[0] != 5 || d.Alternatives[1] != 7 {
		t.Errorf("Alternatives = %v, want [5 7]", d.Alternatives)
	}
}

func TestBestRecord_PrefersPrimaryTypeOverHigherConfidence(t *testing.T) {
	records := []model.NumberRecord{
		{Text: "ix", Type: model.Roman, Value: 9, HasValue: true, Confidence: 95},
		{Text: "9", Type: model.Arabic, Value: 9, HasValue: true, Confidence: 70},
	}

	best, matched := bestRecord(records, model.Arabic)
	if !matched {
		t.Fatal("expected a primary-type match")
	}
	if best.Type != model.Arabic {
		t.Errorf("best type = %v, want arabic", best.Type)
	}
}
