package confidence

import (
	"math"
	"testing"

	"github.com/tsawler/foliate/model"
	"github.com/tsawler/foliate/order"
)

const longText = "one two three four five six seven eight nine ten eleven twelve"

func cleanDecision(index, position int) order.Decision {
	return order.Decision{
		Page: model.Page{
			ID:            "page",
			Index:         index,
			Text:          longText,
			OCRConfidence: 95,
		},
		Position:   position,
		Confidence: 0.95,
		Reasoning:  "arabic number",
		Numbers: []model.NumberRecord{
			{Text: "n", Type: model.Arabic, Value: position, HasValue: true, Confidence: 90},
		},
		Alternatives: []int{index + 1},
	}
}

func TestAssess_CleanPageIsHigh(t *testing.T) {
	s := NewScorer()
	a := s.assess(cleanDecision(0, 1), 10)

	// (0.95 + 0.95) / 2 with no penalties.
	if !closeTo(a.Score, 0.95) {
		t.Errorf("Score = %v, want 0.95", a.Score)
	}
	if a.Level != LevelHigh || a.NeedsReview {
		t.Errorf("Level = %v, NeedsReview = %v, want high without review", a.Level, a.NeedsReview)
	}
	if len(a.Issues) != 0 {
		t.Errorf("Issues = %v, want none", a.Issues)
	}
}

func TestAssess_UnknownOCRConfidenceSkipsAveraging(t *testing.T) {
	d := cleanDecision(0, 1)
	d.Page.OCRConfidence = -1

	a := NewScorer().assess(d, 10)
	if !closeTo(a.Score, 0.95) {
		t.Errorf("Score = %v, want raw 0.95", a.Score)
	}
}

func TestAssess_NoTextPenalty(t *testing.T) {
	d := cleanDecision(0, 1)
	d.Page.Text = "   "

	a := NewScorer().assess(d, 10)
	if !closeTo(a.Score, 0.95*0.5) {
		t.Errorf("Score = %v, want %v", a.Score, 0.95*0.5)
	}
	if !hasIssue(a, "no text detected") {
		t.Errorf("Issues = %v", a.Issues)
	}
}

func TestAssess_SparseTextPenalty(t *testing.T) {
	d := cleanDecision(0, 1)
	d.Page.Text = "just a few words"

	a := NewScorer().assess(d, 10)
	if !closeTo(a.Score, 0.95*0.8) {
		t.Errorf("Score = %v, want %v", a.Score, 0.95*0.8)
	}
}

func TestAssess_NoNumbersPenalty(t *testing.T) {
	d := cleanDecision(0, 1)
	d.Numbers = nil

	a := NewScorer().assess(d, 10)
	if !closeTo(a.Score, 0.95*0.6) {
		t.Errorf("Score = %v, want %v", a.Score, 0.95*0.6)
	}
	if !hasIssue(a, "no page numbers detected") {
		t.Errorf("Issues = %v", a.Issues)
	}
}

func TestAssess_ConflictingNumbersPenalty(t *testing.T) {
	d := cleanDecision(0, 1)
	d.Numbers = append(d.Numbers, model.NumberRecord{
		Text: "m", Type: model.Arabic, Value: 9, HasValue: true, Confidence: 90,
	})

	a := NewScorer().assess(d, 10)
	if !closeTo(a.Score, 0.95*0.7) {
		t.Errorf("Score = %v, want %v", a.Score, 0.95*0.7)
	}
}

func TestAssess_InvalidPositionFloorsScore(t *testing.T) {
	d := cleanDecision(0, 0)

	a := NewScorer().assess(d, 10)
	if a.Score != 0.1 {
		t.Errorf("Score = %v, want 0.1", a.Score)
	}
	if a.Level != LevelLow || !a.NeedsReview {
		t.Errorf("Level = %v, NeedsReview = %v, want low with review", a.Level, a.NeedsReview)
	}
}

func TestAssess_ImplausiblyHighPositionPenalty(t *testing.T) {
	d := cleanDecision(0, 25)

	a := NewScorer().assess(d, 10)
	if !closeTo(a.Score, 0.95*0.7) {
		t.Errorf("Score = %v, want %v", a.Score, 0.95*0.7)
	}
}

func TestAssess_AlternativeCountPenalties(t *testing.T) {
	many := cleanDecision(0, 1)
	many.Alternatives = []int{2, 3, 4, 5}
	if a := NewScorer().assess(many, 10); !closeTo(a.Score, 0.95*0.9) {
		t.Errorf("many alternatives: Score = %v, want %v", a.Score, 0.95*0.9)
	}

	none := cleanDecision(0, 1)
	none.Alternatives = nil
	if a := NewScorer().assess(none, 10); !closeTo(a.Score, 0.95*0.8) {
		t.Errorf("no alternatives: Score = %v, want %v", a.Score, 0.95*0.8)
	}
}

func TestAssess_MonotoneInDecisionConfidence(t *testing.T) {
	s := NewScorer()
	prev := -1.0
	for _, conf := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		d := cleanDecision(0, 1)
		d.Confidence = conf
		a := s.assess(d, 10)
		if a.Score < prev {
			t.Fatalf("score decreased: confidence %v scored %v, below %v", conf, a.Score, prev)
		}
		prev = a.Score
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		confidence float64
		level      Level
		review     bool
	}{
		{0.95, LevelHigh, false},
		{0.8, LevelHigh, false},
		{0.75, LevelMedium, false},
		{0.6, LevelMedium, true},
		{0.5, LevelMedium, true},
		{0.4, LevelLow, true},
	}
	for _, tt := range tests {
		level, review := classify(tt.confidence)
		if level != tt.level || review != tt.review {
			t.Errorf("classify(%v) = %v/%v, want %v/%v",
				tt.confidence, level, review, tt.level, tt.review)
		}
	}
}

func TestEvaluate_CleanRunNeedsNoReview(t *testing.T) {
	decisions := []order.Decision{
		cleanDecision(0, 1),
		cleanDecision(1, 2),
		cleanDecision(2, 3),
	}

	report := NewScorer().Evaluate(decisions)

	if report.Overall < 90 {
		t.Errorf("Overall = %v, want >= 90", report.Overall)
	}
	if report.NeedsHumanReview {
		t.Error("clean run flagged for review")
	}
	if len(report.ReviewPages) != 0 {
		t.Errorf("ReviewPages = %v, want none", report.ReviewPages)
	}
}

func TestEvaluate_EmptyInput(t *testing.T) {
	report := NewScorer().Evaluate(nil)

	if report.Overall != 0 {
		t.Errorf("Overall = %v, want 0", report.Overall)
	}
	if !report.NeedsHumanReview {
		t.Error("empty run should be flagged for review")
	}
	if len(report.Metrics.Notes) == 0 {
		t.Error("expected a note about the empty input")
	}
}

func TestEvaluate_CustomThreshold(t *testing.T) {
	s := NewScorerWithConfig(ScoreConfig{ReviewThreshold: 10})
	d := cleanDecision(0, 1)
	d.Confidence = 0.3

	report := s.Evaluate([]order.Decision{d})
	if report.NeedsHumanReview {
		t.Errorf("Overall %v should clear a threshold of 10", report.Overall)
	}
}

func hasIssue(a Assessment, issue string) bool {
	for _, i := range a.Issues {
		if i == issue {
			return true
		}
	}
	return false
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
