package confidence

import (
	"fmt"
	"strings"

	"github.com/tsawler/foliate/order"
)

// Level buckets a page's assessed confidence.
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Assessment is the confidence verdict for one ordered page.
type Assessment struct {
	PageIndex   int      `json:"page_index"`
	PageID      string   `json:"page_id"`
	Position    int      `json:"assigned_position"`
	Score       float64  `json:"confidence_score"`
	Level       Level    `json:"confidence_level"`
	Issues      []string `json:"issues"`
	Evidence    []string `json:"evidence"`
	NeedsReview bool     `json:"needs_review"`
}

// ScoreConfig holds the tunables for confidence evaluation.
type ScoreConfig struct {
	// ReviewThreshold is the overall confidence percentage below which
	// the whole run is flagged for human review.
	ReviewThreshold float64
}

// DefaultScoreConfig returns the default evaluation tunables.
func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{ReviewThreshold: 90}
}

// Scorer evaluates ordering decisions into assessments and a report.
type Scorer struct {
	config ScoreConfig
}

// NewScorer creates a scorer with default configuration.
func NewScorer() *Scorer {
	return &Scorer{config: DefaultScoreConfig()}
}

// NewScorerWithConfig creates a scorer with custom tunables.
func NewScorerWithConfig(config ScoreConfig) *Scorer {
	return &Scorer{config: config}
}

// Evaluate grades every decision and assembles the full report. The
// decisions slice may be in any order; assessments come back in the same
// order as their decisions.
func (s *Scorer) Evaluate(decisions []order.Decision) *Report {
	assessments := make([]Assessment, 0, len(decisions))
	for _, d := range decisions {
		assessments = append(assessments, s.assess(d, len(decisions)))
	}

	metrics := calculateMetrics(assessments, decisions)
	recommendations := generateRecommendations(metrics, assessments)

	var reviewPages []int
	for _, a := range assessments {
		if a.NeedsReview {
			reviewPages = append(reviewPages, a.PageIndex)
		}
	}

	return &Report{
		Overall:          metrics.Overall,
		Metrics:          metrics,
		Assessments:      assessments,
		Recommendations:  recommendations,
		NeedsHumanReview: metrics.Overall < s.config.ReviewThreshold,
		ReviewPages:      reviewPages,
		Summary:          summarize(metrics),
	}
}

func (s *Scorer) assess(d order.Decision, totalPages int) Assessment {
	var issues, evidence []string
	confidence := d.Confidence
	page := d.Page

	// OCR quality, when the page carries it. Negative means unknown.
	if page.OCRConfidence >= 0 {
		ocr := page.OCRConfidence / 100
		confidence = (confidence + ocr) / 2

		if ocr < 0.6 {
			issues = append(issues, "low OCR quality")
		} else {
			evidence = append(evidence, fmt.Sprintf("good OCR quality (%.0f%%)", ocr*100))
		}
	}

	// Text content.
	words := page.WordCount()
	switch {
	case strings.TrimSpace(page.Text) == "":
		issues = append(issues, "no text detected")
		confidence *= 0.5
	case words < 10:
		issues = append(issues, "very little text content")
		confidence *= 0.8
	default:
		evidence = append(evidence, fmt.Sprintf("%d words detected", words))
	}

	// Number detection.
	if len(d.Numbers) > 0 {
		sum := 0.0
		for _, n := range d.Numbers {
			sum += n.Confidence
		}
		avg := sum / float64(len(d.Numbers)) / 100

		if avg > 0.8 {
			evidence = append(evidence, fmt.Sprintf("strong number detection (%.0f%%)", avg*100))
		} else if avg < 0.5 {
			issues = append(issues, "weak number detection")
			confidence *= 0.8
		}

		if distinct := d.DistinctValues(); len(distinct) > 1 {
			issues = append(issues, fmt.Sprintf("conflicting page numbers: %v", distinct))
			confidence *= 0.7
		}
	} else {
		issues = append(issues, "no page numbers detected")
		confidence *= 0.6
	}

	// Position plausibility.
	if d.Position <= 0 {
		issues = append(issues, "invalid position assigned")
		confidence = 0.1
	} else if totalPages > 0 && d.Position > totalPages*2 {
		issues = append(issues, "position seems too high")
		confidence *= 0.7
	}

	// Alternatives: too many means the page was ambiguous, none means
	// conflict resolution has nowhere to go.
	if len(d.Alternatives) > 3 {
		issues = append(issues, "many alternative positions suggest uncertainty")
		confidence *= 0.9
	} else if len(d.Alternatives) == 0 {
		issues = append(issues, "no alternative positions available")
		confidence *= 0.8
	}

	level, needsReview := classify(confidence)
	return Assessment{
		PageIndex:   page.Index,
		PageID:      page.ID,
		Position:    d.Position,
		Score:       confidence,
		Level:       level,
		Issues:      issues,
		Evidence:    evidence,
		NeedsReview: needsReview,
	}
}

func classify(confidence float64) (Level, bool) {
	switch {
	case confidence >= 0.8:
		return LevelHigh, false
	case confidence >= 0.5:
		return LevelMedium, confidence < 0.7
	default:
		return LevelLow, true
	}
}
