package confidence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/foliate/order"
)

// Metrics aggregates page assessments into document-level scores. All
// score fields are percentages.
type Metrics struct {
	Overall   float64 `json:"overall_confidence"`
	Numbering float64 `json:"numbering_confidence"`
	Content   float64 `json:"content_confidence"`
	Sequence  float64 `json:"sequence_confidence"`
	OCR       float64 `json:"ocr_confidence"`

	PageCount           int `json:"page_count"`
	HighConfidencePages int `json:"high_confidence_pages"`
	MediumConfidence    int `json:"medium_confidence_pages"`
	LowConfidencePages  int `json:"low_confidence_pages"`

	ProblematicPages []int    `json:"problematic_pages"`
	Notes            []string `json:"notes"`
}

func calculateMetrics(assessments []Assessment, decisions []order.Decision) Metrics {
	if len(assessments) == 0 {
		return Metrics{Notes: []string{"no pages to assess"}}
	}

	var m Metrics
	m.PageCount = len(assessments)

	sum := 0.0
	for _, a := range assessments {
		sum += a.Score
		switch a.Level {
		case LevelHigh:
			m.HighConfidencePages++
		case LevelMedium:
			m.MediumConfidence++
		case LevelLow:
			m.LowConfidencePages++
		}
		if a.NeedsReview {
			m.ProblematicPages = append(m.ProblematicPages, a.PageIndex)
		}
	}
	m.Overall = sum / float64(len(assessments)) * 100

	pagesWithNumbers := 0
	contentEnhanced := 0
	for _, d := range decisions {
		if len(d.Numbers) > 0 {
			pagesWithNumbers++
		}
		if strings.Contains(d.Reasoning, "content analysis") {
			contentEnhanced++
		}
	}
	m.Numbering = float64(pagesWithNumbers) / float64(len(decisions)) * 100

	m.Content = m.Overall + float64(contentEnhanced)/float64(len(decisions))*20
	if m.Content > 100 {
		m.Content = 100
	}

	// Sequence: each hole between consecutive assigned positions costs
	// ten points.
	positions := make([]int, 0, len(assessments))
	for _, a := range assessments {
		positions = append(positions, a.Position)
	}
	sort.Ints(positions)
	gaps := 0
	for i := 0; i+1 < len(positions); i++ {
		if positions[i+1]-positions[i] > 1 {
			gaps++
		}
	}
	m.Sequence = float64(100 - gaps*10)
	if m.Sequence < 0 {
		m.Sequence = 0
	}

	m.OCR = m.Overall

	if m.LowConfidencePages > 0 {
		m.Notes = append(m.Notes, fmt.Sprintf("%d pages need manual review", m.LowConfidencePages))
	}
	if float64(gaps) > float64(len(positions))*0.2 {
		m.Notes = append(m.Notes, "many gaps in sequence; check for missing pages")
	}
	if m.Overall < 70 {
		m.Notes = append(m.Notes, "consider interactive review")
	}
	return m
}

// Recommendation is a prioritized follow-up action derived from the
// metrics. PageIndex is -1 unless the recommendation targets one page.
type Recommendation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Priority    string `json:"priority"`
	PageIndex   int    `json:"page_index,omitempty"`
}

// maxPageRecommendations caps how many per-page review entries the
// report carries.
const maxPageRecommendations = 5

func generateRecommendations(m Metrics, assessments []Assessment) []Recommendation {
	var recs []Recommendation

	if m.PageCount == 0 {
		return recs
	}

	if m.Overall < 50 {
		recs = append(recs, Recommendation{
			Type:        "critical",
			Title:       "Very Low Confidence",
			Description: "The ordering has very low confidence. Manual review is strongly recommended.",
			Action:      "Manually verify page order",
			Priority:    "high",
			PageIndex:   -1,
		})
	} else if m.Overall < 70 {
		recs = append(recs, Recommendation{
			Type:        "warning",
			Title:       "Low Confidence",
			Description: "The ordering has low confidence. Review recommended.",
			Action:      "Check pages marked for review",
			Priority:    "medium",
			PageIndex:   -1,
		})
	}

	if m.Numbering < 50 {
		recs = append(recs, Recommendation{
			Type:        "info",
			Title:       "Poor Number Detection",
			Description: "Few pages have detectable page numbers.",
			Action:      "Consider preprocessing options or manual numbering",
			Priority:    "medium",
			PageIndex:   -1,
		})
	}

	if m.Sequence < 70 {
		recs = append(recs, Recommendation{
			Type:        "warning",
			Title:       "Sequence Gaps",
			Description: "There are gaps in the page sequence.",
			Action:      "Check for missing pages or numbering issues",
			Priority:    "medium",
			PageIndex:   -1,
		})
	}

	added := 0
	for _, a := range assessments {
		if !a.NeedsReview || added >= maxPageRecommendations {
			continue
		}
		priority := "low"
		if a.Score <= 0.3 {
			priority = "medium"
		}
		recs = append(recs, Recommendation{
			Type:        "page_review",
			Title:       fmt.Sprintf("Review Page: %s", a.PageID),
			Description: fmt.Sprintf("Issues: %s", strings.Join(a.Issues, ", ")),
			Action:      fmt.Sprintf("Manually verify position %d", a.Position),
			Priority:    priority,
			PageIndex:   a.PageIndex,
		})
		added++
	}

	if m.OCR < 60 {
		recs = append(recs, Recommendation{
			Type:        "processing",
			Title:       "Poor OCR Quality",
			Description: "OCR results are of poor quality.",
			Action:      "Try preprocessing options: denoise, deskew, contrast enhancement",
			Priority:    "low",
			PageIndex:   -1,
		})
	}
	return recs
}

func summarize(m Metrics) string {
	var quality string
	switch {
	case m.Overall >= 85:
		quality = "Excellent"
	case m.Overall >= 70:
		quality = "Good"
	case m.Overall >= 50:
		quality = "Fair"
	default:
		quality = "Poor"
	}

	summary := fmt.Sprintf("%s ordering confidence (%.1f%%). %d high, %d medium, %d low confidence pages.",
		quality, m.Overall, m.HighConfidencePages, m.MediumConfidence, m.LowConfidencePages)
	if len(m.ProblematicPages) > 0 {
		summary += fmt.Sprintf(" %d pages need review.", len(m.ProblematicPages))
	}
	return summary
}
