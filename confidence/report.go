package confidence

import "strings"

// Report is the full confidence evaluation for one ordering run.
type Report struct {
	// RunID identifies the run that produced this report. The engine
	// leaves it empty; callers writing the report out assign one.
	RunID string `json:"run_id,omitempty"`

	Overall          float64          `json:"overall_confidence"`
	Metrics          Metrics          `json:"metrics"`
	Assessments      []Assessment     `json:"page_assessments"`
	Recommendations  []Recommendation `json:"recommendations"`
	NeedsHumanReview bool             `json:"needs_human_review"`
	ReviewPages      []int            `json:"review_pages"`
	Summary          string           `json:"summary"`
}

// ToMap flattens the report into plain maps and slices, for callers that
// merge it into a larger JSON document.
func (r *Report) ToMap() map[string]any {
	assessments := make([]map[string]any, 0, len(r.Assessments))
	for _, a := range r.Assessments {
		assessments = append(assessments, map[string]any{
			"page_index":        a.PageIndex,
			"page_id":           a.PageID,
			"assigned_position": a.Position,
			"confidence_score":  a.Score,
			"confidence_level":  string(a.Level),
			"issues":            a.Issues,
			"evidence":          a.Evidence,
			"needs_review":      a.NeedsReview,
		})
	}

	recommendations := make([]map[string]any, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		recommendations = append(recommendations, map[string]any{
			"type":        rec.Type,
			"title":       rec.Title,
			"description": rec.Description,
			"action":      rec.Action,
			"priority":    rec.Priority,
			"page_index":  rec.PageIndex,
		})
	}

	return map[string]any{
		"run_id":             r.RunID,
		"overall_confidence": r.Overall,
		"metrics": map[string]any{
			"overall_confidence":      r.Metrics.Overall,
			"numbering_confidence":    r.Metrics.Numbering,
			"content_confidence":      r.Metrics.Content,
			"sequence_confidence":     r.Metrics.Sequence,
			"ocr_confidence":          r.Metrics.OCR,
			"page_count":              r.Metrics.PageCount,
			"high_confidence_pages":   r.Metrics.HighConfidencePages,
			"medium_confidence_pages": r.Metrics.MediumConfidence,
			"low_confidence_pages":    r.Metrics.LowConfidencePages,
			"problematic_pages":       r.Metrics.ProblematicPages,
			"notes":                   r.Metrics.Notes,
		},
		"page_assessments":   assessments,
		"recommendations":    recommendations,
		"needs_human_review": r.NeedsHumanReview,
		"review_pages":       r.ReviewPages,
		"summary":            r.Summary,
	}
}

// ReviewPage is one page prepared for an interactive review pass.
type ReviewPage struct {
	Index            int      `json:"index"`
	Name             string   `json:"name"`
	CurrentPosition  int      `json:"current_position"`
	Confidence       float64  `json:"confidence"`
	Issues           []string `json:"issues"`
	Evidence         []string `json:"evidence"`
	SuggestedActions []string `json:"suggested_actions"`
}

// ReviewData packages everything a review frontend needs: the pages that
// need attention with suggested actions, plus the actionable subset of
// recommendations.
type ReviewData struct {
	Summary         string           `json:"summary"`
	Overall         float64          `json:"overall_confidence"`
	NeedsReview     bool             `json:"needs_review"`
	TotalPages      int              `json:"total_pages"`
	Pages           []ReviewPage     `json:"pages_for_review"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ReviewInterfaceData extracts the review-relevant slice of the report.
func (r *Report) ReviewInterfaceData() ReviewData {
	var pages []ReviewPage
	for _, a := range r.Assessments {
		if !a.NeedsReview {
			continue
		}
		page := ReviewPage{
			Index:           a.PageIndex,
			Name:            a.PageID,
			CurrentPosition: a.Position,
			Confidence:      a.Score,
			Issues:          a.Issues,
			Evidence:        a.Evidence,
		}
		for _, issue := range a.Issues {
			switch issue {
			case "no page numbers detected":
				page.SuggestedActions = append(page.SuggestedActions,
					"Check for page numbers in margins or headers")
			case "low OCR quality":
				page.SuggestedActions = append(page.SuggestedActions,
					"Try image preprocessing options")
			}
			if strings.HasPrefix(issue, "conflicting") {
				page.SuggestedActions = append(page.SuggestedActions,
					"Manually select the correct page number")
			}
		}
		pages = append(pages, page)
	}

	var actionable []Recommendation
	for _, rec := range r.Recommendations {
		if rec.Priority == "high" || rec.Priority == "medium" {
			actionable = append(actionable, rec)
		}
	}

	return ReviewData{
		Summary:         r.Summary,
		Overall:         r.Overall,
		NeedsReview:     r.NeedsHumanReview,
		TotalPages:      len(r.Assessments),
		Pages:           pages,
		Recommendations: actionable,
	}
}
