package order

import (
	"fmt"
	"sort"

	"github.com/tsawler/foliate/model"
	"github.com/tsawler/foliate/scheme"
)

// AssignConfig holds the tunables for position assignment.
type AssignConfig struct {
	// PrimaryConfidenceCap caps the decision confidence for a record
	// matching the primary scheme's type.
	PrimaryConfidenceCap float64

	// MismatchConfidenceCap caps the confidence when the page only has
	// records of a non-primary type.
	MismatchConfidenceCap float64

	// FallbackConfidence is assigned when a page has no usable numbers
	// (or no scheme exists at all) and keeps its scan-order position
	// pending content refinement.
	FallbackConfidence float64

	// DetectContentsPages treats a page carrying many distinct numeric
	// values as a table of contents and pins it to scan order: its
	// detections are page references, not page numbers.
	DetectContentsPages bool

	// ContentsMinDistinct is the distinct-value count at which a page is
	// considered a contents page.
	ContentsMinDistinct int

	// RejectOutliers, when enabled, discards non-Roman detections that
	// are implausibly large for the document (likely numbers from the
	// page body, not printed page numbers) and falls back to scan order.
	RejectOutliers bool

	// OutlierDocMultiplier rejects values above this multiple of the
	// total page count.
	OutlierDocMultiplier int

	// OutlierIndexMultiplier rejects values above this multiple of the
	// page's expected scan-order position.
	OutlierIndexMultiplier int
}

// DefaultAssignConfig returns the default assignment tunables.
func DefaultAssignConfig() AssignConfig {
	return AssignConfig{
		PrimaryConfidenceCap:   0.95,
		MismatchConfidenceCap:  0.7,
		FallbackConfidence:     0.1,
		DetectContentsPages:    true,
		ContentsMinDistinct:    5,
		RejectOutliers:         false,
		OutlierDocMultiplier:   3,
		OutlierIndexMultiplier: 5,
	}
}

// Assigner converts each page's best-matching number record into a
// candidate absolute position.
type Assigner struct {
	config AssignConfig
}

// NewAssigner creates an assigner with default configuration.
func NewAssigner() *Assigner {
	return &Assigner{config: DefaultAssignConfig()}
}

// NewAssignerWithConfig creates an assigner with custom tunables.
func NewAssignerWithConfig(config AssignConfig) *Assigner {
	return &Assigner{config: config}
}

// Assign produces exactly one Decision per page. Pages without usable
// numbers, and every page when primary is nil, keep their scan-order
// position at FallbackConfidence; the rest take their best record's value
// as position. Positions are not yet unique; the Resolver handles that.
func (a *Assigner) Assign(pages []model.Page, primary *scheme.Scheme) []Decision {
	decisions := make([]Decision, 0, len(pages))
	for i, page := range pages {
		decisions = append(decisions, a.decide(page, i, primary))
	}
	return decisions
}

func (a *Assigner) decide(page model.Page, index int, primary *scheme.Scheme) Decision {
	scanPosition := index + 1
	records := page.ValidNumbers()

	if a.config.DetectContentsPages && len(records) >= a.config.ContentsMinDistinct {
		if distinct := distinctValues(records); len(distinct) >= a.config.ContentsMinDistinct {
			return Decision{
				Page:         page,
				Position:     scanPosition,
				Confidence:   0.99,
				Reasoning:    fmt.Sprintf("contents page detected (%d page references); using scan order", len(distinct)),
				Alternatives: []int{scanPosition},
			}
		}
	}

	if len(records) == 0 || primary == nil {
		return Decision{
			Page:         page,
			Position:     scanPosition,
			Confidence:   a.config.FallbackConfidence,
			Reasoning:    "no numbers detected",
			Alternatives: []int{scanPosition},
		}
	}

	best, matched := bestRecord(records, primary.Type)

	if a.config.RejectOutliers && best.Type != model.Roman {
		if reason, outlier := a.outlierReason(best.Value, scanPosition, primary.TotalPages); outlier {
			return Decision{
				Page:         page,
				Position:     scanPosition,
				Confidence:   0.4,
				Reasoning:    reason,
				Alternatives: []int{scanPosition},
			}
		}
	}

	confidence := best.Confidence / 100
	var reasoning string
	if matched {
		if confidence > a.config.PrimaryConfidenceCap {
			confidence = a.config.PrimaryConfidenceCap
		}
		reasoning = fmt.Sprintf("%s number %q = %d", best.Type, best.Text, best.Value)
	} else {
		if confidence > a.config.MismatchConfidenceCap {
			confidence = a.config.MismatchConfidenceCap
		}
		reasoning = fmt.Sprintf("%s number %q = %d (type differs from primary %s scheme)",
			best.Type, best.Text, best.Value, primary.Type)
	}

	return Decision{
		Page:         page,
		Position:     best.Value,
		Confidence:   confidence,
		Reasoning:    reasoning,
		Numbers:      records,
		Alternatives: alternativePositions(records, best.Value, scanPosition),
	}
}

// bestRecord picks the highest-confidence record of the preferred type, or
// the highest-confidence record overall when none matches. Ties keep the
// first record in detection order.
func bestRecord(records []model.NumberRecord, preferred model.NumberType) (model.NumberRecord, bool) {
	var best model.NumberRecord
	found := false
	for _, rec := range records {
		if rec.Type != preferred {
			continue
		}
		if !found || rec.Confidence > best.Confidence {
			best = rec
			found = true
		}
	}
	if found {
		return best, true
	}

	best = records[0]
	for _, rec := range records[1:] {
		if rec.Confidence > best.Confidence {
			best = rec
		}
	}
	return best, false
}

// alternativePositions collects every other distinct detected value plus the
// scan-order fallback (always present, even when it equals the assigned
// position), deduplicated and sorted ascending.
func alternativePositions(records []model.NumberRecord, assigned, scanPosition int) []int {
	seen := map[int]bool{}
	var out []int
	for _, rec := range records {
		if rec.Value != assigned && !seen[rec.Value] {
			seen[rec.Value] = true
			out = append(out, rec.Value)
		}
	}
	if !seen[scanPosition] {
		out = append(out, scanPosition)
	}
	sort.Ints(out)
	return out
}

func (a *Assigner) outlierReason(value, scanPosition, totalPages int) (string, bool) {
	if totalPages > 0 && value > totalPages*a.config.OutlierDocMultiplier {
		return fmt.Sprintf("rejected implausible page number %d for a %d-page document; sequential placement", value, totalPages), true
	}
	if value > scanPosition*a.config.OutlierIndexMultiplier {
		return fmt.Sprintf("rejected outlier %d (expected near %d); sequential placement", value, scanPosition), true
	}
	return "", false
}

func distinctValues(records []model.NumberRecord) []int {
	seen := map[int]bool{}
	var out []int
	for _, rec := range records {
		if !seen[rec.Value] {
			seen[rec.Value] = true
			out = append(out, rec.Value)
		}
	}
	return out
}
