package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/foliate"
)

// ManifestPage records where one page ended up and why.
type ManifestPage struct {
	ID         string  `json:"id"`
	ScanIndex  int     `json:"scan_index"`
	Position   int     `json:"position"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Manifest is the machine-readable record of one ordering run.
type Manifest struct {
	RunID             string         `json:"run_id"`
	GeneratedAt       time.Time      `json:"generated_at"`
	TotalPages        int            `json:"total_pages"`
	OverallConfidence float64        `json:"overall_confidence"`
	NeedsHumanReview  bool           `json:"needs_human_review"`
	Pages             []ManifestPage `json:"pages"`
}

// NewManifest assembles a manifest from an ordering result, stamping a
// fresh run ID and timestamp.
func NewManifest(result *foliate.Result) Manifest {
	pages := make([]ManifestPage, 0, len(result.Decisions))
	for _, d := range result.Decisions {
		pages = append(pages, ManifestPage{
			ID:         d.Page.ID,
			ScanIndex:  d.Page.Index,
			Position:   d.Position,
			Confidence: d.Confidence,
			Reasoning:  d.Reasoning,
		})
	}
	return Manifest{
		RunID:             uuid.NewString(),
		GeneratedAt:       time.Now().UTC(),
		TotalPages:        len(result.Decisions),
		OverallConfidence: result.Report.Overall,
		NeedsHumanReview:  result.Report.NeedsHumanReview,
		Pages:             pages,
	}
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(manifest Manifest, path string) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// WriteReport writes the confidence report as indented JSON, tagging it
// with the run ID so the report and manifest can be correlated.
func WriteReport(result *foliate.Result, runID, path string) error {
	report := *result.Report
	report.RunID = runID

	data, err := json.MarshalIndent(report.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding confidence report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing confidence report: %w", err)
	}
	return nil
}
