// Package foliate turns a scanned document's pages into reading order.
//
// Pages arrive with OCR text and detected number records; the engine
// identifies the dominant numbering scheme, assigns each page a
// position, resolves duplicate positions, repositions weak pages on
// content evidence, and grades the result.
//
// Basic usage:
//
//	result, err := foliate.New().Order(pages)
//	if err != nil {
//	    // handle error
//	}
//	if result.Report.NeedsHumanReview {
//	    // surface result.Report.ReviewPages
//	}
//
// With options:
//
//	result, err := foliate.New().
//	    RejectOutliers(true).
//	    ReviewThreshold(80).
//	    Order(pages)
//
// The engine is pure and deterministic: identical pages always produce
// identical results, and a cancelled run can simply be discarded.
package foliate

import (
	"errors"
	"fmt"

	"github.com/tsawler/foliate/confidence"
	"github.com/tsawler/foliate/content"
	"github.com/tsawler/foliate/model"
	"github.com/tsawler/foliate/order"
	"github.com/tsawler/foliate/scheme"
)

var (
	// ErrNoPages is returned when Order is called with an empty page list.
	ErrNoPages = errors.New("foliate: no pages to order")

	// ErrNegativeConfidence is returned when a number record carries a
	// negative confidence. Unknown OCR quality is expressed on the page
	// (Page.OCRConfidence < 0), never on records.
	ErrNegativeConfidence = errors.New("foliate: negative number record confidence")
)

// Result is the complete output of one ordering run.
type Result struct {
	// Analysis is the document-level numbering scheme analysis.
	Analysis scheme.Analysis

	// Decisions hold one entry per input page, sorted by assigned
	// position. Positions are unique.
	Decisions []order.Decision

	// Report grades the decisions and flags pages for review.
	Report *confidence.Report
}

// Engine runs the ordering pipeline. Configure it with the fluent
// setters, then call Order. Setters return a new Engine, so a configured
// engine can be shared and reused safely.
type Engine struct {
	options Options
}

// New creates an engine with default configuration.
func New() *Engine {
	return &Engine{options: defaultOptions()}
}

// SchemeConfig replaces the scheme detection tunables.
func (e *Engine) SchemeConfig(config scheme.Config) *Engine {
	opts := e.options.clone()
	opts.scheme = config
	return &Engine{options: opts}
}

// AssignConfig replaces the position assignment tunables.
func (e *Engine) AssignConfig(config order.AssignConfig) *Engine {
	opts := e.options.clone()
	opts.assign = config
	return &Engine{options: opts}
}

// RefineConfig replaces the content refinement tunables.
func (e *Engine) RefineConfig(config content.RefineConfig) *Engine {
	opts := e.options.clone()
	opts.refine = config
	return &Engine{options: opts}
}

// ScoreConfig replaces the confidence evaluation tunables.
func (e *Engine) ScoreConfig(config confidence.ScoreConfig) *Engine {
	opts := e.options.clone()
	opts.score = config
	return &Engine{options: opts}
}

// ContentAnalysis enables or disables the content refinement stage.
func (e *Engine) ContentAnalysis(enabled bool) *Engine {
	opts := e.options.clone()
	opts.content = enabled
	return &Engine{options: opts}
}

// DetectContentsPages toggles table-of-contents detection during
// assignment.
func (e *Engine) DetectContentsPages(enabled bool) *Engine {
	opts := e.options.clone()
	opts.assign.DetectContentsPages = enabled
	return &Engine{options: opts}
}

// RejectOutliers toggles rejection of implausibly large detected numbers
// during assignment.
func (e *Engine) RejectOutliers(enabled bool) *Engine {
	opts := e.options.clone()
	opts.assign.RejectOutliers = enabled
	return &Engine{options: opts}
}

// ReviewThreshold sets the overall confidence percentage below which the
// run is flagged for human review.
func (e *Engine) ReviewThreshold(threshold float64) *Engine {
	opts := e.options.clone()
	opts.score.ReviewThreshold = threshold
	return &Engine{options: opts}
}

// Order runs the full pipeline over pages, which must be in scan order.
//
// Per-page anomalies never fail the run; they surface as lowered
// confidence and review flags in the report. Only boundary violations
// return an error: an empty page list, or a record with negative
// confidence.
func (e *Engine) Order(pages []model.Page) (*Result, error) {
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	for _, page := range pages {
		for _, rec := range page.Numbers {
			if rec.Confidence < 0 {
				return nil, fmt.Errorf("page %q record %q: %w",
					page.ID, rec.Text, ErrNegativeConfidence)
			}
		}
	}

	analysis := scheme.NewDetectorWithConfig(e.options.scheme).Analyze(pages)

	decisions := order.NewAssignerWithConfig(e.options.assign).Assign(pages, analysis.Primary)
	decisions = order.NewResolver().Resolve(decisions)

	if e.options.content {
		decisions = content.NewRefinerWithConfig(e.options.refine).Refine(decisions, pages)
	} else {
		decisions = order.SortByPosition(decisions)
	}

	report := confidence.NewScorerWithConfig(e.options.score).Evaluate(decisions)

	return &Result{
		Analysis:  analysis,
		Decisions: decisions,
		Report:    report,
	}, nil
}
