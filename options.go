package foliate

import (
	"maps"

	"github.com/tsawler/foliate/confidence"
	"github.com/tsawler/foliate/content"
	"github.com/tsawler/foliate/order"
	"github.com/tsawler/foliate/scheme"
)

// Options holds the configuration for every pipeline stage.
type Options struct {
	scheme  scheme.Config
	assign  order.AssignConfig
	refine  content.RefineConfig
	score   confidence.ScoreConfig
	content bool
}

// defaultOptions returns the default engine configuration: content
// refinement on, contents-page detection on, outlier rejection off,
// review threshold 90.
func defaultOptions() Options {
	return Options{
		scheme:  scheme.DefaultConfig(),
		assign:  order.DefaultAssignConfig(),
		refine:  content.DefaultRefineConfig(),
		score:   confidence.DefaultScoreConfig(),
		content: true,
	}
}

// clone copies the options so fluent setters never alias configuration
// between engines. The scheme weight maps are the only reference fields.
func (o Options) clone() Options {
	out := o
	out.scheme.TypeConfidence = maps.Clone(o.scheme.TypeConfidence)
	out.scheme.SelectionBonus = maps.Clone(o.scheme.SelectionBonus)
	return out
}
