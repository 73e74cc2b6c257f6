package order

import (
	"sort"

	"github.com/tsawler/foliate/model"
)

// Decision is the engine's position assignment for one page, with the
// confidence and rationale behind it. Exactly one Decision exists per input
// page; conflict resolution and content refinement update Position,
// Confidence, and Reasoning but never the page itself.
type Decision struct {
	// Page is the input page this decision orders.
	Page model.Page

	// Position is the assigned 1-based absolute position.
	Position int

	// Confidence is the decision confidence, 0-1.
	Confidence float64

	// Reasoning is a human-readable trace of how Position was derived.
	// Each stage that changes the decision appends to it.
	Reasoning string

	// Numbers are the records that informed the assignment. Empty when
	// the page fell back to scan order.
	Numbers []model.NumberRecord

	// Alternatives are other plausible positions in ascending order,
	// tried in order during conflict resolution.
	Alternatives []int
}

// DistinctValues returns the sorted distinct numeric values among the
// decision's records. More than one distinct value means the page carried
// conflicting number detections.
func (d *Decision) DistinctValues() []int {
	seen := make(map[int]bool, len(d.Numbers))
	var out []int
	for _, n := range d.Numbers {
		if n.HasValue && !seen[n.Value] {
			seen[n.Value] = true
			out = append(out, n.Value)
		}
	}
	sort.Ints(out)
	return out
}

// clone returns a deep copy of the decision so stages can update their own
// copy without mutating the caller's slice.
func (d Decision) clone() Decision {
	out := d
	out.Numbers = append([]model.NumberRecord(nil), d.Numbers...)
	out.Alternatives = append([]int(nil), d.Alternatives...)
	return out
}

// CloneDecisions deep-copies a decision slice. Stages that modify decisions
// operate on a clone, keeping the pipeline free of shared mutable state.
func CloneDecisions(decisions []Decision) []Decision {
	out := make([]Decision, len(decisions))
	for i := range decisions {
		out[i] = decisions[i].clone()
	}
	return out
}
