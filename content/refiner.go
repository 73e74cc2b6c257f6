package content

import (
	"fmt"
	"math"
	"sort"

	"github.com/tsawler/foliate/model"
	"github.com/tsawler/foliate/order"
)

// RefineConfig holds the tunables for content-based refinement.
type RefineConfig struct {
	// UncertainThreshold marks decisions eligible for refinement: only
	// pages below it are moved on content evidence.
	UncertainThreshold float64

	// StrongRelationship is the minimum relationship confidence that may
	// override a number-based position.
	StrongRelationship float64

	// MaxRefinedConfidence caps confidence after a content boost.
	MaxRefinedConfidence float64

	// RelationshipWeight scales how much of a relationship's confidence
	// is added to the decision's.
	RelationshipWeight float64
}

// DefaultRefineConfig returns the default refinement tunables.
func DefaultRefineConfig() RefineConfig {
	return RefineConfig{
		UncertainThreshold:   0.7,
		StrongRelationship:   0.7,
		MaxRefinedConfidence: 0.9,
		RelationshipWeight:   0.3,
	}
}

// Refiner repositions weakly-decided pages using content relationships.
type Refiner struct {
	config RefineConfig
}

// NewRefiner creates a refiner with default configuration.
func NewRefiner() *Refiner {
	return &Refiner{config: DefaultRefineConfig()}
}

// NewRefinerWithConfig creates a refiner with custom tunables.
func NewRefinerWithConfig(config RefineConfig) *Refiner {
	return &Refiner{config: config}
}

// Refine returns a copy of decisions in which each uncertain page with a
// strong continuation or heading-sequence predecessor is moved directly
// after that predecessor, with its confidence boosted and its reasoning
// extended. The result is sorted by position and free of duplicates.
//
// decisions and pages describe the same document: one decision per page.
func (r *Refiner) Refine(decisions []order.Decision, pages []model.Page) []order.Decision {
	out := order.CloneDecisions(decisions)

	hasUncertain := false
	for i := range out {
		if out[i].Confidence < r.config.UncertainThreshold {
			hasUncertain = true
			break
		}
	}
	if hasUncertain {
		features := ExtractFeatures(pages)
		r.applyRelationships(out, AnalyzeRelationships(features))
	}
	return resolveCollisions(out)
}

func (r *Refiner) applyRelationships(decisions []order.Decision, relationships []Relationship) {
	slot := make(map[int]int, len(decisions)) // page scan index -> decision slot
	for i := range decisions {
		slot[decisions[i].Page.Index] = i
	}

	// Only ordering relationships can reposition a page; references and
	// similarity corroborate but do not say which page comes first.
	incoming := make(map[int][]Relationship)
	for _, rel := range relationships {
		if rel.Kind == Continuation || rel.Kind == HeadingSequence {
			incoming[rel.PageB] = append(incoming[rel.PageB], rel)
		}
	}

	for i := range decisions {
		d := &decisions[i]
		if d.Confidence >= r.config.UncertainThreshold {
			continue
		}

		var best *Relationship
		for k := range incoming[d.Page.Index] {
			rel := &incoming[d.Page.Index][k]
			if rel.Confidence <= r.config.StrongRelationship {
				continue
			}
			if best == nil || rel.Confidence > best.Confidence {
				best = rel
			}
		}
		if best == nil {
			continue
		}
		pred, ok := slot[best.PageA]
		if !ok {
			continue
		}

		d.Position = decisions[pred].Position + 1
		d.Confidence = math.Min(r.config.MaxRefinedConfidence,
			d.Confidence+best.Confidence*r.config.RelationshipWeight)
		d.Reasoning += fmt.Sprintf(" + content analysis (%s)", best.Kind)
	}
}

// resolveCollisions restores position uniqueness after refinement: at
// each contested position the highest-confidence decision stays and the
// rest shift to the next free positions above it.
func resolveCollisions(decisions []order.Decision) []order.Decision {
	out := order.SortByPosition(decisions)

	groups := make(map[int][]int)
	for i := range out {
		groups[out[i].Position] = append(groups[out[i].Position], i)
	}

	used := make(map[int]bool, len(out))
	var conflicted []int
	for pos, members := range groups {
		used[pos] = true
		if len(members) > 1 {
			conflicted = append(conflicted, pos)
		}
	}
	if len(conflicted) == 0 {
		return out
	}
	sort.Ints(conflicted)

	for _, pos := range conflicted {
		members := groups[pos]
		sort.SliceStable(members, func(a, b int) bool {
			return out[members[a]].Confidence > out[members[b]].Confidence
		})
		for rank, idx := range members[1:] {
			newPos := pos + rank + 1
			for used[newPos] {
				newPos++
			}
			out[idx].Position = newPos
			out[idx].Reasoning += " (conflict resolution)"
			used[newPos] = true
		}
	}
	return order.SortByPosition(out)
}
