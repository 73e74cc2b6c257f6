package order

import (
	"sort"
)

// conflictSuffix is appended to a decision's reasoning every time it is
// moved off a contested position.
const conflictSuffix = " (reassigned due to conflict)"

// conflictPenalty scales a loser's confidence on each reassignment.
const conflictPenalty = 0.8

// Resolver eliminates duplicate positions among ordering decisions.
type Resolver struct{}

// NewResolver creates a conflict resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns a copy of decisions in which no two share a position.
//
// Each contested position is won by the highest-confidence decision (stable:
// ties keep input order). Every loser is moved to the first of its
// alternatives not already taken, falling back to the contested position
// plus its rank within the group. Reassignment can introduce fresh
// collisions, so resolution iterates to a fixed point; a final sweep
// guarantees the uniqueness invariant even for pathological inputs.
func (r *Resolver) Resolve(decisions []Decision) []Decision {
	out := CloneDecisions(decisions)
	if len(out) < 2 {
		return out
	}

	// Each pass strictly shrinks the set of colliding decisions in all
	// but adversarial cases; the cap plus the final sweep covers those.
	maxPasses := len(out) + 1
	for pass := 0; pass < maxPasses; pass++ {
		if !resolvePass(out) {
			break
		}
	}
	ensureUnique(out)
	return out
}

// resolvePass performs one round of group-wise resolution and reports
// whether any decision was moved.
func resolvePass(decisions []Decision) bool {
	groups := make(map[int][]int) // position -> decision indexes, input order
	for i := range decisions {
		groups[decisions[i].Position] = append(groups[decisions[i].Position], i)
	}

	conflicted := make([]int, 0, len(groups))
	used := make(map[int]bool, len(decisions))
	for pos, members := range groups {
		used[pos] = true
		if len(members) > 1 {
			conflicted = append(conflicted, pos)
		}
	}
	if len(conflicted) == 0 {
		return false
	}
	sort.Ints(conflicted)

	for _, pos := range conflicted {
		members := groups[pos]

		// Stable: equal confidences keep original relative order.
		sort.SliceStable(members, func(a, b int) bool {
			return decisions[members[a]].Confidence > decisions[members[b]].Confidence
		})

		// The winner keeps the contested position.
		for rank, idx := range members[1:] {
			d := &decisions[idx]

			newPos := 0
			for _, alt := range d.Alternatives {
				if !used[alt] {
					newPos = alt
					break
				}
			}
			if newPos == 0 {
				newPos = pos + rank + 1
				for used[newPos] {
					newPos++
				}
			}

			d.Position = newPos
			d.Confidence *= conflictPenalty
			d.Reasoning += conflictSuffix
			used[newPos] = true
		}
	}
	return true
}

// ensureUnique is the last line of defense for the uniqueness invariant:
// any decision still sharing a position is bumped to the smallest free
// position above it, scanning in input order for determinism.
func ensureUnique(decisions []Decision) {
	used := make(map[int]bool, len(decisions))
	for i := range decisions {
		d := &decisions[i]
		if !used[d.Position] {
			used[d.Position] = true
			continue
		}
		newPos := d.Position + 1
		for used[newPos] {
			newPos++
		}
		d.Position = newPos
		d.Confidence *= conflictPenalty
		d.Reasoning += conflictSuffix
		used[newPos] = true
	}
}

// SortByPosition returns a copy of decisions ordered by assigned position
// ascending, the order the output writer consumes.
func SortByPosition(decisions []Decision) []Decision {
	out := CloneDecisions(decisions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}
