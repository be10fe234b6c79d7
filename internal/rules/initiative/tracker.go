// Package initiative implements turn ordering and advancement for combat.
// Higher initiative acts first; equal values keep their insertion order.
package initiative

import (
	"sort"

	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
)

// Order returns combatant IDs in turn order: descending initiative with a
// stable tiebreak on the slice's existing (insertion) order.
func Order(combatants []*entities.Combatant) []string {
	sorted := make([]*entities.Combatant, len(combatants))
	copy(sorted, combatants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Initiative > sorted[j].Initiative
	})

	ids := make([]string, len(sorted))
	for i, c := range sorted {
		ids[i] = c.ID
	}
	return ids
}

// First returns the ID of the combatant who opens the round
func First(combatants []*entities.Combatant) (string, error) {
	if len(combatants) == 0 {
		return "", errors.FailedPrecondition("cannot start combat with no combatants")
	}
	return Order(combatants)[0], nil
}

// NextAfter returns the combatant following currentID in turn order.
// Reaching the end of the order wraps to the first combatant and reports
// wrapped=true, which is the round boundary.
func NextAfter(combatants []*entities.Combatant, currentID string) (next string, wrapped bool, err error) {
	order := Order(combatants)
	if len(order) == 0 {
		return "", false, errors.FailedPrecondition("no combatants in turn order")
	}

	for i, id := range order {
		if id == currentID {
			if i == len(order)-1 {
				return order[0], true, nil
			}
			return order[i+1], false, nil
		}
	}

	return "", false, errors.NotFoundf("combatant %s is not in the turn order", currentID)
}
