// Package actions provides the static combat action catalog and the pure
// action-economy consumption rules.
package actions

import (
	"time"

	"github.com/mythweaver/mythweaver/internal/entities"
)

// Action is an immutable catalog entry
type Action struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Category    entities.ActionCategory `json:"category"`
	Description string                  `json:"description"`
}

// The catalog is ordered within each category; order is presentation order.
var catalog = []Action{
	{ID: "attack", Name: "Attack", Category: entities.ActionCategoryAction, Description: "Make a melee or ranged attack"},
	{ID: "cast_spell", Name: "Cast a Spell", Category: entities.ActionCategoryAction, Description: "Cast a spell with a casting time of one action"},
	{ID: "dash", Name: "Dash", Category: entities.ActionCategoryAction, Description: "Gain extra movement equal to your speed"},
	{ID: "disengage", Name: "Disengage", Category: entities.ActionCategoryAction, Description: "Your movement doesn't provoke opportunity attacks"},
	{ID: "dodge", Name: "Dodge", Category: entities.ActionCategoryAction, Description: "Attacks against you have disadvantage until your next turn"},
	{ID: "help", Name: "Help", Category: entities.ActionCategoryAction, Description: "Grant an ally advantage on their next check or attack"},
	{ID: "hide", Name: "Hide", Category: entities.ActionCategoryAction, Description: "Make a Stealth check to become hidden"},
	{ID: "ready", Name: "Ready", Category: entities.ActionCategoryAction, Description: "Prepare an action to trigger on a condition"},
	{ID: "search", Name: "Search", Category: entities.ActionCategoryAction, Description: "Make a Perception or Investigation check"},
	{ID: "use_object", Name: "Use an Object", Category: entities.ActionCategoryAction, Description: "Interact with a second object or use a special item"},

	{ID: "offhand_attack", Name: "Off-Hand Attack", Category: entities.ActionCategoryBonusAction, Description: "Attack with a light weapon in your other hand"},
	{ID: "cast_bonus_spell", Name: "Cast a Spell (Bonus)", Category: entities.ActionCategoryBonusAction, Description: "Cast a spell with a casting time of one bonus action"},

	{ID: "opportunity_attack", Name: "Opportunity Attack", Category: entities.ActionCategoryReaction, Description: "Attack a creature leaving your reach"},
	{ID: "cast_reaction_spell", Name: "Cast a Spell (Reaction)", Category: entities.ActionCategoryReaction, Description: "Cast a spell with a casting time of one reaction"},
	{ID: "readied_action", Name: "Readied Action", Category: entities.ActionCategoryReaction, Description: "Release an action you readied earlier this round"},

	{ID: "move", Name: "Move", Category: entities.ActionCategoryMovement, Description: "Move up to your speed"},

	{ID: "interact_object", Name: "Interact with Object", Category: entities.ActionCategoryFree, Description: "Draw a weapon, open a door, or similar"},
	{ID: "speak", Name: "Speak", Category: entities.ActionCategoryFree, Description: "Brief utterances and gestures"},
	{ID: "drop_item", Name: "Drop Item", Category: entities.ActionCategoryFree, Description: "Drop something you are holding"},
}

var catalogByID = func() map[string]Action {
	m := make(map[string]Action, len(catalog))
	for _, a := range catalog {
		m[a.ID] = a
	}
	return m
}()

// All returns every catalog action in presentation order
func All() []Action {
	out := make([]Action, len(catalog))
	copy(out, catalog)
	return out
}

// ByCategory groups the catalog by economy category, preserving order
func ByCategory() map[entities.ActionCategory][]Action {
	m := make(map[entities.ActionCategory][]Action)
	for _, a := range catalog {
		m[a.Category] = append(m[a.Category], a)
	}
	return m
}

// Lookup returns the catalog action with the given ID
func Lookup(id string) (Action, bool) {
	a, ok := catalogByID[id]
	return a, ok
}

// IsAvailable reports whether an action of the given category can still be
// taken this turn under the economy snapshot. Free actions are always
// available.
func IsAvailable(category entities.ActionCategory, economy entities.ActionEconomy) bool {
	switch category {
	case entities.ActionCategoryAction:
		return !economy.UsedAction
	case entities.ActionCategoryBonusAction:
		return !economy.UsedBonusAction
	case entities.ActionCategoryReaction:
		return !economy.UsedReaction
	case entities.ActionCategoryMovement:
		return !economy.UsedMovement
	case entities.ActionCategoryFree:
		return true
	default:
		return false
	}
}

// Consume returns a new economy with the category's flag set and the record
// appended to the action log. Consuming an already-used category is
// idempotent on the flag; the log still grows. Free actions set no flag.
func Consume(economy entities.ActionEconomy, action Action, at time.Time, details string) entities.ActionEconomy {
	out := economy
	out.ActionsTaken = make([]entities.ActionRecord, len(economy.ActionsTaken), len(economy.ActionsTaken)+1)
	copy(out.ActionsTaken, economy.ActionsTaken)

	switch action.Category {
	case entities.ActionCategoryAction:
		out.UsedAction = true
	case entities.ActionCategoryBonusAction:
		out.UsedBonusAction = true
	case entities.ActionCategoryReaction:
		out.UsedReaction = true
	case entities.ActionCategoryMovement:
		out.UsedMovement = true
	case entities.ActionCategoryFree:
		// consumes nothing
	}

	out.ActionsTaken = append(out.ActionsTaken, entities.ActionRecord{
		ActionID:   action.ID,
		ActionName: action.Name,
		Category:   action.Category,
		Timestamp:  at,
		Details:    details,
	})

	return out
}
