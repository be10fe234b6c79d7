package combat

import (
	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/rules/actions"
)

// GetCombatInput defines the request for reading a session's combat state
type GetCombatInput struct {
	SessionID string
}

// GetCombatOutput defines the response for reading combat state
type GetCombatOutput struct {
	State *entities.CombatState
}

// CombatantSelection selects what to add to combat: exactly one of
// CharacterID or TemplateID. A nil Initiative means roll for it.
type CombatantSelection struct {
	CharacterID string
	TemplateID  string
	Initiative  *int
	IsCompanion bool
}

// AddCombatantsInput defines the request for adding a batch of combatants.
// The batch is all-or-nothing: it lands in one persistence write.
type AddCombatantsInput struct {
	SessionID  string
	UserID     string
	Selections []CombatantSelection
}

// AddCombatantsOutput defines the response for adding combatants
type AddCombatantsOutput struct {
	State *entities.CombatState
	Added []*entities.Combatant
}

// CombatantUpdate is a partial update; nil fields are left untouched
type CombatantUpdate struct {
	HPDelta         *int
	StatusEffects   *[]entities.StatusEffect
	Initiative      *int
	IsCompanion     *bool
	ShowHPToPlayers *bool
}

// UpdateCombatantInput defines the request for updating a combatant
type UpdateCombatantInput struct {
	SessionID   string
	UserID      string
	CombatantID string
	Update      CombatantUpdate
}

// UpdateCombatantOutput defines the response for updating a combatant
type UpdateCombatantOutput struct {
	State     *entities.CombatState
	Combatant *entities.Combatant
}

// RemoveCombatantInput defines the request for removing a combatant
type RemoveCombatantInput struct {
	SessionID   string
	UserID      string
	CombatantID string
}

// RemoveCombatantOutput defines the response for removing a combatant
type RemoveCombatantOutput struct {
	State *entities.CombatState
}

// StartCombatInput defines the request for starting combat
type StartCombatInput struct {
	SessionID string
	UserID    string
}

// StartCombatOutput defines the response for starting combat
type StartCombatOutput struct {
	State *entities.CombatState
}

// AdvanceTurnInput defines the request for advancing the turn
type AdvanceTurnInput struct {
	SessionID string
	UserID    string
}

// AdvanceTurnOutput defines the response for advancing the turn
type AdvanceTurnOutput struct {
	State *entities.CombatState
}

// EndCombatInput defines the request for ending combat
type EndCombatInput struct {
	SessionID string
	UserID    string
}

// EndCombatOutput defines the response for ending combat
type EndCombatOutput struct {
	State *entities.CombatState
}

// SpellCastSelection describes a spell cast taken as part of an action.
// SpellLevel nil means resolve the spell's level from the SRD. SlotLevel
// is the slot to burn; it must be at least the spell's level (upcasting).
type SpellCastSelection struct {
	SpellID    string
	SpellLevel *int
	SlotLevel  int
}

// TakeTurnActionInput defines the request for taking a combat action
type TakeTurnActionInput struct {
	SessionID   string
	UserID      string
	CombatantID string
	ActionID    string
	SpellCast   *SpellCastSelection
	Details     string
}

// TakeTurnActionOutput defines the response for taking a combat action
type TakeTurnActionOutput struct {
	State     *entities.CombatState
	Combatant *entities.Combatant
}

// ListActionsInput defines the request for listing the action catalog
type ListActionsInput struct{}

// ListActionsOutput defines the response for listing the action catalog
type ListActionsOutput struct {
	ActionsByCategory map[entities.ActionCategory][]actions.Action
}

// UseSpellSlotInput defines the request for spending a spell slot
type UseSpellSlotInput struct {
	UserID      string
	CharacterID string
	Level       int
}

// UseSpellSlotOutput defines the response for spending a spell slot
type UseSpellSlotOutput struct {
	Character *entities.Character
}

// RestoreSpellSlotInput defines the request for restoring a spell slot
type RestoreSpellSlotInput struct {
	UserID      string
	CharacterID string
	Level       int
}

// RestoreSpellSlotOutput defines the response for restoring a spell slot
type RestoreSpellSlotOutput struct {
	Character *entities.Character
}

// LongRestInput defines the request for a long rest
type LongRestInput struct {
	UserID      string
	CharacterID string
}

// LongRestOutput defines the response for a long rest
type LongRestOutput struct {
	Character *entities.Character
}
