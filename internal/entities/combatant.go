// Package entities defines the domain model for live combat tracking.
// These are pure data records; rules and orchestrators provide behavior.
package entities

import "time"

// CombatantKind identifies what a combatant was created from
type CombatantKind string

// Combatant kinds
const (
	CombatantKindCharacter CombatantKind = "character"
	CombatantKindEnemy     CombatantKind = "enemy"
)

// CombatantSource is a tagged reference to the record a combatant was
// instantiated from. Exactly one of CharacterID or TemplateID is set,
// matching Kind. Stats are snapshot at insertion time; later edits to the
// source never flow back into an active combatant.
type CombatantSource struct {
	Kind        CombatantKind `json:"kind"`
	CharacterID string        `json:"character_id,omitempty"`
	TemplateID  string        `json:"template_id,omitempty"`
}

// StatusEffect is a named condition on a combatant, optionally expiring
// after a number of rounds.
type StatusEffect struct {
	Name        string `json:"name"`
	Duration    *int   `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// ActionCategory is the economy bucket an action spends
type ActionCategory string

// Action categories
const (
	ActionCategoryAction      ActionCategory = "action"
	ActionCategoryBonusAction ActionCategory = "bonus_action"
	ActionCategoryReaction    ActionCategory = "reaction"
	ActionCategoryMovement    ActionCategory = "movement"
	ActionCategoryFree        ActionCategory = "free"
)

// ActionRecord is one entry in a combatant's per-turn action log
type ActionRecord struct {
	ActionID   string         `json:"action_id"`
	ActionName string         `json:"action_name"`
	Category   ActionCategory `json:"category"`
	Timestamp  time.Time      `json:"timestamp"`
	Details    string         `json:"details,omitempty"`
}

// ActionEconomy tracks a combatant's per-turn resources. Flags only move
// false -> true within a turn; the sole reset is the turn-advance
// transition in the sequencer.
type ActionEconomy struct {
	UsedAction      bool           `json:"used_action"`
	UsedBonusAction bool           `json:"used_bonus_action"`
	UsedReaction    bool           `json:"used_reaction"`
	UsedMovement    bool           `json:"used_movement"`
	ActionsTaken    []ActionRecord `json:"actions_taken"`
}

// NewActionEconomy returns a fresh economy with nothing spent
func NewActionEconomy() ActionEconomy {
	return ActionEconomy{ActionsTaken: []ActionRecord{}}
}

// Combatant is a participant in an active encounter. It exists only for
// the lifetime of the session's combat; ending combat clears the list.
type Combatant struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Source          CombatantSource `json:"source"`
	CurrentHP       int             `json:"current_hp"`
	MaxHP           int             `json:"max_hp"`
	ArmorClass      int             `json:"armor_class"`
	Initiative      int             `json:"initiative"`
	IsCompanion     bool            `json:"is_companion"`
	ShowHPToPlayers bool            `json:"show_hp_to_players"`
	StatusEffects   []StatusEffect  `json:"status_effects,omitempty"`
	Economy         ActionEconomy   `json:"action_economy"`
}

// ApplyHPDelta adjusts current HP by delta, clamped to [0, MaxHP].
// 0 HP means down, not removed.
func (c *Combatant) ApplyHPDelta(delta int) {
	hp := c.CurrentHP + delta
	if hp < 0 {
		hp = 0
	}
	if hp > c.MaxHP {
		hp = c.MaxHP
	}
	c.CurrentHP = hp
}

// IsDown reports whether the combatant is at 0 HP
func (c *Combatant) IsDown() bool {
	return c.CurrentHP <= 0
}
