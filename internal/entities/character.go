package entities

// AbilityScores holds the six D&D ability scores
type AbilityScores struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// Modifier converts an ability score to its modifier, rounding down
func Modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// DexModifier returns the dexterity modifier used for initiative rolls
func (a AbilityScores) DexModifier() int {
	return Modifier(a.Dexterity)
}

// SpellSlot is a consumable pool at one spell level
type SpellSlot struct {
	Used int `json:"used"`
	Max  int `json:"max"`
}

// Available reports whether the slot pool has an unspent slot
func (s SpellSlot) Available() bool {
	return s.Used < s.Max
}

// SpellSlots maps spell level (1-9) to its slot pool. Cantrips (level 0)
// are not tracked; they are always castable.
type SpellSlots map[int]SpellSlot

// Clone returns an independent copy of the slot map
func (s SpellSlots) Clone() SpellSlots {
	if s == nil {
		return nil
	}
	out := make(SpellSlots, len(s))
	for level, slot := range s {
		out[level] = slot
	}
	return out
}

// SpellcastingInfo is attached to a character's stats; absence means the
// character cannot cast spells.
type SpellcastingInfo struct {
	Ability    string     `json:"ability"`
	SpellSlots SpellSlots `json:"spell_slots"`
}

// Character is the combat engine's view of a player character: the stats
// it snapshots into combatants plus the durable spell-slot ledger. The full
// character sheet lives in the campaign manager's CRUD layer.
type Character struct {
	ID           string            `json:"id"`
	SessionID    string            `json:"session_id"`
	PlayerID     string            `json:"player_id"`
	Name         string            `json:"name"`
	ClassID      string            `json:"class_id"`
	Level        int               `json:"level"`
	MaxHP        int               `json:"max_hp"`
	ArmorClass   int               `json:"armor_class"`
	Abilities    AbilityScores     `json:"abilities"`
	Spellcasting *SpellcastingInfo `json:"spellcasting,omitempty"`

	// Version guards concurrent updates; every persisted write bumps it
	// and stale writers are rejected.
	Version int64 `json:"version"`
}
