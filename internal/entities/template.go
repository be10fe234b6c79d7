package entities

// EnemyTemplate is a reusable stat block for enemies and NPCs. Adding it to
// combat instantiates an independent combatant copy; editing the template
// afterward does not touch combatants already on the board.
type EnemyTemplate struct {
	ID         string        `json:"id"`
	SessionID  string        `json:"session_id"`
	Name       string        `json:"name"`
	MaxHP      int           `json:"max_hp"`
	ArmorClass int           `json:"armor_class"`
	Abilities  AbilityScores `json:"abilities"`
}
