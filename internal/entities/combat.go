package entities

// CombatState is the authoritative combat record for one game session:
// the combatant list plus the sequencer sub-state. It is persisted as a
// single versioned record so every combat mutation is serialized through
// a compare-and-swap at the storage boundary.
type CombatState struct {
	SessionID     string       `json:"session_id"`
	Active        bool         `json:"active"`
	Round         int          `json:"round"`
	CurrentTurnID string       `json:"current_turn_id,omitempty"`
	Combatants    []*Combatant `json:"combatants"`

	// Version guards concurrent updates, same discipline as Character.
	Version int64 `json:"version"`
}

// NewCombatState returns an inactive combat record for a session
func NewCombatState(sessionID string) *CombatState {
	return &CombatState{
		SessionID:  sessionID,
		Combatants: []*Combatant{},
	}
}

// Combatant returns the combatant with the given ID, or nil
func (cs *CombatState) Combatant(id string) *Combatant {
	for _, c := range cs.Combatants {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemoveCombatant deletes the combatant with the given ID, preserving the
// insertion order of the rest. Returns false if no such combatant exists.
func (cs *CombatState) RemoveCombatant(id string) bool {
	for i, c := range cs.Combatants {
		if c.ID == id {
			cs.Combatants = append(cs.Combatants[:i], cs.Combatants[i+1:]...)
			return true
		}
	}
	return false
}
