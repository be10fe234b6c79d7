// Package spellslots implements the leveled spell-slot ledger rules.
// Slots are durable character state: they survive combats and reset only
// on a long rest, never on turn boundaries.
package spellslots

import (
	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
)

// MaxSlotLevel is the highest tracked spell level. Level 0 (cantrips) is
// never tracked and always castable.
const MaxSlotLevel = 9

func validateLevel(level int) error {
	if level < 1 || level > MaxSlotLevel {
		return errors.InvalidArgumentf("slot level must be between 1 and %d, got %d", MaxSlotLevel, level)
	}
	return nil
}

// Use spends one slot at exactly the given level. There is no automatic
// upcast fallback; the caller picks the level. Returns a new slot map,
// leaving the input untouched.
func Use(slots entities.SpellSlots, level int) (entities.SpellSlots, error) {
	if err := validateLevel(level); err != nil {
		return nil, err
	}

	slot, ok := slots[level]
	if !ok || !slot.Available() {
		return nil, errors.ResourceExhaustedf("no level %d spell slots available", level)
	}

	out := slots.Clone()
	slot.Used++
	out[level] = slot
	return out, nil
}

// Restore returns one spent slot at the given level. Restoring a full pool
// is a no-op, not an error.
func Restore(slots entities.SpellSlots, level int) (entities.SpellSlots, error) {
	if err := validateLevel(level); err != nil {
		return nil, err
	}

	out := slots.Clone()
	slot := out[level]
	if slot.Used > 0 {
		slot.Used--
		out[level] = slot
	}
	return out, nil
}

// RestoreAll is a long rest: every level's used count drops to zero in a
// single update.
func RestoreAll(slots entities.SpellSlots) entities.SpellSlots {
	out := slots.Clone()
	for level, slot := range out {
		slot.Used = 0
		out[level] = slot
	}
	return out
}
