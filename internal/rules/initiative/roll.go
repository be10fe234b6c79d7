package initiative

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/mythweaver/mythweaver/internal/errors"
)

// Roll rolls initiative for one combatant: 1d20 plus the dexterity
// modifier. The result can be negative for very clumsy combatants; the
// sequencer only cares about relative order.
func Roll(dexModifier int) (int, error) {
	roll, err := dice.NewRoll(1, 20)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll initiative")
	}
	return roll.GetValue() + dexModifier, nil
}
