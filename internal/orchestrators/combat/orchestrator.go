// Package combat implements the combat session orchestrator: the façade
// combining the action catalog, economy rules, initiative sequencer, and
// spell-slot ledger with the persistence, authorization, and broadcast
// collaborators. The persisted record is the sole source of truth; clients
// are renderers issuing commands.
package combat

//go:generate mockgen -destination=mock/mock_service.go -package=combatmock github.com/mythweaver/mythweaver/internal/orchestrators/combat Service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mythweaver/mythweaver/internal/clients/srd"
	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
	"github.com/mythweaver/mythweaver/internal/pkg/clock"
	"github.com/mythweaver/mythweaver/internal/pkg/idgen"
	"github.com/mythweaver/mythweaver/internal/repositories/characters"
	combatrepo "github.com/mythweaver/mythweaver/internal/repositories/combat"
	"github.com/mythweaver/mythweaver/internal/repositories/templates"
	"github.com/mythweaver/mythweaver/internal/rules/actions"
	"github.com/mythweaver/mythweaver/internal/rules/initiative"
	"github.com/mythweaver/mythweaver/internal/rules/spellslots"
	"github.com/mythweaver/mythweaver/internal/services/auth"
	"github.com/mythweaver/mythweaver/internal/services/events"
)

// Service defines the interface for combat session operations
type Service interface {
	// GetCombat returns the current combat state for a session
	GetCombat(ctx context.Context, input *GetCombatInput) (*GetCombatOutput, error)

	// AddCombatants adds a batch of combatants, all-or-nothing
	AddCombatants(ctx context.Context, input *AddCombatantsInput) (*AddCombatantsOutput, error)

	// UpdateCombatant applies a partial update to one combatant
	UpdateCombatant(ctx context.Context, input *UpdateCombatantInput) (*UpdateCombatantOutput, error)

	// RemoveCombatant removes a combatant from the encounter
	RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error)

	// StartCombat begins combat at round 1
	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)

	// AdvanceTurn moves the turn pointer to the next combatant
	AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*AdvanceTurnOutput, error)

	// EndCombat ends combat and clears the combatant list
	EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error)

	// TakeTurnAction takes a catalog action or casts a spell
	TakeTurnAction(ctx context.Context, input *TakeTurnActionInput) (*TakeTurnActionOutput, error)

	// ListActions returns the static action catalog grouped by category
	ListActions(ctx context.Context, input *ListActionsInput) (*ListActionsOutput, error)

	// UseSpellSlot spends one slot at the given level
	UseSpellSlot(ctx context.Context, input *UseSpellSlotInput) (*UseSpellSlotOutput, error)

	// RestoreSpellSlot returns one spent slot at the given level
	RestoreSpellSlot(ctx context.Context, input *RestoreSpellSlotInput) (*RestoreSpellSlotOutput, error)

	// LongRest restores every spell slot in one update
	LongRest(ctx context.Context, input *LongRestInput) (*LongRestOutput, error)
}

// Config holds the dependencies for the combat orchestrator
type Config struct {
	CombatRepo    combatrepo.Repository
	CharacterRepo characters.Repository
	TemplateRepo  templates.Repository
	Authorizer    auth.Authorizer
	Broadcaster   events.Broadcaster
	SRDClient     srd.Client
	IDGenerator   idgen.Generator
	Clock         clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CombatRepo == nil {
		vb.RequiredField("CombatRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.TemplateRepo == nil {
		vb.RequiredField("TemplateRepo")
	}
	if c.Authorizer == nil {
		vb.RequiredField("Authorizer")
	}
	if c.Broadcaster == nil {
		vb.RequiredField("Broadcaster")
	}
	if c.SRDClient == nil {
		vb.RequiredField("SRDClient")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	combatRepo    combatrepo.Repository
	characterRepo characters.Repository
	templateRepo  templates.Repository
	authorizer    auth.Authorizer
	broadcaster   events.Broadcaster
	srdClient     srd.Client
	idGen         idgen.Generator
	clock         clock.Clock
}

// NewOrchestrator creates a new combat orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		combatRepo:    cfg.CombatRepo,
		characterRepo: cfg.CharacterRepo,
		templateRepo:  cfg.TemplateRepo,
		authorizer:    cfg.Authorizer,
		broadcaster:   cfg.Broadcaster,
		srdClient:     cfg.SRDClient,
		idGen:         cfg.IDGenerator,
		clock:         c,
	}, nil
}

// loadCombat fetches the session's combat record, materializing an empty
// inactive one for sessions that have never fought.
func (o *orchestrator) loadCombat(ctx context.Context, sessionID string) (*entities.CombatState, error) {
	out, err := o.combatRepo.Get(ctx, combatrepo.GetInput{SessionID: sessionID})
	if err != nil {
		if errors.IsNotFound(err) {
			return entities.NewCombatState(sessionID), nil
		}
		return nil, err
	}
	return out.State, nil
}

// save persists the state and returns the saved copy with its bumped version
func (o *orchestrator) save(ctx context.Context, state *entities.CombatState) (*entities.CombatState, error) {
	out, err := o.combatRepo.Save(ctx, combatrepo.SaveInput{State: state})
	if err != nil {
		return nil, err
	}
	return out.State, nil
}

// broadcast publishes fire-and-forget; the write already succeeded, so a
// failed publish only degrades liveness for viewers, never correctness.
func (o *orchestrator) broadcast(ctx context.Context, event events.Event) {
	if err := o.broadcaster.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to broadcast event",
			"type", event.Type,
			"session_id", event.SessionID,
			"error", err)
	}
}

func (o *orchestrator) GetCombat(ctx context.Context, input *GetCombatInput) (*GetCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	state, err := o.loadCombat(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetCombatOutput{State: state}, nil
}

func (o *orchestrator) AddCombatants(ctx context.Context, input *AddCombatantsInput) (*AddCombatantsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}
	if len(input.Selections) == 0 {
		return nil, errors.InvalidArgument("at least one combatant selection is required")
	}

	state, err := o.loadCombat(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	added := make([]*entities.Combatant, 0, len(input.Selections))
	for i, sel := range input.Selections {
		combatant, err := o.buildCombatant(ctx, input.SessionID, input.UserID, sel)
		if err != nil {
			return nil, errors.Wrapf(err, "selection %d", i)
		}
		added = append(added, combatant)
	}

	// The whole batch lands in one versioned write: all-or-nothing.
	// Insertion never moves the turn pointer; it is a combatant reference,
	// not a positional index.
	state.Combatants = append(state.Combatants, added...)

	saved, err := o.save(ctx, state)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(added))
	for i, c := range added {
		names[i] = c.Name
	}
	o.broadcast(ctx, events.Event{
		Type:      events.EventTypeCombatantAdded,
		SessionID: input.SessionID,
		Data:      map[string]interface{}{"names": names, "count": len(added)},
	})

	return &AddCombatantsOutput{State: saved, Added: added}, nil
}

// buildCombatant snapshots a character or template into a new combatant.
// Template edits after this point never reach the board.
func (o *orchestrator) buildCombatant(
	ctx context.Context,
	sessionID, userID string,
	sel CombatantSelection,
) (*entities.Combatant, error) {
	if (sel.CharacterID == "") == (sel.TemplateID == "") {
		return nil, errors.InvalidArgument("exactly one of character_id or template_id must be set")
	}

	combatant := &entities.Combatant{
		ID:      o.idGen.Generate(),
		Economy: entities.NewActionEconomy(),
	}

	var dexMod int
	switch {
	case sel.CharacterID != "":
		charOut, err := o.characterRepo.Get(ctx, characters.GetInput{ID: sel.CharacterID})
		if err != nil {
			return nil, err
		}
		character := charOut.Character
		if err := o.authorizer.CanEditCharacter(ctx, userID, character); err != nil {
			return nil, err
		}

		combatant.Name = character.Name
		combatant.Source = entities.CombatantSource{
			Kind:        entities.CombatantKindCharacter,
			CharacterID: character.ID,
		}
		combatant.MaxHP = character.MaxHP
		combatant.CurrentHP = character.MaxHP
		combatant.ArmorClass = character.ArmorClass
		combatant.ShowHPToPlayers = true
		dexMod = character.Abilities.DexModifier()

	default:
		if err := o.authorizer.RequireGM(ctx, sessionID, userID); err != nil {
			return nil, err
		}
		tmplOut, err := o.templateRepo.Get(ctx, templates.GetInput{ID: sel.TemplateID})
		if err != nil {
			return nil, err
		}
		template := tmplOut.Template

		combatant.Name = template.Name
		combatant.Source = entities.CombatantSource{
			Kind:       entities.CombatantKindEnemy,
			TemplateID: template.ID,
		}
		combatant.MaxHP = template.MaxHP
		combatant.CurrentHP = template.MaxHP
		combatant.ArmorClass = template.ArmorClass
		combatant.IsCompanion = sel.IsCompanion
		dexMod = template.Abilities.DexModifier()
	}

	if sel.Initiative != nil {
		combatant.Initiative = *sel.Initiative
	} else {
		rolled, err := initiative.Roll(dexMod)
		if err != nil {
			return nil, err
		}
		combatant.Initiative = rolled
	}

	return combatant, nil
}

func (o *orchestrator) UpdateCombatant(ctx context.Context, input *UpdateCombatantInput) (*UpdateCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" || input.CombatantID == "" {
		return nil, errors.InvalidArgument("session ID and combatant ID are required")
	}

	state, err := o.loadCombat(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	combatant := state.Combatant(input.CombatantID)
	if combatant == nil {
		return nil, errors.NotFoundf("combatant %s not found", input.CombatantID)
	}

	upd := input.Update
	flagsTouched := upd.IsCompanion != nil || upd.ShowHPToPlayers != nil || upd.Initiative != nil
	if flagsTouched {
		if err := o.authorizer.RequireGM(ctx, input.SessionID, input.UserID); err != nil {
			return nil, err
		}
	} else {
		if err := o.authorizer.CanEditCombatant(ctx, input.SessionID, input.UserID, combatant); err != nil {
			return nil, err
		}
	}

	if upd.HPDelta != nil {
		combatant.ApplyHPDelta(*upd.HPDelta)
	}
	if upd.StatusEffects != nil {
		combatant.StatusEffects = *upd.StatusEffects
	}
	if upd.Initiative != nil {
		combatant.Initiative = *upd.Initiative
	}
	if upd.IsCompanion != nil {
		combatant.IsCompanion = *upd.IsCompanion
	}
	if upd.ShowHPToPlayers != nil {
		combatant.ShowHPToPlayers = *upd.ShowHPToPlayers
	}

	saved, err := o.save(ctx, state)
	if err != nil {
		return nil, err
	}

	o.broadcast(ctx, events.Event{
		Type:      events.EventTypeCombatantUpdated,
		SessionID: input.SessionID,
		Data:      map[string]interface{}{"combatant_id": combatant.ID},
	})

	return &UpdateCombatantOutput{State: saved, Combatant: saved.Combatant(input.CombatantID)}, nil
}

func (o *orchestrator) RemoveCombatant(ctx context.Context, input *RemoveCombatantInput) (*RemoveCombatantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" || input.CombatantID == "" {
		return nil, errors.InvalidArgument("session ID and combatant ID are required")
	}

	if err := o.authorizer.RequireGM(ctx, input.SessionID, input.UserID); err != nil {
		return nil, err
	}

	state, err := o.loadCombat(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if state.Combatant(input.CombatantID) == nil {
		return nil, errors.NotFoundf("combatant %s not found", input.CombatantID)
	}

	// If the active combatant is removed, fall back to the normal advance
	// rule to pick the next one. The round never changes on removal.
	if state.Active && state.CurrentTurnID == input.CombatantID {
		if len(state.Combatants) == 1 {
			state.Active = false
			state.CurrentTurnID = ""
			state.Round = 0
		} else {
			next, _, err := initiative.NextAfter(state.Combatants, input.CombatantID)
			if err != nil {
				return nil, err
			}
			state.CurrentTurnID = next
			if nc := state.Combatant(next); nc != nil {
				nc.Economy = entities.NewActionEconomy()
			}
		}
	}

	state.RemoveCombatant(input.CombatantID)

	saved, err := o.save(ctx, state)
	if err != nil {
		return nil, err
	}

	o.broadcast(ctx, events.Event{
		Type:      events.EventTypeCombatantRemoved,
		SessionID: input.SessionID,
		Data:      map[string]interface{}{"combatant_id": input.CombatantID},
	})

	return &RemoveCombatantOutput{State: saved}, nil
}

func (o *orchestrator) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	if err := o.authorizer.RequireGM(ctx, input.SessionID, input.UserID); err != nil {
		return nil, err
	}

	state, err := o.loadCombat(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if state.Active {
		return nil, errors.FailedPrecondition("combat is already active")
	}

	first, err := initiative.First(state.Combatants)
	if err != nil {
		return nil, err
	}

	state.Active = true
	state.Round = 1
	state.CurrentTurnID = first
	if c := state.Combatant(first); c != nil {
		c.Economy = entities.NewActionEconomy()
	}

	saved, err := o.save(ctx, state)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "combat started",
		"session_id", input.SessionID,
		"combatants", len(saved.Combatants),
		"first_turn", first)

	o.broadcast(ctx, events.Event{
		Type:      events.EventTypeCombatStarted,
		SessionID: input.SessionID,
		Data:      map[string]interface{}{"round": saved.Round, "current_turn": saved.CurrentTurnID},
	})

	return &StartCombatOutput{State: saved}, nil
}

func (o *orchestrator) AdvanceTurn(ctx context.Context, input *AdvanceTurnInput) (*AdvanceTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	state, err := o.loadCombat(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if !state.Active {
		return nil, errors.FailedPrecondition("no active combat")
	}

	// The GM or the player holding the current turn may end it
	current := state.Combatant(state.CurrentTurnID)
	if current == nil {
		return nil, errors.Internalf("current turn points at missing combatant %s", state.CurrentTurnID)
	}
	if err := o.authorizer.CanEditCombatant(ctx, input.SessionID, input.UserID, current); err != nil {
		return nil, err
	}

	next, wrapped, err := initiative.NextAfter(state.Combatants, state.CurrentTurnID)
	if err != nil {
		return nil, err
	}

	if wrapped {
		state.Round++
	}
	state.CurrentTurnID = next

	// Turn-start reset happens here and only here, atomically with the
	// advance: the same persistence write carries both.
	if c := state.Combatant(next); c != nil {
		c.Economy = entities.NewActionEconomy()
	}

	saved, err := o.save(ctx, state)
	if err != nil {
		return nil, err
	}

	o.broadcast(ctx, events.Event{
		Type:      events.EventTypeTurnAdvanced,
		SessionID: input.SessionID,
		Data:      map[string]interface{}{"round": saved.Round, "current_turn": saved.CurrentTurnID},
	})

	return &AdvanceTurnOutput{State: saved}, nil
}

func (o *orchestrator) EndCombat(ctx context.Context, input *EndCombatInput) (*EndCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	if err := o.authorizer.RequireGM(ctx, input.SessionID, input.UserID); err != nil {
		return nil, err
	}

	state, err := o.loadCombat(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if !state.Active {
		return nil, errors.FailedPrecondition("no active combat")
	}

	// Combatants are not persisted beyond the combat's lifetime
	state.Active = false
	state.Round = 0
	state.CurrentTurnID = ""
	state.Combatants = []*entities.Combatant{}

	saved, err := o.save(ctx, state)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "combat ended", "session_id", input.SessionID)

	o.broadcast(ctx, events.Event{
		Type:      events.EventTypeCombatEnded,
		SessionID: input.SessionID,
	})

	return &EndCombatOutput{State: saved}, nil
}

func (o *orchestrator) ListActions(_ context.Context, _ *ListActionsInput) (*ListActionsOutput, error) {
	return &ListActionsOutput{ActionsByCategory: actions.ByCategory()}, nil
}

func (o *orchestrator) TakeTurnAction(ctx context.Context, input *TakeTurnActionInput) (*TakeTurnActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" || input.CombatantID == "" {
		return nil, errors.InvalidArgument("session ID and combatant ID are required")
	}

	action, ok := actions.Lookup(input.ActionID)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown action %q", input.ActionID)
	}

	state, err := o.loadCombat(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if !state.Active {
		return nil, errors.FailedPrecondition("no active combat")
	}

	combatant := state.Combatant(input.CombatantID)
	if combatant == nil {
		return nil, errors.NotFoundf("combatant %s not found", input.CombatantID)
	}

	if err := o.authorizer.CanEditCombatant(ctx, input.SessionID, input.UserID, combatant); err != nil {
		return nil, err
	}

	// Reactions may be taken off-turn (opportunity attacks); free actions
	// are never gated. Everything else belongs to the current turn.
	switch action.Category {
	case entities.ActionCategoryAction, entities.ActionCategoryBonusAction, entities.ActionCategoryMovement:
		if state.CurrentTurnID != input.CombatantID {
			return nil, errors.FailedPreconditionf("it is not %s's turn", combatant.Name)
		}
	case entities.ActionCategoryReaction, entities.ActionCategoryFree:
	}

	if !actions.IsAvailable(action.Category, combatant.Economy) {
		return nil, errors.ResourceExhaustedf("%s already used this turn", action.Category)
	}

	// Validate and consume the spell slot before touching the economy:
	// the slot is the double-spend-critical resource and its repository
	// write is the check that no concurrent cast got there first.
	details := input.Details
	var slotSpent *spentSlot
	if input.SpellCast != nil {
		details, slotSpent, err = o.castSpell(ctx, combatant, input.SpellCast, details)
		if err != nil {
			return nil, err
		}
	}

	combatant.Economy = actions.Consume(combatant.Economy, action, o.clock.Now(), details)

	saved, err := o.save(ctx, state)
	if err != nil {
		if slotSpent != nil {
			o.refundSlot(ctx, slotSpent)
		}
		return nil, err
	}

	o.broadcast(ctx, events.Event{
		Type:      events.EventTypeActionTaken,
		SessionID: input.SessionID,
		Data: map[string]interface{}{
			"combatant_id": combatant.ID,
			"action_id":    action.ID,
			"category":     string(action.Category),
		},
	})
	if slotSpent != nil {
		o.broadcast(ctx, events.Event{
			Type:      events.EventTypeSpellSlotsUpdated,
			SessionID: input.SessionID,
			Data:      map[string]interface{}{"character_id": slotSpent.characterID, "level": slotSpent.level},
		})
	}

	return &TakeTurnActionOutput{State: saved, Combatant: saved.Combatant(input.CombatantID)}, nil
}

type spentSlot struct {
	characterID string
	level       int
}

// castSpell validates a spell cast and, for leveled spells cast by
// character combatants, spends the slot on the owning character record.
// Enemy spell slots are not tracked; the GM narrates those.
func (o *orchestrator) castSpell(
	ctx context.Context,
	combatant *entities.Combatant,
	cast *SpellCastSelection,
	details string,
) (string, *spentSlot, error) {
	if cast.SpellID == "" {
		return "", nil, errors.InvalidArgument("spell ID is required")
	}

	spellName := cast.SpellID
	var spellLevel int
	if cast.SpellLevel != nil {
		spellLevel = *cast.SpellLevel
	} else {
		spell, err := o.srdClient.GetSpell(ctx, cast.SpellID)
		if err != nil {
			return "", nil, errors.WrapWithCode(err, errors.CodeNotFound,
				fmt.Sprintf("spell %s not found", cast.SpellID))
		}
		spellLevel = spell.Level
		spellName = spell.Name
	}

	if spellLevel < 0 || spellLevel > spellslots.MaxSlotLevel {
		return "", nil, errors.InvalidArgumentf("spell level %d is out of range", spellLevel)
	}

	// Cantrips never consume a slot
	if spellLevel == 0 {
		if details == "" {
			details = fmt.Sprintf("cast %s (cantrip)", spellName)
		}
		return details, nil, nil
	}

	if combatant.Source.Kind != entities.CombatantKindCharacter {
		// Enemy slot pools aren't tracked
		if details == "" {
			details = fmt.Sprintf("cast %s (level %d)", spellName, spellLevel)
		}
		return details, nil, nil
	}

	if cast.SlotLevel < spellLevel {
		return "", nil, errors.InvalidArgumentf(
			"cannot cast a level %d spell with a level %d slot", spellLevel, cast.SlotLevel)
	}

	charOut, err := o.characterRepo.Get(ctx, characters.GetInput{ID: combatant.Source.CharacterID})
	if err != nil {
		return "", nil, err
	}
	character := charOut.Character

	if err := o.ensureSpellcasting(ctx, character); err != nil {
		return "", nil, err
	}

	updatedSlots, err := spellslots.Use(character.Spellcasting.SpellSlots, cast.SlotLevel)
	if err != nil {
		return "", nil, err
	}
	character.Spellcasting.SpellSlots = updatedSlots

	if _, err := o.characterRepo.Update(ctx, characters.UpdateInput{Character: character}); err != nil {
		return "", nil, err
	}

	if details == "" {
		details = fmt.Sprintf("cast %s (level %d slot)", spellName, cast.SlotLevel)
	}
	return details, &spentSlot{characterID: character.ID, level: cast.SlotLevel}, nil
}

// refundSlot compensates a spent slot when the combat write that followed
// it failed. Best effort: a conflicting concurrent write here just leaves
// the slot spent, which the player can restore manually.
func (o *orchestrator) refundSlot(ctx context.Context, spent *spentSlot) {
	charOut, err := o.characterRepo.Get(ctx, characters.GetInput{ID: spent.characterID})
	if err == nil && charOut.Character.Spellcasting != nil {
		restored, rerr := spellslots.Restore(charOut.Character.Spellcasting.SpellSlots, spent.level)
		if rerr == nil {
			charOut.Character.Spellcasting.SpellSlots = restored
			_, err = o.characterRepo.Update(ctx, characters.UpdateInput{Character: charOut.Character})
		}
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to refund spell slot after aborted action",
			"character_id", spent.characterID,
			"level", spent.level,
			"error", err)
	}
}

func (o *orchestrator) UseSpellSlot(ctx context.Context, input *UseSpellSlotInput) (*UseSpellSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	character, err := o.mutateSlots(ctx, input.UserID, input.CharacterID, func(slots entities.SpellSlots) (entities.SpellSlots, error) {
		return spellslots.Use(slots, input.Level)
	})
	if err != nil {
		return nil, err
	}

	return &UseSpellSlotOutput{Character: character}, nil
}

func (o *orchestrator) RestoreSpellSlot(ctx context.Context, input *RestoreSpellSlotInput) (*RestoreSpellSlotOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	character, err := o.mutateSlots(ctx, input.UserID, input.CharacterID, func(slots entities.SpellSlots) (entities.SpellSlots, error) {
		return spellslots.Restore(slots, input.Level)
	})
	if err != nil {
		return nil, err
	}

	return &RestoreSpellSlotOutput{Character: character}, nil
}

func (o *orchestrator) LongRest(ctx context.Context, input *LongRestInput) (*LongRestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	character, err := o.mutateSlots(ctx, input.UserID, input.CharacterID, func(slots entities.SpellSlots) (entities.SpellSlots, error) {
		return spellslots.RestoreAll(slots), nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "long rest taken", "character_id", input.CharacterID)

	return &LongRestOutput{Character: character}, nil
}

// ensureSpellcasting fills in a missing slot ledger. Characters imported
// without slot data get a level-1 pool derived from their class's SRD
// spellcasting table on first use; the next repository write persists it.
func (o *orchestrator) ensureSpellcasting(ctx context.Context, character *entities.Character) error {
	if character.Spellcasting != nil && len(character.Spellcasting.SpellSlots) > 0 {
		return nil
	}
	if character.ClassID == "" {
		return errors.FailedPreconditionf("%s has no spellcasting", character.Name)
	}

	casting, err := o.srdClient.GetClassSpellcasting(ctx, character.ClassID)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeFailedPrecondition,
			fmt.Sprintf("%s has no spellcasting", character.Name))
	}
	// nil casting means the class is not a caster
	if casting == nil || casting.SpellSlotsLevel1 <= 0 {
		return errors.FailedPreconditionf("%s has no spellcasting", character.Name)
	}

	if character.Spellcasting == nil {
		character.Spellcasting = &entities.SpellcastingInfo{}
	}
	character.Spellcasting.SpellSlots = entities.SpellSlots{
		1: {Used: 0, Max: casting.SpellSlotsLevel1},
	}

	slog.InfoContext(ctx, "derived spell slots from class data",
		"character_id", character.ID,
		"class_id", character.ClassID,
		"level1_slots", casting.SpellSlotsLevel1)

	return nil
}

// mutateSlots loads a character, authorizes the caller, applies a ledger
// operation, and persists under the character's version guard.
func (o *orchestrator) mutateSlots(
	ctx context.Context,
	userID, characterID string,
	mutate func(entities.SpellSlots) (entities.SpellSlots, error),
) (*entities.Character, error) {
	if characterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	charOut, err := o.characterRepo.Get(ctx, characters.GetInput{ID: characterID})
	if err != nil {
		return nil, err
	}
	character := charOut.Character

	if err := o.authorizer.CanEditCharacter(ctx, userID, character); err != nil {
		return nil, err
	}

	if err := o.ensureSpellcasting(ctx, character); err != nil {
		return nil, err
	}

	updatedSlots, err := mutate(character.Spellcasting.SpellSlots)
	if err != nil {
		return nil, err
	}
	character.Spellcasting.SpellSlots = updatedSlots

	updateOut, err := o.characterRepo.Update(ctx, characters.UpdateInput{Character: character})
	if err != nil {
		return nil, err
	}

	if character.SessionID != "" {
		o.broadcast(ctx, events.Event{
			Type:      events.EventTypeSpellSlotsUpdated,
			SessionID: character.SessionID,
			Data:      map[string]interface{}{"character_id": character.ID},
		})
	}

	return updateOut.Character, nil
}
