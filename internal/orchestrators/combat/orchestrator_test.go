package combat_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mythweaver/mythweaver/internal/clients/srd"
	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
	"github.com/mythweaver/mythweaver/internal/orchestrators/combat"
	"github.com/mythweaver/mythweaver/internal/pkg/clock"
	"github.com/mythweaver/mythweaver/internal/pkg/idgen"
	"github.com/mythweaver/mythweaver/internal/repositories/characters"
	combatrepo "github.com/mythweaver/mythweaver/internal/repositories/combat"
	"github.com/mythweaver/mythweaver/internal/repositories/sessions"
	"github.com/mythweaver/mythweaver/internal/repositories/templates"
	"github.com/mythweaver/mythweaver/internal/rules/actions"
	"github.com/mythweaver/mythweaver/internal/services/auth"
	"github.com/mythweaver/mythweaver/internal/services/events"
	"github.com/mythweaver/mythweaver/internal/testutils"
)

const (
	sessionID = "session_1"
	gmID      = "user_gm"
	playerID  = "user_player"
	otherID   = "user_other"
)

// fakeSRDClient serves fixed spell and class tables without network access
type fakeSRDClient struct {
	spells  map[string]*srd.Spell
	classes map[string]*srd.ClassSpellcasting
}

func (f *fakeSRDClient) GetSpell(_ context.Context, spellID string) (*srd.Spell, error) {
	spell, ok := f.spells[spellID]
	if !ok {
		return nil, errors.NotFoundf("spell %s not found", spellID)
	}
	return spell, nil
}

func (f *fakeSRDClient) GetClassSpellcasting(_ context.Context, classID string) (*srd.ClassSpellcasting, error) {
	casting, ok := f.classes[classID]
	if !ok {
		return nil, errors.NotFoundf("class %s not found", classID)
	}
	return casting, nil
}

// recordingBroadcaster captures published events for assertions
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBroadcaster) Publish(_ context.Context, event events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBroadcaster) published(eventType events.EventType) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.events {
		if e.Type == eventType {
			return true
		}
	}
	return false
}

type OrchestratorTestSuite struct {
	suite.Suite
	service       combat.Service
	characterRepo characters.Repository
	broadcaster   *recordingBroadcaster
	cleanup       func()
	ctx           context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	combatRepo, err := combatrepo.NewRedis(&combatrepo.RedisConfig{Client: client})
	s.Require().NoError(err)
	characterRepo, err := characters.NewRedis(&characters.RedisConfig{Client: client})
	s.Require().NoError(err)
	templateRepo, err := templates.NewRedis(&templates.RedisConfig{Client: client})
	s.Require().NoError(err)
	sessionRepo, err := sessions.NewRedis(&sessions.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.characterRepo = characterRepo

	_, err = sessionRepo.Create(s.ctx, sessions.CreateInput{Session: &entities.GameSession{
		ID:       sessionID,
		Name:     "Curse of Strahd",
		GMUserID: gmID,
	}})
	s.Require().NoError(err)

	_, err = characterRepo.Create(s.ctx, characters.CreateInput{Character: &entities.Character{
		ID:         "char_wizard",
		SessionID:  sessionID,
		PlayerID:   playerID,
		Name:       "Elara",
		ClassID:    "wizard",
		Level:      3,
		MaxHP:      17,
		ArmorClass: 12,
		Abilities:  entities.AbilityScores{Dexterity: 14},
		Spellcasting: &entities.SpellcastingInfo{
			Ability: "int",
			SpellSlots: entities.SpellSlots{
				1: {Used: 0, Max: 2},
				2: {Used: 0, Max: 1},
			},
		},
	}})
	s.Require().NoError(err)

	// imported without slot data; the class table supplies the pool
	_, err = characterRepo.Create(s.ctx, characters.CreateInput{Character: &entities.Character{
		ID:         "char_sorcerer",
		SessionID:  sessionID,
		PlayerID:   playerID,
		Name:       "Kael",
		ClassID:    "sorcerer",
		Level:      1,
		MaxHP:      9,
		ArmorClass: 13,
		Abilities:  entities.AbilityScores{Dexterity: 12},
	}})
	s.Require().NoError(err)

	_, err = characterRepo.Create(s.ctx, characters.CreateInput{Character: &entities.Character{
		ID:        "char_fighter",
		SessionID: sessionID,
		PlayerID:  playerID,
		Name:      "Brak",
		ClassID:   "fighter",
		Level:     2,
		MaxHP:     20,
	}})
	s.Require().NoError(err)

	_, err = templateRepo.Create(s.ctx, templates.CreateInput{Template: &entities.EnemyTemplate{
		ID:         "tmpl_goblin",
		SessionID:  sessionID,
		Name:       "Goblin",
		MaxHP:      7,
		ArmorClass: 15,
		Abilities:  entities.AbilityScores{Dexterity: 14},
	}})
	s.Require().NoError(err)

	authorizer, err := auth.New(&auth.Config{
		SessionRepo:   sessionRepo,
		CharacterRepo: characterRepo,
	})
	s.Require().NoError(err)

	s.broadcaster = &recordingBroadcaster{}

	s.service, err = combat.NewOrchestrator(&combat.Config{
		CombatRepo:    combatRepo,
		CharacterRepo: characterRepo,
		TemplateRepo:  templateRepo,
		Authorizer:    authorizer,
		Broadcaster:   s.broadcaster,
		SRDClient: &fakeSRDClient{
			spells: map[string]*srd.Spell{
				"magic-missile": {ID: "magic-missile", Name: "Magic Missile", Level: 1},
				"fire-bolt":     {ID: "fire-bolt", Name: "Fire Bolt", Level: 0},
			},
			classes: map[string]*srd.ClassSpellcasting{
				"sorcerer": {CantripsKnown: 4, SpellsKnown: 2, SpellSlotsLevel1: 2},
			},
		},
		IDGenerator: idgen.NewSequential("cbt"),
		Clock:       clock.NewFixed(time.Date(2025, 3, 15, 19, 30, 0, 0, time.UTC)),
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

func intPtr(v int) *int { return &v }

// addParty inserts the wizard and a goblin with fixed initiatives and
// returns the wizard's and goblin's combatant IDs.
func (s *OrchestratorTestSuite) addParty(wizardInit, goblinInit int) (string, string) {
	out, err := s.service.AddCombatants(s.ctx, &combat.AddCombatantsInput{
		SessionID: sessionID,
		UserID:    gmID,
		Selections: []combat.CombatantSelection{
			{CharacterID: "char_wizard", Initiative: intPtr(wizardInit)},
			{TemplateID: "tmpl_goblin", Initiative: intPtr(goblinInit)},
		},
	})
	s.Require().NoError(err)
	s.Require().Len(out.Added, 2)
	return out.Added[0].ID, out.Added[1].ID
}

func (s *OrchestratorTestSuite) startCombat() *entities.CombatState {
	out, err := s.service.StartCombat(s.ctx, &combat.StartCombatInput{SessionID: sessionID, UserID: gmID})
	s.Require().NoError(err)
	return out.State
}

func (s *OrchestratorTestSuite) TestGetCombatEmptySession() {
	out, err := s.service.GetCombat(s.ctx, &combat.GetCombatInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.False(out.State.Active)
	s.Empty(out.State.Combatants)
}

func (s *OrchestratorTestSuite) TestAddCombatantsSnapshotsStats() {
	wizardID, goblinID := s.addParty(15, 10)

	out, err := s.service.GetCombat(s.ctx, &combat.GetCombatInput{SessionID: sessionID})
	s.Require().NoError(err)

	wizard := out.State.Combatant(wizardID)
	s.Require().NotNil(wizard)
	s.Equal("Elara", wizard.Name)
	s.Equal(17, wizard.CurrentHP)
	s.Equal(17, wizard.MaxHP)
	s.Equal(entities.CombatantKindCharacter, wizard.Source.Kind)
	s.True(wizard.ShowHPToPlayers)

	goblin := out.State.Combatant(goblinID)
	s.Require().NotNil(goblin)
	s.Equal(7, goblin.MaxHP)
	s.Equal(entities.CombatantKindEnemy, goblin.Source.Kind)
	s.False(goblin.ShowHPToPlayers)

	s.True(s.broadcaster.published(events.EventTypeCombatantAdded))
}

func (s *OrchestratorTestSuite) TestAddCombatantsRollsMissingInitiative() {
	out, err := s.service.AddCombatants(s.ctx, &combat.AddCombatantsInput{
		SessionID:  sessionID,
		UserID:     gmID,
		Selections: []combat.CombatantSelection{{TemplateID: "tmpl_goblin"}},
	})
	s.Require().NoError(err)

	// d20 + dex modifier (+2)
	s.GreaterOrEqual(out.Added[0].Initiative, 3)
	s.LessOrEqual(out.Added[0].Initiative, 22)
}

func (s *OrchestratorTestSuite) TestAddEnemyRequiresGM() {
	_, err := s.service.AddCombatants(s.ctx, &combat.AddCombatantsInput{
		SessionID:  sessionID,
		UserID:     playerID,
		Selections: []combat.CombatantSelection{{TemplateID: "tmpl_goblin"}},
	})
	s.Require().Error(err)
	s.True(errors.IsPermissionDenied(err))
}

func (s *OrchestratorTestSuite) TestPlayerAddsOwnCharacter() {
	out, err := s.service.AddCombatants(s.ctx, &combat.AddCombatantsInput{
		SessionID:  sessionID,
		UserID:     playerID,
		Selections: []combat.CombatantSelection{{CharacterID: "char_wizard", Initiative: intPtr(15)}},
	})
	s.Require().NoError(err)
	s.Len(out.Added, 1)
}

func (s *OrchestratorTestSuite) TestAddCombatantsRejectsAmbiguousSelection() {
	_, err := s.service.AddCombatants(s.ctx, &combat.AddCombatantsInput{
		SessionID:  sessionID,
		UserID:     gmID,
		Selections: []combat.CombatantSelection{{CharacterID: "char_wizard", TemplateID: "tmpl_goblin"}},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestAddCombatantsBatchIsAllOrNothing() {
	_, err := s.service.AddCombatants(s.ctx, &combat.AddCombatantsInput{
		SessionID: sessionID,
		UserID:    gmID,
		Selections: []combat.CombatantSelection{
			{TemplateID: "tmpl_goblin"},
			{TemplateID: "tmpl_ghost"},
		},
	})
	s.Require().Error(err)

	out, err := s.service.GetCombat(s.ctx, &combat.GetCombatInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.Empty(out.State.Combatants)
}

func (s *OrchestratorTestSuite) TestStartCombat() {
	wizardID, _ := s.addParty(18, 7)

	state := s.startCombat()
	s.True(state.Active)
	s.Equal(1, state.Round)
	s.Equal(wizardID, state.CurrentTurnID)
	s.True(s.broadcaster.published(events.EventTypeCombatStarted))
}

func (s *OrchestratorTestSuite) TestStartCombatRequiresGM() {
	s.addParty(18, 7)

	_, err := s.service.StartCombat(s.ctx, &combat.StartCombatInput{SessionID: sessionID, UserID: playerID})
	s.Require().Error(err)
	s.True(errors.IsPermissionDenied(err))
}

func (s *OrchestratorTestSuite) TestStartCombatWithoutCombatants() {
	_, err := s.service.StartCombat(s.ctx, &combat.StartCombatInput{SessionID: sessionID, UserID: gmID})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestStartCombatTwiceFails() {
	s.addParty(18, 7)
	s.startCombat()

	_, err := s.service.StartCombat(s.ctx, &combat.StartCombatInput{SessionID: sessionID, UserID: gmID})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestAdvanceTurnCyclesAndIncrementsRound() {
	wizardID, goblinID := s.addParty(18, 7)
	s.startCombat()

	out, err := s.service.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{SessionID: sessionID, UserID: gmID})
	s.Require().NoError(err)
	s.Equal(goblinID, out.State.CurrentTurnID)
	s.Equal(1, out.State.Round)

	// wrapping back to the top starts round 2
	out, err = s.service.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{SessionID: sessionID, UserID: gmID})
	s.Require().NoError(err)
	s.Equal(wizardID, out.State.CurrentTurnID)
	s.Equal(2, out.State.Round)
	s.True(s.broadcaster.published(events.EventTypeTurnAdvanced))
}

func (s *OrchestratorTestSuite) TestAdvanceTurnResetsIncomingEconomy() {
	wizardID, _ := s.addParty(18, 7)
	s.startCombat()

	// wizard spends their action
	_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		ActionID:    "attack",
	})
	s.Require().NoError(err)

	// goblin's turn, then wrap back to the wizard
	_, err = s.service.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{SessionID: sessionID, UserID: gmID})
	s.Require().NoError(err)
	out, err := s.service.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{SessionID: sessionID, UserID: gmID})
	s.Require().NoError(err)

	wizard := out.State.Combatant(wizardID)
	s.False(wizard.Economy.UsedAction)
	s.Empty(wizard.Economy.ActionsTaken)
}

func (s *OrchestratorTestSuite) TestCurrentPlayerMayEndOwnTurn() {
	s.addParty(18, 7)
	s.startCombat()

	// the wizard holds the current turn
	_, err := s.service.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{SessionID: sessionID, UserID: playerID})
	s.Require().NoError(err)

	// but not the goblin's turn
	_, err = s.service.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{SessionID: sessionID, UserID: playerID})
	s.Require().Error(err)
	s.True(errors.IsPermissionDenied(err))
}

func (s *OrchestratorTestSuite) TestTakeActionSpendsCategory() {
	wizardID, _ := s.addParty(18, 7)
	s.startCombat()

	out, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		ActionID:    "attack",
		Details:     "staff strike",
	})
	s.Require().NoError(err)

	s.True(out.Combatant.Economy.UsedAction)
	s.Require().Len(out.Combatant.Economy.ActionsTaken, 1)
	s.Equal("attack", out.Combatant.Economy.ActionsTaken[0].ActionID)
	s.Equal("staff strike", out.Combatant.Economy.ActionsTaken[0].Details)
	s.True(s.broadcaster.published(events.EventTypeActionTaken))
}

func (s *OrchestratorTestSuite) TestTakeActionTwiceExhausted() {
	wizardID, _ := s.addParty(18, 7)
	s.startCombat()

	input := &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		ActionID:    "attack",
	}
	_, err := s.service.TakeTurnAction(s.ctx, input)
	s.Require().NoError(err)

	_, err = s.service.TakeTurnAction(s.ctx, input)
	s.Require().Error(err)
	s.True(errors.IsResourceExhausted(err))
}

func (s *OrchestratorTestSuite) TestTakeActionOffTurnRejected() {
	_, goblinID := s.addParty(18, 7)
	s.startCombat()

	// it is the wizard's turn, the goblin cannot act
	_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      gmID,
		CombatantID: goblinID,
		ActionID:    "attack",
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestReactionAllowedOffTurn() {
	_, goblinID := s.addParty(18, 7)
	s.startCombat()

	out, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      gmID,
		CombatantID: goblinID,
		ActionID:    "opportunity_attack",
	})
	s.Require().NoError(err)
	s.True(out.Combatant.Economy.UsedReaction)
}

func (s *OrchestratorTestSuite) TestPlayerCannotActForEnemy() {
	_, goblinID := s.addParty(7, 18)
	s.startCombat()

	_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: goblinID,
		ActionID:    "attack",
	})
	s.Require().Error(err)
	s.True(errors.IsPermissionDenied(err))
}

func (s *OrchestratorTestSuite) TestCastSpellSpendsSlot() {
	wizardID, _ := s.addParty(18, 7)
	s.startCombat()

	out, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		ActionID:    "cast_spell",
		SpellCast: &combat.SpellCastSelection{
			SpellID:   "magic-missile",
			SlotLevel: 1,
		},
	})
	s.Require().NoError(err)
	s.True(out.Combatant.Economy.UsedAction)

	got, err := s.characterRepo.Get(s.ctx, characters.GetInput{ID: "char_wizard"})
	s.Require().NoError(err)
	s.Equal(1, got.Character.Spellcasting.SpellSlots[1].Used)
	s.True(s.broadcaster.published(events.EventTypeSpellSlotsUpdated))
}

func (s *OrchestratorTestSuite) TestCastSpellUpcast() {
	wizardID, _ := s.addParty(18, 7)
	s.startCombat()

	_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		ActionID:    "cast_spell",
		SpellCast: &combat.SpellCastSelection{
			SpellID:   "magic-missile",
			SlotLevel: 2,
		},
	})
	s.Require().NoError(err)

	got, err := s.characterRepo.Get(s.ctx, characters.GetInput{ID: "char_wizard"})
	s.Require().NoError(err)
	s.Equal(0, got.Character.Spellcasting.SpellSlots[1].Used)
	s.Equal(1, got.Character.Spellcasting.SpellSlots[2].Used)
}

func (s *OrchestratorTestSuite) TestCastCantripSpendsNoSlot() {
	wizardID, _ := s.addParty(18, 7)
	s.startCombat()

	_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		ActionID:    "cast_spell",
		SpellCast:   &combat.SpellCastSelection{SpellID: "fire-bolt"},
	})
	s.Require().NoError(err)

	got, err := s.characterRepo.Get(s.ctx, characters.GetInput{ID: "char_wizard"})
	s.Require().NoError(err)
	s.Equal(0, got.Character.Spellcasting.SpellSlots[1].Used)
}

func (s *OrchestratorTestSuite) TestEnemyCastSkipsSlotLedger() {
	_, goblinID := s.addParty(7, 18)
	s.startCombat()

	// no slot level needed; enemy resources are narrated, not tracked
	_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      gmID,
		CombatantID: goblinID,
		ActionID:    "cast_spell",
		SpellCast:   &combat.SpellCastSelection{SpellID: "magic-missile"},
	})
	s.Require().NoError(err)

	got, err := s.characterRepo.Get(s.ctx, characters.GetInput{ID: "char_wizard"})
	s.Require().NoError(err)
	s.Equal(0, got.Character.Spellcasting.SpellSlots[1].Used)
}

func (s *OrchestratorTestSuite) TestCastSpellSlotTooLow() {
	wizardID, _ := s.addParty(18, 7)
	s.startCombat()

	// a level 1 slot cannot hold a level 2 spell
	_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		ActionID:    "cast_spell",
		SpellCast: &combat.SpellCastSelection{
			SpellID:    "magic-missile",
			SpellLevel: intPtr(2),
			SlotLevel:  1,
		},
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCastSpellExhaustsSlotsWithoutSpendingAction() {
	wizardID, _ := s.addParty(18, 7)
	s.startCombat()

	// burn both level 1 slots over two rounds
	for i := 0; i < 2; i++ {
		_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
			SessionID:   sessionID,
			UserID:      playerID,
			CombatantID: wizardID,
			ActionID:    "cast_spell",
			SpellCast:   &combat.SpellCastSelection{SpellID: "magic-missile", SlotLevel: 1},
		})
		s.Require().NoError(err)

		// advance through the goblin and back
		_, err = s.service.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{SessionID: sessionID, UserID: gmID})
		s.Require().NoError(err)
		_, err = s.service.AdvanceTurn(s.ctx, &combat.AdvanceTurnInput{SessionID: sessionID, UserID: gmID})
		s.Require().NoError(err)
	}

	// third cast fails before the action is spent
	_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		ActionID:    "cast_spell",
		SpellCast:   &combat.SpellCastSelection{SpellID: "magic-missile", SlotLevel: 1},
	})
	s.Require().Error(err)
	s.True(errors.IsResourceExhausted(err))

	out, err := s.service.GetCombat(s.ctx, &combat.GetCombatInput{SessionID: sessionID})
	s.Require().NoError(err)
	s.False(out.State.Combatant(wizardID).Economy.UsedAction)
}

func (s *OrchestratorTestSuite) TestUpdateCombatantHPClamps() {
	wizardID, _ := s.addParty(18, 7)

	out, err := s.service.UpdateCombatant(s.ctx, &combat.UpdateCombatantInput{
		SessionID:   sessionID,
		UserID:      gmID,
		CombatantID: wizardID,
		Update:      combat.CombatantUpdate{HPDelta: intPtr(-50)},
	})
	s.Require().NoError(err)
	s.Equal(0, out.State.Combatant(wizardID).CurrentHP)

	// still on the board at 0 HP
	s.NotNil(out.State.Combatant(wizardID))

	out, err = s.service.UpdateCombatant(s.ctx, &combat.UpdateCombatantInput{
		SessionID:   sessionID,
		UserID:      gmID,
		CombatantID: wizardID,
		Update:      combat.CombatantUpdate{HPDelta: intPtr(+100)},
	})
	s.Require().NoError(err)
	s.Equal(17, out.State.Combatant(wizardID).CurrentHP)
}

func (s *OrchestratorTestSuite) TestUpdateCombatantFlagsAreGMOnly() {
	wizardID, _ := s.addParty(18, 7)

	_, err := s.service.UpdateCombatant(s.ctx, &combat.UpdateCombatantInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		Update:      combat.CombatantUpdate{Initiative: intPtr(25)},
	})
	s.Require().Error(err)
	s.True(errors.IsPermissionDenied(err))

	// but the player can damage their own character
	_, err = s.service.UpdateCombatant(s.ctx, &combat.UpdateCombatantInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		Update:      combat.CombatantUpdate{HPDelta: intPtr(-3)},
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TestRemoveCurrentCombatantAdvances() {
	wizardID, goblinID := s.addParty(18, 7)
	s.startCombat()

	out, err := s.service.RemoveCombatant(s.ctx, &combat.RemoveCombatantInput{
		SessionID:   sessionID,
		UserID:      gmID,
		CombatantID: wizardID,
	})
	s.Require().NoError(err)

	s.Nil(out.State.Combatant(wizardID))
	s.Equal(goblinID, out.State.CurrentTurnID)
	// removal never changes the round
	s.Equal(1, out.State.Round)
}

func (s *OrchestratorTestSuite) TestRemoveLastCombatantDeactivates() {
	out, err := s.service.AddCombatants(s.ctx, &combat.AddCombatantsInput{
		SessionID:  sessionID,
		UserID:     gmID,
		Selections: []combat.CombatantSelection{{TemplateID: "tmpl_goblin", Initiative: intPtr(10)}},
	})
	s.Require().NoError(err)
	s.startCombat()

	removed, err := s.service.RemoveCombatant(s.ctx, &combat.RemoveCombatantInput{
		SessionID:   sessionID,
		UserID:      gmID,
		CombatantID: out.Added[0].ID,
	})
	s.Require().NoError(err)
	s.False(removed.State.Active)
	s.Empty(removed.State.Combatants)
}

func (s *OrchestratorTestSuite) TestRemoveCombatantRequiresGM() {
	wizardID, _ := s.addParty(18, 7)

	_, err := s.service.RemoveCombatant(s.ctx, &combat.RemoveCombatantInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
	})
	s.Require().Error(err)
	s.True(errors.IsPermissionDenied(err))
}

func (s *OrchestratorTestSuite) TestEndCombatClearsBoard() {
	s.addParty(18, 7)
	s.startCombat()

	out, err := s.service.EndCombat(s.ctx, &combat.EndCombatInput{SessionID: sessionID, UserID: gmID})
	s.Require().NoError(err)
	s.False(out.State.Active)
	s.Equal(0, out.State.Round)
	s.Empty(out.State.Combatants)
	s.True(s.broadcaster.published(events.EventTypeCombatEnded))
}

func (s *OrchestratorTestSuite) TestSpellSlotsSurviveCombat() {
	wizardID, _ := s.addParty(18, 7)
	s.startCombat()

	_, err := s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: wizardID,
		ActionID:    "cast_spell",
		SpellCast:   &combat.SpellCastSelection{SpellID: "magic-missile", SlotLevel: 1},
	})
	s.Require().NoError(err)

	_, err = s.service.EndCombat(s.ctx, &combat.EndCombatInput{SessionID: sessionID, UserID: gmID})
	s.Require().NoError(err)

	// slots are character state, not combat state
	got, err := s.characterRepo.Get(s.ctx, characters.GetInput{ID: "char_wizard"})
	s.Require().NoError(err)
	s.Equal(1, got.Character.Spellcasting.SpellSlots[1].Used)
}

func (s *OrchestratorTestSuite) TestListActions() {
	out, err := s.service.ListActions(s.ctx, &combat.ListActionsInput{})
	s.Require().NoError(err)
	s.Len(out.ActionsByCategory, 5)
	s.Equal(actions.ByCategory(), out.ActionsByCategory)
}

func (s *OrchestratorTestSuite) TestUseSpellSlot() {
	out, err := s.service.UseSpellSlot(s.ctx, &combat.UseSpellSlotInput{
		UserID:      playerID,
		CharacterID: "char_wizard",
		Level:       1,
	})
	s.Require().NoError(err)
	s.Equal(1, out.Character.Spellcasting.SpellSlots[1].Used)
}

func (s *OrchestratorTestSuite) TestUseSpellSlotExhausted() {
	_, err := s.service.UseSpellSlot(s.ctx, &combat.UseSpellSlotInput{
		UserID:      playerID,
		CharacterID: "char_wizard",
		Level:       2,
	})
	s.Require().NoError(err)

	_, err = s.service.UseSpellSlot(s.ctx, &combat.UseSpellSlotInput{
		UserID:      playerID,
		CharacterID: "char_wizard",
		Level:       2,
	})
	s.Require().Error(err)
	s.True(errors.IsResourceExhausted(err))
}

func (s *OrchestratorTestSuite) TestSpellSlotsRequireOwnership() {
	_, err := s.service.UseSpellSlot(s.ctx, &combat.UseSpellSlotInput{
		UserID:      otherID,
		CharacterID: "char_wizard",
		Level:       1,
	})
	s.Require().Error(err)
	s.True(errors.IsPermissionDenied(err))
}

func (s *OrchestratorTestSuite) TestUseSpellSlotDerivesPoolFromClass() {
	out, err := s.service.UseSpellSlot(s.ctx, &combat.UseSpellSlotInput{
		UserID:      playerID,
		CharacterID: "char_sorcerer",
		Level:       1,
	})
	s.Require().NoError(err)
	s.Equal(1, out.Character.Spellcasting.SpellSlots[1].Used)
	s.Equal(2, out.Character.Spellcasting.SpellSlots[1].Max)

	// the derived pool is persisted, not rebuilt per call
	got, err := s.characterRepo.Get(s.ctx, characters.GetInput{ID: "char_sorcerer"})
	s.Require().NoError(err)
	s.Require().NotNil(got.Character.Spellcasting)
	s.Equal(1, got.Character.Spellcasting.SpellSlots[1].Used)
	s.Equal(2, got.Character.Spellcasting.SpellSlots[1].Max)
}

func (s *OrchestratorTestSuite) TestCastSpellDerivesPoolFromClass() {
	out, err := s.service.AddCombatants(s.ctx, &combat.AddCombatantsInput{
		SessionID:  sessionID,
		UserID:     playerID,
		Selections: []combat.CombatantSelection{{CharacterID: "char_sorcerer", Initiative: intPtr(20)}},
	})
	s.Require().NoError(err)
	sorcererID := out.Added[0].ID
	s.startCombat()

	_, err = s.service.TakeTurnAction(s.ctx, &combat.TakeTurnActionInput{
		SessionID:   sessionID,
		UserID:      playerID,
		CombatantID: sorcererID,
		ActionID:    "cast_spell",
		SpellCast:   &combat.SpellCastSelection{SpellID: "magic-missile", SlotLevel: 1},
	})
	s.Require().NoError(err)

	got, err := s.characterRepo.Get(s.ctx, characters.GetInput{ID: "char_sorcerer"})
	s.Require().NoError(err)
	s.Equal(1, got.Character.Spellcasting.SpellSlots[1].Used)
	s.Equal(2, got.Character.Spellcasting.SpellSlots[1].Max)
}

func (s *OrchestratorTestSuite) TestUseSpellSlotNonCasterClass() {
	_, err := s.service.UseSpellSlot(s.ctx, &combat.UseSpellSlotInput{
		UserID:      playerID,
		CharacterID: "char_fighter",
		Level:       1,
	})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestRestoreSpellSlot() {
	_, err := s.service.UseSpellSlot(s.ctx, &combat.UseSpellSlotInput{
		UserID:      playerID,
		CharacterID: "char_wizard",
		Level:       1,
	})
	s.Require().NoError(err)

	out, err := s.service.RestoreSpellSlot(s.ctx, &combat.RestoreSpellSlotInput{
		UserID:      playerID,
		CharacterID: "char_wizard",
		Level:       1,
	})
	s.Require().NoError(err)
	s.Equal(0, out.Character.Spellcasting.SpellSlots[1].Used)
}

func (s *OrchestratorTestSuite) TestLongRestRestoresEverything() {
	for _, level := range []int{1, 1, 2} {
		_, err := s.service.UseSpellSlot(s.ctx, &combat.UseSpellSlotInput{
			UserID:      playerID,
			CharacterID: "char_wizard",
			Level:       level,
		})
		s.Require().NoError(err)
	}

	out, err := s.service.LongRest(s.ctx, &combat.LongRestInput{
		UserID:      playerID,
		CharacterID: "char_wizard",
	})
	s.Require().NoError(err)
	s.Equal(0, out.Character.Spellcasting.SpellSlots[1].Used)
	s.Equal(0, out.Character.Spellcasting.SpellSlots[2].Used)
}
