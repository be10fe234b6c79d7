package actions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/rules/actions"
)

type CatalogTestSuite struct {
	suite.Suite
	now time.Time
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupTest() {
	s.now = time.Date(2025, 3, 15, 19, 30, 0, 0, time.UTC)
}

func (s *CatalogTestSuite) TestLookup() {
	action, ok := actions.Lookup("attack")
	s.True(ok)
	s.Equal("attack", action.ID)
	s.Equal("Attack", action.Name)
	s.Equal(entities.ActionCategoryAction, action.Category)

	_, ok = actions.Lookup("fireball_dance")
	s.False(ok)
}

func (s *CatalogTestSuite) TestByCategoryCoversAllCategories() {
	byCategory := actions.ByCategory()

	s.NotEmpty(byCategory[entities.ActionCategoryAction])
	s.NotEmpty(byCategory[entities.ActionCategoryBonusAction])
	s.NotEmpty(byCategory[entities.ActionCategoryReaction])
	s.NotEmpty(byCategory[entities.ActionCategoryMovement])
	s.NotEmpty(byCategory[entities.ActionCategoryFree])

	total := 0
	for _, group := range byCategory {
		total += len(group)
	}
	s.Len(actions.All(), total)
}

func (s *CatalogTestSuite) TestIsAvailable() {
	economy := entities.NewActionEconomy()

	s.True(actions.IsAvailable(entities.ActionCategoryAction, economy))
	s.True(actions.IsAvailable(entities.ActionCategoryBonusAction, economy))
	s.True(actions.IsAvailable(entities.ActionCategoryReaction, economy))
	s.True(actions.IsAvailable(entities.ActionCategoryMovement, economy))
	s.True(actions.IsAvailable(entities.ActionCategoryFree, economy))

	economy.UsedAction = true
	s.False(actions.IsAvailable(entities.ActionCategoryAction, economy))
	s.True(actions.IsAvailable(entities.ActionCategoryBonusAction, economy))
}

func (s *CatalogTestSuite) TestConsumeSetsFlagAndLogs() {
	attack, _ := actions.Lookup("attack")
	economy := entities.NewActionEconomy()

	updated := actions.Consume(economy, attack, s.now, "swung at the goblin")

	s.True(updated.UsedAction)
	s.Require().Len(updated.ActionsTaken, 1)
	s.Equal("attack", updated.ActionsTaken[0].ActionID)
	s.Equal(s.now, updated.ActionsTaken[0].Timestamp)
	s.Equal("swung at the goblin", updated.ActionsTaken[0].Details)

	// input untouched
	s.False(economy.UsedAction)
	s.Empty(economy.ActionsTaken)
}

func (s *CatalogTestSuite) TestConsumeIsIdempotentOnFlag() {
	attack, _ := actions.Lookup("attack")
	economy := entities.NewActionEconomy()

	once := actions.Consume(economy, attack, s.now, "")
	twice := actions.Consume(once, attack, s.now.Add(time.Minute), "")

	s.True(twice.UsedAction)
	// the log still records both
	s.Len(twice.ActionsTaken, 2)
}

func (s *CatalogTestSuite) TestFreeActionConsumesNothing() {
	speak, ok := actions.Lookup("speak")
	s.Require().True(ok)

	economy := entities.NewActionEconomy()
	updated := actions.Consume(economy, speak, s.now, "shouted a warning")

	s.False(updated.UsedAction)
	s.False(updated.UsedBonusAction)
	s.False(updated.UsedReaction)
	s.False(updated.UsedMovement)
	s.Len(updated.ActionsTaken, 1)

	// free actions stay available no matter how many were taken
	s.True(actions.IsAvailable(entities.ActionCategoryFree, updated))
}

func (s *CatalogTestSuite) TestCategoriesAreIndependent() {
	economy := entities.NewActionEconomy()

	attack, _ := actions.Lookup("attack")
	offhand, _ := actions.Lookup("offhand_attack")
	move, _ := actions.Lookup("move")

	economy = actions.Consume(economy, attack, s.now, "")
	economy = actions.Consume(economy, offhand, s.now, "")
	economy = actions.Consume(economy, move, s.now, "")

	s.True(economy.UsedAction)
	s.True(economy.UsedBonusAction)
	s.True(economy.UsedMovement)
	s.False(economy.UsedReaction)
	s.Len(economy.ActionsTaken, 3)
}
