package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
	"github.com/mythweaver/mythweaver/internal/repositories/combat"
	"github.com/mythweaver/mythweaver/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    combat.Repository
	cleanup func()
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := combat.NewRedis(&combat.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestGetMissingReturnsNotFound() {
	_, err := s.repo.Get(s.ctx, combat.GetInput{SessionID: "nope"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	state := entities.NewCombatState("session_1")
	state.Combatants = append(state.Combatants, &entities.Combatant{
		ID:         "c1",
		Name:       "Thorin",
		CurrentHP:  30,
		MaxHP:      30,
		Initiative: 17,
		Economy:    entities.NewActionEconomy(),
	})

	saveOut, err := s.repo.Save(s.ctx, combat.SaveInput{State: state})
	s.Require().NoError(err)
	s.Equal(int64(1), saveOut.State.Version)

	getOut, err := s.repo.Get(s.ctx, combat.GetInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.Equal(int64(1), getOut.State.Version)
	s.Require().Len(getOut.State.Combatants, 1)
	s.Equal("Thorin", getOut.State.Combatants[0].Name)
	s.Equal(17, getOut.State.Combatants[0].Initiative)
}

func (s *RedisRepositoryTestSuite) TestSaveBumpsVersion() {
	state := entities.NewCombatState("session_1")

	first, err := s.repo.Save(s.ctx, combat.SaveInput{State: state})
	s.Require().NoError(err)
	s.Equal(int64(1), first.State.Version)

	first.State.Round = 2
	second, err := s.repo.Save(s.ctx, combat.SaveInput{State: first.State})
	s.Require().NoError(err)
	s.Equal(int64(2), second.State.Version)
}

func (s *RedisRepositoryTestSuite) TestSaveStaleVersionAborts() {
	state := entities.NewCombatState("session_1")

	saved, err := s.repo.Save(s.ctx, combat.SaveInput{State: state})
	s.Require().NoError(err)

	// two readers load version 1
	readerA, err := s.repo.Get(s.ctx, combat.GetInput{SessionID: "session_1"})
	s.Require().NoError(err)
	readerB, err := s.repo.Get(s.ctx, combat.GetInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.Equal(saved.State.Version, readerA.State.Version)

	// first writer wins
	readerA.State.Round = 1
	_, err = s.repo.Save(s.ctx, combat.SaveInput{State: readerA.State})
	s.Require().NoError(err)

	// second writer holds a stale version and is rejected
	readerB.State.Round = 99
	_, err = s.repo.Save(s.ctx, combat.SaveInput{State: readerB.State})
	s.Require().Error(err)
	s.True(errors.IsAborted(err))

	getOut, err := s.repo.Get(s.ctx, combat.GetInput{SessionID: "session_1"})
	s.Require().NoError(err)
	s.Equal(1, getOut.State.Round)
}

func (s *RedisRepositoryTestSuite) TestSaveNewRecordRequiresVersionZero() {
	state := entities.NewCombatState("session_1")
	state.Version = 5

	_, err := s.repo.Save(s.ctx, combat.SaveInput{State: state})
	s.Require().Error(err)
	s.True(errors.IsAborted(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	state := entities.NewCombatState("session_1")
	_, err := s.repo.Save(s.ctx, combat.SaveInput{State: state})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, combat.DeleteInput{SessionID: "session_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, combat.GetInput{SessionID: "session_1"})
	s.True(errors.IsNotFound(err))
}
