// Package auth resolves a user's role within a game session and gates
// combat mutations: the GM may touch anything in their session, a player
// only what their own characters own.
package auth

//go:generate mockgen -destination=mock/mock_authorizer.go -package=authmock github.com/mythweaver/mythweaver/internal/services/auth Authorizer

import (
	"context"

	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
	"github.com/mythweaver/mythweaver/internal/repositories/characters"
	"github.com/mythweaver/mythweaver/internal/repositories/sessions"
)

// Role is a user's role within a session
type Role string

// Roles
const (
	RoleGM     Role = "gm"
	RolePlayer Role = "player"
)

// Authorizer resolves roles and checks mutation permissions
type Authorizer interface {
	// RoleFor returns the user's role in the session
	RoleFor(ctx context.Context, sessionID, userID string) (Role, error)

	// RequireGM fails with PermissionDenied unless the user runs the session
	RequireGM(ctx context.Context, sessionID, userID string) error

	// CanEditCombatant fails with PermissionDenied unless the user is the
	// GM or owns the character the combatant was created from. Enemy
	// combatants are GM-only.
	CanEditCombatant(ctx context.Context, sessionID, userID string, combatant *entities.Combatant) error

	// CanEditCharacter fails with PermissionDenied unless the user is the
	// GM of the character's session or the character's owning player
	CanEditCharacter(ctx context.Context, userID string, character *entities.Character) error
}

// Config holds the dependencies for the authorizer
type Config struct {
	SessionRepo   sessions.Repository
	CharacterRepo characters.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}

	return vb.Build()
}

type authorizer struct {
	sessionRepo   sessions.Repository
	characterRepo characters.Repository
}

// New creates a new authorizer with the provided dependencies
func New(cfg *Config) (Authorizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &authorizer{
		sessionRepo:   cfg.SessionRepo,
		characterRepo: cfg.CharacterRepo,
	}, nil
}

func (a *authorizer) RoleFor(ctx context.Context, sessionID, userID string) (Role, error) {
	if userID == "" {
		return "", errors.Unauthenticated("user identity is required")
	}

	out, err := a.sessionRepo.Get(ctx, sessions.GetInput{ID: sessionID})
	if err != nil {
		return "", err
	}

	if out.Session.GMUserID == userID {
		return RoleGM, nil
	}
	return RolePlayer, nil
}

func (a *authorizer) RequireGM(ctx context.Context, sessionID, userID string) error {
	role, err := a.RoleFor(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if role != RoleGM {
		return errors.PermissionDenied("only the GM may perform this operation")
	}
	return nil
}

func (a *authorizer) CanEditCombatant(
	ctx context.Context,
	sessionID, userID string,
	combatant *entities.Combatant,
) error {
	role, err := a.RoleFor(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if role == RoleGM {
		return nil
	}

	if combatant.Source.Kind != entities.CombatantKindCharacter {
		return errors.PermissionDenied("only the GM may control enemy combatants")
	}

	charOut, err := a.characterRepo.Get(ctx, characters.GetInput{ID: combatant.Source.CharacterID})
	if err != nil {
		return err
	}
	if charOut.Character.PlayerID != userID {
		return errors.PermissionDeniedf("combatant %s belongs to another player", combatant.ID)
	}
	return nil
}

func (a *authorizer) CanEditCharacter(ctx context.Context, userID string, character *entities.Character) error {
	if userID == "" {
		return errors.Unauthenticated("user identity is required")
	}
	if character.PlayerID == userID {
		return nil
	}

	if character.SessionID != "" {
		sessOut, err := a.sessionRepo.Get(ctx, sessions.GetInput{ID: character.SessionID})
		if err == nil && sessOut.Session.GMUserID == userID {
			return nil
		}
	}

	return errors.PermissionDeniedf("character %s belongs to another player", character.ID)
}
