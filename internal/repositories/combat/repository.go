// Package combat provides the interface for combat state persistence
package combat

//go:generate mockgen -destination=mock/mock_repository.go -package=combatmock github.com/mythweaver/mythweaver/internal/repositories/combat Repository

import (
	"context"

	"github.com/mythweaver/mythweaver/internal/entities"
)

// Repository defines the interface for combat state persistence. One
// versioned record per session holds the combatant list and sequencer
// state; Save is a compare-and-swap on the record's Version, which
// serializes every combat mutation for a session.
type Repository interface {
	// Get retrieves the combat state for a session
	// Returns errors.NotFound if the session has never had combat state
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save persists the combat state. The state's Version must match the
	// stored version (0 for a record that doesn't exist yet); the write
	// bumps it by one.
	// Returns errors.Aborted if a concurrent writer got there first
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes the combat state for a session
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput defines the input for getting combat state
type GetInput struct {
	SessionID string
}

// GetOutput defines the output for getting combat state
type GetOutput struct {
	State *entities.CombatState
}

// SaveInput defines the input for saving combat state
type SaveInput struct {
	State *entities.CombatState
}

// SaveOutput defines the output for saving combat state
type SaveOutput struct {
	State *entities.CombatState
}

// DeleteInput defines the input for deleting combat state
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the output for deleting combat state
type DeleteOutput struct{}
