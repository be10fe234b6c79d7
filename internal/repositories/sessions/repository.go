// Package sessions provides the interface for game session persistence
package sessions

import (
	"context"

	"github.com/mythweaver/mythweaver/internal/entities"
)

// Repository defines the interface for game session persistence. The
// combat engine only needs to know who runs a session; full session
// management lives in the campaign manager.
type Repository interface {
	// Create creates a new session record
	// Returns errors.AlreadyExists if a session with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a session by ID
	// Returns errors.NotFound if the session doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
}

// CreateInput defines the input for creating a session
type CreateInput struct {
	Session *entities.GameSession
}

// CreateOutput defines the output for creating a session
type CreateOutput struct {
	Session *entities.GameSession
}

// GetInput defines the input for getting a session
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a session
type GetOutput struct {
	Session *entities.GameSession
}
