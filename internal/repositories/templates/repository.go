// Package templates provides the interface for enemy template persistence
package templates

//go:generate mockgen -destination=mock/mock_repository.go -package=templatesmock github.com/mythweaver/mythweaver/internal/repositories/templates Repository

import (
	"context"

	"github.com/mythweaver/mythweaver/internal/entities"
)

// Repository defines the interface for enemy template persistence.
// Templates are read-mostly: combat snapshots their stats at insertion, so
// they carry no version guard.
type Repository interface {
	// Create creates a new template
	// Returns errors.AlreadyExists if a template with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a template by ID
	// Returns errors.NotFound if the template doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete deletes a template by ID
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListBySessionID retrieves all templates belonging to a session
	ListBySessionID(ctx context.Context, input ListBySessionIDInput) (*ListBySessionIDOutput, error)
}

// CreateInput defines the input for creating a template
type CreateInput struct {
	Template *entities.EnemyTemplate
}

// CreateOutput defines the output for creating a template
type CreateOutput struct {
	Template *entities.EnemyTemplate
}

// GetInput defines the input for getting a template
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a template
type GetOutput struct {
	Template *entities.EnemyTemplate
}

// DeleteInput defines the input for deleting a template
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a template
type DeleteOutput struct{}

// ListBySessionIDInput defines the input for listing templates by session
type ListBySessionIDInput struct {
	SessionID string
}

// ListBySessionIDOutput defines the output for listing templates by session
type ListBySessionIDOutput struct {
	Templates []*entities.EnemyTemplate
}
