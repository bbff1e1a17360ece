// Package todos persists todo items. Every read and write is keyed by the
// todo id; ownership checks belong to the caller.
package todos

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	// ListByUser returns the user's todos oldest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Todo, error)
	// GetForUpdate loads a todo and locks its row until the surrounding
	// transaction ends. Unknown ids yield common.ErrorNotFound.
	GetForUpdate(ctx context.Context, id string) (*models.Todo, error)
	// Update writes description and done and bumps updated_at.
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
}
