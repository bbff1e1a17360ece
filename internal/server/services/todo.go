package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TodoService manages todos on behalf of an authenticated user.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// List returns the user's todos oldest first; never nil.
func (s *TodoService) List(ctx context.Context, userID string) ([]*models.Todo, error) {
	items, err := s.repomanager.Todos(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}
	if items == nil {
		items = []*models.Todo{}
	}
	return items, nil
}

func (s *TodoService) Create(ctx context.Context, userID string, req CreateTodoRequest) (*models.Todo, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		ID:          uuid.NewString(),
		Description: req.Description,
		Done:        req.Done,
		UserID:      userID,
	}

	t, err := s.repomanager.Todos(s.db).Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}
	return t, nil
}

// Update applies the fields present in req to the todo. It fails with
// common.ErrorNotFound for unknown or non-UUID ids and with
// common.ErrorForbidden when the todo belongs to someone else.
func (s *TodoService) Update(ctx context.Context, userID, todoID string, req UpdateTodoRequest) (*models.Todo, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(todoID); err != nil {
		return nil, common.ErrorNotFound
	}

	var updated *models.Todo
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Todos(tx)

		todo, err := repo.GetForUpdate(ctx, todoID)
		if err != nil {
			return err
		}
		if todo.UserID != userID {
			return common.ErrorForbidden
		}

		if req.Description != nil {
			todo.Description = *req.Description
		}
		if req.Done != nil {
			todo.Done = *req.Done
		}

		updated, err = repo.Update(ctx, todo)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error updating todo: %w", err)
	}
	return updated, nil
}
