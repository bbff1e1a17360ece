package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

// TodoService runs todo calls with the saved token. A token the server
// rejects is reported as ErrNotLoggedIn so the user knows to sign in again.
type TodoService interface {
	List(ctx context.Context) ([]models.Todo, error)
	Add(ctx context.Context, description string, done bool) (string, error)
	Update(ctx context.Context, id string, patch models.TodoPatch) (string, error)
}

type todoService struct {
	client client.Client
	auth   AuthService
}

func NewTodoService(c client.Client, auth AuthService) TodoService {
	return &todoService{client: c, auth: auth}
}

func (s *todoService) List(ctx context.Context) ([]models.Todo, error) {
	token, err := s.auth.Token()
	if err != nil {
		return nil, err
	}
	todos, err := s.client.ListTodos(ctx, token)
	return todos, relogin(err)
}

func (s *todoService) Add(ctx context.Context, description string, done bool) (string, error) {
	token, err := s.auth.Token()
	if err != nil {
		return "", err
	}
	id, err := s.client.CreateTodo(ctx, token, description, done)
	return id, relogin(err)
}

func (s *todoService) Update(ctx context.Context, id string, patch models.TodoPatch) (string, error) {
	if patch.Description == nil && patch.Done == nil {
		return "", errors.New("nothing to update")
	}
	token, err := s.auth.Token()
	if err != nil {
		return "", err
	}
	msg, err := s.client.UpdateTodo(ctx, token, id, patch)
	return msg, relogin(err)
}

func relogin(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		return errors.Join(ErrNotLoggedIn, err)
	}
	return err
}
