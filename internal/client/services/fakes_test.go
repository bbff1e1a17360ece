package services

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

type fakeClient struct {
	signupFn func(username, password, name string) (string, error)
	signinFn func(username, password string) (string, error)
	listFn   func(token string) ([]models.Todo, error)
	createFn func(token, description string, done bool) (string, error)
	updateFn func(token, id string, patch models.TodoPatch) (string, error)
}

func (f *fakeClient) Signup(_ context.Context, username, password, name string) (string, error) {
	return f.signupFn(username, password, name)
}

func (f *fakeClient) Signin(_ context.Context, username, password string) (string, error) {
	return f.signinFn(username, password)
}

func (f *fakeClient) ListTodos(_ context.Context, token string) ([]models.Todo, error) {
	return f.listFn(token)
}

func (f *fakeClient) CreateTodo(_ context.Context, token, description string, done bool) (string, error) {
	return f.createFn(token, description, done)
}

func (f *fakeClient) UpdateTodo(_ context.Context, token, id string, patch models.TodoPatch) (string, error) {
	return f.updateFn(token, id, patch)
}

func (f *fakeClient) Health(context.Context) error { return nil }
