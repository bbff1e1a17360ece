// Package services contains application services for the todo CLI.
package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/filex"
)

// ErrNotLoggedIn is returned when no saved token exists.
var ErrNotLoggedIn = errors.New("not logged in, run signin first")

// AuthService registers users and keeps the access token on disk between
// CLI invocations.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte, name string) (string, error)
	Login(ctx context.Context, username string, password []byte) error
	Logout() error
	Token() (string, error)
}

type authService struct {
	client    client.Client
	tokenFile string
}

func NewAuthService(c client.Client, tokenFile string) AuthService {
	return &authService{client: c, tokenFile: tokenFile}
}

func (a *authService) Register(ctx context.Context, username string, password []byte, name string) (string, error) {
	return a.client.Signup(ctx, username, string(password), name)
}

// Login signs in and replaces any previously saved token.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	token, err := a.client.Signin(ctx, username, string(password))
	if err != nil {
		return err
	}
	if err := filex.WriteFilePrivate(a.tokenFile, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (a *authService) Logout() error {
	return filex.RemoveIfExists(a.tokenFile)
}

func (a *authService) Token() (string, error) {
	token, err := filex.ReadTrimmed(a.tokenFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotLoggedIn
		}
		return "", fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}
