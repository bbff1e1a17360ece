// Package services contains the server's business logic: account
// registration and login in UserService, todo management in TodoService.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
	"github.com/dmitrijs2005/gophtodo/internal/server/config"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenIssuer mints a bearer token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserService handles registration and credential checks.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      TokenIssuer
	bcryptCost  int
	dummyHash   []byte
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens TokenIssuer, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		bcryptCost:  cfg.BcryptCost,
		dummyHash:   auth.DummyHash(cfg.BcryptCost),
	}
}

// Register validates req and stores a new user. It fails with
// ValidationErrors or common.ErrDuplicateUser before anything is written.
func (s *UserService) Register(ctx context.Context, req SignupRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByLogin(ctx, req.UserName)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateUser
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		UserName:     req.UserName,
		PasswordHash: hash,
		Name:         req.Name,
	}

	u, err := repo.Create(ctx, user)
	if err != nil {
		// lost a race with a concurrent signup for the same name
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateUser
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// VerifyCredentials returns the user id for a matching username/password
// pair. Unknown users and wrong passwords both yield
// common.ErrInvalidCredentials, as do passwords longer than bcrypt reads.
func (s *UserService) VerifyCredentials(ctx context.Context, userName, password string) (string, error) {
	if len(password) > auth.MaxPasswordBytes {
		auth.BurnCompare(s.dummyHash, password[:auth.MaxPasswordBytes])
		return "", common.ErrInvalidCredentials
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnCompare(s.dummyHash, password)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.ComparePassword(user.PasswordHash, password) {
		return "", common.ErrInvalidCredentials
	}
	return user.ID, nil
}

// Login checks the credentials and issues a bearer token.
func (s *UserService) Login(ctx context.Context, req SigninRequest) (string, error) {
	userID, err := s.VerifyCredentials(ctx, req.UserName, req.Password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}
