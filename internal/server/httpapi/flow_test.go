package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
	"github.com/dmitrijs2005/gophtodo/internal/server/config"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/todos"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memStore backs both repositories in memory so the real services can run
// without PostgreSQL. Transactions are provided by sqlmock.
type memStore struct {
	mu    sync.Mutex
	users map[string]*models.User
	todos map[string]*models.Todo
	seq   int
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}, todos: map[string]*models.Todo{}}
}

func (m *memStore) now() time.Time {
	m.seq++
	return time.Date(2024, 1, 1, 0, 0, m.seq, 0, time.UTC)
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository            { return memUsers{m} }
func (m *memStore) Todos(dbx.DBTX) todos.Repository            { return memTodos{m} }

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.CreatedAt = r.m.now()
	cp := *u
	r.m.users[u.UserName] = &cp
	return u, nil
}

func (r memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type memTodos struct{ m *memStore }

func (r memTodos) Create(_ context.Context, t *models.Todo) (*models.Todo, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t.CreatedAt = r.m.now()
	t.UpdatedAt = t.CreatedAt
	cp := *t
	r.m.todos[t.ID] = &cp
	return t, nil
}

func (r memTodos) ListByUser(_ context.Context, userID string) ([]*models.Todo, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := []*models.Todo{}
	for _, t := range r.m.todos {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memTodos) GetForUpdate(_ context.Context, id string) (*models.Todo, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.todos[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memTodos) Update(_ context.Context, t *models.Todo) (*models.Todo, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t.UpdatedAt = r.m.now()
	cp := *t
	r.m.todos[t.ID] = &cp
	return t, nil
}

func TestFlow_SignupSigninAndTodos(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	tokens := auth.NewTokenService("flow-secret", 0)
	cfg := &config.Config{BcryptCost: bcrypt.MinCost}
	h := newTestServer(t, Deps{
		Users:  services.NewUserService(db, store, tokens, cfg),
		Todos:  services.NewTodoService(db, store),
		Tokens: tokens,
		DB:     fakePinger{},
	})

	signup := func(user string) {
		rec := do(t, h, http.MethodPost, "/signup", `{"username":"`+user+`","password":"0123456789","name":"Tester"}`, "")
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Equal(t, "User successfully created: "+user, message(t, rec))
	}
	signin := func(user string) string {
		rec := do(t, h, http.MethodPost, "/signin", `{"username":"`+user+`","password":"0123456789"}`, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decode[tokenResponse](t, rec).Token
	}

	signup("alice@example.com")
	signup("bob@example.com")

	rec := do(t, h, http.MethodPost, "/signup", `{"username":"alice@example.com","password":"0123456789","name":"Tester"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/signin", `{"username":"alice@example.com","password":"9876543210"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	alice := signin("alice@example.com")
	bob := signin("bob@example.com")

	rec = do(t, h, http.MethodGet, "/todos", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/todo", `{"description":"buy milk","done":false}`, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	todoID := decode[createdResponse](t, rec).ID
	_, err = uuid.Parse(todoID)
	require.NoError(t, err)

	// bob cannot touch alice's todo
	mock.ExpectBegin()
	mock.ExpectRollback()
	rec = do(t, h, http.MethodPut, "/todo/"+todoID, `{"description":"hijacked","done":true}`, "Bearer "+bob)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, "/todos", "", bob)
	assert.JSONEq(t, `[]`, rec.Body.String())

	mock.ExpectBegin()
	mock.ExpectCommit()
	rec = do(t, h, http.MethodPut, "/todo/"+todoID, `{"done":true}`, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/todos", "", alice)
	list := decode[[]models.Todo](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "buy milk", list[0].Description)
	assert.True(t, list[0].Done)

	rec = do(t, h, http.MethodPut, "/todo/not-a-uuid", `{"done":true}`, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	missing := uuid.NewString()
	mock.ExpectBegin()
	mock.ExpectRollback()
	rec = do(t, h, http.MethodPut, "/todo/"+missing, `{"done":true}`, alice)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Todo with id "+missing+" not found", message(t, rec))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFlow_SigninRejectsPasswordPastBcryptLimit(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := newMemStore()
	tokens := auth.NewTokenService("flow-secret", 0)
	cfg := &config.Config{BcryptCost: bcrypt.MinCost}
	h := newTestServer(t, Deps{
		Users:  services.NewUserService(db, store, tokens, cfg),
		Todos:  services.NewTodoService(db, store),
		Tokens: tokens,
		DB:     fakePinger{},
	})

	pw := strings.Repeat("p", auth.MaxPasswordBytes)
	rec := do(t, h, http.MethodPost, "/signup", `{"username":"carol@example.com","password":"`+pw+`","name":"Carol"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/signin", `{"username":"carol@example.com","password":"`+pw+`EXTRA-JUNK"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid credentials", message(t, rec))

	rec = do(t, h, http.MethodPost, "/signin", `{"username":"carol@example.com","password":"`+pw+`"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
