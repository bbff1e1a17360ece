package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
	"github.com/labstack/echo/v4"
)

type handlers struct {
	logger logging.Logger
	users  UserService
	todos  TodoService
	db     Pinger
}

func (h *handlers) signup(c echo.Context) error {
	var req services.SignupRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	user, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}

	h.logger.Info(c.Request().Context(), "Registered", "username", user.UserName, "user_id", user.ID)
	return c.JSON(http.StatusCreated, messageResponse{Message: "User successfully created: " + user.UserName})
}

func (h *handlers) signin(c echo.Context) error {
	var req services.SigninRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	token, err := h.users.Login(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (h *handlers) listTodos(c echo.Context) error {
	userID, _ := UserID(c)

	items, err := h.todos.List(c.Request().Context(), userID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *handlers) createTodo(c echo.Context) error {
	userID, _ := UserID(c)

	var req services.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	todo, err := h.todos.Create(c.Request().Context(), userID, req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, createdResponse{Message: "Todo successfully created", ID: todo.ID})
}

func (h *handlers) updateTodo(c echo.Context) error {
	userID, _ := UserID(c)
	id := c.Param("id")

	var req services.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}

	_, err := h.todos.Update(c.Request().Context(), userID, id, req)
	if errors.Is(err, common.ErrorNotFound) {
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Todo with id " + id + " not found"})
	}
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Todo successfully updated"})
}

func (h *handlers) health(c echo.Context) error {
	if h.db != nil {
		if err := h.db.PingContext(c.Request().Context()); err != nil {
			h.logger.Error(c.Request().Context(), "health check failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		}
	}
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid request body"})
}

// fail maps service errors to responses. Anything unrecognised is logged
// and reported as a bare 500.
func (h *handlers) fail(c echo.Context, err error) error {
	var verr services.ValidationErrors
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, validationResponse{Errors: verr})
	case errors.Is(err, common.ErrDuplicateUser):
		return c.JSON(http.StatusConflict, messageResponse{Message: "User already exists"})
	case errors.Is(err, common.ErrInvalidCredentials):
		return c.JSON(http.StatusForbidden, messageResponse{Message: "Invalid credentials"})
	case errors.Is(err, common.ErrorForbidden):
		return c.JSON(http.StatusForbidden, messageResponse{Message: "You are not allowed to modify this todo"})
	case errors.Is(err, common.ErrorNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Not found"})
	}

	h.logger.Error(c.Request().Context(), "request failed",
		"error", err,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID))
	return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Internal Server Error"})
}
