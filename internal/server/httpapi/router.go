package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter builds the middleware pipeline and both route groups. Routes on
// the protected group are only reached after the auth gate accepts the
// request.
func newRouter(l logging.Logger, d Deps, m *metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(l, e)

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ulid.Make().String() },
	}))
	e.Use(requestLogger(l))
	e.Use(m.middleware())
	e.Use(middleware.Recover())

	h := &handlers{logger: l, users: d.Users, todos: d.Todos, db: d.DB}

	public := e.Group("")
	route(public, http.MethodPost, "/signup", h.signup)
	route(public, http.MethodPost, "/signin", h.signin)
	route(public, http.MethodGet, "/health", h.health)
	route(public, http.MethodGet, "/metrics", echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})))

	protected := e.Group("", NewAuthGate(d.Tokens, l, m.authFailure))
	route(protected, http.MethodGet, "/todos", h.listTodos)
	route(protected, http.MethodPost, "/todo", h.createTodo)
	route(protected, http.MethodPut, "/todo/:id", h.updateTodo)

	return e
}

var routeMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// route registers h for method and answers 405 for the other methods on the
// same path, so they never reach the protected group's catch-all.
func route(g *echo.Group, method, path string, h echo.HandlerFunc) {
	g.Add(method, path, h)

	others := make([]string, 0, len(routeMethods)-1)
	for _, m := range routeMethods {
		if m != method {
			others = append(others, m)
		}
	}
	g.Match(others, path, func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderAllow, method)
		return echo.ErrMethodNotAllowed
	})
}

// errorHandler renders errors that escaped the handlers (bind failures,
// unknown routes, recovered panics) and logs the server-side ones.
func errorHandler(l logging.Logger, e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		rendered := err
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			rendered = he
		}
		if code >= http.StatusInternalServerError {
			l.Error(c.Request().Context(), "unhandled error",
				"error", err,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID))
		}
		e.DefaultHTTPErrorHandler(rendered, c)
	}
}
