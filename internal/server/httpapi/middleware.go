package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/labstack/echo/v4"
)

// requestLogger writes one structured line per request. 4xx responses are
// logged at warn and 5xx at error.
func requestLogger(l logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			args := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"latency", time.Since(start),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			}
			if id, ok := UserID(c); ok {
				args = append(args, "user_id", id)
			}

			ctx := req.Context()
			switch {
			case status >= http.StatusInternalServerError:
				l.Error(ctx, "request", args...)
			case status >= http.StatusBadRequest:
				l.Warn(ctx, "request", args...)
			default:
				l.Info(ctx, "request", args...)
			}
			return nil
		}
	}
}
